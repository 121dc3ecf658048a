package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kilianp07/haulplan/core/model"
)

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// NormalizeShift maps free text shift labels onto the canonical labels by
// substring. Checks run in order, so "12" counts as 1st shift. Unmatched
// text is returned as given.
func NormalizeShift(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return raw
	case strings.Contains(s, "1st"), strings.Contains(s, "first"), strings.Contains(s, "1"):
		return model.ShiftFirst
	case strings.Contains(s, "2nd"), strings.Contains(s, "second"), strings.Contains(s, "2"):
		return model.ShiftSecond
	case strings.Contains(s, "sched"):
		return model.ShiftScheduled
	case strings.Contains(s, "any"):
		return model.ShiftAny
	}
	return raw
}

// ParseDrivers splits a bracketed, comma separated label list such as
// "[94, 95]" into trimmed, non-empty truck ids.
func ParseDrivers(raw string) []string {
	var out []string
	for _, part := range strings.Split(stripBrackets(raw), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stripBrackets(s string) string {
	return strings.TrimSpace(strings.NewReplacer("[", "", "]", "").Replace(s))
}

// parseCount reads the leading non-negative integer of s. ok is false when s
// does not start with digits.
func parseCount(s string) (int, bool) {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
