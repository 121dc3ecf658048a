// Package timeutil parses, formats and shifts HH:MM times of day as they
// appear in spreadsheet exports. Every function is total: input it cannot
// understand is handed back unchanged (or as "") rather than reported as an
// error.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	hourMinute   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	military     = regexp.MustCompile(`^\d{3,4}$`)
	twelveHour   = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM)$`)
	embeddedTime = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2}):(\d{2})\s*([ap]m)`)
)

// To24Hour converts a time string to zero padded HH:MM. Recognised forms, in
// order: "H:MM"/"HH:MM", military "900"/"1730", and "H:MM[:SS] AM|PM".
// Anything else is returned unchanged. Ranges are not validated, so "25:99"
// stays "25:99".
func To24Hour(in string) string {
	s := strings.TrimSpace(in)
	if s == "" {
		return ""
	}
	if m := hourMinute.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", h, m[2])
	}
	if military.MatchString(s) {
		padded := strings.Repeat("0", 4-len(s)) + s
		return padded[:2] + ":" + padded[2:]
	}
	if m := twelveHour.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", to24(h, m[4]), m[2])
	}
	return in
}

func to24(h int, meridiem string) int {
	pm := strings.EqualFold(meridiem, "pm")
	switch {
	case pm && h != 12:
		return h + 12
	case !pm && h == 12:
		return 0
	}
	return h
}

// AddMinutes normalises t with To24Hour and shifts it by delta minutes,
// wrapping around midnight without tracking the day change. Input that does
// not normalise to HH:MM is returned unchanged.
func AddMinutes(t string, delta int) string {
	norm := To24Hour(t)
	m := hourMinute.FindStringSubmatch(norm)
	if m == nil {
		return t
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	total := ((h*60+mi+delta)%minutesPerDay + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Parse reads a 24h, military or AM/PM time and anchors it to the current
// day in the local zone. ok is false when the input is not recognised.
func Parse(t string) (time.Time, bool) {
	return ParseOn(time.Now(), t)
}

// ParseOn is Parse anchored to the calendar day of day.
func ParseOn(day time.Time, t string) (time.Time, bool) {
	norm := To24Hour(t)
	m := hourMinute.FindStringSubmatch(norm)
	if m == nil {
		return time.Time{}, false
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	y, mo, d := day.Date()
	return time.Date(y, mo, d, h, mi, 0, 0, day.Location()), true
}

// FromDateString extracts the time of day from a free text date such as
// "Thursday, May 1st 2025, 6:30:00 am -04:00". It first looks for an
// H:MM:SS am/pm token, then falls back to generic date parsing. An empty
// string means nothing could be extracted.
func FromDateString(s string) string {
	if t := EmbeddedTime(s); t != "" {
		return t
	}
	if ts, ok := ParseDate(s); ok {
		return ts.Format("15:04")
	}
	return ""
}

// EmbeddedTime returns the first H:MM:SS am/pm token of s as HH:MM, or "".
func EmbeddedTime(s string) string {
	m := embeddedTime.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	h, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", to24(h, m[4]), m[2])
}

// Format renders t as HH:MM.
func Format(t time.Time) string {
	return t.Format("15:04")
}
