package timeutil

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar format schedule entries are normalised to.
const DateLayout = "01/02/2006"

var (
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	weekdayPrefix = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)\.?,?\s+`)
	spaces        = regexp.MustCompile(`\s+`)
	meridiem      = regexp.MustCompile(`(?i)\b([ap])\.?m\.?(\s|$)`)
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"January 2 2006, 3:04:05 PM -07:00",
	"January 2 2006, 3:04:05 PM",
	"January 2 2006, 3:04 PM",
	"January 2 2006 3:04:05 PM",
	"January 2 2006",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2 2006, 3:04:05 PM -07:00",
	"Jan 2 2006",
	"Jan 2, 2006",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate parses the loose date strings found in calendar and spreadsheet
// exports. Weekday prefixes and ordinal suffixes ("1st", "22nd") are ignored
// and month names are matched case-insensitively.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	s = weekdayPrefix.ReplaceAllString(s, "")
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = spaces.ReplaceAllString(s, " ")
	s = meridiem.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[:1]) + "M" + m[len(strings.TrimRight(m, " \t")):]
	})
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
