// Package dateparse recognizes the date notations found in bank and card
// statement exports. Notations are tried in a fixed priority order so the
// unambiguous ISO form is never misread by the slash parsers.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November,
	"dec": time.December,
}

var (
	// ISO dates may trail a time component; only the date prefix matters.
	isoRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	slashRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	spelledRe = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,4})\.?\s+(\d{4})$`)
)

// Parse attempts, in order: ISO, slash month-first, slash day-first, and
// spelled-month ("4 Mar. 2025"). It returns the calendar date at midnight UTC
// and false when no notation matches or the date is not a real calendar day.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := isoRe.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := slashRe.FindStringSubmatch(s); m != nil {
		a, b := atoi(m[1]), atoi(m[2])
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		// Month-first wins when valid; day-first covers e.g. 25/12/2024.
		if d, ok := makeDate(year, a, b); ok {
			return d, true
		}
		return makeDate(year, b, a)
	}

	if m := spelledRe.FindStringSubmatch(s); m != nil {
		month, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		return makeDate(atoi(m[3]), int(month), atoi(m[1]))
	}

	return time.Time{}, false
}

// IsDate reports whether s parses under any recognized notation. Used to
// reject descriptions that are really misaligned date columns.
func IsDate(s string) bool {
	_, ok := Parse(s)
	return ok
}

// makeDate builds a midnight-UTC date, rejecting roll-over inputs like
// Feb 30 (which time.Date silently normalizes to Mar 1/2).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
