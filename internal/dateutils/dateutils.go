// Package dateutils normalizes the date and time formats found in bank and
// card statement exports. Statement files mix ISO dates, compact digit runs,
// regional separator styles, Excel serial numbers and localized long forms,
// often within a single workbook.
package dateutils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// LayoutISO is the canonical output format for candidate dates.
	LayoutISO = "2006-01-02"
	// LayoutTime is the canonical output format for candidate times.
	LayoutTime = "15:04:05"
)

var (
	isoPattern     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	compactPattern = regexp.MustCompile(`^(\d{6}|\d{8})$`)
	sepPattern     = regexp.MustCompile(`^(\d{1,4})[./](\d{1,2})(?:[./](\d{1,4}))?$`)
	serialPattern  = regexp.MustCompile(`^\d{5}(\.\d+)?$`)
	// East-Asian long form: year marker, month marker, day marker
	// (Korean 년/월/일, CJK 年/月/日).
	longFormPattern = regexp.MustCompile(`(\d{4})\s*[년年]\s*(\d{1,2})\s*[월月]\s*(\d{1,2})\s*[일日]?`)
	timePattern     = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// monthNameLayouts cover abbreviated and full month-name forms.
var monthNameLayouts = []string{
	"Jan 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"January 2, 2006",
	"2 January 2006",
}

// excelEpoch is the day-zero of Excel's 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Excel serial numbers are only trusted inside a plausible statement range,
// roughly 1982 through 2091; anything else is more likely an amount or id.
const (
	excelSerialMin = 30000
	excelSerialMax = 70000
)

// ParseDate converts a raw cell value to a time.Time, trying formats in
// strict priority order: ISO, compact digit runs, dot/slash separated,
// Excel serials, localized long forms, month names, then bare month/day
// defaulting to the current year. The boolean is false when nothing matched.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := compactPattern.FindStringSubmatch(s); m != nil {
		return parseCompact(m[1])
	}

	if m := sepPattern.FindStringSubmatch(s); m != nil {
		if m[3] == "" {
			// Bare month/day; checked after the serial range below would
			// never match a two-part value, so resolve it here.
			return parseMonthDay(m[1], m[2])
		}
		return parseSeparated(m[1], m[2], m[3])
	}

	if serialPattern.MatchString(s) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil &&
			serial >= excelSerialMin && serial <= excelSerialMax {
			return excelEpoch.AddDate(0, 0, int(serial)), true
		}
	}

	if m := longFormPattern.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	for _, layout := range monthNameLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ToISO formats a date as YYYY-MM-DD.
func ToISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// ParseTime normalizes an HH:mm or HH:mm:ss cell to HH:mm:ss. Returns false
// for anything that is not a plausible time of day.
func ParseTime(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	h, min := atoi(m[1]), atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec = atoi(m[3])
	}
	if h > 23 || min > 59 || sec > 59 {
		return "", false
	}
	t := time.Date(0, 1, 1, h, min, sec, 0, time.UTC)
	return t.Format(LayoutTime), true
}

// LooksLikeDate reports whether a cell value parses as a date under any of
// the supported formats. Used by the extractor for header-row discovery.
func LooksLikeDate(raw string) bool {
	_, ok := ParseDate(raw)
	return ok
}

// parseCompact handles 8-digit YYYYMMDD and 6-digit YYMMDD values.
func parseCompact(s string) (time.Time, bool) {
	if len(s) == 8 {
		return makeDate(atoi(s[:4]), atoi(s[4:6]), atoi(s[6:]))
	}
	return makeDate(pivotYear(atoi(s[:2])), atoi(s[2:4]), atoi(s[4:]))
}

// parseSeparated handles dot- or slash-separated dates with a 2- or 4-digit
// year on either end. US MM/DD vs EU DD/MM order is disambiguated by
// whichever field exceeds 12; ambiguous values default to the US form.
func parseSeparated(a, b, c string) (time.Time, bool) {
	if len(a) == 4 {
		return makeDate(atoi(a), atoi(b), atoi(c))
	}

	year := atoi(c)
	if len(c) <= 2 {
		year = pivotYear(year)
	}

	first, second := atoi(a), atoi(b)
	switch {
	case first > 12 && second <= 12:
		return makeDate(year, second, first) // DD/MM
	case second > 12 && first <= 12:
		return makeDate(year, first, second) // MM/DD
	default:
		return makeDate(year, first, second) // ambiguous, US form
	}
}

// parseMonthDay resolves a bare month/day against the current year.
func parseMonthDay(a, b string) (time.Time, bool) {
	first, second := atoi(a), atoi(b)
	month, day := first, second
	if first > 12 && second <= 12 {
		month, day = second, first
	}
	return makeDate(time.Now().Year(), month, day)
}

// pivotYear expands a 2-digit year using a 1950/2049 pivot.
func pivotYear(y int) int {
	if y >= 50 {
		return 1900 + y
	}
	return 2000 + y
}

// makeDate validates the component ranges and rejects normalization
// artifacts (time.Date silently rolls 2024-13-40 forward).
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
