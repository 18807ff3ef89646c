package core

// convert.go provides the lenient parsers shared by the detectors and the
// export pipeline.
//
// These functions handle the messy reality of user-provided spreadsheets:
//   - Dates written day-first, month-first or year-first with '/', '-' or '.'
//   - Dates embedded in surrounding text ("venda em 03/04/2023")
//   - Numbers in Brazilian or US punctuation
//   - Excel formula prefixes (="value") and stray quotes
//
// Parse failures are reported through the boolean result, never by panicking.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// dateRegex finds a date-shaped substring: three digit groups joined by
// '-', '/' or '.'.
var dateRegex = regexp.MustCompile(`(\d{1,4})([-/.])(\d{1,2})([-/.])(\d{1,4})`)

// DateMatch is a successfully parsed date together with the format label
// inferred from how it was written, e.g. "dd/mm/yyyy" or "yyyy-mm-dd".
type DateMatch struct {
	Label string
	Time  time.Time
}

// BR formats the date as dd/mm/yyyy.
func (m DateMatch) BR() string {
	return FormatDateBR(m.Time)
}

// HasDateShape reports whether s contains a date-shaped substring.
func HasDateShape(s string) bool {
	return dateRegex.MatchString(s)
}

// ParseDate finds the first date-shaped substring in s, infers its format
// label and parses it into a calendar date.
//
// The label comes from the separator and the position of the 4-digit year.
// When neither outer group has 4 digits, a first group above 12 means
// day-first, otherwise month-first. Parsing follows the inferred label.
// ok is false when s holds no date or the date does not exist.
func ParseDate(s string) (DateMatch, bool) {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return DateMatch{}, false
	}
	first, middle, last := m[1], m[3], m[5]
	sep := pickSeparator(m[2], m[4])

	var label string
	var yearStr, monthStr, dayStr string
	switch {
	case len(first) == 4:
		label = "yyyy" + sep + "mm" + sep + "dd"
		yearStr, monthStr, dayStr = first, middle, last
	case len(last) == 4:
		label = "dd" + sep + "mm" + sep + "yyyy"
		dayStr, monthStr, yearStr = first, middle, last
	default:
		n, err := strconv.Atoi(first)
		if err != nil {
			return DateMatch{}, false
		}
		if n > 12 {
			label = "dd" + sep + "mm" + sep + "yyyy"
			dayStr, monthStr, yearStr = first, middle, last
		} else {
			label = "mm" + sep + "dd" + sep + "yyyy"
			monthStr, dayStr, yearStr = first, middle, last
		}
	}

	t, ok := buildDate(yearStr, monthStr, dayStr)
	if !ok {
		return DateMatch{}, false
	}
	return DateMatch{Label: label, Time: t}, true
}

// pickSeparator chooses the separator that names the format, preferring '/'
// then '-' then '.' when the two separators differ.
func pickSeparator(a, b string) string {
	for _, sep := range []string{"/", "-", "."} {
		if a == sep || b == sep {
			return sep
		}
	}
	return a
}

// buildDate validates the components and returns the calendar date.
func buildDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}

	switch len(yearStr) {
	case 1, 2:
		year += 2000
		if year > time.Now().Year()+TwoDigitYearPivot {
			year -= 100
		}
	case 3:
		return time.Time{}, false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// FormatDateBR formats t as dd/mm/yyyy.
func FormatDateBR(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

// ParseBRNumber parses a loosely formatted number using the separator policy
// of SplitNumber. ok is false when s carries no digits.
func ParseBRNumber(s string) (float64, bool) {
	p := SplitNumber(CleanCell(s))
	if p.Integer == "" && p.Decimal == "" {
		return 0, false
	}
	intPart := p.Integer
	if intPart == "" {
		intPart = "0"
	}
	lit := intPart
	if p.Decimal != "" {
		lit += "." + p.Decimal
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	if p.Sign == "-" {
		f = -f
	}
	return f, true
}

// FormatBRFixed formats f in Brazilian convention with exactly decimals
// fractional digits, e.g. 1234.5 -> "1.234,50".
func FormatBRFixed(f float64, decimals int) string {
	pow := math.Pow(10, float64(decimals))
	f = math.Round(f*pow) / pow

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	lit := strconv.FormatFloat(f, 'f', decimals, 64)
	intPart, fracPart, _ := strings.Cut(lit, ".")
	out := sign + FormatThousandsBR(intPart)
	if decimals > 0 {
		out += "," + fracPart
	}
	return out
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	// Remove leading '='
	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	// Remove any surrounding quotes
	return strings.Trim(s, `"'`)
}
