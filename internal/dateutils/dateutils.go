// Package dateutils decodes the date encodings found in VSS settlement
// reports: header dates (17FEB22), ordinal day-of-year dates (CCYYDDD,
// CYYDDD, YYDDD), lenient header timestamps and common calendar formats.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/vss-csv/internal/parsererror"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
	DateLayoutHeader    = "02Jan06"
)

// FlexibleFormats is tried in order by ParseFlexible.
var FlexibleFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z",
	DateLayoutEuropean,
	"02/01/2006",
	DateLayoutUS,
	"02-01-2006",
	DateLayoutWithMonth,
	"02Jan2006",
	"02 Jan 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"20060102",
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	digitRun   = regexp.MustCompile(`\d+`)
)

// ParseHeaderDate decodes a processing or report date token such as "17FEB22".
// Tokens that are not DDMMMYY are handed to ParseFlexible.
func ParseHeaderDate(token string) (time.Time, error) {
	clean := strings.ToUpper(CleanDateString(token))
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty header date: %w", parsererror.ErrInvalidDate)
	}
	if len(clean) == len(DateLayoutHeader) {
		if t, err := time.Parse(DateLayoutHeader, clean); err == nil {
			return t, nil
		}
	}
	t, err := ParseFlexible(clean)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse header date %q: %w", token, parsererror.ErrInvalidDate)
	}
	return t, nil
}

// ParseFlexible tries FlexibleFormats in order.
func ParseFlexible(dateStr string) (time.Time, error) {
	clean := CleanDateString(dateStr)
	for _, format := range FlexibleFormats {
		if t, err := time.Parse(format, clean); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s: %w", dateStr, parsererror.ErrInvalidDate)
}

// ParseOrdinalDate decodes an ordinal day-of-year date.
//
//	7 digits CCYYDDD  written year; a 00 century falls back to inference
//	6 digits CYYDDD   year = 1900 + 100*C + YY (not CCYDDD: a one-digit
//	                  year cannot be placed in a century)
//	5 digits YYDDD    YY <= 49 is 20YY, otherwise 19YY
//
// The day must exist in the resulting year.
func ParseOrdinalDate(digits string) (time.Time, error) {
	digits = strings.TrimSpace(digits)
	if !isDigits(digits) {
		return time.Time{}, fmt.Errorf("ordinal date %q: %w", digits, parsererror.ErrInvalidDate)
	}

	var year int
	switch len(digits) {
	case 7:
		century := atoi(digits[0:2])
		yy := atoi(digits[2:4])
		if century == 0 {
			year = inferCentury(yy)
		} else {
			year = century*100 + yy
		}
	case 6:
		year = 1900 + 100*atoi(digits[0:1]) + atoi(digits[1:3])
	case 5:
		year = inferCentury(atoi(digits[0:2]))
	default:
		return time.Time{}, fmt.Errorf("ordinal date %q has %d digits: %w", digits, len(digits), parsererror.ErrInvalidDate)
	}

	day := atoi(digits[len(digits)-3:])
	if day < 1 || day > DaysInYear(year) {
		return time.Time{}, fmt.Errorf("ordinal date %q: day %d of %d: %w", digits, day, year, parsererror.ErrInvalidDayOfYear)
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1), nil
}

// ParseHeaderTimestamp decodes YYYYMMDDhhmmss or YYMMDDhhmmss. Components out
// of range are clamped into range instead of rejected; clamped reports
// whether that happened so callers can log it.
func ParseHeaderTimestamp(digits string) (t time.Time, clamped bool, err error) {
	digits = strings.TrimSpace(digits)
	if !isDigits(digits) {
		return time.Time{}, false, fmt.Errorf("header timestamp %q: %w", digits, parsererror.ErrInvalidDate)
	}

	var year int
	var rest string
	switch len(digits) {
	case 14:
		year, rest = atoi(digits[0:4]), digits[4:]
	case 12:
		year, rest = inferCentury(atoi(digits[0:2])), digits[2:]
	default:
		return time.Time{}, false, fmt.Errorf("header timestamp %q has %d digits: %w", digits, len(digits), parsererror.ErrInvalidDate)
	}

	month, c1 := clamp(atoi(rest[0:2]), 1, 12)
	maxDay := DaysInMonth(year, time.Month(month))
	day, c2 := clamp(atoi(rest[2:4]), 1, maxDay)
	hour, c3 := clamp(atoi(rest[4:6]), 0, 23)
	minute, c4 := clamp(atoi(rest[6:8]), 0, 59)
	second, c5 := clamp(atoi(rest[8:10]), 0, 59)

	t = time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return t, c1 || c2 || c3 || c4 || c5, nil
}

// ParseFileNameDate looks for a date embedded in a report file name. Digit
// runs of 14 or 12 digits are read as header timestamps, runs of 7, 6 or 5
// digits as ordinal dates. The first run that decodes wins.
func ParseFileNameDate(name string) (t time.Time, clamped bool, err error) {
	for _, run := range digitRun.FindAllString(name, -1) {
		switch len(run) {
		case 14, 12:
			if t, clamped, err = ParseHeaderTimestamp(run); err == nil {
				return t, clamped, nil
			}
		case 7, 6, 5:
			if t, err = ParseOrdinalDate(run); err == nil {
				return t, false, nil
			}
		}
	}
	return time.Time{}, false, fmt.Errorf("no date in file name %q: %w", name, parsererror.ErrInvalidDate)
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used. Zero dates format as "".
func FormatDate(date time.Time, layout string) string {
	if date.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func inferCentury(yy int) int {
	if yy <= 49 {
		return 2000 + yy
	}
	return 1900 + yy
}

func clamp(v, lo, hi int) (int, bool) {
	switch {
	case v < lo:
		return lo, true
	case v > hi:
		return hi, true
	}
	return v, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// atoi is only called on validated digit strings.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
