// Package fixedwidth reads fields out of fixed-width report lines.
//
// A field is located by a models.FieldPosition. Columns are counted in runes,
// 1-based, the way they appear in the printed report. Every function is pure:
// short lines never panic, they produce an empty window or an error.
package fixedwidth

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

// anchorSlack is how far (in columns) a numeric token may end before a
// right-to-left anchor, or start after a left-to-right anchor, and still belong
// to the field. Credit amounts are often printed without a suffix in a column
// sized for one.
const anchorSlack = 2

var (
	countPattern  = regexp.MustCompile(`^\d+$`)
	amountPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Bounds returns the 0-based half-open window [start, end) selected by pos on
// a line of n runes, clipped to the line. inBounds is false when the window
// lies entirely outside the line.
func Bounds(n int, pos models.FieldPosition) (start, end int, inBounds bool) {
	if pos.Direction == models.RightToLeft {
		end = pos.Position
		start = end - pos.MaxLength
	} else {
		start = pos.Position - 1
		end = start + pos.MaxLength
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= n || end <= start {
		return start, start, false
	}
	return start, end, true
}

// ExtractString returns the raw window selected by pos. A window outside the
// line yields the empty string.
func ExtractString(line string, pos models.FieldPosition) string {
	runes := []rune(line)
	start, end, ok := Bounds(len(runes), pos)
	if !ok {
		return ""
	}
	return string(runes[start:end])
}

// ExtractIdentifier returns the trimmed window, kept as text (table ids,
// currency codes).
func ExtractIdentifier(line string, pos models.FieldPosition) string {
	return strings.TrimSpace(ExtractString(line, pos))
}

// NumericToken returns the token a numeric decoder would read from the
// window selected by pos, or "" when the field is blank.
func NumericToken(line string, pos models.FieldPosition) (string, error) {
	return numericToken(line, pos)
}

// ExtractCount decodes the window selected by pos as a non-negative count.
func ExtractCount(line string, pos models.FieldPosition) (int64, error) {
	token, err := numericToken(line, pos)
	if err != nil {
		return 0, err
	}
	return DecodeCount(token)
}

// ExtractAmount decodes the window selected by pos as a signed amount.
func ExtractAmount(line string, pos models.FieldPosition) (decimal.Decimal, error) {
	token, err := numericToken(line, pos)
	if err != nil {
		return decimal.Zero, err
	}
	return DecodeAmount(token)
}

// DecodeCount parses count text such as "1,074". Empty text and "0" are zero.
func DecodeCount(text string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if s == "" || s == "0" {
		return 0, nil
	}
	if !countPattern.MatchString(s) {
		return 0, parsererror.ErrNotNumeric
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, parsererror.ErrNotNumeric
	}
	return n, nil
}

// DecodeAmount parses amount text such as "1,234.56CR" or "7,294.14DB".
// A DB suffix negates the value; CR or no suffix leaves it positive. The
// result is rounded half-up to two decimals.
func DecodeAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)

	// The suffix has to be detected before separators are removed.
	negative := false
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, models.DebitSuffix):
		negative = true
		s = s[:len(s)-len(models.DebitSuffix)]
	case strings.HasSuffix(upper, models.CreditSuffix):
		s = s[:len(s)-len(models.CreditSuffix)]
	}

	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "0" || s == "0.00" {
		return decimal.Zero, nil
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, parsererror.ErrNotNumeric
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, parsererror.ErrNotNumeric
	}
	amount = amount.Round(2)
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// numericToken picks the token of the window that sits against its anchor:
// the rightmost token for RightToLeft, the leftmost for LeftToRight. A token
// that does not reach the anchor belongs to a neighbouring column and the
// field is treated as blank.
func numericToken(line string, pos models.FieldPosition) (string, error) {
	runes := []rune(line)
	start, end, ok := Bounds(len(runes), pos)
	if !ok {
		return "", parsererror.ErrWindowOutOfBounds
	}
	window := runes[start:end]

	if pos.Direction == models.RightToLeft {
		return rightAnchored(window, pos.Position-start), nil
	}
	return leftAnchored(window, pos.Position-1-start), nil
}

// rightAnchored returns the last token of window. anchor is the configured end
// column relative to the window start.
func rightAnchored(window []rune, anchor int) string {
	last := len(window) - 1
	for last >= 0 && unicode.IsSpace(window[last]) {
		last--
	}
	if last < 0 || anchor-(last+1) > anchorSlack {
		return ""
	}
	first := last
	for first > 0 && !unicode.IsSpace(window[first-1]) {
		first--
	}
	token := string(window[first : last+1])

	// "1,234.56 DB" - reattach a detached sign marker.
	if isSignMarker(token) {
		prevLast := first - 1
		for prevLast >= 0 && unicode.IsSpace(window[prevLast]) {
			prevLast--
		}
		if prevLast >= 0 {
			prevFirst := prevLast
			for prevFirst > 0 && !unicode.IsSpace(window[prevFirst-1]) {
				prevFirst--
			}
			token = string(window[prevFirst:prevLast+1]) + token
		}
	}
	return token
}

// leftAnchored returns the first token of window. anchor is the configured
// start column relative to the window start.
func leftAnchored(window []rune, anchor int) string {
	first := 0
	for first < len(window) && unicode.IsSpace(window[first]) {
		first++
	}
	if first == len(window) || first-anchor > anchorSlack {
		return ""
	}
	last := first
	for last+1 < len(window) && !unicode.IsSpace(window[last+1]) {
		last++
	}
	token := string(window[first : last+1])

	next := last + 1
	for next < len(window) && unicode.IsSpace(window[next]) {
		next++
	}
	if next < len(window) && next+2 <= len(window) && isSignMarker(string(window[next:next+2])) &&
		(next+2 == len(window) || unicode.IsSpace(window[next+2])) {
		token += string(window[next : next+2])
	}
	return token
}

func isSignMarker(s string) bool {
	s = strings.ToUpper(s)
	return s == models.CreditSuffix || s == models.DebitSuffix
}
