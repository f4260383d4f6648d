package vssparser

import (
	"regexp"
	"strings"

	"fjacquet/vss-csv/internal/fixedwidth"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// rowReader extracts the configured fields of one data line. The first
// failure is kept in err and later reads become no-ops, so a builder can read
// every field and check err once.
type rowReader struct {
	reportType models.ReportType
	fields     models.FieldSet
	line       string
	err        error
	found      bool // some count or amount field held a token
}

func (r *rowReader) position(name string) (models.FieldPosition, bool) {
	pos, ok := r.fields[name]
	if !ok {
		r.fail(name, "", parsererror.ErrNoPosition)
	}
	return pos, ok
}

func (r *rowReader) fail(name, value string, err error) {
	if r.err != nil {
		return
	}
	r.err = &parsererror.FieldError{
		ReportType: string(r.reportType),
		Field:      name,
		Value:      value,
		Err:        err,
	}
}

func (r *rowReader) count(name string) int64 {
	pos, ok := r.position(name)
	if !ok || r.err != nil {
		return 0
	}
	token, err := fixedwidth.NumericToken(r.line, pos)
	if err != nil {
		r.fail(name, "", err)
		return 0
	}
	n, err := fixedwidth.DecodeCount(token)
	if err != nil {
		r.fail(name, strings.TrimSpace(fixedwidth.ExtractString(r.line, pos)), err)
	}
	r.found = r.found || token != ""
	return n
}

func (r *rowReader) amount(name string) decimal.Decimal {
	pos, ok := r.position(name)
	if !ok || r.err != nil {
		return decimal.Zero
	}
	token, err := fixedwidth.NumericToken(r.line, pos)
	if err != nil {
		r.fail(name, "", err)
		return decimal.Zero
	}
	d, err := fixedwidth.DecodeAmount(token)
	if err != nil {
		r.fail(name, strings.TrimSpace(fixedwidth.ExtractString(r.line, pos)), err)
	}
	r.found = r.found || token != ""
	return d
}

// checkAligned fails the line when it carries financial data but none of
// the numeric fields picked up a token.
func (r *rowReader) checkAligned() {
	if r.err == nil && !r.found {
		r.fail("line", "", parsererror.ErrNoAlignedValues)
	}
}

// debit reads a debit column. Debit columns are always reported as
// -|amount| whether or not the report printed a DB suffix.
func (r *rowReader) debit(name string) decimal.Decimal {
	return r.amount(name).Abs().Neg()
}

func (r *rowReader) identifier(name string) string {
	pos, ok := r.position(name)
	if !ok {
		return ""
	}
	return fixedwidth.ExtractIdentifier(r.line, pos)
}

// currency returns declared when set, otherwise the row's own currency
// window when it holds a three letter code.
func (r *rowReader) currency(name, declared string) string {
	if declared != "" {
		return declared
	}
	pos, ok := r.fields[name]
	if !ok {
		return ""
	}
	code := fixedwidth.ExtractIdentifier(r.line, pos)
	if !currencyCode.MatchString(code) {
		return ""
	}
	return code
}

// description returns the label printed left of the currency column.
func (r *rowReader) description(currencyField string) string {
	pos, ok := r.fields[currencyField]
	if !ok {
		return ""
	}
	width := pos.Position - 1
	if pos.Direction == models.RightToLeft {
		width = pos.Position - pos.MaxLength
	}
	if width <= 0 {
		return ""
	}
	return strings.TrimSpace(fixedwidth.ExtractString(r.line, models.LTR(1, width)))
}
