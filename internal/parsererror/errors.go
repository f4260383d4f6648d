package parsererror

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by FieldError and the date decoders.
var (
	ErrWindowOutOfBounds = errors.New("window lies entirely outside the line")
	ErrNotNumeric        = errors.New("not a numeric value")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidDayOfYear  = errors.New("day of year out of range")
	ErrNoPosition        = errors.New("no position configured")
	ErrNoAlignedValues   = errors.New("no numeric value aligned with any field")
)

// FieldError represents a fixed-width field that could not be decoded
type FieldError struct {
	ReportType string
	Field      string
	Value      string
	Err        error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.ReportType, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// LineError represents a data line whose record was dropped
type LineError struct {
	FileName   string
	LineNumber int
	ReportType string
	Err        error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d (%s): record dropped: %v",
		e.FileName, e.LineNumber, e.ReportType, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
