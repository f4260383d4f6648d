package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldError(t *testing.T) {
	tests := []struct {
		name     string
		err      *FieldError
		expected string
	}{
		{
			name: "non numeric amount",
			err: &FieldError{
				ReportType: "VSS-110",
				Field:      "credit_amount",
				Value:      "12A.00",
				Err:        ErrNotNumeric,
			},
			expected: "VSS-110: failed to parse credit_amount='12A.00': not a numeric value",
		},
		{
			name: "window out of bounds",
			err: &FieldError{
				ReportType: "VSS-900-S",
				Field:      "total_count",
				Value:      "",
				Err:        ErrWindowOutOfBounds,
			},
			expected: "VSS-900-S: failed to parse total_count='': window lies entirely outside the line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestLineError_UnwrapChain(t *testing.T) {
	fieldErr := &FieldError{ReportType: "VSS-120", Field: "count", Value: "X", Err: ErrNotNumeric}
	lineErr := &LineError{FileName: "ep747.txt", LineNumber: 42, ReportType: "VSS-120", Err: fieldErr}

	assert.Equal(t, "ep747.txt line 42 (VSS-120): record dropped: VSS-120: failed to parse count='X': not a numeric value", lineErr.Error())
	assert.True(t, errors.Is(lineErr, ErrNotNumeric))

	var fe *FieldError
	assert.True(t, errors.As(lineErr, &fe))
	assert.Equal(t, "count", fe.Field)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{FilePath: "positions.yaml", Reason: "VSS-110: missing field \"count\""}
	assert.Equal(t, "validation failed for positions.yaml: VSS-110: missing field \"count\"", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	t.Run("without snippet", func(t *testing.T) {
		err := &InvalidFormatError{
			FilePath:       "report.txt",
			ExpectedFormat: "VSS settlement report",
			Msg:            "no REPORT ID marker found",
		}
		assert.Equal(t, "invalid format in file 'report.txt': no REPORT ID marker found. Expected: VSS settlement report", err.Error())
	})

	t.Run("with snippet", func(t *testing.T) {
		err := &InvalidFormatError{
			FilePath:             "report.txt",
			ExpectedFormat:       "VSS settlement report",
			ActualContentSnippet: "hello",
			Msg:                  "no REPORT ID marker found",
		}
		assert.Contains(t, err.Error(), "Content snippet: 'hello'")
	})
}

func TestErrorsAreWrappable(t *testing.T) {
	wrapped := fmt.Errorf("decode header: %w", ErrInvalidDate)
	assert.ErrorIs(t, wrapped, ErrInvalidDate)
}
