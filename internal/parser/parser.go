package parser

import (
	"context"
	"io"

	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
)

// Parser reads a whole report from r and returns its records keyed by
// report type.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) (models.ParseResult, error)
}

// Validator checks whether a file looks like a supported report.
type Validator interface {
	ValidateFormat(filePath string) (bool, error)
}

// CSVConverter parses inputFile and writes one CSV file per report type
// into outputDir.
type CSVConverter interface {
	ConvertToCSV(ctx context.Context, inputFile, outputDir string) error
}

// LoggerConfigurable is implemented by components whose logger can be
// replaced after construction.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// FullParser combines all parser capabilities used by the commands.
type FullParser interface {
	Parser
	Validator
	CSVConverter
	LoggerConfigurable
}
