// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/parser"
)

// ErrInvalidFormat is returned when validation finds no supported report.
var ErrInvalidFormat = errors.New("file is not in a valid format")

// ProcessFileWithError converts inputFile into per-report-type CSV files in
// outputDir using p, validating the format first when validate is set.
func ProcessFileWithError(ctx context.Context, p parser.FullParser, inputFile, outputDir string, validate bool, log logging.Logger) error {
	p.SetLogger(log)

	if validate {
		log.Info("Validating format...", logging.F(logging.FieldInputFile, inputFile))
		valid, err := p.ValidateFormat(inputFile)
		if err != nil {
			return fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return ErrInvalidFormat
		}
		log.Info("Validation successful.")
	}

	if err := p.ConvertToCSV(ctx, inputFile, outputDir); err != nil {
		return fmt.Errorf("error converting to CSV: %w", err)
	}
	log.Info("Conversion completed successfully!",
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldOutputFile, outputDir))
	return nil
}

// ProcessFile is ProcessFileWithError for callers that terminate on failure.
func ProcessFile(ctx context.Context, p parser.FullParser, inputFile, outputDir string, validate bool, log logging.Logger) {
	if err := ProcessFileWithError(ctx, p, inputFile, outputDir, validate, log); err != nil {
		log.Fatalf("Error processing file: %v", err)
	}
}
