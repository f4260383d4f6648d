// Package vss is the public entry point of the VSS settlement report parser.
//
// Parse decodes the text of one report file into records grouped by report
// type. Malformed lines are skipped; Parse never fails.
//
//	result := vss.Parse(text, "VSS_2022048.txt", nil)
//	for _, rec := range result.Records(models.ReportType110) {
//		fmt.Println(rec.RecordCurrency(), rec.NetAmount())
//	}
package vss

import (
	"context"

	"fjacquet/vss-csv/internal/common"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/vssparser"
)

// Parse parses the text of one report file. fileName is recorded on every
// record and may carry the file date. A nil positions table selects the
// built-in layout; a partial one is merged over it.
func Parse(text, fileName string, positions models.PositionTable) models.ParseResult {
	return newParser(positions, nil).ParseText(text, fileName)
}

// ParseWithLogger is Parse with the diagnostics sent to logger.
func ParseWithLogger(text, fileName string, positions models.PositionTable, logger logging.Logger) models.ParseResult {
	return newParser(positions, logger).ParseText(text, fileName)
}

// ConvertFile parses inputFile and writes one CSV file per report type into
// outputDir.
func ConvertFile(ctx context.Context, inputFile, outputDir string, positions models.PositionTable) error {
	logger := defaultLogger()
	adapter := vssparser.NewAdapter(effective(positions), logger, common.NewWriter(common.DefaultDelimiter, "", logger))
	return adapter.ConvertToCSV(ctx, inputFile, outputDir)
}

// DefaultPositions returns a copy of the built-in field-position table.
func DefaultPositions() models.PositionTable {
	return models.DefaultPositions()
}

func newParser(positions models.PositionTable, logger logging.Logger) *vssparser.Parser {
	if logger == nil {
		logger = defaultLogger()
	}
	return vssparser.New(effective(positions), logger)
}

func effective(positions models.PositionTable) models.PositionTable {
	if positions == nil {
		return models.DefaultPositions()
	}
	return models.DefaultPositions().Merge(positions)
}

// defaultLogger logs warnings and errors only.
func defaultLogger() logging.Logger {
	return logging.NewLogrusAdapter("warn", "text")
}
