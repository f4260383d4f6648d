// Package parser provides the parser interfaces and the base parser embedded
// by implementations.
package parser

import (
	"fjacquet/vss-csv/internal/common"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
)

// BaseParser provides the logger and CSV writing shared by parser
// implementations. Parsers embed it:
//
//	type Adapter struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
	writer *common.Writer
}

// NewBaseParser creates a BaseParser. A nil logger selects an info-level
// logrus logger; a nil writer selects the default CSV layout.
func NewBaseParser(logger logging.Logger, writer *common.Writer) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if writer == nil {
		writer = common.NewWriter(common.DefaultDelimiter, "", logger)
	}
	return BaseParser{
		logger: logger,
		writer: writer,
	}
}

// SetLogger implements LoggerConfigurable. A nil logger is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// WriteToCSV writes every report type of result to <outputDir>/<base>_<TYPE>.csv
// and returns the files written.
func (b *BaseParser) WriteToCSV(result models.ParseResult, outputDir, base string) ([]string, error) {
	b.logger.Info("Writing records to CSV",
		logging.F(logging.FieldOutputFile, outputDir),
		logging.F(logging.FieldRecords, result.Total()))
	return b.writer.WriteResult(result, outputDir, base)
}
