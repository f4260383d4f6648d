package vssparser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/vss-csv/internal/classifier"
	"fjacquet/vss-csv/internal/common"
	"fjacquet/vss-csv/internal/fileutils"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/parser"
	"fjacquet/vss-csv/internal/parsererror"
)

// validateScanLines bounds how far ValidateFormat reads looking for a marker.
const validateScanLines = 200

// Adapter exposes Parser through the parser.FullParser interface: it adds
// file I/O, format validation and CSV conversion around the pure engine.
type Adapter struct {
	parser.BaseParser
	positions models.PositionTable
	fileName  string
}

// NewAdapter creates an Adapter. A nil positions table selects the built-in
// layout.
func NewAdapter(positions models.PositionTable, logger logging.Logger, writer *common.Writer) *Adapter {
	if positions == nil {
		positions = models.DefaultPositions()
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger, writer),
		positions:  positions,
	}
}

func (a *Adapter) engine() *Parser {
	return New(a.positions, a.GetLogger())
}

// Parse reads the whole report from r. Records carry the file name set with
// WithFileName, if any.
func (a *Adapter) Parse(ctx context.Context, r io.Reader) (models.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading report: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.engine().ParseText(string(data), a.fileName), nil
}

// ParseFile parses the report stored at filePath.
func (a *Adapter) ParseFile(ctx context.Context, filePath string) (models.ParseResult, error) {
	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening report %s: %w", filePath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.engine().ParseText(string(data), filepath.Base(filePath)), nil
}

// ValidateFormat reports whether filePath contains the start marker of a
// supported report within its first lines.
func (a *Adapter) ValidateFormat(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; i < validateScanLines && scanner.Scan(); i++ {
		if _, ok := classifier.IsReportStart(scanner.Text()); ok {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}

// ConvertToCSV parses inputFile and writes <outputDir>/<base>_<TYPE>.csv for
// every report type found. A file without any record is an
// InvalidFormatError.
func (a *Adapter) ConvertToCSV(ctx context.Context, inputFile, outputDir string) error {
	result, err := a.ParseFile(ctx, inputFile)
	if err != nil {
		return err
	}
	if result.Total() == 0 {
		return &parsererror.InvalidFormatError{
			FilePath:       inputFile,
			ExpectedFormat: "VSS settlement report",
			Msg:            "no records found",
		}
	}

	files, err := a.WriteToCSV(result, outputDir, inputFile)
	if err != nil {
		return fmt.Errorf("error writing CSV for %s: %w", inputFile, err)
	}
	a.GetLogger().Info("Converted report to CSV",
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldOutputFile, strings.Join(files, ",")))
	return nil
}

// WithFileName returns a copy of a whose Parse stamps name on records.
func (a *Adapter) WithFileName(name string) *Adapter {
	cp := *a
	cp.fileName = name
	return &cp
}

var _ parser.FullParser = (*Adapter)(nil)
