// Package common provides the CSV output shared by the commands and the
// parser adapter.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/vss-csv/internal/dateutils"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when a Writer is built with a zero delimiter.
const DefaultDelimiter = ','

// Writer writes parsed records as one CSV file per report type.
type Writer struct {
	delimiter  rune
	dateFormat string
	logger     logging.Logger
}

// NewWriter creates a Writer. Zero values select ',' and ISO dates.
func NewWriter(delimiter rune, dateFormat string, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if dateFormat == "" {
		dateFormat = dateutils.DateLayoutISO
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{delimiter: delimiter, dateFormat: dateFormat, logger: logger}
}

// OutputPath returns <outDir>/<base>_<REPORT TYPE>.csv, for example
// out/settlement_VSS_110.csv.
func OutputPath(outDir, base string, rt models.ReportType) string {
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	return filepath.Join(outDir, fmt.Sprintf("%s_%s.csv", base, rt.FileSuffix()))
}

// WriteResult writes every non-empty report type of result under outDir and
// returns the files written, in report layout order.
func (w *Writer) WriteResult(result models.ParseResult, outDir, base string) ([]string, error) {
	if err := os.MkdirAll(outDir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	var written []string
	for _, rt := range result.ReportTypes() {
		path := OutputPath(outDir, base, rt)
		if err := w.WriteRecords(rt, result[rt], path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteRecords writes records of a single report type to csvFile.
func (w *Writer) WriteRecords(rt models.ReportType, records []models.Record, csvFile string) error {
	rows, err := w.rowsFor(rt, records)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(csvFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile)
	if err != nil {
		w.logger.WithError(err).Error("Failed to create CSV file", logging.F(logging.FieldOutputFile, csvFile))
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldOutputFile, csvFile))
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = w.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	w.logger.Info("Wrote report CSV",
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldReportType, rt.String()),
		logging.F(logging.FieldCount, len(records)))
	return nil
}

// ReadCSVFile reads a CSV file into a slice of row structs.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}

func (w *Writer) rowsFor(rt models.ReportType, records []models.Record) (interface{}, error) {
	switch rt {
	case models.ReportType110:
		rows := make([]*Row110, 0, len(records))
		for _, rec := range records {
			if r, ok := rec.(models.Report110Record); ok {
				rows = append(rows, w.row110(r))
			}
		}
		return rows, nil
	case models.ReportType120:
		rows := make([]*Row120, 0, len(records))
		for _, rec := range records {
			if r, ok := rec.(models.Report120Record); ok {
				rows = append(rows, w.row120(r))
			}
		}
		return rows, nil
	case models.ReportType130:
		rows := make([]*Row130, 0, len(records))
		for _, rec := range records {
			if r, ok := rec.(models.Report130Record); ok {
				rows = append(rows, w.row130(r))
			}
		}
		return rows, nil
	case models.ReportType140:
		rows := make([]*Row140, 0, len(records))
		for _, rec := range records {
			if r, ok := rec.(models.Report140Record); ok {
				rows = append(rows, w.row140(r))
			}
		}
		return rows, nil
	case models.ReportType900:
		rows := make([]*Row900, 0, len(records))
		for _, rec := range records {
			if r, ok := rec.(models.Report900Record); ok {
				rows = append(rows, w.row900(r))
			}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("no CSV layout for report type %q", rt)
}
