// Package vssparser decodes VSS settlement report text into typed records.
//
// Parsing runs in three steps: the splitter cuts the file into report
// sections, one assembler per report type turns a section's data lines into
// records, and Parser merges the records of every section into a
// models.ParseResult. A Parser holds only read-only configuration, so one
// instance can parse many files concurrently.
package vssparser

import (
	"path/filepath"
	"strings"
	"time"

	"fjacquet/vss-csv/internal/classifier"
	"fjacquet/vss-csv/internal/dateutils"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
)

// Header labels of the section dates.
const (
	LabelProcDate   = "PROC DATE:"
	LabelReportDate = "REPORT DATE:"
)

// Parser is the parse orchestrator.
type Parser struct {
	positions models.PositionTable
	logger    logging.Logger
}

// New returns a Parser using positions. A nil table selects the built-in
// layout; a nil logger selects an info-level logrus logger.
func New(positions models.PositionTable, logger logging.Logger) *Parser {
	if positions == nil {
		positions = models.DefaultPositions()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{positions: positions, logger: logger}
}

// Positions returns the field-position table used by p.
func (p *Parser) Positions() models.PositionTable {
	return p.positions
}

// ParseText parses the whole text of one report file. fileName is recorded
// on every record and may carry the file date. Malformed lines are logged
// and skipped; ParseText never fails.
func (p *Parser) ParseText(text, fileName string) models.ParseResult {
	result := models.NewParseResult()
	if strings.TrimSpace(text) == "" {
		p.logger.Warn("Empty report input", logging.F(logging.FieldFileName, fileName))
		return result
	}

	start := time.Now()
	fileDate := p.fileDate(fileName)
	sectionIndex := 0

	splitSections(splitLines(text), func(sec section) {
		sectionIndex++
		procDate, reportDate := p.sectionDates(sec, fileName)
		settlement, clearing := currencyPrescan(sec.lines)

		env := sectionEnv{
			audit: models.Audit{
				ProcessingDate: procDate,
				ReportDate:     reportDate,
				FileDate:       fileDate,
				FileName:       fileName,
			},
			settlementCurrency: settlement,
			clearingCurrency:   clearing,
		}

		records, dropped := assembleSection(sec, p.positions.Fields(sec.reportType), env)
		for _, err := range dropped {
			p.logger.WithError(err).Warn("Dropped data line",
				logging.F(logging.FieldFileName, fileName),
				logging.F(logging.FieldReportType, sec.reportType.String()),
				logging.F(logging.FieldSection, sectionIndex))
		}
		result.Append(sec.reportType, records)

		p.logger.Debug("Section dispatched",
			logging.F(logging.FieldFileName, fileName),
			logging.F(logging.FieldReportType, sec.reportType.String()),
			logging.F(logging.FieldSection, sectionIndex),
			logging.F(logging.FieldLineNumber, sec.start.number),
			logging.F(logging.FieldRecords, len(records)))
	})

	fields := []logging.Field{
		logging.F(logging.FieldFileName, fileName),
		logging.F(logging.FieldRecords, result.Total()),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()),
	}
	for _, rt := range result.ReportTypes() {
		fields = append(fields, logging.F(rt.String(), len(result[rt])))
	}
	p.logger.Info("Parsed VSS report", fields...)
	return result
}

// sectionDates decodes PROC DATE and REPORT DATE. Each label is looked up on
// the start line first, then on the first buffered line that carries it.
func (p *Parser) sectionDates(sec section, fileName string) (procDate, reportDate time.Time) {
	return p.headerDate(sec, LabelProcDate, fileName), p.headerDate(sec, LabelReportDate, fileName)
}

func (p *Parser) headerDate(sec section, label, fileName string) time.Time {
	token, line, ok := findHeaderToken(sec, label)
	if !ok {
		return time.Time{}
	}
	t, err := dateutils.ParseHeaderDate(token)
	if err != nil {
		p.logger.WithError(err).Warn("Header date not decoded",
			logging.F(logging.FieldFileName, fileName),
			logging.F(logging.FieldReportType, sec.reportType.String()),
			logging.F(logging.FieldLineNumber, line),
			logging.F(logging.FieldField, label),
			logging.F(logging.FieldValue, token))
		return time.Time{}
	}
	return t
}

func findHeaderToken(sec section, label string) (token string, line int, ok bool) {
	if token, ok := classifier.HeaderDateToken(sec.start.text, label); ok {
		return token, sec.start.number, true
	}
	for _, ln := range sec.lines {
		if token, ok := classifier.HeaderDateToken(ln.text, label); ok {
			return token, ln.number, true
		}
	}
	return "", 0, false
}

// fileDate decodes a date embedded in the base name of fileName.
func (p *Parser) fileDate(fileName string) time.Time {
	if fileName == "" {
		return time.Time{}
	}
	base := filepath.Base(fileName)
	t, clamped, err := dateutils.ParseFileNameDate(base)
	if err != nil {
		p.logger.Debug("No date in file name", logging.F(logging.FieldFileName, base))
		return time.Time{}
	}
	if clamped {
		p.logger.Warn("File name timestamp out of range, clamped",
			logging.F(logging.FieldFileName, base),
			logging.F(logging.FieldValue, t.Format(time.RFC3339)))
	}
	return t
}
