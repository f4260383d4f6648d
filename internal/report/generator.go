// Package report builds totals summaries of parsed VSS reports and encodes
// them as JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/vss-csv/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported summary formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator encodes summaries in the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// GenerateReport encodes summary in the specified format (json or yaml).
func (g *ReportGenerator) GenerateReport(summary *Summary, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(summary)
	case FormatYAML, "yml":
		return g.generateYAMLReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(summary *Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON summary")
		return nil, fmt.Errorf("failed to marshal JSON summary: %w", err)
	}
	return append(data, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(summary *Summary) ([]byte, error) {
	data, err := yaml.Marshal(summary)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML summary")
		return nil, fmt.Errorf("failed to marshal YAML summary: %w", err)
	}
	return data, nil
}
