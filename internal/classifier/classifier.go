// Package classifier holds the line predicates used while scanning VSS
// settlement reports: section markers, header and format lines, financial
// data lines and the context declarations that set sticky values.
package classifier

import (
	"regexp"
	"strings"

	"fjacquet/vss-csv/internal/models"
)

var (
	reportIDPattern  = regexp.MustCompile(`REPORT ID:\s*(VSS-\d+(?:-[A-Z]+)?)\b`)
	reportEndPattern = regexp.MustCompile(`\*\*\*\s*END OF VSS-\d+(?:-S)?\s+REPORT\s*\*\*\*`)

	separatorPattern = regexp.MustCompile(`^[\s\-=]*[-=]{3,}[\s\-=]*$`)
	lettersOnly      = regexp.MustCompile(`^[A-Za-z\s]+$`)
	decimalAmount    = regexp.MustCompile(`(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}(?:CR|DB)?`)
	suffixedInteger  = regexp.MustCompile(`\b\d+(?:CR|DB)\b`)
	spaceRun         = regexp.MustCompile(`\s+`)
)

// bannerLabels are masthead fragments that never carry data.
var bannerLabels = []string{
	"REPORT ID:",
	"PAGE:",
	"REPORTING FOR:",
	"ROLLUP TO:",
	"FUNDS XFER ENTITY:",
	"PROC DATE:",
	"REPORT DATE:",
	"VISANET SETTLEMENT SERVICE",
	"END OF VSS-",
}

// ReportID returns the identifier following "REPORT ID:" on line, supported
// or not.
func ReportID(line string) (models.ReportType, bool) {
	m := reportIDPattern.FindStringSubmatch(line)
	if m == nil {
		return models.ReportTypeNone, false
	}
	return models.ReportType(m[1]), true
}

// IsReportStart reports whether line opens a section of a supported type.
func IsReportStart(line string) (models.ReportType, bool) {
	rt, ok := ReportID(line)
	if !ok || !rt.IsSupported() {
		return models.ReportTypeNone, false
	}
	return rt, true
}

// IsReportEnd reports whether line is an "*** END OF VSS-nnn REPORT ***" marker.
func IsReportEnd(line string) bool {
	return reportEndPattern.MatchString(line)
}

// HasFinancialData reports whether line carries at least one amount. It is
// the only trigger for record emission.
func HasFinancialData(line string) bool {
	return decimalAmount.MatchString(line) || suffixedInteger.MatchString(line)
}

// IsFormatOrHeaderLine reports whether line is layout only: blank, a
// masthead label, a separator rule, or pure text without amounts.
func IsFormatOrHeaderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	for _, label := range bannerLabels {
		if strings.Contains(trimmed, label) {
			return true
		}
	}
	if separatorPattern.MatchString(trimmed) {
		return true
	}
	return lettersOnly.MatchString(trimmed) && !HasFinancialData(trimmed)
}

// HeaderDateToken returns the token following label (for example
// "PROC DATE:") on line.
func HeaderDateToken(line, label string) (string, bool) {
	idx := strings.Index(line, label)
	if idx < 0 {
		return "", false
	}
	fields := strings.Fields(line[idx+len(label):])
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// normalize upper-cases and collapses inner whitespace.
func normalize(line string) string {
	return spaceRun.ReplaceAllString(strings.ToUpper(strings.TrimSpace(line)), " ")
}
