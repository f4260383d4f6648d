package vssparser

import (
	"strings"

	"fjacquet/vss-csv/internal/classifier"
	"fjacquet/vss-csv/internal/models"
)

// sourceLine is a line of the input with its 1-based number in the file.
type sourceLine struct {
	number int
	text   string
}

// section is the buffered body of one report occurrence. start is the line
// carrying the REPORT ID marker; lines excludes it.
type section struct {
	reportType models.ReportType
	start      sourceLine
	lines      []sourceLine
}

// splitLines breaks text on "\n" and drops the "\r" of "\r\n" endings.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// splitSections scans lines once, in order, and calls dispatch for every
// completed non-empty section. A section closes on an end marker, on the
// next REPORT ID line, or at end of input.
func splitSections(lines []string, dispatch func(section)) {
	var current *section

	flush := func() {
		if current != nil && len(current.lines) > 0 {
			dispatch(*current)
		}
		current = nil
	}

	for i, text := range lines {
		ln := sourceLine{number: i + 1, text: text}

		if rt, ok := classifier.IsReportStart(text); ok {
			flush()
			current = &section{reportType: rt, start: ln}
			continue
		}
		if _, ok := classifier.ReportID(text); ok {
			// Another report we do not decode starts here.
			flush()
			continue
		}
		if classifier.IsReportEnd(text) {
			flush()
			continue
		}
		if current != nil {
			current.lines = append(current.lines, ln)
		}
	}
	flush()
}
