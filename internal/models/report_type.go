// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// ReportType identifies one of the VSS settlement report layouts. The value is
// the report identifier exactly as it appears after "REPORT ID:" and is used as
// the key of a ParseResult.
type ReportType string

// Supported report types
const (
	ReportType110 ReportType = "VSS-110"
	ReportType120 ReportType = "VSS-120"
	ReportType130 ReportType = "VSS-130"
	ReportType140 ReportType = "VSS-140"
	ReportType900 ReportType = "VSS-900-S"
)

// ReportTypeNone marks the absence of an open section.
const ReportTypeNone ReportType = ""

// SupportedReportTypes lists the report types in file-layout order.
var SupportedReportTypes = []ReportType{
	ReportType110,
	ReportType120,
	ReportType130,
	ReportType140,
	ReportType900,
}

// IsSupported reports whether rt is one of the five supported layouts.
func (rt ReportType) IsSupported() bool {
	for _, s := range SupportedReportTypes {
		if s == rt {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer
func (rt ReportType) String() string {
	return string(rt)
}

// FileSuffix returns a filesystem-safe suffix for output file names.
func (rt ReportType) FileSuffix() string {
	return strings.ReplaceAll(string(rt), "-", "_")
}

// ParseReportType converts a user supplied identifier ("VSS-110", "110",
// "vss-900-s", "900") to a supported ReportType.
func ParseReportType(s string) (ReportType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(norm, "VSS-") {
		norm = "VSS-" + norm
	}
	if norm == "VSS-900" {
		norm = string(ReportType900)
	}
	rt := ReportType(norm)
	if !rt.IsSupported() {
		return ReportTypeNone, fmt.Errorf("unsupported report type: %s", s)
	}
	return rt, nil
}
