package batch

import (
	"fmt"
	"time"

	"fjacquet/vss-csv/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	// Handle zero times
	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// ReportDateRange spans the report dates of every record in result. Records
// without a report date contribute their processing date; records with
// neither are ignored.
func ReportDateRange(result models.ParseResult) DateRange {
	var dr DateRange
	for _, records := range result {
		for _, rec := range records {
			audit := rec.AuditInfo()
			d := audit.ReportDate
			if d.IsZero() {
				d = audit.ProcessingDate
			}
			if d.IsZero() {
				continue
			}
			dr = dr.Merge(DateRange{Start: d, End: d})
		}
	}
	return dr
}
