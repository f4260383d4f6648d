package models

// ParseResult maps a report type to its records in file order.
type ParseResult map[ReportType][]Record

// NewParseResult returns an empty result.
func NewParseResult() ParseResult {
	return make(ParseResult)
}

// Append adds records under rt. Records from a later section of the same type
// are appended after the earlier ones, never replacing them.
func (r ParseResult) Append(rt ReportType, records []Record) {
	if len(records) == 0 {
		return
	}
	r[rt] = append(r[rt], records...)
}

// Records returns the records of rt, or nil.
func (r ParseResult) Records(rt ReportType) []Record {
	return r[rt]
}

// Total returns the number of records across all report types.
func (r ParseResult) Total() int {
	total := 0
	for _, records := range r {
		total += len(records)
	}
	return total
}

// ReportTypes returns the report types present in r, in layout order.
func (r ParseResult) ReportTypes() []ReportType {
	var types []ReportType
	for _, rt := range SupportedReportTypes {
		if len(r[rt]) > 0 {
			types = append(types, rt)
		}
	}
	return types
}

// Counts returns the number of records per report type.
func (r ParseResult) Counts() map[ReportType]int {
	counts := make(map[ReportType]int, len(r))
	for rt, records := range r {
		counts[rt] = len(records)
	}
	return counts
}
