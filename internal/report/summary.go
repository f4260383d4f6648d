package report

import (
	"sort"

	"fjacquet/vss-csv/internal/models"
)

// TypeSummary totals the records of one report type.
type TypeSummary struct {
	ReportType models.ReportType `json:"report_type" yaml:"report_type"`
	Records    int               `json:"records" yaml:"records"`
	CountTotal int64             `json:"count_total" yaml:"count_total"`
	Net        []models.Money    `json:"net" yaml:"net"`
}

// Summary totals a parse result. Net holds one entry per currency, sorted by
// currency code; records without a currency are totalled under "".
type Summary struct {
	RunID        string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Files        []string      `json:"files" yaml:"files"`
	TotalRecords int           `json:"total_records" yaml:"total_records"`
	Reports      []TypeSummary `json:"reports" yaml:"reports"`
}

// Summarize totals result per report type, in report layout order.
func Summarize(result models.ParseResult, files ...string) *Summary {
	summary := &Summary{
		Files:   append([]string{}, files...),
		Reports: []TypeSummary{},
	}
	for _, rt := range result.ReportTypes() {
		ts := summarizeType(rt, result.Records(rt))
		summary.TotalRecords += ts.Records
		summary.Reports = append(summary.Reports, ts)
	}
	return summary
}

// Report returns the summary of rt and whether it is present.
func (s *Summary) Report(rt models.ReportType) (TypeSummary, bool) {
	for _, ts := range s.Reports {
		if ts.ReportType == rt {
			return ts, true
		}
	}
	return TypeSummary{}, false
}

func summarizeType(rt models.ReportType, records []models.Record) TypeSummary {
	ts := TypeSummary{ReportType: rt, Records: len(records)}
	net := make(map[string]models.Money)
	for _, rec := range records {
		ts.CountTotal += rec.RecordCount()
		currency := rec.RecordCurrency()
		total, ok := net[currency]
		if !ok {
			total = models.ZeroMoney(currency)
		}
		// Currencies match by construction of the map key.
		total, _ = total.Add(models.NewMoney(rec.NetAmount(), currency))
		net[currency] = total
	}

	currencies := make([]string, 0, len(net))
	for c := range net {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	ts.Net = make([]models.Money, 0, len(currencies))
	for _, c := range currencies {
		ts.Net = append(ts.Net, net[c])
	}
	return ts
}
