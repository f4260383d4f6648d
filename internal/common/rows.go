package common

import (
	"fjacquet/vss-csv/internal/dateutils"
	"fjacquet/vss-csv/internal/models"

	"github.com/shopspring/decimal"
)

// AuditColumns are appended to every report row.
type AuditColumns struct {
	ProcessingDate string `csv:"ProcessingDate"`
	ReportDate     string `csv:"ReportDate"`
	FileDate       string `csv:"FileDate"`
	FileName       string `csv:"FileName"`
	LineNumber     int    `csv:"LineNumber"`
	RawLine        string `csv:"RawLine"`
}

// Row110 is the CSV layout of a VSS-110 record.
type Row110 struct {
	Currency          string `csv:"Currency"`
	SettlementService string `csv:"SettlementService"`
	SectionName       string `csv:"SectionName"`
	Description       string `csv:"Description"`
	Count             int64  `csv:"Count"`
	CreditAmount      string `csv:"CreditAmount"`
	DebitAmount       string `csv:"DebitAmount"`
	TotalAmount       string `csv:"TotalAmount"`
	NetAmount         string `csv:"NetAmount"`
	AuditColumns
}

// Row120 is the CSV layout of a VSS-120 record.
type Row120 struct {
	SettlementCurrency string `csv:"SettlementCurrency"`
	ClearingCurrency   string `csv:"ClearingCurrency"`
	TableID            string `csv:"TableID"`
	TransactionType    string `csv:"TransactionType"`
	TransactionDetail  string `csv:"TransactionDetail"`
	Description        string `csv:"Description"`
	Count              int64  `csv:"Count"`
	ClearingAmount     string `csv:"ClearingAmount"`
	CreditAmount       string `csv:"CreditAmount"`
	DebitAmount        string `csv:"DebitAmount"`
	NetAmount          string `csv:"NetAmount"`
	AuditColumns
}

// Row130 is the CSV layout of a VSS-130 record.
type Row130 struct {
	Currency          string `csv:"Currency"`
	TransactionType   string `csv:"TransactionType"`
	TransactionDetail string `csv:"TransactionDetail"`
	FeeCategory       string `csv:"FeeCategory"`
	Description       string `csv:"Description"`
	Count             int64  `csv:"Count"`
	InterchangeAmount string `csv:"InterchangeAmount"`
	FeeCreditAmount   string `csv:"FeeCreditAmount"`
	FeeDebitAmount    string `csv:"FeeDebitAmount"`
	NetAmount         string `csv:"NetAmount"`
	AuditColumns
}

// Row140 is the CSV layout of a VSS-140 record.
type Row140 struct {
	Currency           string `csv:"Currency"`
	ChargeType         string `csv:"ChargeType"`
	TransactionType    string `csv:"TransactionType"`
	TransactionDetail  string `csv:"TransactionDetail"`
	Region             string `csv:"Region"`
	Description        string `csv:"Description"`
	Count              int64  `csv:"Count"`
	InterchangeAmount  string `csv:"InterchangeAmount"`
	ChargeCreditAmount string `csv:"ChargeCreditAmount"`
	ChargeDebitAmount  string `csv:"ChargeDebitAmount"`
	NetAmount          string `csv:"NetAmount"`
	AuditColumns
}

// Row900 is the CSV layout of a VSS-900-S record.
type Row900 struct {
	ClearingCurrency    string `csv:"ClearingCurrency"`
	Category            string `csv:"Category"`
	Direction           string `csv:"Direction"`
	Description         string `csv:"Description"`
	Count               int64  `csv:"Count"`
	ClearingAmount      string `csv:"ClearingAmount"`
	TotalCount          int64  `csv:"TotalCount"`
	TotalClearingAmount string `csv:"TotalClearingAmount"`
	AuditColumns
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (w *Writer) audit(a models.Audit) AuditColumns {
	return AuditColumns{
		ProcessingDate: dateutils.FormatDate(a.ProcessingDate, w.dateFormat),
		ReportDate:     dateutils.FormatDate(a.ReportDate, w.dateFormat),
		FileDate:       dateutils.FormatDate(a.FileDate, w.dateFormat),
		FileName:       a.FileName,
		LineNumber:     a.LineNumber,
		RawLine:        a.RawLine,
	}
}

func (w *Writer) row110(r models.Report110Record) *Row110 {
	return &Row110{
		Currency:          r.Currency,
		SettlementService: r.SettlementService,
		SectionName:       r.SectionName,
		Description:       r.Description,
		Count:             r.Count,
		CreditAmount:      money(r.CreditAmount),
		DebitAmount:       money(r.DebitAmount),
		TotalAmount:       money(r.TotalAmount),
		NetAmount:         money(r.NetAmount()),
		AuditColumns:      w.audit(r.Audit),
	}
}

func (w *Writer) row120(r models.Report120Record) *Row120 {
	return &Row120{
		SettlementCurrency: r.SettlementCurrency,
		ClearingCurrency:   r.ClearingCurrency,
		TableID:            r.TableID,
		TransactionType:    r.TransactionType,
		TransactionDetail:  r.TransactionDetail,
		Description:        r.Description,
		Count:              r.Count,
		ClearingAmount:     money(r.ClearingAmount),
		CreditAmount:       money(r.CreditAmount),
		DebitAmount:        money(r.DebitAmount),
		NetAmount:          money(r.NetAmount()),
		AuditColumns:       w.audit(r.Audit),
	}
}

func (w *Writer) row130(r models.Report130Record) *Row130 {
	return &Row130{
		Currency:          r.Currency,
		TransactionType:   r.TransactionType,
		TransactionDetail: r.TransactionDetail,
		FeeCategory:       r.FeeCategory,
		Description:       r.Description,
		Count:             r.Count,
		InterchangeAmount: money(r.InterchangeAmount),
		FeeCreditAmount:   money(r.FeeCreditAmount),
		FeeDebitAmount:    money(r.FeeDebitAmount),
		NetAmount:         money(r.NetAmount()),
		AuditColumns:      w.audit(r.Audit),
	}
}

func (w *Writer) row140(r models.Report140Record) *Row140 {
	return &Row140{
		Currency:           r.Currency,
		ChargeType:         r.ChargeType,
		TransactionType:    r.TransactionType,
		TransactionDetail:  r.TransactionDetail,
		Region:             r.Region,
		Description:        r.Description,
		Count:              r.Count,
		InterchangeAmount:  money(r.InterchangeAmount),
		ChargeCreditAmount: money(r.ChargeCreditAmount),
		ChargeDebitAmount:  money(r.ChargeDebitAmount),
		NetAmount:          money(r.NetAmount()),
		AuditColumns:       w.audit(r.Audit),
	}
}

func (w *Writer) row900(r models.Report900Record) *Row900 {
	return &Row900{
		ClearingCurrency:    r.ClearingCurrency,
		Category:            r.Category,
		Direction:           r.Direction,
		Description:         r.Description,
		Count:               r.Count,
		ClearingAmount:      money(r.ClearingAmount),
		TotalCount:          r.TotalCount,
		TotalClearingAmount: money(r.TotalClearingAmount),
		AuditColumns:        w.audit(r.Audit),
	}
}
