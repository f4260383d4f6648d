package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Audit carries the provenance shared by every record.
type Audit struct {
	ProcessingDate time.Time // PROC DATE of the section, zero when absent
	ReportDate     time.Time // REPORT DATE of the section, zero when absent
	FileDate       time.Time // date encoded in the file name, zero when absent
	FileName       string
	LineNumber     int // 1-based within the whole file
	RawLine        string
}

// Record is the closed set of report record shapes. Only the types in this
// package implement it.
type Record interface {
	ReportType() ReportType
	AuditInfo() Audit
	RecordCount() int64
	RecordCurrency() string
	NetAmount() decimal.Decimal
	isRecord()
}

// Report110Record is one data line of a VSS-110 settlement summary.
type Report110Record struct {
	Audit
	Currency          string
	SettlementService string
	SectionName       string
	Description       string
	Count             int64
	CreditAmount      decimal.Decimal
	DebitAmount       decimal.Decimal // always <= 0
	TotalAmount       decimal.Decimal
}

func (r Report110Record) ReportType() ReportType { return ReportType110 }
func (r Report110Record) AuditInfo() Audit { return r.Audit }
func (r Report110Record) RecordCount() int64 { return r.Count }
func (r Report110Record) RecordCurrency() string { return r.Currency }
func (r Report110Record) isRecord() {}

// NetAmount is credits plus (negative) debits.
func (r Report110Record) NetAmount() decimal.Decimal {
	return r.CreditAmount.Add(r.DebitAmount)
}

// Report120Record is one data line of a VSS-120 interchange value report.
type Report120Record struct {
	Audit
	SettlementCurrency string
	ClearingCurrency   string
	TableID            string
	TransactionType    string
	TransactionDetail  string
	Description        string
	Count              int64
	ClearingAmount     decimal.Decimal
	CreditAmount       decimal.Decimal
	DebitAmount        decimal.Decimal // always <= 0
}

func (r Report120Record) ReportType() ReportType { return ReportType120 }
func (r Report120Record) AuditInfo() Audit { return r.Audit }
func (r Report120Record) RecordCount() int64 { return r.Count }
func (r Report120Record) RecordCurrency() string { return r.SettlementCurrency }
func (r Report120Record) isRecord() {}

// NetAmount is interchange credits plus (negative) debits.
func (r Report120Record) NetAmount() decimal.Decimal {
	return r.CreditAmount.Add(r.DebitAmount)
}

// Report130Record is one data line of a VSS-130 reimbursement fees report.
type Report130Record struct {
	Audit
	Currency          string
	TransactionType   string
	TransactionDetail string
	FeeCategory       string
	Description       string
	Count             int64
	InterchangeAmount decimal.Decimal
	FeeCreditAmount   decimal.Decimal
	FeeDebitAmount    decimal.Decimal // always <= 0
}

func (r Report130Record) ReportType() ReportType { return ReportType130 }
func (r Report130Record) AuditInfo() Audit { return r.Audit }
func (r Report130Record) RecordCount() int64 { return r.Count }
func (r Report130Record) RecordCurrency() string { return r.Currency }
func (r Report130Record) isRecord() {}

// NetAmount is fee credits plus (negative) fee debits.
func (r Report130Record) NetAmount() decimal.Decimal {
	return r.FeeCreditAmount.Add(r.FeeDebitAmount)
}

// Report140Record is one data line of a VSS-140 Visa charges report.
type Report140Record struct {
	Audit
	Currency           string
	ChargeType         string
	TransactionType    string
	TransactionDetail  string
	Region             string
	Description        string
	Count              int64
	InterchangeAmount  decimal.Decimal
	ChargeCreditAmount decimal.Decimal
	ChargeDebitAmount  decimal.Decimal // always <= 0
}

func (r Report140Record) ReportType() ReportType { return ReportType140 }
func (r Report140Record) AuditInfo() Audit { return r.Audit }
func (r Report140Record) RecordCount() int64 { return r.Count }
func (r Report140Record) RecordCurrency() string { return r.Currency }
func (r Report140Record) isRecord() {}

// NetAmount is charge credits plus (negative) charge debits.
func (r Report140Record) NetAmount() decimal.Decimal {
	return r.ChargeCreditAmount.Add(r.ChargeDebitAmount)
}

// Report900Record is one data line of a VSS-900-S summary reconciliation report.
type Report900Record struct {
	Audit
	ClearingCurrency    string
	Category            string
	Direction           string
	Description         string
	Count               int64
	ClearingAmount      decimal.Decimal
	TotalCount          int64
	TotalClearingAmount decimal.Decimal
}

func (r Report900Record) ReportType() ReportType { return ReportType900 }
func (r Report900Record) AuditInfo() Audit { return r.Audit }
func (r Report900Record) RecordCount() int64 { return r.Count }
func (r Report900Record) RecordCurrency() string { return r.ClearingCurrency }
func (r Report900Record) isRecord() {}

// NetAmount is the clearing amount of the line.
func (r Report900Record) NetAmount() decimal.Decimal {
	return r.ClearingAmount
}
