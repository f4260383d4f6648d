package vssparser

import (
	"fjacquet/vss-csv/internal/classifier"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/parsererror"
)

// sectionEnv is the read-only input shared by every line of a section.
type sectionEnv struct {
	audit              models.Audit // template: dates and file name
	settlementCurrency string       // pre-scan result
	clearingCurrency   string       // pre-scan result
}

// buildFunc turns one data line into a record of its report type.
type buildFunc func(r *rowReader, ctx sectionContext, env sectionEnv, audit models.Audit) models.Record

var builders = map[models.ReportType]buildFunc{
	models.ReportType110: build110,
	models.ReportType120: build120,
	models.ReportType130: build130,
	models.ReportType140: build140,
	models.ReportType900: build900,
}

// assembleSection runs the second pass over a section. Each line is, in
// order, a context declaration, a header/format line, or a data line. A data
// line whose fields fail to decode is returned in dropped instead of records.
func assembleSection(sec section, fields models.FieldSet, env sectionEnv) (records []models.Record, dropped []error) {
	build, ok := builders[sec.reportType]
	if !ok {
		return nil, nil
	}

	ctx := sectionContext{}
	for _, ln := range sec.lines {
		var declared bool
		if ctx, declared = ctx.apply(ln.text); declared {
			continue
		}
		if classifier.IsFormatOrHeaderLine(ln.text) || !classifier.HasFinancialData(ln.text) {
			continue
		}

		audit := env.audit
		audit.LineNumber = ln.number
		audit.RawLine = ln.text

		r := &rowReader{reportType: sec.reportType, fields: fields, line: ln.text}
		rec := build(r, ctx, env, audit)
		r.checkAligned()
		if r.err != nil {
			dropped = append(dropped, &parsererror.LineError{
				FileName:   env.audit.FileName,
				LineNumber: ln.number,
				ReportType: string(sec.reportType),
				Err:        r.err,
			})
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

func build110(r *rowReader, ctx sectionContext, env sectionEnv, audit models.Audit) models.Record {
	return models.Report110Record{
		Audit:             audit,
		Currency:          r.currency(models.FieldCurrency, env.settlementCurrency),
		SettlementService: ctx.settlementService,
		SectionName:       ctx.sectionName,
		Description:       r.description(models.FieldCurrency),
		Count:             r.count(models.FieldCount),
		CreditAmount:      r.amount(models.FieldCreditAmount),
		DebitAmount:       r.debit(models.FieldDebitAmount),
		TotalAmount:       r.amount(models.FieldTotalAmount),
	}
}

func build120(r *rowReader, ctx sectionContext, env sectionEnv, audit models.Audit) models.Record {
	return models.Report120Record{
		Audit:              audit,
		SettlementCurrency: r.currency(models.FieldSettlementCurrency, env.settlementCurrency),
		ClearingCurrency:   r.currency(models.FieldClearingCurrency, env.clearingCurrency),
		TableID:            r.identifier(models.FieldTableID),
		TransactionType:    ctx.transactionType,
		TransactionDetail:  ctx.transactionDetail,
		Description:        r.description(models.FieldSettlementCurrency),
		Count:              r.count(models.FieldCount),
		ClearingAmount:     r.amount(models.FieldClearingAmount),
		CreditAmount:       r.amount(models.FieldCreditAmount),
		DebitAmount:        r.debit(models.FieldDebitAmount),
	}
}

func build130(r *rowReader, ctx sectionContext, env sectionEnv, audit models.Audit) models.Record {
	return models.Report130Record{
		Audit:             audit,
		Currency:          r.currency(models.FieldCurrency, env.settlementCurrency),
		TransactionType:   ctx.transactionType,
		TransactionDetail: ctx.transactionDetail,
		FeeCategory:       ctx.feeCategory,
		Description:       r.description(models.FieldCurrency),
		Count:             r.count(models.FieldCount),
		InterchangeAmount: r.amount(models.FieldInterchangeAmount),
		FeeCreditAmount:   r.amount(models.FieldFeeCreditAmount),
		FeeDebitAmount:    r.debit(models.FieldFeeDebitAmount),
	}
}

func build140(r *rowReader, ctx sectionContext, env sectionEnv, audit models.Audit) models.Record {
	return models.Report140Record{
		Audit:              audit,
		Currency:           r.currency(models.FieldCurrency, env.settlementCurrency),
		ChargeType:         ctx.chargeType,
		TransactionType:    ctx.transactionType,
		TransactionDetail:  ctx.transactionDetail,
		Region:             ctx.region,
		Description:        r.description(models.FieldCurrency),
		Count:              r.count(models.FieldCount),
		InterchangeAmount:  r.amount(models.FieldInterchangeAmount),
		ChargeCreditAmount: r.amount(models.FieldChargeCreditAmount),
		ChargeDebitAmount:  r.debit(models.FieldChargeDebitAmount),
	}
}

// build900 takes its currency from the nearest CLEARING CURRENCY declaration
// rather than the pre-scan: one 900 section holds several currencies.
func build900(r *rowReader, ctx sectionContext, _ sectionEnv, audit models.Audit) models.Record {
	return models.Report900Record{
		Audit:               audit,
		ClearingCurrency:    r.currency(models.FieldCurrency, ctx.clearingCurrency),
		Category:            ctx.category,
		Direction:           ctx.direction,
		Description:         r.description(models.FieldCurrency),
		Count:               r.count(models.FieldCount),
		ClearingAmount:      r.amount(models.FieldClearingAmount),
		TotalCount:          r.count(models.FieldTotalCount),
		TotalClearingAmount: r.amount(models.FieldTotalClearingAmount),
	}
}
