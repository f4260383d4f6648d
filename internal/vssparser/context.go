package vssparser

import (
	"fjacquet/vss-csv/internal/classifier"
)

// sectionContext holds the sticky values of one section. It is a value type:
// apply returns an updated copy and never mutates the receiver.
type sectionContext struct {
	settlementCurrency string
	clearingCurrency   string
	settlementService  string
	sectionName        string
	transactionType    string
	transactionDetail  string
	feeCategory        string
	chargeType         string
	region             string
	category           string
	direction          string
}

// apply returns the context after line. declared is true when line is a
// context declaration and must not be treated as data.
func (c sectionContext) apply(line string) (next sectionContext, declared bool) {
	kind, value, ok := classifier.Declaration(line)
	if !ok {
		return c, false
	}
	return c.with(kind, value), true
}

func (c sectionContext) with(kind classifier.ContextKind, value string) sectionContext {
	switch kind {
	case classifier.ContextSettlementCurrency:
		c.settlementCurrency = value
	case classifier.ContextClearingCurrency:
		c.clearingCurrency = value
	case classifier.ContextSettlementService:
		c.settlementService = value
	case classifier.ContextSectionName:
		c.sectionName = value
	case classifier.ContextTransactionType:
		c.transactionType = value
		c.transactionDetail = ""
	case classifier.ContextTransactionDetail:
		c.transactionDetail = value
	case classifier.ContextFeeCategory:
		c.feeCategory = value
	case classifier.ContextChargeType:
		c.chargeType = value
	case classifier.ContextRegion:
		c.region = value
	case classifier.ContextCategory:
		c.category = value
		c.direction = ""
	case classifier.ContextDirection:
		c.direction = value
	}
	return c
}

// currencyPrescan returns the first settlement and clearing currency
// declared anywhere in the section.
func currencyPrescan(lines []sourceLine) (settlement, clearing string) {
	for _, ln := range lines {
		if settlement == "" {
			if v, ok := classifier.SettlementCurrency(ln.text); ok {
				settlement = v
			}
		}
		if clearing == "" {
			if v, ok := classifier.ClearingCurrency(ln.text); ok {
				clearing = v
			}
		}
		if settlement != "" && clearing != "" {
			break
		}
	}
	return settlement, clearing
}
