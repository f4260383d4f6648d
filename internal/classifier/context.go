package classifier

import (
	"strings"
)

// ContextKind names a sticky value set by a declaration line.
type ContextKind int

// Declaration kinds
const (
	ContextNone ContextKind = iota
	ContextSettlementCurrency
	ContextClearingCurrency
	ContextSettlementService
	ContextSectionName
	ContextTransactionType
	ContextTransactionDetail
	ContextFeeCategory
	ContextChargeType
	ContextRegion
	ContextCategory
	ContextDirection
)

var contextKindNames = map[ContextKind]string{
	ContextNone:               "none",
	ContextSettlementCurrency: "settlement_currency",
	ContextClearingCurrency:   "clearing_currency",
	ContextSettlementService:  "settlement_service",
	ContextSectionName:        "section_name",
	ContextTransactionType:    "transaction_type",
	ContextTransactionDetail:  "transaction_detail",
	ContextFeeCategory:        "fee_category",
	ContextChargeType:         "charge_type",
	ContextRegion:             "region",
	ContextCategory:           "category",
	ContextDirection:          "direction",
}

func (k ContextKind) String() string {
	if name, ok := contextKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Labels that introduce a declaration.
const (
	LabelSettlementCurrency = "SETTLEMENT CURRENCY:"
	LabelClearingCurrency   = "CLEARING CURRENCY:"
	LabelSettlementService  = "SETTLEMENT SERVICE:"
	LabelTransactionType    = "TRANSACTION TYPE:"
	LabelTransactionDetail  = "TRANSACTION DETAIL:"
	LabelFeeCategory        = "FEE CATEGORY:"
	LabelChargeType         = "CHARGE TYPE:"
	LabelRegion             = "REGION:"
)

var (
	sectionNames = []string{
		"INTERCHANGE VALUE",
		"REIMBURSEMENT FEES",
		"VISA CHARGES",
		"NET SETTLEMENT AMOUNT",
		"TOTAL",
	}
	transactionTypes = []string{
		"PURCHASE",
		"MANUAL CASH",
		"ATM CASH",
		"QUASI-CASH",
		"MERCHANDISE CREDIT",
		"ORIGINAL CREDIT",
		"ACCOUNT FUNDING",
	}
	transactionDetails = []string{
		"ORIGINAL SALE",
		"ORIGINAL ADVANCE",
		"DISPUTE",
		"REPRESENTMENT",
		"REVERSAL",
	}
	regions = []string{
		"INTRAREGIONAL",
		"INTERREGIONAL",
		"DOMESTIC",
		"INTERNATIONAL",
	}
	categories = []string{
		"FINANCIAL TRANSACTIONS",
		"NON-FINANCIAL TRANSACTIONS",
	}
	directions = []string{
		"SENT TO VISA",
		"RECEIVED FROM VISA",
	}
)

// Declaration recognises a context declaration line and returns what it sets.
// Lines carrying amounts are never declarations.
func Declaration(line string) (ContextKind, string, bool) {
	if HasFinancialData(line) {
		return ContextNone, "", false
	}
	extractors := []struct {
		kind ContextKind
		fn   func(string) (string, bool)
	}{
		{ContextSettlementCurrency, SettlementCurrency},
		{ContextClearingCurrency, ClearingCurrency},
		{ContextSettlementService, SettlementService},
		{ContextFeeCategory, FeeCategory},
		{ContextChargeType, ChargeType},
		{ContextDirection, Direction},
		{ContextCategory, Category},
		{ContextSectionName, SectionName},
		{ContextTransactionType, TransactionType},
		{ContextTransactionDetail, TransactionDetail},
		{ContextRegion, Region},
	}
	for _, e := range extractors {
		if value, ok := e.fn(line); ok {
			return e.kind, value, true
		}
	}
	return ContextNone, "", false
}

// SettlementCurrency returns the code declared by a "SETTLEMENT CURRENCY:" line.
func SettlementCurrency(line string) (string, bool) {
	return currencyAfter(line, LabelSettlementCurrency)
}

// ClearingCurrency returns the code declared by a "CLEARING CURRENCY:" line.
func ClearingCurrency(line string) (string, bool) {
	return currencyAfter(line, LabelClearingCurrency)
}

// SettlementService returns the service named by a "SETTLEMENT SERVICE:" line.
func SettlementService(line string) (string, bool) {
	return labelled(line, LabelSettlementService)
}

// SectionName recognises the 110 section headings.
func SectionName(line string) (string, bool) {
	return vocabulary(line, sectionNames, matchWhole)
}

// TransactionType matches a labelled declaration or a known type heading.
// Type headings may carry a qualifier ("PURCHASE - DOMESTIC").
func TransactionType(line string) (string, bool) {
	if v, ok := labelled(line, LabelTransactionType); ok {
		return v, true
	}
	return vocabulary(line, transactionTypes, matchPrefix)
}

// TransactionDetail matches a labelled declaration or a detail heading such
// as "ORIGINAL SALE" or "DISPUTE FINANCIAL".
func TransactionDetail(line string) (string, bool) {
	if v, ok := labelled(line, LabelTransactionDetail); ok {
		return v, true
	}
	return vocabulary(line, transactionDetails, matchPrefix)
}

// FeeCategory returns the category named by a "FEE CATEGORY:" line.
func FeeCategory(line string) (string, bool) {
	return labelled(line, LabelFeeCategory)
}

// ChargeType returns the type named by a "CHARGE TYPE:" line.
func ChargeType(line string) (string, bool) {
	return labelled(line, LabelChargeType)
}

// Region matches a labelled declaration or a bare region heading.
func Region(line string) (string, bool) {
	if v, ok := labelled(line, LabelRegion); ok {
		return v, true
	}
	return vocabulary(line, regions, matchWhole)
}

// Category recognises the 900 transaction categories.
func Category(line string) (string, bool) {
	return vocabulary(line, categories, matchWhole)
}

// Direction recognises the 900 direction headings ("SENT TO VISA").
func Direction(line string) (string, bool) {
	return vocabulary(line, directions, matchContains)
}

type matchMode int

const (
	matchWhole matchMode = iota
	matchPrefix
	matchContains
)

func vocabulary(line string, words []string, mode matchMode) (string, bool) {
	norm := normalize(line)
	if norm == "" || strings.Contains(norm, ":") {
		return "", false
	}
	for _, w := range words {
		switch mode {
		case matchWhole:
			if norm == w {
				return norm, true
			}
		case matchPrefix:
			if norm == w || strings.HasPrefix(norm, w+" ") {
				return norm, true
			}
		case matchContains:
			if strings.Contains(norm, w) {
				return norm, true
			}
		}
	}
	return "", false
}

// labelled returns the trimmed text after label when the line starts with it.
func labelled(line, label string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(strings.ToUpper(trimmed), label) {
		return "", false
	}
	value := strings.TrimSpace(trimmed[len(label):])
	if value == "" {
		return "", false
	}
	return normalize(value), true
}

func currencyAfter(line, label string) (string, bool) {
	value, ok := labelled(line, label)
	if !ok {
		return "", false
	}
	return strings.Fields(value)[0], true
}
