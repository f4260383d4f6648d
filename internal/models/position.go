package models

import (
	"fmt"
	"sort"
	"strings"
)

// Direction tells the field extractor which way a fixed-width window grows
// from its configured position.
type Direction int

const (
	// LeftToRight windows start at the configured position.
	LeftToRight Direction = iota
	// RightToLeft windows end (inclusive) at the configured position.
	RightToLeft
)

// String returns the short name used in YAML position tables.
func (d Direction) String() string {
	if d == RightToLeft {
		return "RTL"
	}
	return "LTR"
}

// ParseDirection accepts "LTR", "RTL", "LeftToRight" and "RightToLeft" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LTR", "LEFTTORIGHT", "LEFT_TO_RIGHT":
		return LeftToRight, nil
	case "RTL", "RIGHTTOLEFT", "RIGHT_TO_LEFT":
		return RightToLeft, nil
	default:
		return LeftToRight, fmt.Errorf("invalid direction: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FieldPosition locates one field on a report line. Position is 1-based: the
// first column for LeftToRight, the last column (inclusive) for RightToLeft.
type FieldPosition struct {
	Position  int       `yaml:"position"`
	Direction Direction `yaml:"direction"`
	MaxLength int       `yaml:"max_length"`
}

// LTR builds a left-to-right FieldPosition.
func LTR(start, maxLength int) FieldPosition {
	return FieldPosition{Position: start, Direction: LeftToRight, MaxLength: maxLength}
}

// RTL builds a right-to-left FieldPosition.
func RTL(end, maxLength int) FieldPosition {
	return FieldPosition{Position: end, Direction: RightToLeft, MaxLength: maxLength}
}

// Validate checks the invariants of a single position.
func (p FieldPosition) Validate() error {
	if p.Position < 1 {
		return fmt.Errorf("position must be >= 1, got %d", p.Position)
	}
	if p.MaxLength < 1 {
		return fmt.Errorf("max_length must be >= 1, got %d", p.MaxLength)
	}
	return nil
}

// Field names shared by the report layouts.
const (
	FieldCurrency            = "currency"
	FieldSettlementCurrency  = "settlement_currency"
	FieldClearingCurrency    = "clearing_currency"
	FieldTableID             = "table_id"
	FieldCount               = "count"
	FieldCreditAmount        = "credit_amount"
	FieldDebitAmount         = "debit_amount"
	FieldTotalAmount         = "total_amount"
	FieldClearingAmount      = "clearing_amount"
	FieldInterchangeAmount   = "interchange_amount"
	FieldFeeCreditAmount     = "fee_credit_amount"
	FieldFeeDebitAmount      = "fee_debit_amount"
	FieldChargeCreditAmount  = "charge_credit_amount"
	FieldChargeDebitAmount   = "charge_debit_amount"
	FieldTotalCount          = "total_count"
	FieldTotalClearingAmount = "total_clearing_amount"
)

// RequiredFields lists, per report type, the fields an assembler reads.
var RequiredFields = map[ReportType][]string{
	ReportType110: {FieldCurrency, FieldCount, FieldCreditAmount, FieldDebitAmount, FieldTotalAmount},
	ReportType120: {FieldSettlementCurrency, FieldClearingCurrency, FieldTableID, FieldCount, FieldClearingAmount, FieldCreditAmount, FieldDebitAmount},
	ReportType130: {FieldCurrency, FieldCount, FieldInterchangeAmount, FieldFeeCreditAmount, FieldFeeDebitAmount},
	ReportType140: {FieldCurrency, FieldCount, FieldInterchangeAmount, FieldChargeCreditAmount, FieldChargeDebitAmount},
	ReportType900: {FieldCurrency, FieldCount, FieldClearingAmount, FieldTotalCount, FieldTotalClearingAmount},
}

// FieldSet maps field names to positions for a single report type.
type FieldSet map[string]FieldPosition

// PositionTable is the externally supplied configuration: report type ->
// field name -> position. The engine only reads it.
type PositionTable map[ReportType]FieldSet

// DefaultPositions returns the built-in layout of the VSS reports.
func DefaultPositions() PositionTable {
	return PositionTable{
		ReportType110: {
			FieldCurrency:     LTR(24, 3),
			FieldCount:        RTL(52, 15),
			FieldCreditAmount: RTL(78, 20),
			FieldDebitAmount:  RTL(104, 20),
			FieldTotalAmount:  RTL(132, 20),
		},
		ReportType120: {
			FieldSettlementCurrency: LTR(24, 3),
			FieldClearingCurrency:   LTR(24, 3),
			FieldTableID:            RTL(52, 10),
			FieldCount:              RTL(67, 15),
			FieldClearingAmount:     RTL(90, 20),
			FieldCreditAmount:       RTL(104, 20),
			FieldDebitAmount:        RTL(130, 20),
		},
		ReportType130: {
			FieldCurrency:          LTR(24, 3),
			FieldCount:             RTL(62, 15),
			FieldInterchangeAmount: RTL(87, 20),
			FieldFeeCreditAmount:   RTL(110, 20),
			FieldFeeDebitAmount:    RTL(132, 20),
		},
		ReportType140: {
			FieldCurrency:           LTR(24, 3),
			FieldCount:              RTL(67, 15),
			FieldInterchangeAmount:  RTL(90, 20),
			FieldChargeCreditAmount: RTL(111, 20),
			FieldChargeDebitAmount:  RTL(132, 20),
		},
		ReportType900: {
			FieldCurrency:            LTR(22, 3),
			FieldCount:               RTL(67, 15),
			FieldClearingAmount:      RTL(89, 20),
			FieldTotalCount:          RTL(106, 15),
			FieldTotalClearingAmount: RTL(131, 20),
		},
	}
}

// Fields returns the field set of a report type, or nil.
func (t PositionTable) Fields(rt ReportType) FieldSet {
	return t[rt]
}

// Merge returns a copy of t with every position in override replacing the
// matching entry. Fields absent from override are kept.
func (t PositionTable) Merge(override PositionTable) PositionTable {
	merged := make(PositionTable, len(t))
	for rt, fields := range t {
		cp := make(FieldSet, len(fields))
		for name, pos := range fields {
			cp[name] = pos
		}
		merged[rt] = cp
	}
	for rt, fields := range override {
		if merged[rt] == nil {
			merged[rt] = make(FieldSet, len(fields))
		}
		for name, pos := range fields {
			merged[rt][name] = pos
		}
	}
	return merged
}

// Validate checks every position and that each report type defines all of
// its required fields.
func (t PositionTable) Validate() error {
	for _, rt := range SupportedReportTypes {
		fields, ok := t[rt]
		if !ok {
			return fmt.Errorf("%s: no field positions configured", rt)
		}
		for _, name := range RequiredFields[rt] {
			pos, ok := fields[name]
			if !ok {
				return fmt.Errorf("%s: missing field %q", rt, name)
			}
			if err := pos.Validate(); err != nil {
				return fmt.Errorf("%s.%s: %w", rt, name, err)
			}
		}
	}
	for rt := range t {
		if !rt.IsSupported() {
			return fmt.Errorf("unsupported report type in position table: %s", rt)
		}
	}
	return nil
}

// FieldNames returns the configured field names of rt in sorted order.
func (t PositionTable) FieldNames(rt ReportType) []string {
	names := make([]string, 0, len(t[rt]))
	for name := range t[rt] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
