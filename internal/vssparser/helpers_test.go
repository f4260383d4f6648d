package vssparser

import (
	"strings"

	"fjacquet/vss-csv/internal/models"
)

// cell places text in a fixed-width line: right-aligned so that it ends at
// an RTL position, or starting at an LTR position.
type cell struct {
	pos  models.FieldPosition
	text string
}

func at(pos models.FieldPosition, text string) cell {
	return cell{pos: pos, text: text}
}

// fixedLine builds a data line with desc starting at column 2.
func fixedLine(desc string, cells ...cell) string {
	width := 1 + len(desc)
	for _, c := range cells {
		end := c.pos.Position
		if c.pos.Direction == models.LeftToRight {
			end = c.pos.Position - 1 + len(c.text)
		}
		if end > width {
			width = end
		}
	}
	buf := []byte(strings.Repeat(" ", width))
	copy(buf[1:], desc)
	for _, c := range cells {
		start := c.pos.Position - len(c.text)
		if c.pos.Direction == models.LeftToRight {
			start = c.pos.Position - 1
		}
		copy(buf[start:], c.text)
	}
	return strings.TrimRight(string(buf), " ")
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

var defaults = models.DefaultPositions()

func pos(rt models.ReportType, field string) models.FieldPosition {
	return defaults[rt][field]
}

// row110 builds a VSS-110 data line.
func row110(desc, count, credit, debit, total string) string {
	rt := models.ReportType110
	return fixedLine(desc,
		at(pos(rt, models.FieldCount), count),
		at(pos(rt, models.FieldCreditAmount), credit),
		at(pos(rt, models.FieldDebitAmount), debit),
		at(pos(rt, models.FieldTotalAmount), total))
}

func row120(desc, tableID, count, clearing, credit, debit string) string {
	rt := models.ReportType120
	return fixedLine(desc,
		at(pos(rt, models.FieldTableID), tableID),
		at(pos(rt, models.FieldCount), count),
		at(pos(rt, models.FieldClearingAmount), clearing),
		at(pos(rt, models.FieldCreditAmount), credit),
		at(pos(rt, models.FieldDebitAmount), debit))
}

func row130(desc, count, interchange, feeCredit, feeDebit string) string {
	rt := models.ReportType130
	return fixedLine(desc,
		at(pos(rt, models.FieldCount), count),
		at(pos(rt, models.FieldInterchangeAmount), interchange),
		at(pos(rt, models.FieldFeeCreditAmount), feeCredit),
		at(pos(rt, models.FieldFeeDebitAmount), feeDebit))
}

func row140(desc, count, interchange, chargeCredit, chargeDebit string) string {
	rt := models.ReportType140
	return fixedLine(desc,
		at(pos(rt, models.FieldCount), count),
		at(pos(rt, models.FieldInterchangeAmount), interchange),
		at(pos(rt, models.FieldChargeCreditAmount), chargeCredit),
		at(pos(rt, models.FieldChargeDebitAmount), chargeDebit))
}

func row900(desc, currency, count, clearing, totalCount, totalClearing string) string {
	rt := models.ReportType900
	cells := []cell{
		at(pos(rt, models.FieldCount), count),
		at(pos(rt, models.FieldClearingAmount), clearing),
		at(pos(rt, models.FieldTotalCount), totalCount),
		at(pos(rt, models.FieldTotalClearingAmount), totalClearing),
	}
	if currency != "" {
		cells = append(cells, at(pos(rt, models.FieldCurrency), currency))
	}
	return fixedLine(desc, cells...)
}

func masthead(id string) []string {
	return []string{
		"REPORT ID:  " + id + "                 VISANET SETTLEMENT SERVICE                      PAGE:      1",
		"REPORTING FOR:  1000123456  ACQUIRER BANK                                  PROC DATE:    17FEB22",
		"ROLLUP TO:      1000123456  ACQUIRER BANK                                  REPORT DATE:  16FEB22",
		"FUNDS XFER ENTITY:  1000123456",
	}
}

func reportSection(id string, body ...string) []string {
	return append(masthead(id), body...)
}

func endOf(id string) string {
	return "                              *** END OF " + id + " REPORT ***"
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
