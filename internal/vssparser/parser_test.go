package vssparser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s", want, got.String())
}

// report110 is a VSS-110 section whose body starts at line 5. Line 14 has a
// malformed count.
func report110() []string {
	return reportSection("VSS-110",
		"SETTLEMENT CURRENCY:  EUR",
		"",
		"                                  COUNT        CREDIT AMOUNT         DEBIT AMOUNT         TOTAL AMOUNT",
		"SETTLEMENT SERVICE:  INTERNATIONAL SETTLEMENT SERVICE",
		"INTERCHANGE VALUE",
		row110("I1 ACQUIRER", "000000000001074", "12,345.67CR", "7,294.143", "5,051.53CR"),
		row110("I2 ISSUER", "25", "0.00", "1,000.00DB", "1,000.00DB"),
		"REIMBURSEMENT FEES",
		row110("I3 ACQUIRER", "3", "150.00", "", "150.00CR"),
		row110("I4 BAD", "12X4", "10.00", "", "10.00"),
		"TOTAL",
		row110("I9 TOTAL", "1,102", "12,495.67CR", "8,294.14DB", "4,201.53CR"),
		"  ------------  -----------",
		endOf("VSS-110"),
	)
}

func newTestParser() (*Parser, *logging.MockLogger) {
	mock := logging.NewMockLogger()
	return New(nil, mock), mock
}

func TestParseText_110EndToEnd(t *testing.T) {
	p, mock := newTestParser()
	result := p.ParseText(lines(report110()...), "VSS_2022048.txt")

	recs := result.Records(models.ReportType110)
	require.Len(t, recs, 4)

	type want struct {
		desc, section        string
		line                 int
		count                int64
		credit, debit, total string
		net                  string
	}
	wants := []want{
		{"I1 ACQUIRER", "INTERCHANGE VALUE", 10, 1074, "12345.67", "-7294.14", "5051.53", "5051.53"},
		{"I2 ISSUER", "INTERCHANGE VALUE", 11, 25, "0", "-1000", "-1000", "-1000"},
		{"I3 ACQUIRER", "REIMBURSEMENT FEES", 13, 3, "150", "0", "150", "150"},
		{"I9 TOTAL", "TOTAL", 16, 1102, "12495.67", "-8294.14", "4201.53", "4201.53"},
	}

	for i, w := range wants {
		r, ok := recs[i].(models.Report110Record)
		require.True(t, ok)
		assert.Equal(t, w.desc, r.Description)
		assert.Equal(t, w.section, r.SectionName)
		assert.Equal(t, "INTERNATIONAL SETTLEMENT SERVICE", r.SettlementService)
		assert.Equal(t, "EUR", r.Currency)
		assert.Equal(t, w.line, r.LineNumber)
		assert.Equal(t, w.count, r.Count)
		assertDecimal(t, w.credit, r.CreditAmount)
		assertDecimal(t, w.debit, r.DebitAmount)
		assertDecimal(t, w.total, r.TotalAmount)
		assertDecimal(t, w.net, r.NetAmount())
		assert.True(t, day(2022, time.February, 17).Equal(r.ProcessingDate))
		assert.True(t, day(2022, time.February, 16).Equal(r.ReportDate))
		assert.True(t, day(2022, time.February, 17).Equal(r.FileDate))
		assert.Equal(t, "VSS_2022048.txt", r.FileName)
		assert.Contains(t, r.RawLine, w.desc)
	}

	// The total line equals the sum of the business lines.
	var count int64
	net := decimal.Zero
	for _, rec := range recs[:3] {
		count += rec.RecordCount()
		net = net.Add(rec.NetAmount())
	}
	assert.Equal(t, recs[3].RecordCount(), count)
	assertDecimal(t, recs[3].NetAmount().String(), net)

	warns := mock.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, "Dropped data line", warns[0].Message)

	var lineErr *parsererror.LineError
	require.True(t, errors.As(warns[0].Error, &lineErr))
	assert.Equal(t, 14, lineErr.LineNumber)
	assert.Equal(t, "VSS-110", lineErr.ReportType)

	var fieldErr *parsererror.FieldError
	require.True(t, errors.As(warns[0].Error, &fieldErr))
	assert.Equal(t, models.FieldCount, fieldErr.Field)
	assert.Equal(t, "12X4", fieldErr.Value)
	assert.ErrorIs(t, warns[0].Error, parsererror.ErrNotNumeric)

	assert.True(t, mock.HasEntry("INFO", "Parsed VSS report"))
}

func TestParseText_StickyContextMonotonicity(t *testing.T) {
	text := lines(reportSection("VSS-120",
		"SETTLEMENT CURRENCY:  EUR",
		"CLEARING CURRENCY:    USD",
		"PURCHASE",
		"ORIGINAL SALE",
		row120("ACQUIRER", "0000001234", "12", "1,200.00", "24.00CR", "3.00DB"),
		row120("ISSUER", "0000001235", "1", "100.00", "2.00", "0.00"),
		"MANUAL CASH",
		row120("ACQUIRER", "0000001236", "4", "400.00", "", "8.00"),
		"ORIGINAL ADVANCE",
		row120("ACQUIRER", "0000001237", "5", "500.00", "", "10.00DB"),
		endOf("VSS-120"),
	)...)

	p, mock := newTestParser()
	recs := p.ParseText(text, "vss.txt").Records(models.ReportType120)
	require.Len(t, recs, 4)
	assert.Empty(t, mock.GetEntriesByLevel("WARN"))

	type want struct {
		txType, detail, table string
		count                 int64
		clearing, credit, deb string
	}
	wants := []want{
		{"PURCHASE", "ORIGINAL SALE", "0000001234", 12, "1200", "24", "-3"},
		{"PURCHASE", "ORIGINAL SALE", "0000001235", 1, "100", "2", "0"},
		{"MANUAL CASH", "", "0000001236", 4, "400", "0", "-8"},
		{"MANUAL CASH", "ORIGINAL ADVANCE", "0000001237", 5, "500", "0", "-10"},
	}
	for i, w := range wants {
		r := recs[i].(models.Report120Record)
		assert.Equal(t, w.txType, r.TransactionType, "record %d", i)
		assert.Equal(t, w.detail, r.TransactionDetail, "record %d", i)
		assert.Equal(t, w.table, r.TableID)
		assert.Equal(t, w.count, r.Count)
		assert.Equal(t, "EUR", r.SettlementCurrency)
		assert.Equal(t, "USD", r.ClearingCurrency)
		assertDecimal(t, w.clearing, r.ClearingAmount)
		assertDecimal(t, w.credit, r.CreditAmount)
		assertDecimal(t, w.deb, r.DebitAmount)
	}
}

func TestParseText_900MultiCurrency(t *testing.T) {
	text := lines(reportSection("VSS-900-S",
		"CLEARING CURRENCY:  EUR",
		"FINANCIAL TRANSACTIONS",
		"ISSUER TRANSACTIONS SENT TO VISA",
		row900("PURCHASE", "", "5", "500.00CR", "5", "500.00CR"),
		row900("CREDIT VOUCHER", "", "1", "20.00DB", "6", "480.00CR"),
		"CLEARING CURRENCY:  USD",
		row900("PURCHASE", "", "2", "30.00", "2", "30.00"),
		"RECEIVED FROM VISA",
		row900("PURCHASE", "", "7", "70.00DB", "9", "40.00DB"),
		"NON-FINANCIAL TRANSACTIONS",
		row900("FEE COLLECTION", "", "1", "1.00DB", "1", "1.00DB"),
		endOf("VSS-900-S"),
	)...)

	p, _ := newTestParser()
	recs := p.ParseText(text, "vss.txt").Records(models.ReportType900)
	require.Len(t, recs, 5)

	type want struct {
		currency, category, direction, desc string
		count, totalCount                   int64
		clearing, totalClearing             string
	}
	wants := []want{
		{"EUR", "FINANCIAL TRANSACTIONS", "ISSUER TRANSACTIONS SENT TO VISA", "PURCHASE", 5, 5, "500", "500"},
		{"EUR", "FINANCIAL TRANSACTIONS", "ISSUER TRANSACTIONS SENT TO VISA", "CREDIT VOUCHER", 1, 6, "-20", "480"},
		{"USD", "FINANCIAL TRANSACTIONS", "ISSUER TRANSACTIONS SENT TO VISA", "PURCHASE", 2, 2, "30", "30"},
		{"USD", "FINANCIAL TRANSACTIONS", "RECEIVED FROM VISA", "PURCHASE", 7, 9, "-70", "-40"},
		{"USD", "NON-FINANCIAL TRANSACTIONS", "", "FEE COLLECTION", 1, 1, "-1", "-1"},
	}
	for i, w := range wants {
		r := recs[i].(models.Report900Record)
		assert.Equal(t, w.currency, r.ClearingCurrency, "record %d", i)
		assert.Equal(t, w.category, r.Category, "record %d", i)
		assert.Equal(t, w.direction, r.Direction, "record %d", i)
		assert.Equal(t, w.desc, r.Description)
		assert.Equal(t, w.count, r.Count)
		assert.Equal(t, w.totalCount, r.TotalCount)
		assertDecimal(t, w.clearing, r.ClearingAmount)
		assertDecimal(t, w.totalClearing, r.TotalClearingAmount)
		assertDecimal(t, w.clearing, r.NetAmount())
	}
}

func TestParseText_900RowCurrencyFallback(t *testing.T) {
	text := lines(reportSection("VSS-900-S",
		row900("PURCHASE", "GBP", "1", "1.00", "1", "1.00"),
		row900("PURCHASE", "", "1", "1.00", "1", "1.00"),
	)...)

	p, _ := newTestParser()
	recs := p.ParseText(text, "").Records(models.ReportType900)
	require.Len(t, recs, 2)
	assert.Equal(t, "GBP", recs[0].RecordCurrency())
	assert.Equal(t, "", recs[1].RecordCurrency())
}

func TestParseText_130And140(t *testing.T) {
	text := lines(concat(
		reportSection("VSS-130",
			"SETTLEMENT CURRENCY:  CHF",
			"FEE CATEGORY:  REIMBURSEMENT FEES",
			"PURCHASE",
			"ORIGINAL SALE",
			row130("ACQUIRER", "10", "1,000.00", "12.50CR", "0.00"),
			row130("ISSUER", "2", "200.00", "0.00", "1.25DB"),
			endOf("VSS-130"),
		),
		reportSection("VSS-140",
			"SETTLEMENT CURRENCY:  CHF",
			"CHARGE TYPE:  SERVICE FEES",
			"INTRAREGIONAL",
			"ATM CASH",
			row140("ACQUIRER", "4", "40.00", "0.40CR", "0.00"),
			"INTERREGIONAL",
			row140("ACQUIRER", "1", "10.00", "0.00", "0.15"),
		),
	)...)

	p, _ := newTestParser()
	result := p.ParseText(text, "vss.txt")

	recs130 := result.Records(models.ReportType130)
	require.Len(t, recs130, 2)
	r := recs130[1].(models.Report130Record)
	assert.Equal(t, "CHF", r.Currency)
	assert.Equal(t, "REIMBURSEMENT FEES", r.FeeCategory)
	assert.Equal(t, "PURCHASE", r.TransactionType)
	assert.Equal(t, "ORIGINAL SALE", r.TransactionDetail)
	assert.Equal(t, int64(2), r.Count)
	assertDecimal(t, "200", r.InterchangeAmount)
	assertDecimal(t, "-1.25", r.FeeDebitAmount)
	assertDecimal(t, "12.5", recs130[0].NetAmount())

	recs140 := result.Records(models.ReportType140)
	require.Len(t, recs140, 2)
	first := recs140[0].(models.Report140Record)
	second := recs140[1].(models.Report140Record)
	assert.Equal(t, "SERVICE FEES", first.ChargeType)
	assert.Equal(t, "INTRAREGIONAL", first.Region)
	assert.Equal(t, "ATM CASH", first.TransactionType)
	assertDecimal(t, "0.40", first.ChargeCreditAmount)
	assert.Equal(t, "INTERREGIONAL", second.Region)
	assert.Equal(t, "ATM CASH", second.TransactionType)
	assertDecimal(t, "-0.15", second.ChargeDebitAmount)
	assertDecimal(t, "-0.15", second.NetAmount())
}

func TestParseText_RepeatedSectionAccumulation(t *testing.T) {
	text := lines(concat(
		reportSection("VSS-110",
			"SETTLEMENT CURRENCY:  EUR",
			row110("FIRST", "1", "1.00", "0.00", "1.00"),
			row110("SECOND", "2", "2.00", "0.00", "2.00"),
			endOf("VSS-110"),
		),
		reportSection("VSS-120",
			row120("ACQUIRER", "0000000001", "1", "1.00", "1.00", "0.00"),
		),
		reportSection("VSS-115",
			row110("IGNORED", "9", "9.00", "0.00", "9.00"),
			endOf("VSS-115"),
		),
		[]string{"prose between reports 12.00"},
		reportSection("VSS-110",
			"SETTLEMENT CURRENCY:  EUR",
			row110("THIRD", "3", "3.00", "0.00", "3.00"),
		),
	)...)

	p, _ := newTestParser()
	result := p.ParseText(text, "vss.txt")

	recs := result.Records(models.ReportType110)
	require.Len(t, recs, 3)
	var descs []string
	lastLine := 0
	for _, rec := range recs {
		r := rec.(models.Report110Record)
		descs = append(descs, r.Description)
		assert.Greater(t, r.LineNumber, lastLine)
		lastLine = r.LineNumber
	}
	assert.Equal(t, []string{"FIRST", "SECOND", "THIRD"}, descs)
	assert.Len(t, result.Records(models.ReportType120), 1)
	assert.Equal(t, 4, result.Total())
	assert.Equal(t, []models.ReportType{models.ReportType110, models.ReportType120}, result.ReportTypes())
}

func TestParseText_Idempotent(t *testing.T) {
	text := lines(report110()...)
	p, _ := newTestParser()

	first := p.ParseText(text, "VSS_2022048.txt")
	second := p.ParseText(text, "VSS_2022048.txt")
	assert.Equal(t, first, second)
}

func TestParseText_CRLF(t *testing.T) {
	p, _ := newTestParser()
	lf := p.ParseText(strings.Join(report110(), "\n"), "a.txt")
	crlf := p.ParseText(strings.Join(report110(), "\r\n"), "a.txt")
	assert.Equal(t, lf, crlf)
	assert.Len(t, crlf.Records(models.ReportType110), 4)
}

func TestParseText_EmptyInput(t *testing.T) {
	p, mock := newTestParser()

	for _, text := range []string{"", "   \n\n", "no reports in here\n"} {
		result := p.ParseText(text, "empty.txt")
		assert.NotNil(t, result)
		assert.Equal(t, 0, result.Total())
	}
	assert.True(t, mock.HasEntry("WARN", "Empty report input"))
}

func TestParseText_WindowOutOfBoundsDropsLine(t *testing.T) {
	// The line stops before the total window starts.
	short := fixedLine("SHORT",
		at(pos(models.ReportType110, models.FieldCount), "1"),
		at(pos(models.ReportType110, models.FieldCreditAmount), "1.00"))
	text := lines(reportSection("VSS-110", short, row110("OK", "1", "1.00", "0.00", "1.00"))...)

	p, mock := newTestParser()
	recs := p.ParseText(text, "vss.txt").Records(models.ReportType110)
	require.Len(t, recs, 1)
	assert.Equal(t, "OK", recs[0].(models.Report110Record).Description)

	warns := mock.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.ErrorIs(t, warns[0].Error, parsererror.ErrWindowOutOfBounds)
}

func TestParseText_MisalignedValuesDropLine(t *testing.T) {
	// Every value ends five columns left of its anchor.
	misaligned := fixedLine("ORIGINAL SALE",
		at(models.RTL(62, 15), "12"),
		at(models.RTL(85, 20), "1,234.56"))
	text := lines(reportSection("VSS-120",
		"SETTLEMENT CURRENCY:  EUR",
		misaligned,
		row120("ORIGINAL SALE", "100", "3", "30.00", "30.00", "0.00"))...)

	p, mock := newTestParser()
	recs := p.ParseText(text, "vss.txt").Records(models.ReportType120)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(3), recs[0].RecordCount())

	warns := mock.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.ErrorIs(t, warns[0].Error, parsererror.ErrNoAlignedValues)
	rt, ok := warns[0].Field(logging.FieldReportType)
	assert.True(t, ok)
	assert.Equal(t, "VSS-120", rt)
}

func TestParseText_MissingPositionDropsLines(t *testing.T) {
	positions := models.DefaultPositions()
	delete(positions[models.ReportType110], models.FieldTotalAmount)

	mock := logging.NewMockLogger()
	p := New(positions, mock)
	text := lines(reportSection("VSS-110", row110("X", "1", "1.00", "0.00", "1.00"))...)

	assert.Equal(t, 0, p.ParseText(text, "vss.txt").Total())
	warns := mock.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.ErrorIs(t, warns[0].Error, parsererror.ErrNoPosition)
}

func TestParseText_HeaderDates(t *testing.T) {
	t.Run("dates on the start line win", func(t *testing.T) {
		text := lines(
			"REPORT ID:  VSS-110   PROC DATE: 01MAR22   REPORT DATE: 28FEB22",
			"                                      PROC DATE: 17FEB22",
			row110("X", "1", "1.00", "0.00", "1.00"),
		)
		p, _ := newTestParser()
		r := p.ParseText(text, "").Records(models.ReportType110)[0].AuditInfo()
		assert.True(t, day(2022, time.March, 1).Equal(r.ProcessingDate))
		assert.True(t, day(2022, time.February, 28).Equal(r.ReportDate))
	})

	t.Run("undecodable date is zero and logged", func(t *testing.T) {
		text := lines(
			"REPORT ID:  VSS-110",
			"                                      PROC DATE: 99XYZ22",
			row110("X", "1", "1.00", "0.00", "1.00"),
		)
		p, mock := newTestParser()
		r := p.ParseText(text, "").Records(models.ReportType110)[0].AuditInfo()
		assert.True(t, r.ProcessingDate.IsZero())
		assert.True(t, r.ReportDate.IsZero())
		assert.True(t, r.FileDate.IsZero())
		assert.True(t, mock.HasEntry("WARN", "Header date not decoded"))
	})

	t.Run("clamped file name timestamp is logged", func(t *testing.T) {
		text := lines(reportSection("VSS-110", row110("X", "1", "1.00", "0.00", "1.00"))...)
		p, mock := newTestParser()
		r := p.ParseText(text, "/in/vss_20221340000000.txt").Records(models.ReportType110)[0].AuditInfo()
		assert.True(t, time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC).Equal(r.FileDate))
		assert.Equal(t, "/in/vss_20221340000000.txt", r.FileName)
		assert.True(t, mock.HasEntry("WARN", "File name timestamp out of range, clamped"))
	})
}

func TestParseText_RowCurrencyFallback(t *testing.T) {
	row := fixedLine("ACQUIRER",
		at(pos(models.ReportType130, models.FieldCurrency), "JPY"),
		at(pos(models.ReportType130, models.FieldCount), "1"),
		at(pos(models.ReportType130, models.FieldInterchangeAmount), "1.00"),
		at(pos(models.ReportType130, models.FieldFeeCreditAmount), "0.00"),
		at(pos(models.ReportType130, models.FieldFeeDebitAmount), "0.00"))
	text := lines(reportSection("VSS-130", row)...)

	p, _ := newTestParser()
	recs := p.ParseText(text, "").Records(models.ReportType130)
	require.Len(t, recs, 1)
	assert.Equal(t, "JPY", recs[0].RecordCurrency())
	assert.Equal(t, "ACQUIRER", recs[0].(models.Report130Record).Description)
}

func TestNew_Defaults(t *testing.T) {
	p := New(nil, nil)
	assert.Equal(t, models.DefaultPositions(), p.Positions())
	assert.NotNil(t, p.logger)
}
