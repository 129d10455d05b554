package format

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-dev/subtrack/internal/model"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestDetect_Priority(t *testing.T) {
	assert.Equal(t, KindStatement, Detect(readFixture(t, "statement.csv")).Kind())
	assert.Equal(t, KindStatement, Detect(readFixture(t, "statement_headerless.csv")).Kind())
	assert.Equal(t, KindPayee, Detect(readFixture(t, "payee.csv")).Kind())
	assert.Equal(t, KindMultiColumn, Detect(readFixture(t, "multicolumn.csv")).Kind())
	assert.Equal(t, KindGeneric, Detect(readFixture(t, "generic.csv")).Kind())
}

func TestDetect_IssuerSynonymWinsOverColumnCount(t *testing.T) {
	// An issuer mention forces the statement strategy even when the first
	// line would satisfy the multi-column rule.
	text := "a,b,c,d,e,f,g,h,amex\n"
	assert.Equal(t, KindStatement, Detect(text).Kind())
}

func TestDetect_PostedDateExcludesStatementHeader(t *testing.T) {
	text := "Posted Date,Description,Amount\n01/15/2025,COFFEE,-4.50\n"
	assert.Equal(t, KindPayee, Detect(text).Kind())
}

func TestDetect_EmptyInput(t *testing.T) {
	recs, kind := Parse("")
	assert.Empty(t, recs)
	assert.Equal(t, KindGeneric, kind)
}

func TestStatement_HeaderedParse(t *testing.T) {
	recs, kind := Parse(readFixture(t, "statement.csv"))
	assert.Equal(t, KindStatement, kind)
	require.Len(t, recs, 3)

	// Charges are positive in statement exports.
	assert.Equal(t, "NETFLIX.COM 866-716-0414", recs[0].Description)
	assert.Equal(t, model.Debit, recs[0].Direction)
	assert.Equal(t, "24.10", recs[0].Amount.StringFixed(2))

	// Payments are negative, classified credit, stored as magnitude.
	assert.Equal(t, "PAYMENT RECEIVED - THANK YOU", recs[1].Description)
	assert.Equal(t, model.Credit, recs[1].Direction)
	assert.Equal(t, "500.00", recs[1].Amount.StringFixed(2))

	assert.Equal(t, "AMAZON MKTPL*RT4Y82 AMZN.COM", recs[2].Description)
}

func TestStatement_SkipsSummaryRows(t *testing.T) {
	recs, _ := Parse(readFixture(t, "statement.csv"))
	for _, r := range recs {
		assert.NotContains(t, r.Description, "Summary")
		assert.NotContains(t, r.Description, "Last Billed")
	}
}

func TestStatement_ForeignAmountColumnIgnored(t *testing.T) {
	text := "Transaction Date,Description,Foreign Amount,Amount\n" +
		"2025-01-03,NETFLIX.COM,99.99,24.10\n"
	recs, _ := Parse(text)
	require.Len(t, recs, 1)
	assert.Equal(t, "24.10", recs[0].Amount.StringFixed(2))
}

func TestStatement_HeaderlessFallback(t *testing.T) {
	recs, kind := Parse(readFixture(t, "statement_headerless.csv"))
	assert.Equal(t, KindStatement, kind)
	require.Len(t, recs, 2)

	assert.Equal(t, "NETFLIX.COM 866-716-0414", recs[0].Description)
	assert.Equal(t, "24.10", recs[0].Amount.StringFixed(2))
	assert.Equal(t, model.Debit, recs[0].Direction)

	assert.Equal(t, "AMAZON MARKETPLACE", recs[1].Description)
}

func TestPayee_Parse(t *testing.T) {
	recs, kind := Parse(readFixture(t, "payee.csv"))
	assert.Equal(t, KindPayee, kind)
	require.Len(t, recs, 3)

	// Negative means debit for payee exports.
	assert.Equal(t, "TIM HORTONS #2741 123 MAIN ST TORONTO", recs[0].Description)
	assert.Equal(t, model.Debit, recs[0].Direction)
	assert.Equal(t, "8.45", recs[0].Amount.StringFixed(2))

	// Trivial addresses are not appended.
	assert.Equal(t, "PAYROLL DEPOSIT", recs[1].Description)
	assert.Equal(t, model.Credit, recs[1].Direction)

	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), recs[2].Date)
}

func TestMultiColumn_Parse(t *testing.T) {
	recs, kind := Parse(readFixture(t, "multicolumn.csv"))
	assert.Equal(t, KindMultiColumn, kind)
	require.Len(t, recs, 3)

	assert.Equal(t, "SPOTIFY P111ABC222", recs[0].Description)
	assert.Equal(t, model.Debit, recs[0].Direction)
	assert.Equal(t, "12.99", recs[0].Amount.StringFixed(2))
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), recs[0].Date)

	assert.Equal(t, model.Credit, recs[1].Direction)
	assert.Equal(t, "250.00", recs[1].Amount.StringFixed(2))

	// Missing transaction date falls back to the posting date.
	assert.Equal(t, time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC), recs[2].Date)
}

func TestGeneric_Parse(t *testing.T) {
	recs, kind := Parse(readFixture(t, "generic.csv"))
	assert.Equal(t, KindGeneric, kind)
	require.Len(t, recs, 3)

	// Parenthesized amounts are negative, hence debits.
	assert.Equal(t, "COFFEE SHOP", recs[0].Description)
	assert.Equal(t, model.Debit, recs[0].Direction)
	assert.Equal(t, "4.50", recs[0].Amount.StringFixed(2))

	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), recs[1].Date)
	assert.Equal(t, model.Debit, recs[1].Direction)

	assert.Equal(t, model.Credit, recs[2].Direction)
}

func TestGeneric_NoHeader(t *testing.T) {
	recs, _ := Parse("03/04/2025,COFFEE SHOP,-4.50\n")
	require.Len(t, recs, 1)
	assert.Equal(t, "COFFEE SHOP", recs[0].Description)
}

func TestRejection_Rules(t *testing.T) {
	text := "date,details,amount\n" +
		"NOTADATE,SHOP,-4.50\n" + // bad date
		"03/04/2025,SHOP,0.00\n" + // zero amount
		"03/04/2025,SHOP,abc\n" + // unparseable amount
		"03/04/2025,X,-4.50\n" + // description too short
		"03/04/2025,01/02/2025,-4.50\n" // description is a date
	recs, _ := Parse(text)
	assert.Empty(t, recs)
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"$1,234.56", "1234.56", true},
		{"-4.00", "-4.00", true},
		{"($4.50)", "-4.50", true},
		{"24.10", "24.10", true},
		{"", "", false},
		{"abc", "", false},
		{"$", "", false},
	}
	for _, c := range cases {
		got, ok := parseAmount(c.in)
		assert.Equal(t, c.ok, ok, "parseAmount(%q)", c.in)
		if c.ok {
			assert.Equal(t, c.want, got.StringFixed(2), "parseAmount(%q)", c.in)
		}
	}
}

func TestAllAccepted_HaveAbsoluteAmounts(t *testing.T) {
	for _, fixture := range []string{"statement.csv", "payee.csv", "multicolumn.csv", "generic.csv"} {
		recs, _ := Parse(readFixture(t, fixture))
		for _, r := range recs {
			assert.True(t, r.Amount.IsPositive(), "%s: %q", fixture, r.Description)
			assert.GreaterOrEqual(t, len(r.Description), 2, fixture)
		}
	}
}
