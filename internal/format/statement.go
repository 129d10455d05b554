package format

import (
	"strings"

	"github.com/subtrack-dev/subtrack/internal/csvline"
	"github.com/subtrack-dev/subtrack/internal/model"
)

// StatementStrategy parses charge-card statement exports. These list charges
// as positive numbers, so amount > 0 means debit - the opposite of the other
// strategies.
type StatementStrategy struct{}

// summarySkipTokens mark non-transaction rows in statement exports.
var summarySkipTokens = []string{"summary", "last billed"}

type statementCols struct {
	date, desc, amount int
}

func (StatementStrategy) Kind() Kind { return KindStatement }

func (s StatementStrategy) Parse(lines []string) []model.RawRecord {
	headerIdx, cols := findStatementHeader(lines)
	if headerIdx < 0 {
		return s.parseHeaderless(lines)
	}

	var recs []model.RawRecord
	for _, line := range lines[headerIdx+1:] {
		fields := csvline.Fields(line)
		if cols.date >= len(fields) || cols.desc >= len(fields) || cols.amount >= len(fields) {
			continue
		}
		desc := fields[cols.desc]
		if isSummaryRow(desc) {
			continue
		}
		if rec, ok := makeRecord(fields[cols.date], desc, fields[cols.amount], true); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// parseHeaderless handles statement exports with no header row: field 0 is
// the date, and the amount is the last numeric-looking field scanning from
// the right. Everything in between is the description.
func (StatementStrategy) parseHeaderless(lines []string) []model.RawRecord {
	var recs []model.RawRecord
	for _, line := range lines {
		fields := csvline.Fields(line)
		if len(fields) < 3 {
			continue
		}
		amountIdx := -1
		for i := len(fields) - 1; i > 0; i-- {
			if numericFieldRe.MatchString(strings.TrimSpace(fields[i])) {
				amountIdx = i
				break
			}
		}
		if amountIdx < 2 {
			continue
		}
		desc := strings.TrimSpace(strings.Join(fields[1:amountIdx], " "))
		if isSummaryRow(desc) {
			continue
		}
		if rec, ok := makeRecord(fields[0], desc, fields[amountIdx], true); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// findStatementHeader locates the header row and resolves column indices by
// substring. An "amount" column mentioning "foreign" is skipped so foreign
// currency columns never shadow the real amount.
func findStatementHeader(lines []string) (int, statementCols) {
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "date") ||
			!strings.Contains(lower, "description") ||
			!strings.Contains(lower, "amount") ||
			strings.Contains(lower, "posted date") {
			continue
		}

		cols := statementCols{date: -1, desc: -1, amount: -1}
		for j, field := range csvline.Fields(line) {
			f := strings.ToLower(strings.TrimSpace(field))
			switch {
			case cols.date < 0 && strings.Contains(f, "date"):
				cols.date = j
			case cols.desc < 0 && strings.Contains(f, "description"):
				cols.desc = j
			case cols.amount < 0 && strings.Contains(f, "amount") && !strings.Contains(f, "foreign"):
				cols.amount = j
			}
		}
		if cols.date >= 0 && cols.desc >= 0 && cols.amount >= 0 {
			return i, cols
		}
	}
	return -1, statementCols{}
}

func isSummaryRow(desc string) bool {
	lower := strings.ToLower(desc)
	for _, tok := range summarySkipTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
