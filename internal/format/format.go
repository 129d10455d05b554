// Package format sniffs the layout of a statement export and parses it into
// raw records. Detection is an ordered list of (predicate, strategy) pairs so
// the priority between formats stays auditable.
package format

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/csvline"
	"github.com/subtrack-dev/subtrack/internal/dateparse"
	"github.com/subtrack-dev/subtrack/internal/model"
)

// Kind identifies one parsing strategy.
type Kind string

const (
	KindStatement   Kind = "statement"
	KindPayee       Kind = "payee"
	KindMultiColumn Kind = "multicolumn"
	KindGeneric     Kind = "generic"
)

// Strategy converts tokenized statement lines into raw records. Rows that
// fail the shared rejection rules are dropped, never reported.
type Strategy interface {
	Kind() Kind
	Parse(lines []string) []model.RawRecord
}

type rule struct {
	match    func(textLower string, lines []string) bool
	strategy Strategy
}

// issuerSynonyms trigger the statement strategy on brand mention alone.
var issuerSynonyms = []string{"american express", "amex"}

// rules are evaluated in order; the generic strategy always matches last.
var rules = []rule{
	{matchStatement, StatementStrategy{}},
	{matchPayee, PayeeStrategy{}},
	{matchMultiColumn, MultiColumnStrategy{}},
	{func(string, []string) bool { return true }, GenericStrategy{}},
}

// Detect returns the strategy for the given file text.
func Detect(text string) Strategy {
	textLower := strings.ToLower(text)
	lines := csvline.Lines(text)
	for _, r := range rules {
		if r.match(textLower, lines) {
			return r.strategy
		}
	}
	return GenericStrategy{} // unreachable, the last rule always matches
}

// Parse dispatches text to the detected strategy.
func Parse(text string) ([]model.RawRecord, Kind) {
	s := Detect(text)
	return s.Parse(csvline.Lines(text)), s.Kind()
}

func matchStatement(textLower string, lines []string) bool {
	for _, syn := range issuerSynonyms {
		if strings.Contains(textLower, syn) {
			return true
		}
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "date") &&
			strings.Contains(lower, "description") &&
			strings.Contains(lower, "amount") &&
			!strings.Contains(lower, "posted date") {
			return true
		}
	}
	return false
}

func matchPayee(_ string, lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	first := strings.ToLower(lines[0])
	return strings.Contains(first, "posted date") || strings.Contains(first, "payee")
}

func matchMultiColumn(_ string, lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	return len(csvline.Fields(lines[0])) >= multiColNumFields
}

// numericFieldRe matches an amount-looking field with optional currency
// symbol, sign, and thousands separators.
var numericFieldRe = regexp.MustCompile(`^[-+]?\$?[-+]?[0-9][0-9,]*(\.[0-9]+)?$`)

// currencyJunkRe strips everything that is not part of a decimal number.
var currencyJunkRe = regexp.MustCompile(`[^0-9.\-]`)

// parseAmount turns a statement amount field into a signed decimal. A
// parenthesized value reads as negative. Returns false for non-numeric text.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	cleaned := currencyJunkRe.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// validDescription rejects descriptions that are too short or are themselves
// dates, the usual symptom of column misalignment.
func validDescription(desc string) bool {
	desc = strings.TrimSpace(desc)
	return len(desc) >= 2 && !dateparse.IsDate(desc)
}

// makeRecord applies the rejection rules shared by every strategy and builds
// a record with an absolute amount. debitWhenPositive selects the sign
// convention: statement exports list charges as positive, the other formats
// list them as negative.
func makeRecord(dateStr, desc, amountStr string, debitWhenPositive bool) (model.RawRecord, bool) {
	date, ok := dateparse.Parse(dateStr)
	if !ok {
		return model.RawRecord{}, false
	}
	amount, ok := parseAmount(amountStr)
	if !ok || amount.IsZero() {
		return model.RawRecord{}, false
	}
	desc = strings.TrimSpace(desc)
	if !validDescription(desc) {
		return model.RawRecord{}, false
	}

	dir := model.Credit
	if amount.IsPositive() == debitWhenPositive {
		dir = model.Debit
	}
	return model.RawRecord{
		Date:        date,
		Amount:      amount.Abs(),
		Description: desc,
		Direction:   dir,
	}, true
}
