package format

import (
	"strings"

	"github.com/subtrack-dev/subtrack/internal/csvline"
	"github.com/subtrack-dev/subtrack/internal/dateparse"
	"github.com/subtrack-dev/subtrack/internal/model"
)

// MultiColumnStrategy parses the fixed 8-column card export: cardholder,
// card number, transaction date, posting date, description, currency, debit
// amount, credit amount. Whichever of the debit and credit columns is
// populated fixes both amount and direction.
type MultiColumnStrategy struct{}

const (
	multiColNumFields = 8
	multiColTxnDate   = 2
	multiColPostDate  = 3
	multiColDesc      = 4
	multiColDebit     = 6
	multiColCredit    = 7
)

func (MultiColumnStrategy) Kind() Kind { return KindMultiColumn }

// Parse treats every line as a candidate row; a header line simply fails the
// date check and is dropped like any other bad row.
func (MultiColumnStrategy) Parse(lines []string) []model.RawRecord {
	var recs []model.RawRecord
	for _, line := range lines {
		fields := csvline.Fields(line)
		if len(fields) < multiColNumFields {
			continue
		}

		// Prefer the transaction date, fall back to the posting date.
		date, ok := dateparse.Parse(fields[multiColTxnDate])
		if !ok {
			if date, ok = dateparse.Parse(fields[multiColPostDate]); !ok {
				continue
			}
		}

		amountStr := fields[multiColDebit]
		dir := model.Debit
		if strings.TrimSpace(amountStr) == "" {
			amountStr = fields[multiColCredit]
			dir = model.Credit
		}
		amount, ok := parseAmount(amountStr)
		if !ok || amount.IsZero() {
			continue
		}

		desc := strings.TrimSpace(fields[multiColDesc])
		if !validDescription(desc) {
			continue
		}

		recs = append(recs, model.RawRecord{
			Date:        date,
			Amount:      amount.Abs(),
			Description: desc,
			Direction:   dir,
		})
	}
	return recs
}
