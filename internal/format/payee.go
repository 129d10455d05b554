package format

import (
	"strings"

	"github.com/subtrack-dev/subtrack/internal/csvline"
	"github.com/subtrack-dev/subtrack/internal/model"
)

// PayeeStrategy parses exports with posted-date/payee/address/amount columns.
// Charges are negative, so amount < 0 means debit.
type PayeeStrategy struct{}

const (
	payeeColDate    = 0
	payeeColPayee   = 1
	payeeColAddress = 2
	payeeColAmount  = 3
)

// minAddressLen is the trimmed length above which an address column is
// considered real content rather than a bare city abbreviation.
const minAddressLen = 6

func (PayeeStrategy) Kind() Kind { return KindPayee }

func (PayeeStrategy) Parse(lines []string) []model.RawRecord {
	if len(lines) < 2 {
		return nil
	}

	date, payee, address, amount := payeeColumns(csvline.Fields(lines[0]))

	var recs []model.RawRecord
	for _, line := range lines[1:] {
		fields := csvline.Fields(line)
		if date >= len(fields) || payee >= len(fields) || amount >= len(fields) {
			continue
		}

		desc := strings.TrimSpace(fields[payee])
		if address < len(fields) {
			if addr := strings.TrimSpace(fields[address]); len(addr) >= minAddressLen {
				desc = desc + " " + addr
			}
		}

		if rec, ok := makeRecord(fields[date], desc, fields[amount], false); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// payeeColumns resolves column indices from the header by substring match,
// keeping positional defaults for anything the header doesn't name.
func payeeColumns(header []string) (date, payee, address, amount int) {
	date, payee, address, amount = payeeColDate, payeeColPayee, payeeColAddress, payeeColAmount
	for i, field := range header {
		f := strings.ToLower(strings.TrimSpace(field))
		switch {
		case strings.Contains(f, "date"):
			date = i
		case strings.Contains(f, "payee"):
			payee = i
		case strings.Contains(f, "address"):
			address = i
		case strings.Contains(f, "amount"):
			amount = i
		}
	}
	return date, payee, address, amount
}
