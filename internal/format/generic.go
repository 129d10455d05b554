package format

import (
	"strings"

	"github.com/subtrack-dev/subtrack/internal/csvline"
	"github.com/subtrack-dev/subtrack/internal/model"
)

// GenericStrategy is the fallback for unrecognized layouts: date,
// description, amount in the first three columns unless a header says
// otherwise. Charges are negative; a parenthesized amount reads as negative.
type GenericStrategy struct{}

const (
	genericColDate   = 0
	genericColDesc   = 1
	genericColAmount = 2
)

func (GenericStrategy) Kind() Kind { return KindGeneric }

func (GenericStrategy) Parse(lines []string) []model.RawRecord {
	if len(lines) == 0 {
		return nil
	}

	date, desc, amount := genericColDate, genericColDesc, genericColAmount
	start := 0
	first := strings.ToLower(lines[0])
	if strings.Contains(first, "date") || strings.Contains(first, "amount") || strings.Contains(first, "description") {
		start = 1
		for i, field := range csvline.Fields(lines[0]) {
			f := strings.ToLower(strings.TrimSpace(field))
			switch {
			case strings.Contains(f, "date"):
				date = i
			case strings.Contains(f, "description"):
				desc = i
			case strings.Contains(f, "amount"):
				amount = i
			}
		}
	}

	var recs []model.RawRecord
	for _, line := range lines[start:] {
		fields := csvline.Fields(line)
		if date >= len(fields) || desc >= len(fields) || amount >= len(fields) {
			continue
		}
		if rec, ok := makeRecord(fields[date], fields[desc], fields[amount], false); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}
