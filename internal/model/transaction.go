package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies money movement on a transaction.
type Direction string

const (
	// Debit is an outgoing charge (spending).
	Debit Direction = "debit"
	// Credit is an incoming payment, e.g. a statement payment.
	Credit Direction = "credit"
)

// Frequency is the cadence of a detected subscription.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
)

// RawRecord is one parsed statement row before enrichment. Amount is always
// the absolute magnitude; Direction carries the sign. Never persisted.
type RawRecord struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Direction   Direction
}

// Transaction is the ledger entity produced by enrichment.
type Transaction struct {
	ID                    string
	Date                  time.Time
	Description           string
	Amount                decimal.Decimal // absolute magnitude
	Vendor                string
	Category              string
	Direction             Direction
	IsSubscription        bool
	SubscriptionFrequency Frequency // empty unless IsSubscription
}

// DedupKey is the identity triple used when combining files. Two records with
// the same key are the same transaction regardless of source file.
func (t Transaction) DedupKey() string {
	return dedupKey(t.Date, t.Amount, t.Description)
}

// DedupKey returns the identity triple for a raw record.
func (r RawRecord) DedupKey() string {
	return dedupKey(r.Date, r.Amount, r.Description)
}

func dedupKey(date time.Time, amount decimal.Decimal, desc string) string {
	return date.Format("2006-01-02") + "|" + amount.StringFixed(2) + "|" + desc
}

// VendorVariantGroup is one set of vendor spellings that normalize to the
// same merchant. Transient, built on demand from a transaction snapshot.
type VendorVariantGroup struct {
	NormalizedName   string
	Variants         []string
	TransactionCount int
}
