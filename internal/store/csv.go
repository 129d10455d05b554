// Package store persists the transaction ledger as transactions.csv. This is
// the collaborator side of the pipeline; the core never touches disk.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,date,description,amount,vendor,category,direction,is_subscription,subscription_frequency"

const (
	numFields  = 9
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colDesc    = 2
	colAmount  = 3
	colVendor  = 4
	colCat     = 5
	colDir     = 6
	colIsSub   = 7
	colFreq    = 8
)

// Read reads all transactions from a transactions.csv reader.
func Read(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := Unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// Write writes transactions to a transactions.csv writer (including header).
func Write(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(Marshal(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Marshal converts a Transaction to a CSV row.
func Marshal(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colDate] = t.Date.Format(dateFormat)
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colVendor] = t.Vendor
	row[colCat] = t.Category
	row[colDir] = string(t.Direction)
	if t.IsSubscription {
		row[colIsSub] = "true"
	} else {
		row[colIsSub] = "false"
	}
	row[colFreq] = string(t.SubscriptionFrequency)
	return row
}

// Unmarshal converts a CSV row to a Transaction.
func Unmarshal(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		ID:                    record[colID],
		Date:                  date,
		Description:           record[colDesc],
		Amount:                amount,
		Vendor:                record[colVendor],
		Category:              record[colCat],
		Direction:             model.Direction(record[colDir]),
		IsSubscription:        record[colIsSub] == "true",
		SubscriptionFrequency: model.Frequency(record[colFreq]),
	}, nil
}

// FileName is the ledger file inside a project directory.
const FileName = "transactions.csv"

// Load reads the ledger file under root. A missing file is an empty ledger.
func Load(root string) ([]model.Transaction, error) {
	path := filepath.Join(root, FileName)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// Save rewrites the ledger file under root.
func Save(root string, txns []model.Transaction) error {
	path := filepath.Join(root, FileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, txns); err != nil {
		return fmt.Errorf("writing ledger %s: %w", path, err)
	}
	return nil
}
