// Package ledger is the core surface consumed by collaborators: parse
// statement text into transactions, combine parsed sets, and recompute
// recurring-charge flags. Everything here is a pure in-memory transformation.
package ledger

import (
	"sort"
	"sync"

	"github.com/subtrack-dev/subtrack/internal/enrich"
	"github.com/subtrack-dev/subtrack/internal/format"
	"github.com/subtrack-dev/subtrack/internal/id"
	"github.com/subtrack-dev/subtrack/internal/model"
	"github.com/subtrack-dev/subtrack/internal/recurring"
	"github.com/subtrack-dev/subtrack/internal/vendors"
)

// Service wires the parsing pipeline to the detector. All collaborating
// tables and tunables are injected.
type Service struct {
	enricher *enrich.Enricher
	detector *recurring.Detector
}

// New creates a Service with explicit tables, tunables, and ID generator.
func New(tables enrich.Tables, ecfg enrich.Config, rcfg recurring.Config, gen id.Generator) *Service {
	return &Service{
		enricher: enrich.New(ecfg, tables, gen),
		detector: recurring.New(rcfg),
	}
}

// NewDefault creates a Service with the built-in tables and tunables and
// random IDs.
func NewDefault() *Service {
	return New(enrich.DefaultTables(), enrich.DefaultConfig(), recurring.DefaultConfig(), id.Random())
}

// Parse converts one file's text into enriched transactions, newest first.
// Overrides map extracted vendor names to user-chosen categories. Every
// returned transaction starts with IsSubscription false; subscription flags
// are computed later over the combined set.
func (s *Service) Parse(csvText string, overrides map[string]string) []model.Transaction {
	recs, _ := format.Parse(csvText)
	txns := s.enricher.Enrich(recs, overrides)
	sortDateDesc(txns)
	return txns
}

// ParseFiles parses each file independently in parallel, then combines the
// results in input order so the outcome never depends on completion order.
func (s *Service) ParseFiles(csvTexts []string, overrides map[string]string) []model.Transaction {
	batches := make([][]model.Transaction, len(csvTexts))
	var wg sync.WaitGroup
	for i, text := range csvTexts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			batches[i] = s.Parse(text, overrides)
		}(i, text)
	}
	wg.Wait()
	return Combine(batches...)
}

// DetectRecurring recomputes subscription flags from scratch over an
// already-combined set. Prior flags are discarded, not merged, so the pass
// is idempotent.
func (s *Service) DetectRecurring(txns []model.Transaction) []model.Transaction {
	out := s.detector.Detect(txns)
	sortDateDesc(out)
	return out
}

// Combine merges parsed batches, keeping the first transaction seen for each
// (date, amount, description) identity, and returns the union newest first.
func Combine(batches ...[]model.Transaction) []model.Transaction {
	seen := make(map[string]bool)
	var out []model.Transaction
	for _, batch := range batches {
		for _, t := range batch {
			key := t.DedupKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, t)
		}
	}
	sortDateDesc(out)
	return out
}

// NormalizeVendor reports the grouping form of a vendor name.
func NormalizeVendor(name string) string {
	return vendors.Normalize(name)
}

// FindVendorVariants reports merchants appearing under multiple spellings.
func FindVendorVariants(txns []model.Transaction) []model.VendorVariantGroup {
	return vendors.FindVariants(txns)
}

// AutoMergeVendors rewrites variant spellings to one canonical vendor and
// reports the merges performed.
func AutoMergeVendors(txns []model.Transaction, minVariants int) ([]model.Transaction, []vendors.Merge) {
	return vendors.AutoMerge(txns, minVariants)
}

// sortDateDesc orders newest first with deterministic tie-breaks so output
// never depends on file arrival order.
func sortDateDesc(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		if txns[i].Description != txns[j].Description {
			return txns[i].Description < txns[j].Description
		}
		return txns[i].Amount.Cmp(txns[j].Amount) < 0
	})
}
