// Package enrich turns raw statement records into ledger transactions by
// deriving a display vendor name and a spending category.
package enrich

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/subtrack-dev/subtrack/internal/model"
)

// CategoryRule maps one category to its matching keywords.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tables holds the static categorization data. Injected rather than global
// so tests and config files can substitute alternate tables.
type Tables struct {
	Categories []CategoryRule `yaml:"categories"`
}

// Config tunes the vendor-extraction pipeline. The noise-token cutoffs are
// configuration because aggressive values start deleting legitimate short
// vendor tokens.
type Config struct {
	Prefixes     []string `yaml:"prefixes"`
	NoiseMinLen  int      `yaml:"noise_min_len"`
	NoiseMaxLen  int      `yaml:"noise_max_len"`
	MaxVendorLen int      `yaml:"max_vendor_len"`
}

// DefaultConfig returns the extraction tunables used in production.
func DefaultConfig() Config {
	return Config{
		Prefixes:     []string{"pos ", "ach ", "check ", "debit ", "visa ", "ppd "},
		NoiseMinLen:  6,
		NoiseMaxLen:  12,
		MaxVendorLen: 30,
	}
}

// Enricher derives vendor and category and mints transaction IDs.
type Enricher struct {
	cfg    Config
	tables Tables
	newID  func() string
}

// New creates an Enricher with an injected ID generator.
func New(cfg Config, tables Tables, newID func() string) *Enricher {
	return &Enricher{cfg: cfg, tables: tables, newID: newID}
}

// Enrich converts raw records into transactions. Subscription status always
// starts false; it is computed later over the combined set, never per file.
func (e *Enricher) Enrich(recs []model.RawRecord, overrides map[string]string) []model.Transaction {
	txns := make([]model.Transaction, 0, len(recs))
	for _, rec := range recs {
		vendor := e.Vendor(rec.Description)
		txns = append(txns, model.Transaction{
			ID:          e.newID(),
			Date:        rec.Date,
			Description: rec.Description,
			Amount:      rec.Amount,
			Vendor:      vendor,
			Category:    e.Category(rec.Description, vendor, overrides),
			Direction:   rec.Direction,
		})
	}
	return txns
}

var (
	digitRunRe   = regexp.MustCompile(`\d{4,}`)
	hashStarRe   = regexp.MustCompile(`[#*]`)
	segmentRe    = regexp.MustCompile(`\s{2,}|/|\\|-`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Rule is one step of the vendor-extraction pipeline.
type Rule struct {
	Name  string
	Apply func(string) string
}

// rules returns the extraction pipeline in application order. Each rule is a
// pure string transform so they can be unit tested independently.
func (e *Enricher) rules() []Rule {
	return []Rule{
		{"lowercase", func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }},
		{"strip-prefixes", e.stripPrefixes},
		{"strip-digit-runs", func(s string) string { return digitRunRe.ReplaceAllString(s, "") }},
		{"strip-hash-star", func(s string) string { return hashStarRe.ReplaceAllString(s, " ") }},
		{"strip-noise-tokens", e.stripNoiseTokens},
		{"first-segment", firstSegment},
		{"collapse-space", func(s string) string {
			return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
		}},
		{"title-case", titleCase},
		{"truncate", e.truncate},
	}
}

// Vendor extracts a display vendor name from a raw description.
func (e *Enricher) Vendor(desc string) string {
	s := desc
	for _, r := range e.rules() {
		s = r.Apply(s)
	}
	return s
}

// Category resolves the spending category: a learned vendor override wins,
// then the first keyword table hit against the raw description, then "Other".
func (e *Enricher) Category(desc, vendor string, overrides map[string]string) string {
	if c, ok := overrides[vendor]; ok {
		return c
	}
	lower := strings.ToLower(desc)
	for _, rule := range e.tables.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return rule.Name
			}
		}
	}
	return "Other"
}

func (e *Enricher) stripPrefixes(s string) string {
	for stripped := true; stripped; {
		stripped = false
		for _, p := range e.cfg.Prefixes {
			if strings.HasPrefix(s, p) {
				s = s[len(p):]
				stripped = true
			}
		}
	}
	return s
}

// stripNoiseTokens drops trailing mixed-alphanumeric runs that look like
// confirmation codes. Interior spacing is preserved because the segment
// split downstream keys on double spaces.
func (e *Enricher) stripNoiseTokens(s string) string {
	for {
		trimmed := strings.TrimRight(s, " ")
		i := strings.LastIndex(trimmed, " ")
		if i < 0 {
			return s
		}
		if !isNoiseToken(trimmed[i+1:], e.cfg.NoiseMinLen, e.cfg.NoiseMaxLen) {
			return s
		}
		s = trimmed[:i]
	}
}

func isNoiseToken(tok string, minLen, maxLen int) bool {
	if len(tok) < minLen || len(tok) > maxLen {
		return false
	}
	var letters, digits int
	for _, r := range tok {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return letters > 0 && digits > 0
}

func firstSegment(s string) string {
	if parts := segmentRe.Split(s, 2); len(parts) > 0 {
		return parts[0]
	}
	return s
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		// Decode the leading rune; slicing the first byte would corrupt
		// multi-byte vendor names.
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func (e *Enricher) truncate(s string) string {
	if len(s) > e.cfg.MaxVendorLen {
		s = strings.TrimSpace(s[:e.cfg.MaxVendorLen])
	}
	return s
}
