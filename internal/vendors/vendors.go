// Package vendors collapses store-number and location variants of the same
// merchant into one canonical vendor identity.
package vendors

import (
	"regexp"
	"sort"
	"strings"

	"github.com/subtrack-dev/subtrack/internal/model"
)

var (
	storeNumberRe = regexp.MustCompile(`#\s*\d{1,6}`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// regionCodes are the trailing tokens stripped during normalization: compass
// directions, Canadian provinces, and the frequent US state codes. A closed
// set keeps short real words like "gas" or "bar" in the name. "co" is left
// out; it collides with the company suffix.
var regionCodes = map[string]bool{
	"n": true, "s": true, "e": true, "w": true,
	"ne": true, "nw": true, "se": true, "sw": true,
	"ab": true, "bc": true, "mb": true, "nb": true, "nl": true,
	"ns": true, "nt": true, "nu": true, "on": true, "pe": true,
	"qc": true, "sk": true, "yt": true,
	"az": true, "ca": true, "fl": true, "ga": true,
	"il": true, "ma": true, "mi": true, "nj": true, "nv": true,
	"ny": true, "oh": true, "or": true, "pa": true, "tx": true,
	"ut": true, "va": true, "wa": true,
}

// Normalize lowercases a vendor name, strips store-number tokens and trailing
// province/region/directional codes, and collapses whitespace. Pure and
// idempotent.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = storeNumberRe.ReplaceAllString(s, " ")

	tokens := strings.Fields(s)
	for len(tokens) > 1 && regionCodes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}

	return spacesRe.ReplaceAllString(strings.Join(tokens, " "), " ")
}

// FindVariants groups vendor spellings by normalized form and reports only
// groups with at least two distinct originals, largest first.
func FindVariants(txns []model.Transaction) []model.VendorVariantGroup {
	byNorm := make(map[string]map[string]int)
	for _, t := range txns {
		if t.Vendor == "" {
			continue
		}
		norm := Normalize(t.Vendor)
		if byNorm[norm] == nil {
			byNorm[norm] = make(map[string]int)
		}
		byNorm[norm][t.Vendor]++
	}

	var groups []model.VendorVariantGroup
	for norm, variants := range byNorm {
		if len(variants) < 2 {
			continue
		}
		g := model.VendorVariantGroup{NormalizedName: norm}
		for v, n := range variants {
			g.Variants = append(g.Variants, v)
			g.TransactionCount += n
		}
		sort.Strings(g.Variants)
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TransactionCount != groups[j].TransactionCount {
			return groups[i].TransactionCount > groups[j].TransactionCount
		}
		return groups[i].NormalizedName < groups[j].NormalizedName
	})
	return groups
}

// Merge records one canonical rewrite performed by AutoMerge.
type Merge struct {
	Canonical        string
	Variants         []string
	TransactionCount int
}

// AutoMerge rewrites every transaction whose vendor belongs to a variant
// group with at least minVariants spellings to the group's canonical
// spelling: the most frequent original, ties broken by shortest. Returns the
// rewritten set and the merges performed. Running it again is a no-op since
// one spelling remains per group.
func AutoMerge(txns []model.Transaction, minVariants int) ([]model.Transaction, []Merge) {
	counts := make(map[string]int)
	for _, t := range txns {
		counts[t.Vendor]++
	}

	out := make([]model.Transaction, len(txns))
	copy(out, txns)

	var merges []Merge
	for _, g := range FindVariants(txns) {
		if len(g.Variants) < minVariants {
			continue
		}
		canonical := pickCanonical(g.Variants, counts)
		for i := range out {
			for _, v := range g.Variants {
				if out[i].Vendor == v {
					out[i].Vendor = canonical
					break
				}
			}
		}
		merges = append(merges, Merge{
			Canonical:        canonical,
			Variants:         g.Variants,
			TransactionCount: g.TransactionCount,
		})
	}
	return out, merges
}

func pickCanonical(variants []string, counts map[string]int) string {
	best := variants[0]
	for _, v := range variants[1:] {
		switch {
		case counts[v] > counts[best]:
			best = v
		case counts[v] == counts[best] && len(v) < len(best):
			best = v
		}
	}
	return best
}
