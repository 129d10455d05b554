// Package recurring flags debit transactions that form periodic subscription
// charges. Detection is a pure function of its input: groups are built from a
// transient normalized key, then filtered through a chain of gates, and every
// surviving member is flagged. Nothing is ever reported as an error; a gate
// simply excludes.
package recurring

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/model"
)

// Config carries the detector tunables. The code-stripping cutoffs are
// configuration, not constants: too-eager values delete genuine short vendor
// tokens from the grouping key.
type Config struct {
	KeyWordCount        int      `yaml:"key_word_count"`
	MinWordLen          int      `yaml:"min_word_len"`
	GranularityUnits    int      `yaml:"granularity_units"`
	DigitRunLen         int      `yaml:"digit_run_len"`
	CodeMinLen          int      `yaml:"code_min_len"`
	CodeMaxLen          int      `yaml:"code_max_len"`
	Prefixes            []string `yaml:"prefixes"`
	MinPairIntervalDays int      `yaml:"min_pair_interval_days"`
	MonthlyMinDays      int      `yaml:"monthly_min_days"`
	MonthlyMaxDays      int      `yaml:"monthly_max_days"`
	AnnualMinDays       int      `yaml:"annual_min_days"`
	AnnualMaxDays       int      `yaml:"annual_max_days"`
	PairVariance        float64  `yaml:"pair_variance"`
	GroupVariance       float64  `yaml:"group_variance"`
	DayTolerance        int      `yaml:"day_tolerance"`
	WrapHighDay         int      `yaml:"wrap_high_day"`
	WrapLowDay          int      `yaml:"wrap_low_day"`
}

// DefaultConfig returns the production tunables.
func DefaultConfig() Config {
	return Config{
		KeyWordCount:        4,
		MinWordLen:          2,
		GranularityUnits:    1,
		DigitRunLen:         4,
		CodeMinLen:          6,
		CodeMaxLen:          12,
		Prefixes:            []string{"pos ", "ach ", "check ", "debit ", "visa ", "ppd "},
		MinPairIntervalDays: 20,
		MonthlyMinDays:      20,
		MonthlyMaxDays:      40,
		AnnualMinDays:       350,
		AnnualMaxDays:       380,
		PairVariance:        0.20,
		GroupVariance:       0.10,
		DayTolerance:        1,
		WrapHighDay:         29,
		WrapLowDay:          2,
	}
}

// Detector groups and gates debit transactions.
type Detector struct {
	cfg Config
}

// New creates a Detector.
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect returns a copy of txns with IsSubscription and
// SubscriptionFrequency recomputed from scratch; prior flags are discarded.
// Credits are never flagged. The result does not depend on input order.
func (d *Detector) Detect(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	for i := range out {
		out[i].IsSubscription = false
		out[i].SubscriptionFrequency = ""
	}

	groups := make(map[string][]int)
	for i, t := range out {
		if t.Direction != model.Debit {
			continue
		}
		key := d.Key(t.Description, t.Amount)
		groups[key] = append(groups[key], i)
	}

	for _, idxs := range groups {
		// Fix member order by date so mode ties and intervals are
		// independent of input order.
		sort.Slice(idxs, func(a, b int) bool {
			ta, tb := out[idxs[a]], out[idxs[b]]
			if !ta.Date.Equal(tb.Date) {
				return ta.Date.Before(tb.Date)
			}
			if ta.Description != tb.Description {
				return ta.Description < tb.Description
			}
			return ta.Amount.Cmp(tb.Amount) < 0
		})

		freq, ok := d.classify(out, idxs)
		if !ok {
			continue
		}
		for _, i := range idxs {
			out[i].IsSubscription = true
			out[i].SubscriptionFrequency = freq
		}
	}
	return out
}

// classify runs the gate chain over one date-sorted group.
func (d *Detector) classify(txns []model.Transaction, idxs []int) (model.Frequency, bool) {
	if len(idxs) < 2 {
		return "", false
	}

	dates := make([]time.Time, len(idxs))
	amounts := make([]decimal.Decimal, len(idxs))
	for i, idx := range idxs {
		dates[i] = txns[idx].Date
		amounts[i] = txns[idx].Amount
	}

	if allSameDay(dates) {
		return "", false
	}
	if len(dates) == 2 && !d.pairIntervalOK(dates[0], dates[1]) {
		return "", false
	}
	if !d.varianceOK(amounts) {
		return "", false
	}
	if !d.dayAlignmentOK(dates) {
		return "", false
	}
	return d.frequency(dates), true
}

func allSameDay(dates []time.Time) bool {
	for _, dt := range dates[1:] {
		if !dt.Equal(dates[0]) {
			return false
		}
	}
	return true
}

// pairIntervalOK requires a two-member group's gap to sit in a clearly
// periodic band; two coincidental purchases a few weeks apart must not pass
// just because they land on similar calendar days.
func (d *Detector) pairIntervalOK(a, b time.Time) bool {
	days := daysBetween(a, b)
	if days < d.cfg.MinPairIntervalDays {
		return false
	}
	return d.inMonthlyBand(days) || d.inAnnualBand(days)
}

// varianceOK checks (max-min)/avg against the size-dependent ceiling. Groups
// of three or more are never discarded on variance alone; their repeated
// periodicity outweighs amount drift.
func (d *Detector) varianceOK(amounts []decimal.Decimal) bool {
	if len(amounts) >= 3 {
		return true
	}

	min, max, sum := amounts[0], amounts[0], decimal.Zero
	for _, a := range amounts {
		if a.Cmp(min) < 0 {
			min = a
		}
		if a.Cmp(max) > 0 {
			max = a
		}
		sum = sum.Add(a)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(amounts))))
	if avg.IsZero() {
		return false
	}
	variance := max.Sub(min).Div(avg)
	return variance.Cmp(decimal.NewFromFloat(d.cfg.PairVariance)) <= 0
}

// dayAlignmentOK requires every member's day-of-month to sit within the
// tolerance of the modal day, treating days at the month boundary (29+ and
// 1-2) as adjacent.
func (d *Detector) dayAlignmentOK(dates []time.Time) bool {
	mode := d.modalDay(dates)
	for _, dt := range dates {
		day := dt.Day()
		if abs(day-mode) <= d.cfg.DayTolerance {
			continue
		}
		if mode >= d.cfg.WrapHighDay && day <= d.cfg.WrapLowDay {
			continue
		}
		if day >= d.cfg.WrapHighDay && mode <= d.cfg.WrapLowDay {
			continue
		}
		return false
	}
	return true
}

// modalDay returns the most frequent day-of-month, ties broken by first seen
// in date order.
func (d *Detector) modalDay(dates []time.Time) int {
	counts := make(map[int]int)
	mode, best := 0, 0
	for _, dt := range dates {
		day := dt.Day()
		counts[day]++
		if counts[day] > best {
			mode, best = day, counts[day]
		}
	}
	return mode
}

// frequency picks annual when the dominant gap between consecutive charges
// sits in the annual band, monthly otherwise.
func (d *Detector) frequency(dates []time.Time) model.Frequency {
	var total, n int
	for i := 1; i < len(dates); i++ {
		total += daysBetween(dates[i-1], dates[i])
		n++
	}
	if n > 0 && d.inAnnualBand(total/n) {
		return model.FrequencyAnnual
	}
	return model.FrequencyMonthly
}

func (d *Detector) inMonthlyBand(days int) bool {
	return days >= d.cfg.MonthlyMinDays && days <= d.cfg.MonthlyMaxDays
}

func (d *Detector) inAnnualBand(days int) bool {
	return days >= d.cfg.AnnualMinDays && days <= d.cfg.AnnualMaxDays
}

func daysBetween(a, b time.Time) int {
	days := int(b.Sub(a).Hours() / 24)
	return abs(days)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var (
	cardSuffixRe = regexp.MustCompile(`\*\d{2,4}`)
	spacesRe     = regexp.MustCompile(`\s+`)
)

// Key computes the transient grouping fingerprint: the first few meaningful
// words of the cleaned description plus the amount rounded to the grouping
// granularity. Recomputed on every run, never cached.
func (d *Detector) Key(desc string, amount decimal.Decimal) string {
	s := d.cleanDescription(desc)

	var words []string
	for _, w := range strings.Fields(s) {
		if len(w) > d.cfg.MinWordLen {
			words = append(words, w)
		}
		if len(words) == d.cfg.KeyWordCount {
			break
		}
	}

	return strings.Join(words, " ") + "|" + d.roundAmount(amount).StringFixed(0)
}

// cleanDescription strips the reference noise that varies between charges of
// the same subscription.
func (d *Detector) cleanDescription(desc string) string {
	s := strings.TrimSpace(desc)
	s = stripCapsSuffixes(s)
	s = cardSuffixRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)

	for stripped := true; stripped; {
		stripped = false
		for _, p := range d.cfg.Prefixes {
			if strings.HasPrefix(s, p) {
				s = s[len(p):]
				stripped = true
			}
		}
	}

	var kept []string
	for _, tok := range strings.Fields(s) {
		if isDigitRun(tok, d.cfg.DigitRunLen) {
			continue
		}
		if isReferenceCode(tok, d.cfg.CodeMinLen, d.cfg.CodeMaxLen) {
			continue
		}
		kept = append(kept, tok)
	}
	return spacesRe.ReplaceAllString(strings.Join(kept, " "), " ")
}

// stripCapsSuffixes drops trailing all-caps 2-3 letter tokens, the usual
// shape of province and location codes, while the body of the name survives.
func stripCapsSuffixes(s string) string {
	tokens := strings.Fields(s)
	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if len(last) < 2 || len(last) > 3 || last != strings.ToUpper(last) || !isAlpha(last) {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || (r > 'Z' && r < 'a') || r > 'z' {
			return false
		}
	}
	return true
}

func isDigitRun(tok string, minLen int) bool {
	if len(tok) < minLen {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isReferenceCode matches mixed alphanumeric runs in the configured length
// band. Short vendor tokens stay below the floor on purpose.
func isReferenceCode(tok string, minLen, maxLen int) bool {
	if len(tok) < minLen || len(tok) > maxLen {
		return false
	}
	var letters, digits int
	for _, r := range tok {
		switch {
		case r >= 'a' && r <= 'z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return letters > 0 && digits > 0
}

// roundAmount rounds to the nearest multiple of the grouping granularity.
func (d *Detector) roundAmount(amount decimal.Decimal) decimal.Decimal {
	g := decimal.NewFromInt(int64(d.cfg.GranularityUnits))
	if g.IsZero() {
		g = decimal.NewFromInt(1)
	}
	return amount.Div(g).Round(0).Mul(g)
}
