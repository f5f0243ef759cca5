package pricing

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/egorv/homebook/internal/domain"
)

// ReportFunc receives diagnostics about prices that could not be parsed.
type ReportFunc func(format string, args ...any)

// Normalizer maps raw catalog prices to canonical two-decimal amounts.
// Unparseable values contribute zero to any sum instead of failing the
// caller: catalog price formatting is not caller-controlled, and totals
// must stay computable for any catalog data. Failures go to the report
// channel for diagnostics.
type Normalizer struct {
	report ReportFunc
}

func NewNormalizer() *Normalizer {
	return &Normalizer{report: log.Printf}
}

func NewNormalizerWithReport(report ReportFunc) *Normalizer {
	return &Normalizer{report: report}
}

// Normalize returns the canonical amount for a single price.
func (n *Normalizer) Normalize(p domain.Price) float64 {
	if v, ok := p.Number(); ok {
		return round2(v)
	}
	v, err := strconv.ParseFloat(stripCurrency(p.Raw()), 64)
	if err != nil {
		n.report("unparseable price %q, counting as zero", p.Raw())
		return 0
	}
	return round2(v)
}

// Sum totals the normalized prices of a cart sequence, rounded to two
// decimal places.
func (n *Normalizer) Sum(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += n.Normalize(item.Price)
	}
	return round2(total)
}

// FormatAmount renders a canonical amount with exactly two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// stripCurrency keeps digits, decimal points and a leading minus sign,
// discarding currency symbols and separators.
func stripCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
