package budget

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind says which side of the number the user cares about.
type Kind string

const (
	Below  Kind = "below"
	Above  Kind = "above"
	Around Kind = "around"
)

// Constraint is a parsed price constraint. Amounts are JPY; the native
// equivalents are pre-converted for stores that index in the catalog's
// native currency.
type Constraint struct {
	Kind   Kind
	Min    float64 // JPY lower bound, 0 when unbounded
	Max    float64 // JPY upper bound, 0 when unbounded
	Target float64 // JPY, set for Around only

	MinNative float64
	MaxNative float64
}

var (
	kiloPattern   = regexp.MustCompile(`(\d+\.?\d*)\s*k`)
	numberPattern = regexp.MustCompile(`\d+`)

	belowWords  = []string{"under", "below", "less than", "upto", "max", "maximum", "at most"}
	aboveWords  = []string{"over", "above", "more than", "minimum", "at least"}
	aroundWords = []string{"around", "about", "approximately", "~", "avg", "average"}
)

// aroundBand is the tolerance applied on both sides of an "around" target.
const aroundBand = 0.20

// Parse extracts a price constraint from free text. The amount is read
// first ("80k" counts as 80,000); the surrounding words then decide the
// kind, checked in order: below, above, around. A bare number defaults
// to below. Returns nil when the text carries no number at all.
func Parse(text string, nativePerYen float64) *Constraint {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var amount float64
	if m := kiloPattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		amount = n * 1000
	} else if m := numberPattern.FindString(lowered); m != "" {
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil
		}
		amount = n
	} else {
		return nil
	}

	switch {
	case containsAny(lowered, belowWords):
		return &Constraint{Kind: Below, Max: amount, MaxNative: amount * nativePerYen}
	case containsAny(lowered, aboveWords):
		return &Constraint{Kind: Above, Min: amount, MinNative: amount * nativePerYen}
	case containsAny(lowered, aroundWords):
		return &Constraint{
			Kind:      Around,
			Min:       amount * (1 - aroundBand),
			Max:       amount * (1 + aroundBand),
			Target:    amount,
			MinNative: amount * (1 - aroundBand) * nativePerYen,
			MaxNative: amount * (1 + aroundBand) * nativePerYen,
		}
	default:
		return &Constraint{Kind: Below, Max: amount, MaxNative: amount * nativePerYen}
	}
}

// Allows reports whether a JPY price satisfies the constraint.
func (c *Constraint) Allows(priceJPY float64) bool {
	if c == nil {
		return true
	}
	switch c.Kind {
	case Below:
		return priceJPY <= c.Max
	case Above:
		return priceJPY >= c.Min
	case Around:
		return priceJPY >= c.Min && priceJPY <= c.Max
	}
	return true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
