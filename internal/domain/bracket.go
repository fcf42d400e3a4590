package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is a contiguous income range taxed at a single marginal rate.
// A nil Max marks the unbounded top bracket.
type Bracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// NewBracket builds a bounded bracket from whole-dollar bounds
func NewBracket(min, max int64, rate string) Bracket {
	upper := decimal.NewFromInt(max)
	return Bracket{Min: decimal.NewFromInt(min), Max: &upper, Rate: decimal.RequireFromString(rate)}
}

// NewTopBracket builds the unbounded top bracket
func NewTopBracket(min int64, rate string) Bracket {
	return Bracket{Min: decimal.NewFromInt(min), Rate: decimal.RequireFromString(rate)}
}

// Unbounded reports whether the bracket has no upper limit
func (b Bracket) Unbounded() bool {
	return b.Max == nil
}

// Width returns Max-Min. The second result is false for the unbounded bracket.
func (b Bracket) Width() (decimal.Decimal, bool) {
	if b.Max == nil {
		return decimal.Zero, false
	}
	return b.Max.Sub(b.Min), true
}

// WithRate returns a copy of the bracket carrying a different rate
func (b Bracket) WithRate(rate decimal.Decimal) Bracket {
	out := Bracket{Min: b.Min, Rate: rate}
	if b.Max != nil {
		upper := *b.Max
		out.Max = &upper
	}
	return out
}

// CloneBrackets returns a deep copy of a bracket table
func CloneBrackets(brackets []Bracket) []Bracket {
	out := make([]Bracket, len(brackets))
	for i, b := range brackets {
		out[i] = b.WithRate(b.Rate)
	}
	return out
}

// ValidateBrackets checks the ordering invariant every bracket table must hold:
// non-empty, starting at or above zero, contiguous, strictly increasing bounds,
// rates within [0,1], and only the last bracket unbounded.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: table is empty", ErrInvalidBrackets)
	}
	if brackets[0].Min.IsNegative() {
		return fmt.Errorf("%w: first bracket starts below zero", ErrInvalidBrackets)
	}

	last := len(brackets) - 1
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1]", ErrInvalidBrackets, i+1, b.Rate)
		}
		if i == last {
			if !b.Unbounded() {
				return fmt.Errorf("%w: top bracket must be unbounded", ErrInvalidBrackets)
			}
		} else {
			if b.Unbounded() {
				return fmt.Errorf("%w: bracket %d is unbounded but not last", ErrInvalidBrackets, i+1)
			}
			if !b.Max.GreaterThan(b.Min) {
				return fmt.Errorf("%w: bracket %d max %s not above min %s", ErrInvalidBrackets, i+1, b.Max, b.Min)
			}
		}
		if i > 0 && !b.Min.Equal(*brackets[i-1].Max) {
			return fmt.Errorf("%w: bracket %d starts at %s, previous ends at %s",
				ErrInvalidBrackets, i+1, b.Min, brackets[i-1].Max)
		}
	}
	return nil
}

// BracketTaxLine is one row of a tax breakdown
type BracketTaxLine struct {
	BracketIndex  int              `json:"bracket"` // 1-based among included brackets
	RangeMin      decimal.Decimal  `json:"rangeMin"`
	RangeMax      *decimal.Decimal `json:"rangeMax"`
	TaxableAmount decimal.Decimal  `json:"taxable"`
	Rate          decimal.Decimal  `json:"rate"`
	Tax           decimal.Decimal  `json:"tax"`
}
