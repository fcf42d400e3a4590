package calculation

import (
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Income is treated as taxable income. No deductions, credits or
//    alternative minimum tax are applied.
//
// 2. Brackets are marginal: each slice of income is taxed only at the rate of
//    the bracket it falls in.
//
// 3. A single tax year is modelled. Bracket tables are not inflation indexed.

// BracketTaxCalculator computes a per-bracket tax breakdown
type BracketTaxCalculator struct{}

// NewBracketTaxCalculator creates a new bracket tax calculator
func NewBracketTaxCalculator() *BracketTaxCalculator {
	return &BracketTaxCalculator{}
}

// Compute splits income across ascending brackets and taxes each slice at
// that bracket's rate. Brackets starting at or above income contribute no line,
// and the scan stops once all income is allocated. The result is never nil.
func (btc *BracketTaxCalculator) Compute(income decimal.Decimal, brackets []domain.Bracket) []domain.BracketTaxLine {
	lines := make([]domain.BracketTaxLine, 0, len(brackets))
	if !income.IsPositive() {
		return lines
	}

	remaining := income
	for _, bracket := range brackets {
		if income.LessThanOrEqual(bracket.Min) {
			continue
		}

		taxable := remaining
		if width, bounded := bracket.Width(); bounded {
			taxable = decimal.Min(remaining, width)
		}

		line := domain.BracketTaxLine{
			BracketIndex:  len(lines) + 1,
			RangeMin:      bracket.Min,
			TaxableAmount: taxable,
			Rate:          bracket.Rate,
			Tax:           taxable.Mul(bracket.Rate),
		}
		if bracket.Max != nil {
			upper := *bracket.Max
			line.RangeMax = &upper
		}
		lines = append(lines, line)

		remaining = remaining.Sub(taxable)
		if !remaining.IsPositive() {
			break
		}
	}
	return lines
}

// TotalTax sums the tax column of a breakdown
func TotalTax(lines []domain.BracketTaxLine) decimal.Decimal {
	return lo.Reduce(lines, func(acc decimal.Decimal, l domain.BracketTaxLine, _ int) decimal.Decimal {
		return acc.Add(l.Tax)
	}, decimal.Zero)
}

// TotalTaxable sums the taxable column of a breakdown
func TotalTaxable(lines []domain.BracketTaxLine) decimal.Decimal {
	return lo.Reduce(lines, func(acc decimal.Decimal, l domain.BracketTaxLine, _ int) decimal.Decimal {
		return acc.Add(l.TaxableAmount)
	}, decimal.Zero)
}
