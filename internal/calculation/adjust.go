package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Revenue cost, in the same units as the savings figure, of lowering rates by
// one percentage point. The top-four figure is half of 57.3.
var (
	CostPerRatePointAll     = decimal.RequireFromString("111.3")
	CostPerRatePointTopFour = decimal.RequireFromString("28.65")
)

var hundred = decimal.NewFromInt(100)

// BracketAdjuster derives a hypothetical bracket table from a savings figure
type BracketAdjuster struct {
	CostModel domain.CostModel
}

// DefaultCostModel returns the built-in cost-per-point estimates
func DefaultCostModel() domain.CostModel {
	return domain.CostModel{
		PerPointAll:     CostPerRatePointAll,
		PerPointTopFour: CostPerRatePointTopFour,
	}
}

// NewBracketAdjuster creates an adjuster using the default cost model
func NewBracketAdjuster() *BracketAdjuster {
	return &BracketAdjuster{CostModel: DefaultCostModel()}
}

// NewBracketAdjusterWithConfig creates an adjuster with a custom cost model.
// Zero entries fall back to the defaults.
func NewBracketAdjusterWithConfig(model domain.CostModel) *BracketAdjuster {
	def := DefaultCostModel()
	if !model.PerPointAll.IsPositive() {
		model.PerPointAll = def.PerPointAll
	}
	if !model.PerPointTopFour.IsPositive() {
		model.PerPointTopFour = def.PerPointTopFour
	}
	return &BracketAdjuster{CostModel: model}
}

// CostPerPoint returns the savings needed for one point of reduction under scope
func (ba *BracketAdjuster) CostPerPoint(scope domain.ReductionScope) (decimal.Decimal, error) {
	switch scope {
	case domain.ScopeAll:
		return ba.CostModel.PerPointAll, nil
	case domain.ScopeTopFour:
		return ba.CostModel.PerPointTopFour, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownScope, scope)
	}
}

// RateReduction converts savings into a rate delta expressed as a fraction
// (0.01 is one percentage point).
func (ba *BracketAdjuster) RateReduction(savings decimal.Decimal, scope domain.ReductionScope) (decimal.Decimal, error) {
	if savings.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrNegativeSavings, savings)
	}
	cost, err := ba.CostPerPoint(scope)
	if err != nil {
		return decimal.Zero, err
	}
	return savings.Div(cost).Div(hundred), nil
}

// Adjust returns a new table with the reduction subtracted from every bracket
// the scope covers, floored at zero. Bounds are carried through unchanged and
// the input table is never modified.
func (ba *BracketAdjuster) Adjust(brackets []domain.Bracket, savings decimal.Decimal, scope domain.ReductionScope) ([]domain.Bracket, error) {
	if err := domain.ValidateBrackets(brackets); err != nil {
		return nil, err
	}
	reduction, err := ba.RateReduction(savings, scope)
	if err != nil {
		return nil, err
	}

	return lo.Map(brackets, func(b domain.Bracket, i int) domain.Bracket {
		if !scope.Applies(i) {
			return b.WithRate(b.Rate)
		}
		return b.WithRate(decimal.Max(b.Rate.Sub(reduction), decimal.Zero))
	}), nil
}
