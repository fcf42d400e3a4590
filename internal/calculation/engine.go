package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates a current-law versus rate-cut comparison
type CalculationEngine struct {
	Tables     *BracketTables
	Calculator *BracketTaxCalculator
	Adjuster   *BracketAdjuster
	Logger     Logger
	Debug      bool // Enable debug output for per-bracket detail
}

// NewCalculationEngine creates a new calculation engine with the built-in tables and cost model
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Tables:     NewBracketTables(),
		Calculator: NewBracketTaxCalculator(),
		Adjuster:   NewBracketAdjuster(),
		Logger:     NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates a new calculation engine honoring the
// table and cost-model overrides of an input file
func NewCalculationEngineWithConfig(config *domain.Configuration) (*CalculationEngine, error) {
	engine := NewCalculationEngine()
	if config == nil {
		return engine, nil
	}

	tables, err := NewBracketTablesWithConfig(config.TaxYear, config.Brackets)
	if err != nil {
		return nil, fmt.Errorf("failed to load bracket tables: %w", err)
	}
	engine.Tables = tables

	if config.CostModel != nil {
		engine.Adjuster = NewBracketAdjusterWithConfig(*config.CostModel)
	}
	return engine, nil
}

// SetLogger sets the logger. Nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Compare computes the scenario's tax under current law and under the
// adjusted table, pairing the two breakdowns row by row.
func (ce *CalculationEngine) Compare(ctx context.Context, scenario domain.Scenario) (*domain.Comparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := ce.Tables.Lookup(scenario.FilingStatus)
	if err != nil {
		return nil, err
	}
	adjusted, err := ce.Adjuster.Adjust(current, scenario.Savings, scenario.Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust brackets: %w", err)
	}
	reduction, err := ce.Adjuster.RateReduction(scenario.Savings, scenario.Scope)
	if err != nil {
		return nil, err
	}

	income := scenario.Income
	if income.IsNegative() {
		income = decimal.Zero
	}

	currentLines := ce.Calculator.Compute(income, current)
	adjustedLines := ce.Calculator.Compute(income, adjusted)

	result := &domain.Comparison{
		Scenario:          scenario,
		TaxYear:           ce.Tables.Year,
		RateReduction:     reduction,
		CurrentBrackets:   current,
		AdjustedBrackets:  adjusted,
		CurrentBreakdown:  currentLines,
		AdjustedBreakdown: adjustedLines,
		Rows:              pairRows(currentLines, adjustedLines),
		TotalTaxable:      TotalTaxable(currentLines),
		TotalCurrentTax:   TotalTax(currentLines),
		TotalNewTax:       TotalTax(adjustedLines),
	}
	result.Savings = result.TotalCurrentTax.Sub(result.TotalNewTax)
	if income.IsPositive() {
		result.EffectiveRateCurrent = result.TotalCurrentTax.Div(income)
		result.EffectiveRateNew = result.TotalNewTax.Div(income)
	}

	ce.Logger.Debugf("compare %q: income=%s status=%s savings=%s scope=%s reduction=%s",
		scenario.Name, income, scenario.FilingStatus, scenario.Savings, scenario.Scope, reduction)
	if ce.Debug {
		for _, row := range result.Rows {
			ce.Logger.Debugf("  bracket %d taxable=%s current=%s@%s new=%s",
				row.BracketIndex, row.Taxable.StringFixed(2), row.CurrentTax.StringFixed(2), row.CurrentRate, row.NewTax.StringFixed(2))
		}
	}
	ce.Logger.Infof("compare %q: current=%s new=%s savings=%s", scenario.Name,
		result.TotalCurrentTax.StringFixed(2), result.TotalNewTax.StringFixed(2), result.Savings.StringFixed(2))

	return result, nil
}

// RunScenarios compares every scenario in order, stopping at the first failure
func (ce *CalculationEngine) RunScenarios(ctx context.Context, scenarios []domain.Scenario) ([]*domain.Comparison, error) {
	results := make([]*domain.Comparison, 0, len(scenarios))
	for i, s := range scenarios {
		cmp, err := ce.Compare(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i+1, s.Name, err)
		}
		results = append(results, cmp)
	}
	return results, nil
}

// pairRows joins breakdowns by position. The adjusted breakdown never has more
// rows than the current one since both share bounds.
func pairRows(current, adjusted []domain.BracketTaxLine) []domain.ComparisonRow {
	rows := make([]domain.ComparisonRow, len(current))
	for i, c := range current {
		row := domain.ComparisonRow{
			BracketIndex: c.BracketIndex,
			RangeMin:     c.RangeMin,
			RangeMax:     c.RangeMax,
			Taxable:      c.TaxableAmount,
			CurrentRate:  c.Rate,
			CurrentTax:   c.Tax,
		}
		if i < len(adjusted) {
			rate := adjusted[i].Rate
			row.NewRate = &rate
			row.NewTax = adjusted[i].Tax
		}
		rows[i] = row
	}
	return rows
}
