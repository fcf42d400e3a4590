package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	Comparison   *domain.Comparison `json:"-"`

	// Inputs
	Income       decimal.Decimal       `json:"income"`
	FilingStatus domain.FilingStatus   `json:"filingStatus"`
	CutSavings   decimal.Decimal       `json:"cutSavings"`
	Scope        domain.ReductionScope `json:"reductionScope"`

	// Key Metrics
	RateReduction    decimal.Decimal `json:"rateReduction"`
	CurrentTax       decimal.Decimal `json:"currentTax"`
	NewTax           decimal.Decimal `json:"newTax"`
	TaxSavings       decimal.Decimal `json:"taxSavings"`
	EffectiveRateNew decimal.Decimal `json:"effectiveRateNew"`
	SavingsPerUnit   decimal.Decimal `json:"savingsPerUnit"` // personal savings per unit of aggregate cut

	// Comparison to Base
	NewTaxDiffFromBase  decimal.Decimal `json:"newTaxDiffFromBase"`
	SavingsDiffFromBase decimal.Decimal `json:"savingsDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
	Assumptions        []string           `json:"assumptions"`
}

// MetricsCalculator extracts comparison metrics from engine results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics extracts key metrics from a comparison
func (mc *MetricsCalculator) CalculateMetrics(c *domain.Comparison) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:     c.Scenario.Name,
		Description:      c.Scenario.Description,
		Comparison:       c,
		Income:           c.Scenario.Income,
		FilingStatus:     c.Scenario.FilingStatus,
		CutSavings:       c.Scenario.Savings,
		Scope:            c.Scenario.Scope,
		RateReduction:    c.RateReduction,
		CurrentTax:       c.TotalCurrentTax,
		NewTax:           c.TotalNewTax,
		TaxSavings:       c.Savings,
		EffectiveRateNew: c.EffectiveRateNew,
	}
	if c.Scenario.Savings.IsPositive() {
		result.SavingsPerUnit = c.Savings.Div(c.Scenario.Savings)
	}
	return result
}

// CalculateComparison fills the deltas of scenario relative to base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NewTaxDiffFromBase = scenario.NewTax.Sub(base.NewTax)
	scenario.SavingsDiffFromBase = scenario.TaxSavings.Sub(base.TaxSavings)
	return scenario
}

// GenerateRecommendations highlights the standout alternatives
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Largest personal savings
	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TaxSavings.GreaterThan(best.TaxSavings) {
			best = alt
		}
	}
	if best != compSet.BaseResult {
		recommendations = append(recommendations,
			"Largest Savings: "+best.ScenarioName+" saves "+output.FormatCurrency(best.TaxSavings)+
				" ("+output.FormatCurrency(best.SavingsDiffFromBase)+" more than base)")
	}

	// Best return per unit of aggregate cut
	var efficient *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.CutSavings.IsPositive() {
			continue
		}
		if efficient == nil || alt.SavingsPerUnit.GreaterThan(efficient.SavingsPerUnit) {
			efficient = alt
		}
	}
	if efficient != nil && efficient.SavingsPerUnit.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Most Efficient: %s returns %s per unit of aggregate cut (%s)",
				efficient.ScenarioName, output.FormatNumber(efficient.SavingsPerUnit.Round(2)), efficient.Scope.Label()))
	}

	// Alternatives that change nothing for this taxpayer
	for _, alt := range compSet.AlternativeResults {
		if alt.CutSavings.IsPositive() && alt.TaxSavings.IsZero() {
			recommendations = append(recommendations,
				"No Effect: "+alt.ScenarioName+" does not reach this income's brackets")
		}
	}

	return recommendations
}
