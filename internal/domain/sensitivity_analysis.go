package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sweepable scenario inputs
const (
	ParamIncome  = "income"
	ParamSavings = "savings"
)

// Sweep size limits
const (
	MaxSensitivitySteps = 100
	MaxMatrixCells      = 2500
)

// SensitivityParameter represents a scenario input to sweep
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "dollars" or "savings"
	Description string          `yaml:"description" json:"description"`
}

// Validate checks the sweep range
func (p SensitivityParameter) Validate() error {
	switch p.Name {
	case ParamIncome, ParamSavings:
	default:
		return fmt.Errorf("unknown sensitivity parameter %q (valid: %s, %s)", p.Name, ParamIncome, ParamSavings)
	}
	if p.MinValue.IsNegative() {
		return fmt.Errorf("%s: minimum cannot be negative", p.Name)
	}
	if p.MaxValue.LessThan(p.MinValue) {
		return fmt.Errorf("%s: maximum %s is below minimum %s", p.Name, p.MaxValue, p.MinValue)
	}
	if p.Steps < 1 || p.Steps > MaxSensitivitySteps {
		return fmt.Errorf("%s: steps must be between 1 and %d, got %d", p.Name, MaxSensitivitySteps, p.Steps)
	}
	return nil
}

// Values returns the evenly spaced sweep points, min and max included.
// A single step yields just the minimum.
func (p SensitivityParameter) Values() []decimal.Decimal {
	if p.Steps <= 1 {
		return []decimal.Decimal{p.MinValue}
	}
	values := make([]decimal.Decimal, 0, p.Steps)
	step := p.MaxValue.Sub(p.MinValue).Div(decimal.NewFromInt(int64(p.Steps - 1)))
	for i := 0; i < p.Steps; i++ {
		values = append(values, p.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i)))).Round(2))
	}
	return values
}

// ParameterSensitivityAnalysis represents a complete sweep of one or more parameters
type ParameterSensitivityAnalysis struct {
	BaseScenarioName string                 `json:"baseScenarioName"`
	Base             Scenario               `json:"base"`
	Parameters       []SensitivityParameter `json:"parameters"`
	Results          []SensitivityResult    `json:"results"`
	Summary          SensitivitySummary     `json:"summary"`
	AnalysisType     string                 `json:"analysisType"` // "single", "multi"
}

// SensitivityResult is one sweep point
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameterValues"`
	ScenarioName    string                     `json:"scenarioName"`
	KeyMetrics      SensitivityMetrics         `json:"keyMetrics"`
}

// SensitivityMetrics are the comparison figures tracked across a sweep
type SensitivityMetrics struct {
	CurrentTax       decimal.Decimal `json:"currentTax"`
	NewTax           decimal.Decimal `json:"newTax"`
	Savings          decimal.Decimal `json:"savings"`
	RateReduction    decimal.Decimal `json:"rateReduction"`
	EffectiveRateNew decimal.Decimal `json:"effectiveRateNew"`
	SavingsChange    decimal.Decimal `json:"savingsChange"` // versus the base scenario
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"` // spread of personal saving per parameter
	Recommendations        []string                   `json:"recommendations"`
}

// SensitivityMatrix represents a 2D parameter sweep
type SensitivityMatrix struct {
	Base          Scenario                 `json:"base"`
	Parameter1    SensitivityParameter     `json:"parameter1"`
	Parameter2    SensitivityParameter     `json:"parameter2"`
	MatrixResults [][]SensitivityResult    `json:"matrixResults"`
	Summary       SensitivityMatrixSummary `json:"summary"`
}

// SensitivityMatrixSummary provides matrix analysis summary
type SensitivityMatrixSummary struct {
	MaxSavings      decimal.Decimal `json:"maxSavings"`
	MaxSavingsAt    string          `json:"maxSavingsAt"`
	MinSavings      decimal.Decimal `json:"minSavings"`
	MinSavingsAt    string          `json:"minSavingsAt"`
	Recommendations []string        `json:"recommendations"`
}

// Common sensitivity parameters
var (
	IncomeParam = SensitivityParameter{
		Name:        ParamIncome,
		MinValue:    decimal.NewFromInt(50_000),
		MaxValue:    decimal.NewFromInt(500_000),
		Steps:       10,
		Unit:        "dollars",
		Description: "Taxable income",
	}

	SavingsParam = SensitivityParameter{
		Name:        ParamSavings,
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromInt(500),
		Steps:       6,
		Unit:        "savings",
		Description: "Aggregate revenue savings funding the cut",
	}
)

// GetCommonParameters returns a list of common sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{IncomeParam, SavingsParam}
}

// LookupParameter returns the common parameter with the given name
func LookupParameter(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}
