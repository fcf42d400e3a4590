package domain

import (
	"github.com/shopspring/decimal"
)

// Scenario is the full set of calculator inputs: who is filing, what they earn,
// and which hypothetical cut to compare against current law.
type Scenario struct {
	Name         string          `yaml:"name,omitempty" json:"name,omitempty"`
	Description  string          `yaml:"description,omitempty" json:"description,omitempty"`
	Income       decimal.Decimal `yaml:"income" json:"income"`
	FilingStatus FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	Savings      decimal.Decimal `yaml:"savings" json:"savings"`
	Scope        ReductionScope  `yaml:"reduction_scope" json:"reductionScope"`
}

// ComparisonRow pairs the current-law and adjusted lines for one bracket
type ComparisonRow struct {
	BracketIndex int              `json:"bracket"`
	RangeMin     decimal.Decimal  `json:"rangeMin"`
	RangeMax     *decimal.Decimal `json:"rangeMax"`
	Taxable      decimal.Decimal  `json:"taxable"`
	CurrentRate  decimal.Decimal  `json:"currentRate"`
	CurrentTax   decimal.Decimal  `json:"currentTax"`
	NewRate      *decimal.Decimal `json:"newRate"` // nil when the adjusted breakdown has no matching row
	NewTax       decimal.Decimal  `json:"newTax"`
}

// Comparison is the result of running one scenario against current law
type Comparison struct {
	Scenario      Scenario        `json:"scenario"`
	TaxYear       int             `json:"taxYear"`
	RateReduction decimal.Decimal `json:"rateReduction"`

	CurrentBrackets   []Bracket        `json:"currentBrackets"`
	AdjustedBrackets  []Bracket        `json:"adjustedBrackets"`
	CurrentBreakdown  []BracketTaxLine `json:"currentBreakdown"`
	AdjustedBreakdown []BracketTaxLine `json:"adjustedBreakdown"`
	Rows              []ComparisonRow  `json:"rows"`

	TotalTaxable    decimal.Decimal `json:"totalTaxable"`
	TotalCurrentTax decimal.Decimal `json:"totalCurrentTax"`
	TotalNewTax     decimal.Decimal `json:"totalNewTax"`
	Savings         decimal.Decimal `json:"savings"`

	EffectiveRateCurrent decimal.Decimal `json:"effectiveRateCurrent"`
	EffectiveRateNew     decimal.Decimal `json:"effectiveRateNew"`
}
