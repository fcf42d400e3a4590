package domain

import (
	"github.com/shopspring/decimal"
)

// CostModel is the external revenue-per-point estimate: how much aggregate
// savings buys one percentage point of rate reduction under each scope.
type CostModel struct {
	PerPointAll     decimal.Decimal `yaml:"per_point_all" json:"perPointAll"`
	PerPointTopFour decimal.Decimal `yaml:"per_point_top_four" json:"perPointTopFour"`
}

// BracketTableConfig overrides the built-in bracket tables
type BracketTableConfig struct {
	Single  []Bracket `yaml:"single,omitempty" json:"single,omitempty"`
	Married []Bracket `yaml:"married,omitempty" json:"married,omitempty"`
}

// ScenarioOverride is a named variation on the base scenario. Unset fields inherit.
type ScenarioOverride struct {
	Name         string           `yaml:"name" json:"name"`
	Description  string           `yaml:"description,omitempty" json:"description,omitempty"`
	Income       *decimal.Decimal `yaml:"income,omitempty" json:"income,omitempty"`
	FilingStatus FilingStatus     `yaml:"filing_status,omitempty" json:"filingStatus,omitempty"`
	Savings      *decimal.Decimal `yaml:"savings,omitempty" json:"savings,omitempty"`
	Scope        ReductionScope   `yaml:"reduction_scope,omitempty" json:"reductionScope,omitempty"`
}

// Configuration represents a complete scenario input file
type Configuration struct {
	TaxYear   int                 `yaml:"tax_year,omitempty" json:"taxYear,omitempty"`
	Base      Scenario            `yaml:",inline" json:"base"`
	CostModel *CostModel          `yaml:"cost_model,omitempty" json:"costModel,omitempty"`
	Brackets  *BracketTableConfig `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	Scenarios []ScenarioOverride  `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// ResolveScenarios returns the base scenario followed by every override applied on top of it
func (c *Configuration) ResolveScenarios() []Scenario {
	base := c.Base
	if base.Name == "" {
		base.Name = "base"
	}

	out := make([]Scenario, 0, len(c.Scenarios)+1)
	out = append(out, base)
	for _, o := range c.Scenarios {
		s := base
		s.Name = o.Name
		s.Description = o.Description
		if o.Income != nil {
			s.Income = *o.Income
		}
		if o.FilingStatus != "" {
			s.FilingStatus = o.FilingStatus
		}
		if o.Savings != nil {
			s.Savings = *o.Savings
		}
		if o.Scope != "" {
			s.Scope = o.Scope
		}
		out = append(out, s)
	}
	return out
}
