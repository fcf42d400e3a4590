package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

// SetSavings replaces the aggregate savings figure that drives the rate cut.
type SetSavings struct {
	Amount decimal.Decimal
}

func (t SetSavings) Name() string { return "set_savings" }

func (t SetSavings) Description() string {
	return fmt.Sprintf("Set tax-cut savings to %s", t.Amount.String())
}

func (t SetSavings) Apply(s domain.Scenario) (domain.Scenario, error) {
	if t.Amount.IsNegative() {
		return s, invalid(t, "savings must be non-negative", domain.ErrNegativeSavings)
	}
	s.Savings = t.Amount
	return s, nil
}

// SetScope chooses which brackets the cut applies to.
type SetScope struct {
	Scope domain.ReductionScope
}

func (t SetScope) Name() string { return "set_scope" }

func (t SetScope) Description() string {
	return fmt.Sprintf("Apply the cut to %s", t.Scope.Label())
}

func (t SetScope) Apply(s domain.Scenario) (domain.Scenario, error) {
	if !t.Scope.Valid() {
		return s, invalid(t, fmt.Sprintf("scope %q", t.Scope), domain.ErrUnknownScope)
	}
	s.Scope = t.Scope
	return s, nil
}

// SetFilingStatus switches the bracket table used for the taxpayer.
type SetFilingStatus struct {
	Status domain.FilingStatus
}

func (t SetFilingStatus) Name() string { return "set_filing_status" }

func (t SetFilingStatus) Description() string {
	return fmt.Sprintf("File as %s", t.Status.Label())
}

func (t SetFilingStatus) Apply(s domain.Scenario) (domain.Scenario, error) {
	if !t.Status.Valid() {
		return s, invalid(t, fmt.Sprintf("status %q", t.Status), domain.ErrUnknownFilingStatus)
	}
	s.FilingStatus = t.Status
	return s, nil
}

// SetIncome replaces the taxpayer's income. Negative amounts clamp to zero.
type SetIncome struct {
	Amount decimal.Decimal
}

func (t SetIncome) Name() string { return "set_income" }

func (t SetIncome) Description() string {
	return fmt.Sprintf("Set income to %s", t.Amount.String())
}

func (t SetIncome) Apply(s domain.Scenario) (domain.Scenario, error) {
	s.Income = decimal.Max(t.Amount, decimal.Zero)
	return s, nil
}

// ScaleIncome multiplies income by a factor, for "what if I earned 10% more" questions.
type ScaleIncome struct {
	Factor decimal.Decimal
}

func (t ScaleIncome) Name() string { return "scale_income" }

func (t ScaleIncome) Description() string {
	return fmt.Sprintf("Scale income by %s", t.Factor.String())
}

func (t ScaleIncome) Apply(s domain.Scenario) (domain.Scenario, error) {
	if t.Factor.IsNegative() {
		return s, invalid(t, fmt.Sprintf("factor must be non-negative, got %s", t.Factor), nil)
	}
	s.Income = s.Income.Mul(t.Factor)
	return s, nil
}
