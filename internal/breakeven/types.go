package breakeven

import (
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what the solver searches for
type OptimizationTarget string

const (
	// OptimizeSavings finds the aggregate savings figure that gives the
	// taxpayer a target personal tax saving
	OptimizeSavings OptimizationTarget = "savings"
	// OptimizeScopeIncome finds the income at which a top-four cut starts
	// saving as much as an all-bracket cut of the same savings figure
	OptimizeScopeIncome OptimizationTarget = "scope_income"
	OptimizeAll         OptimizationTarget = "all"
)

// ParseTarget normalizes user input into a target
func ParseTarget(s string) (OptimizationTarget, error) {
	switch OptimizationTarget(s) {
	case OptimizeSavings, OptimizeScopeIncome, OptimizeAll:
		return OptimizationTarget(s), nil
	case "income":
		return OptimizeScopeIncome, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown target " + s + " (valid: savings, scope_income, all)"}
}

// Constraints bound the search
type Constraints struct {
	// Aggregate savings search range
	MinSavings *decimal.Decimal `json:"minSavings,omitempty"`
	MaxSavings *decimal.Decimal `json:"maxSavings,omitempty"`

	// Income search range for the scope break-even
	MinIncome *decimal.Decimal `json:"minIncome,omitempty"`
	MaxIncome *decimal.Decimal `json:"maxIncome,omitempty"`

	// Personal tax saving to reach, required for OptimizeSavings
	TargetSavings *decimal.Decimal `json:"targetSavings,omitempty"`
}

// OptimizationRequest defines the parameters for one solver run
type OptimizationRequest struct {
	Base          domain.Scenario    `json:"base"`
	Target        OptimizationTarget `json:"target"`
	Constraints   Constraints        `json:"constraints"`
	MaxIterations int                `json:"maxIterations"`
	Tolerance     decimal.Decimal    `json:"tolerance"` // dollars of personal tax saving, or of income for the scope search
}

// OptimizationResult contains the outcome of one solver run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergenceInfo"`

	// OptimizeSavings
	OptimalSavings *decimal.Decimal `json:"optimalSavings,omitempty"`

	// OptimizeScopeIncome
	BreakEvenIncome *decimal.Decimal `json:"breakEvenIncome,omitempty"`

	// Comparison at the solution. For the scope break-even this is the
	// top-four side and Alternate is the all-bracket side.
	Comparison *domain.Comparison `json:"comparison,omitempty"`
	Alternate  *domain.Comparison `json:"alternate,omitempty"`
}

// MultiResult collects the runs of OptimizeMulti
type MultiResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal
	MaxIterations int
	MaxIncome     decimal.Decimal
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // $1 of personal saving
		MaxIterations: 100,
		MaxIncome:     decimal.NewFromInt(10_000_000),
	}
}

// Validate checks that constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinSavings != nil && c.MinSavings.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min savings cannot be negative", Cause: domain.ErrNegativeSavings}
	}
	if c.MinSavings != nil && c.MaxSavings != nil && c.MinSavings.GreaterThan(*c.MaxSavings) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min savings cannot be greater than max savings"}
	}
	if c.MinIncome != nil && c.MaxIncome != nil && c.MinIncome.GreaterThan(*c.MaxIncome) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min income cannot be greater than max income"}
	}
	if c.TargetSavings != nil && c.TargetSavings.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "target savings cannot be negative"}
	}
	return nil
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
