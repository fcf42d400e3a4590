package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
	cent    = decimal.RequireFromString("0.01")
)

// Solver searches the savings and income axes with bisection over the engine
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs a single optimization based on the request
func (s *Solver) Optimize(ctx context.Context, request OptimizationRequest) (*OptimizationResult, error) {
	if err := request.Constraints.Validate(); err != nil {
		return nil, err
	}
	if request.MaxIterations <= 0 {
		request.MaxIterations = s.Options.MaxIterations
	}
	if !request.Tolerance.IsPositive() {
		request.Tolerance = s.Options.Tolerance
	}

	switch request.Target {
	case OptimizeSavings:
		return s.optimizeSavings(ctx, request)
	case OptimizeScopeIncome:
		return s.optimizeScopeIncome(ctx, request)
	default:
		return nil, &BreakEvenError{Operation: "optimize", Message: fmt.Sprintf("unsupported optimization target: %s", request.Target)}
	}
}

// optimizeSavings finds the smallest aggregate savings figure whose personal
// saving for the base scenario reaches the target. Personal saving is
// non-decreasing in the savings figure, so bisection applies.
func (s *Solver) optimizeSavings(ctx context.Context, request OptimizationRequest) (*OptimizationResult, error) {
	if request.Constraints.TargetSavings == nil {
		return nil, &BreakEvenError{Operation: "optimize_savings", Message: "target savings is required"}
	}
	target := *request.Constraints.TargetSavings

	low := decimal.Zero
	if request.Constraints.MinSavings != nil {
		low = *request.Constraints.MinSavings
	}
	high, err := s.saturatingSavings(request.Base)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_savings", Message: "failed to size search range", Cause: err}
	}
	if request.Constraints.MaxSavings != nil {
		high = *request.Constraints.MaxSavings
	}

	result := &OptimizationResult{Request: request}

	at := func(savings decimal.Decimal) (*domain.Comparison, error) {
		sc := request.Base
		sc.Savings = savings
		return s.CalcEngine.Compare(ctx, sc)
	}

	lowCmp, err := at(low)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_savings", Message: "failed to evaluate lower bound", Cause: err}
	}
	if lowCmp.Savings.GreaterThanOrEqual(target.Sub(request.Tolerance)) {
		result.Success = true
		result.OptimalSavings = &low
		result.Comparison = lowCmp
		result.ConvergenceInfo = "target met at the lower bound"
		return result, nil
	}

	highCmp, err := at(high)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_savings", Message: "failed to evaluate upper bound", Cause: err}
	}
	if highCmp.Savings.LessThan(target.Sub(request.Tolerance)) {
		result.OptimalSavings = &high
		result.Comparison = highCmp
		result.ConvergenceInfo = fmt.Sprintf("target unreachable: at most $%s personal saving with savings %s",
			highCmp.Savings.StringFixed(2), high.StringFixed(2))
		return result, nil
	}

	best, bestCmp := high, highCmp
	for i := 0; i < request.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{Operation: "optimize_savings", Message: "optimization cancelled", Cause: ctx.Err()}
		default:
		}

		result.Iterations = i + 1
		mid := low.Add(high).Div(two)
		cmp, err := at(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_savings", Message: "failed to calculate scenario", Cause: err}
		}

		diff := cmp.Savings.Sub(target)
		if diff.Abs().LessThanOrEqual(request.Tolerance) {
			best, bestCmp = mid, cmp
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("converged after %d iterations", i+1)
			break
		}
		if diff.IsNegative() {
			low = mid
		} else {
			high = mid
			best, bestCmp = mid, cmp
		}

		if high.Sub(low).LessThan(cent) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("search range collapsed after %d iterations", i+1)
			break
		}
	}
	if !result.Success {
		result.ConvergenceInfo = fmt.Sprintf("no convergence after %d iterations", request.MaxIterations)
	}

	best = best.Round(2)
	result.OptimalSavings = &best
	result.Comparison = bestCmp
	return result, nil
}

// optimizeScopeIncome finds the income at which a top-four cut saves the
// taxpayer as much as an all-bracket cut of the same savings figure. Below the
// fourth bracket the top-four cut saves nothing, so the gap (topFour - all) is
// negative up to the crossing and non-negative past it.
func (s *Solver) optimizeScopeIncome(ctx context.Context, request OptimizationRequest) (*OptimizationResult, error) {
	if !request.Base.Savings.IsPositive() {
		return nil, &BreakEvenError{Operation: "optimize_scope_income", Message: "savings must be positive to compare scopes"}
	}

	low := decimal.Zero
	if request.Constraints.MinIncome != nil {
		low = *request.Constraints.MinIncome
	}
	high := s.Options.MaxIncome
	if request.Constraints.MaxIncome != nil {
		high = *request.Constraints.MaxIncome
	}

	result := &OptimizationResult{Request: request}

	gap := func(income decimal.Decimal) (decimal.Decimal, *domain.Comparison, *domain.Comparison, error) {
		top := request.Base
		top.Income = income
		top.Scope = domain.ScopeTopFour
		all := top
		all.Scope = domain.ScopeAll

		topCmp, err := s.CalcEngine.Compare(ctx, top)
		if err != nil {
			return decimal.Zero, nil, nil, err
		}
		allCmp, err := s.CalcEngine.Compare(ctx, all)
		if err != nil {
			return decimal.Zero, nil, nil, err
		}
		return topCmp.Savings.Sub(allCmp.Savings), topCmp, allCmp, nil
	}

	highGap, topCmp, allCmp, err := gap(high)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_scope_income", Message: "failed to evaluate upper bound", Cause: err}
	}
	if highGap.IsNegative() {
		result.Comparison = topCmp
		result.Alternate = allCmp
		result.ConvergenceInfo = fmt.Sprintf("the all-bracket cut saves more at every income up to %s", high.StringFixed(0))
		return result, nil
	}

	for i := 0; i < request.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{Operation: "optimize_scope_income", Message: "optimization cancelled", Cause: ctx.Err()}
		default:
		}

		result.Iterations = i + 1
		if high.Sub(low).LessThanOrEqual(request.Tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("converged after %d iterations", i+1)
			break
		}

		mid := low.Add(high).Div(two)
		g, t, a, err := gap(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_scope_income", Message: "failed to calculate scenario", Cause: err}
		}
		if g.IsNegative() {
			low = mid
		} else {
			high = mid
			topCmp, allCmp = t, a
		}
	}
	if !result.Success {
		result.ConvergenceInfo = fmt.Sprintf("no convergence after %d iterations", request.MaxIterations)
	}

	income := high.Ceil()
	result.BreakEvenIncome = &income
	result.Comparison = topCmp
	result.Alternate = allCmp
	return result, nil
}

// saturatingSavings returns the savings figure that takes the highest rate in
// the scenario's table to zero. Past it no personal saving can grow.
func (s *Solver) saturatingSavings(base domain.Scenario) (decimal.Decimal, error) {
	table, err := s.CalcEngine.Tables.Lookup(base.FilingStatus)
	if err != nil {
		return decimal.Zero, err
	}
	cost, err := s.CalcEngine.Adjuster.CostPerPoint(base.Scope)
	if err != nil {
		return decimal.Zero, err
	}
	maxRate := decimal.Zero
	for _, b := range table {
		maxRate = decimal.Max(maxRate, b.Rate)
	}
	return maxRate.Mul(hundred).Mul(cost), nil
}
