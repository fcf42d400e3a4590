package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func newSolver() *Solver {
	return NewDefaultSolver(calculation.NewCalculationEngine())
}

func singleScenario(income, savings string, scope domain.ReductionScope) domain.Scenario {
	return domain.Scenario{
		Name:         "test",
		Income:       dec(income),
		FilingStatus: domain.FilingSingle,
		Savings:      dec(savings),
		Scope:        scope,
	}
}

func TestSolver_OptimizeSavings(t *testing.T) {
	solver := newSolver()

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:        singleScenario("103350", "0", domain.ScopeAll),
		Target:      OptimizeSavings,
		Constraints: Constraints{TargetSavings: ptr(dec("1033.5"))},
	})
	require.NoError(t, err)
	require.True(t, result.Success, result.ConvergenceInfo)
	require.NotNil(t, result.OptimalSavings)

	got, _ := result.OptimalSavings.Float64()
	assert.InDelta(t, 111.3, got, 0.2)
	assert.InDelta(t, 1033.5, result.Comparison.Savings.InexactFloat64(), 1.0)
	assert.Greater(t, result.Iterations, 0)
}

func TestSolver_OptimizeSavings_TargetMetAtLowerBound(t *testing.T) {
	solver := newSolver()

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:        singleScenario("80000", "0", domain.ScopeAll),
		Target:      OptimizeSavings,
		Constraints: Constraints{TargetSavings: ptr(decimal.Zero)},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.OptimalSavings.IsZero())
	assert.Equal(t, 0, result.Iterations)
}

func TestSolver_OptimizeSavings_Unreachable(t *testing.T) {
	solver := newSolver()

	// Income below the fourth bracket never benefits from a top-four cut
	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:        singleScenario("50000", "0", domain.ScopeTopFour),
		Target:      OptimizeSavings,
		Constraints: Constraints{TargetSavings: ptr(dec("100"))},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ConvergenceInfo, "unreachable")
	assert.True(t, result.Comparison.Savings.IsZero())
}

func TestSolver_OptimizeSavings_RequiresTarget(t *testing.T) {
	solver := newSolver()

	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:   singleScenario("80000", "0", domain.ScopeAll),
		Target: OptimizeSavings,
	})
	var beErr *BreakEvenError
	require.ErrorAs(t, err, &beErr)
	assert.Equal(t, "optimize_savings", beErr.Operation)
}

func TestSolver_OptimizeScopeIncome(t *testing.T) {
	solver := newSolver()

	tests := []struct {
		name     string
		status   domain.FilingStatus
		expected float64
	}{
		// r_top * min4 / (r_top - r_all) with savings 111.3
		{"single", domain.FilingSingle, 139175.5},
		{"married", domain.FilingMarried, 278351.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := singleScenario("0", "111.3", domain.ScopeAll)
			base.FilingStatus = tt.status

			result, err := solver.Optimize(context.Background(), OptimizationRequest{
				Base:   base,
				Target: OptimizeScopeIncome,
			})
			require.NoError(t, err)
			require.True(t, result.Success, result.ConvergenceInfo)
			require.NotNil(t, result.BreakEvenIncome)

			assert.InDelta(t, tt.expected, result.BreakEvenIncome.InexactFloat64(), 2.0)
			require.NotNil(t, result.Comparison)
			require.NotNil(t, result.Alternate)
			assert.Equal(t, domain.ScopeTopFour, result.Comparison.Scenario.Scope)
			assert.Equal(t, domain.ScopeAll, result.Alternate.Scenario.Scope)
			assert.True(t, result.Comparison.Savings.GreaterThanOrEqual(result.Alternate.Savings))
		})
	}
}

func TestSolver_OptimizeScopeIncome_NoCrossing(t *testing.T) {
	solver := newSolver()

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:        singleScenario("0", "111.3", domain.ScopeAll),
		Target:      OptimizeScopeIncome,
		Constraints: Constraints{MaxIncome: ptr(dec("120000"))},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, result.BreakEvenIncome)
	assert.Contains(t, result.ConvergenceInfo, "all-bracket cut saves more")
}

func TestSolver_OptimizeScopeIncome_RequiresSavings(t *testing.T) {
	solver := newSolver()

	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:   singleScenario("100000", "0", domain.ScopeAll),
		Target: OptimizeScopeIncome,
	})
	assert.Error(t, err)
}

func TestSolver_UnsupportedTarget(t *testing.T) {
	solver := newSolver()

	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		Base:   singleScenario("100000", "100", domain.ScopeAll),
		Target: OptimizeAll,
	})
	assert.ErrorContains(t, err, "unsupported optimization target")
}

func TestSolver_Cancelled(t *testing.T) {
	solver := newSolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Optimize(ctx, OptimizationRequest{
		Base:        singleScenario("103350", "0", domain.ScopeAll),
		Target:      OptimizeSavings,
		Constraints: Constraints{TargetSavings: ptr(dec("500"))},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSolver_OptimizeMulti(t *testing.T) {
	solver := newSolver()

	result, err := solver.OptimizeMulti(context.Background(),
		singleScenario("250000", "111.3", domain.ScopeAll),
		Constraints{TargetSavings: ptr(dec("2000"))})
	require.NoError(t, err)
	require.Len(t, result.Results, 3)

	assert.Equal(t, OptimizeSavings, result.Results[0].Request.Target)
	assert.Equal(t, domain.ScopeAll, result.Results[0].Request.Base.Scope)
	assert.Equal(t, domain.ScopeTopFour, result.Results[1].Request.Base.Scope)
	assert.Equal(t, OptimizeScopeIncome, result.Results[2].Request.Target)

	for _, r := range result.Results {
		assert.True(t, r.Success, r.ConvergenceInfo)
	}
	// At 250k the top-four cut is the cheaper way to the same saving
	assert.True(t, result.Results[1].OptimalSavings.LessThan(*result.Results[0].OptimalSavings))
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[len(result.Recommendations)-1], "Cutting top 4 brackets reaches the target")
}

func TestSolver_OptimizeMulti_NothingToSolve(t *testing.T) {
	solver := newSolver()

	_, err := solver.OptimizeMulti(context.Background(), singleScenario("250000", "0", domain.ScopeAll), Constraints{})
	assert.ErrorContains(t, err, "nothing to solve")
}
