package breakeven

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
)

// OptimizeMulti runs every target that the inputs allow: the savings search
// under both scopes when a target saving is set, and the scope break-even
// income when the base scenario carries a positive savings figure.
func (s *Solver) OptimizeMulti(ctx context.Context, base domain.Scenario, constraints Constraints) (*MultiResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	var requests []OptimizationRequest
	if constraints.TargetSavings != nil {
		for _, scope := range []domain.ReductionScope{domain.ScopeAll, domain.ScopeTopFour} {
			sc := base
			sc.Scope = scope
			requests = append(requests, OptimizationRequest{Base: sc, Target: OptimizeSavings, Constraints: constraints})
		}
	}
	if base.Savings.IsPositive() {
		requests = append(requests, OptimizationRequest{Base: base, Target: OptimizeScopeIncome, Constraints: constraints})
	}
	if len(requests) == 0 {
		return nil, &BreakEvenError{Operation: "optimize_multi", Message: "nothing to solve: set a target saving or a positive savings figure"}
	}

	multi := &MultiResult{}
	for _, req := range requests {
		result, err := s.Optimize(ctx, req)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_multi", Message: fmt.Sprintf("failed to optimize %s/%s", req.Target, req.Base.Scope), Cause: err}
		}
		multi.Results = append(multi.Results, *result)
	}

	multi.Recommendations = recommendations(multi.Results)
	return multi, nil
}

func recommendations(results []OptimizationResult) []string {
	var recs []string

	bySavingsScope := map[domain.ReductionScope]*OptimizationResult{}
	for i := range results {
		r := &results[i]
		switch r.Request.Target {
		case OptimizeSavings:
			if r.Success && r.OptimalSavings != nil {
				bySavingsScope[r.Request.Base.Scope] = r
			} else {
				recs = append(recs, fmt.Sprintf("Cutting %s cannot reach the target saving for this filer.", scopePhrase(r.Request.Base.Scope)))
			}
		case OptimizeScopeIncome:
			if r.Success && r.BreakEvenIncome != nil {
				recs = append(recs, fmt.Sprintf("Above %s of income, cutting only the top four brackets saves this filer more than cutting all brackets.",
					output.FormatCurrency(*r.BreakEvenIncome)))
			} else {
				recs = append(recs, "Cutting all brackets saves this filer more at every income searched.")
			}
		}
	}

	all, top := bySavingsScope[domain.ScopeAll], bySavingsScope[domain.ScopeTopFour]
	if all != nil && top != nil {
		cheaper, other := all, top
		if top.OptimalSavings.LessThan(*all.OptimalSavings) {
			cheaper, other = top, all
		}
		recs = append(recs, fmt.Sprintf("Cutting %s reaches the target with savings of %s versus %s for cutting %s.",
			scopePhrase(cheaper.Request.Base.Scope), output.FormatNumber(*cheaper.OptimalSavings),
			output.FormatNumber(*other.OptimalSavings), scopePhrase(other.Request.Base.Scope)))
	}
	return recs
}

func scopePhrase(scope domain.ReductionScope) string {
	return strings.ToLower(scope.Label())
}
