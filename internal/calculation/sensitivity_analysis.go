package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer sweeps scenario inputs through the engine
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer. Nil uses a
// default engine.
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeSingleParameter sweeps one input, holding the rest of base fixed
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	base domain.Scenario,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if err := parameter.Validate(); err != nil {
		return nil, err
	}
	parameter.BaseValue = parameterValue(base, parameter.Name)

	baseMetrics, err := sa.metrics(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to run base scenario: %w", err)
	}

	values := parameter.Values()
	results := make([]domain.SensitivityResult, 0, len(values))
	for _, value := range values {
		scenario := withParameter(base, parameter.Name, value)
		metrics, err := sa.metrics(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("failed to run scenario for %s=%s: %w", parameter.Name, value, err)
		}
		metrics.SavingsChange = metrics.Savings.Sub(baseMetrics.Savings)

		results = append(results, domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{parameter.Name: value},
			ScenarioName:    scenario.Name,
			KeyMetrics:      metrics,
		})
	}

	return &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: base.Name,
		Base:             base,
		Parameters:       []domain.SensitivityParameter{parameter},
		Results:          results,
		Summary:          sa.calculateSensitivitySummary(results, []domain.SensitivityParameter{parameter}),
		AnalysisType:     "single",
	}, nil
}

// AnalyzeMultipleParameters sweeps each parameter independently around base
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	base domain.Scenario,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	var (
		allResults    []domain.SensitivityResult
		allParameters []domain.SensitivityParameter
	)
	for _, param := range parameters {
		analysis, err := sa.AnalyzeSingleParameter(ctx, base, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		allResults = append(allResults, analysis.Results...)
		allParameters = append(allParameters, analysis.Parameters...)
	}

	return &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: base.Name,
		Base:             base,
		Parameters:       allParameters,
		Results:          allResults,
		Summary:          sa.calculateSensitivitySummary(allResults, allParameters),
		AnalysisType:     "multi",
	}, nil
}

// AnalyzeParameterMatrix sweeps two parameters jointly
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	ctx context.Context,
	base domain.Scenario,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {
	for _, p := range []domain.SensitivityParameter{param1, param2} {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if param1.Name == param2.Name {
		return nil, fmt.Errorf("matrix analysis needs two different parameters, got %s twice", param1.Name)
	}
	if cells := param1.Steps * param2.Steps; cells > domain.MaxMatrixCells {
		return nil, fmt.Errorf("matrix of %dx%d has %d cells, limit is %d", param1.Steps, param2.Steps, cells, domain.MaxMatrixCells)
	}
	param1.BaseValue = parameterValue(base, param1.Name)
	param2.BaseValue = parameterValue(base, param2.Name)

	baseMetrics, err := sa.metrics(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to run base scenario: %w", err)
	}

	values1, values2 := param1.Values(), param2.Values()
	matrixResults := make([][]domain.SensitivityResult, len(values1))
	for i, v1 := range values1 {
		matrixResults[i] = make([]domain.SensitivityResult, len(values2))
		for j, v2 := range values2 {
			scenario := withParameter(withParameter(base, param1.Name, v1), param2.Name, v2)
			metrics, err := sa.metrics(ctx, scenario)
			if err != nil {
				return nil, fmt.Errorf("failed to run scenario for %s=%s, %s=%s: %w", param1.Name, v1, param2.Name, v2, err)
			}
			metrics.SavingsChange = metrics.Savings.Sub(baseMetrics.Savings)
			matrixResults[i][j] = domain.SensitivityResult{
				ParameterValues: map[string]decimal.Decimal{param1.Name: v1, param2.Name: v2},
				ScenarioName:    scenario.Name,
				KeyMetrics:      metrics,
			}
		}
	}

	return &domain.SensitivityMatrix{
		Base:          base,
		Parameter1:    param1,
		Parameter2:    param2,
		MatrixResults: matrixResults,
		Summary:       sa.calculateMatrixSummary(matrixResults, param1, param2),
	}, nil
}

func (sa *SensitivityAnalyzer) metrics(ctx context.Context, scenario domain.Scenario) (domain.SensitivityMetrics, error) {
	cmp, err := sa.calculationEngine.Compare(ctx, scenario)
	if err != nil {
		return domain.SensitivityMetrics{}, err
	}
	return domain.SensitivityMetrics{
		CurrentTax:       cmp.TotalCurrentTax,
		NewTax:           cmp.TotalNewTax,
		Savings:          cmp.Savings,
		RateReduction:    cmp.RateReduction,
		EffectiveRateNew: cmp.EffectiveRateNew,
	}, nil
}

func parameterValue(s domain.Scenario, name string) decimal.Decimal {
	switch name {
	case domain.ParamIncome:
		return s.Income
	case domain.ParamSavings:
		return s.Savings
	}
	return decimal.Zero
}

func withParameter(s domain.Scenario, name string, value decimal.Decimal) domain.Scenario {
	switch name {
	case domain.ParamIncome:
		s.Income = value
	case domain.ParamSavings:
		s.Savings = value
	}
	s.Name = fmt.Sprintf("%s_%s_%s", scenarioPrefix(s.Name), name, value.String())
	return s
}

func scenarioPrefix(name string) string {
	if name == "" {
		return "base"
	}
	return name
}

// calculateSensitivitySummary scores each parameter by how far personal
// saving moves across its sweep
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(results []domain.SensitivityResult, parameters []domain.SensitivityParameter) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{SensitivityScores: map[string]decimal.Decimal{}}
	if len(results) == 0 {
		return summary
	}

	maxScore := decimal.NewFromInt(-1)
	for _, param := range parameters {
		swept := lo.Filter(results, func(r domain.SensitivityResult, _ int) bool {
			_, ok := r.ParameterValues[param.Name]
			return ok && len(r.ParameterValues) == 1
		})
		if len(swept) == 0 {
			continue
		}
		savings := lo.Map(swept, func(r domain.SensitivityResult, _ int) decimal.Decimal { return r.KeyMetrics.Savings })
		lowest, highest := decimal.Min(savings[0], savings[1:]...), decimal.Max(savings[0], savings[1:]...)
		score := highest.Sub(lowest)
		summary.SensitivityScores[param.Name] = score

		if score.GreaterThan(maxScore) {
			maxScore = score
			summary.MostSensitiveParameter = param.Name
		}

		summary.Recommendations = append(summary.Recommendations, fmt.Sprintf(
			"Personal saving ranges from $%s to $%s as %s moves from %s to %s",
			lowest.StringFixed(0), highest.StringFixed(0), param.Name,
			param.MinValue.String(), param.MaxValue.String()))
		if lowest.IsZero() && param.Name == domain.ParamIncome {
			summary.Recommendations = append(summary.Recommendations,
				"Some incomes in the sweep receive no saving from this cut")
		}
	}
	return summary
}

// calculateMatrixSummary locates the grid points with the largest and smallest saving
func (sa *SensitivityAnalyzer) calculateMatrixSummary(matrixResults [][]domain.SensitivityResult, param1, param2 domain.SensitivityParameter) domain.SensitivityMatrixSummary {
	flat := lo.Flatten(matrixResults)
	if len(flat) == 0 {
		return domain.SensitivityMatrixSummary{}
	}

	maxResult := lo.MaxBy(flat, func(a, b domain.SensitivityResult) bool {
		return a.KeyMetrics.Savings.GreaterThan(b.KeyMetrics.Savings)
	})
	minResult := lo.MinBy(flat, func(a, b domain.SensitivityResult) bool {
		return a.KeyMetrics.Savings.LessThan(b.KeyMetrics.Savings)
	})
	at := func(r domain.SensitivityResult) string {
		return fmt.Sprintf("%s=%s, %s=%s",
			param1.Name, r.ParameterValues[param1.Name], param2.Name, r.ParameterValues[param2.Name])
	}

	return domain.SensitivityMatrixSummary{
		MaxSavings:   maxResult.KeyMetrics.Savings,
		MaxSavingsAt: at(maxResult),
		MinSavings:   minResult.KeyMetrics.Savings,
		MinSavingsAt: at(minResult),
		Recommendations: []string{
			fmt.Sprintf("Largest personal saving $%s at %s", maxResult.KeyMetrics.Savings.StringFixed(0), at(maxResult)),
			fmt.Sprintf("Smallest personal saving $%s at %s", minResult.KeyMetrics.Savings.StringFixed(0), at(minResult)),
		},
	}
}
