package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/config"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseScenario() domain.Scenario {
	return domain.Scenario{
		Name:         "me",
		Income:       decimal.NewFromInt(103350),
		FilingStatus: domain.FilingSingle,
		Savings:      decimal.RequireFromString("111.3"),
		Scope:        domain.ScopeAll,
	}
}

func TestCompareEngine_Compare_Presets(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine(), nil)

	set, err := ce.Compare(context.Background(), baseScenario(), CompareOptions{
		Presets: []string{"no_cut", "cut_200", "top4_200"},
	})
	require.NoError(t, err)

	assert.Equal(t, "me", set.BaseScenarioName)
	require.NotNil(t, set.BaseResult)
	assert.True(t, set.BaseResult.TaxSavings.Equal(decimal.RequireFromString("1033.5")))
	require.Len(t, set.AlternativeResults, 3)

	noCut := set.AlternativeResults[0]
	assert.True(t, noCut.TaxSavings.IsZero())
	assert.True(t, noCut.SavingsDiffFromBase.Equal(decimal.RequireFromString("-1033.5")))

	cut200 := set.AlternativeResults[1]
	assert.True(t, cut200.TaxSavings.GreaterThan(set.BaseResult.TaxSavings))
	assert.Equal(t, "cut_200", cut200.ScenarioName)

	// Top-four cut only touches bracket 4 and up; 103,350 single stops at bracket 3
	top4 := set.AlternativeResults[2]
	assert.True(t, top4.TaxSavings.IsZero())
	assert.Contains(t, set.Recommendations, "No Effect: top4_200 does not reach this income's brackets")
	assert.NotEmpty(t, set.Assumptions)
}

func TestCompareEngine_Compare_CustomTransforms(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine(), nil)

	set, err := ce.Compare(context.Background(), baseScenario(), CompareOptions{
		Transforms: []transform.ScenarioTransform{transform.SetFilingStatus{Status: domain.FilingMarried}},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, "me_custom", set.AlternativeResults[0].ScenarioName)
	assert.Equal(t, domain.FilingMarried, set.AlternativeResults[0].FilingStatus)
	assert.Contains(t, set.AlternativeResults[0].Description, "Married")
}

func TestCompareEngine_Compare_UnknownPreset(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine(), nil)

	_, err := ce.Compare(context.Background(), baseScenario(), CompareOptions{Presets: []string{"cut_9000"}})
	assert.ErrorContains(t, err, "preset cut_9000 not found")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	cfg, err := config.NewInputParser().Parse([]byte(`
income: 300000
filing_status: single
savings: 100
scenarios:
  - name: top
    reduction_scope: topFour
  - name: bigger
    savings: 300
`))
	require.NoError(t, err)

	ce := NewCompareEngine(calculation.NewCalculationEngine(), nil)
	set, err := ce.CompareScenarios(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "base", set.BaseScenarioName)
	require.Len(t, set.AlternativeResults, 2)
	for _, alt := range set.AlternativeResults {
		assert.True(t, alt.TaxSavings.GreaterThan(set.BaseResult.TaxSavings), alt.ScenarioName)
	}

	_, err = ce.CompareScenarios(context.Background(), cfg, []string{"missing"})
	assert.ErrorContains(t, err, "alternative scenario missing not found")
	assert.ErrorIs(t, err, ErrNotFound)
}
