package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketAdjuster_RateReduction(t *testing.T) {
	adj := NewBracketAdjuster()

	r, err := adj.RateReduction(d("111.3"), domain.ScopeAll)
	require.NoError(t, err)
	assert.True(t, r.Equal(d("0.01")), "got %s", r)

	r, err = adj.RateReduction(d("57.3"), domain.ScopeTopFour)
	require.NoError(t, err)
	assert.True(t, r.Equal(d("0.02")), "got %s", r)

	_, err = adj.RateReduction(d("-1"), domain.ScopeAll)
	assert.True(t, errors.Is(err, domain.ErrNegativeSavings))

	_, err = adj.RateReduction(d("1"), domain.ReductionScope("bottom"))
	assert.True(t, errors.Is(err, domain.ErrUnknownScope))
}

func TestBracketAdjuster_Adjust_AllScope(t *testing.T) {
	adj := NewBracketAdjuster()
	original := Brackets2025Single()

	out, err := adj.Adjust(original, d("111.3"), domain.ScopeAll)
	require.NoError(t, err)
	require.Len(t, out, len(original))

	for i := range out {
		assert.True(t, out[i].Rate.Equal(original[i].Rate.Sub(d("0.01"))), "bracket %d", i)
		assert.True(t, out[i].Min.Equal(original[i].Min))
	}
	assert.Nil(t, out[6].Max)
}

func TestBracketAdjuster_Adjust_TopFourIsolation(t *testing.T) {
	adj := NewBracketAdjuster()
	original := Brackets2025Married()

	out, err := adj.Adjust(original, d("28.65"), domain.ScopeTopFour)
	require.NoError(t, err)

	for i := 0; i < domain.TopFourStartIndex; i++ {
		assert.True(t, out[i].Rate.Equal(original[i].Rate), "bracket %d should be untouched", i)
	}
	for i := domain.TopFourStartIndex; i < len(out); i++ {
		assert.True(t, out[i].Rate.Equal(original[i].Rate.Sub(d("0.01"))), "bracket %d", i)
	}
}

func TestBracketAdjuster_Adjust_FloorsAtZero(t *testing.T) {
	adj := NewBracketAdjuster()
	original := Brackets2025Single()

	out, err := adj.Adjust(original, d("1000000"), domain.ScopeTopFour)
	require.NoError(t, err)

	for i := domain.TopFourStartIndex; i < len(out); i++ {
		assert.True(t, out[i].Rate.IsZero(), "bracket %d rate %s", i, out[i].Rate)
	}
	for i := 0; i < domain.TopFourStartIndex; i++ {
		assert.True(t, out[i].Rate.Equal(original[i].Rate))
	}

	out, err = adj.Adjust(original, d("1000000"), domain.ScopeAll)
	require.NoError(t, err)
	for _, b := range out {
		assert.False(t, b.Rate.IsNegative())
	}
}

func TestBracketAdjuster_Adjust_ZeroSavingsIsIdentity(t *testing.T) {
	adj := NewBracketAdjuster()
	original := Brackets2025Single()

	for _, scope := range domain.ReductionScopes {
		out, err := adj.Adjust(original, decimal.Zero, scope)
		require.NoError(t, err)
		require.Len(t, out, len(original))
		for i := range out {
			assert.True(t, out[i].Rate.Equal(original[i].Rate), "%s bracket %d", scope, i)
		}
	}
}

func TestBracketAdjuster_Adjust_DoesNotMutateInput(t *testing.T) {
	adj := NewBracketAdjuster()
	original := Brackets2025Single()

	out, err := adj.Adjust(original, d("500"), domain.ScopeAll)
	require.NoError(t, err)
	*out[0].Max = d("1")

	assert.Equal(t, Brackets2025Single(), original)
}

func TestBracketAdjuster_Adjust_RejectsInvalidTable(t *testing.T) {
	adj := NewBracketAdjuster()
	table := Brackets2025Single()
	table[6].Max = &table[6].Min

	_, err := adj.Adjust(table, d("1"), domain.ScopeAll)
	assert.True(t, errors.Is(err, domain.ErrInvalidBrackets))
}

func TestNewBracketAdjusterWithConfig_FallsBack(t *testing.T) {
	adj := NewBracketAdjusterWithConfig(domain.CostModel{PerPointAll: d("200")})
	assert.True(t, adj.CostModel.PerPointAll.Equal(d("200")))
	assert.True(t, adj.CostModel.PerPointTopFour.Equal(CostPerRatePointTopFour))
}
