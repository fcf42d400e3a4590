package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"103350", "103350"},
		{"  75000.50 ", "75000.5"},
		{"$1,250,000", "1250000"},
		{"42abc", "42"},
		{".5", "0.5"},
		{"1e3", "1000"},
		{"abc", "0"},
		{"", "0"},
		{"-500", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIncome(tt.in).String())
		})
	}
}

func TestParseIncome_MultiDigitExponent(t *testing.T) {
	assert.True(t, ParseIncome("1e100").Equal(decimal.New(1, 100)), "1e100")
	assert.True(t, ParseIncome("5e123").Equal(decimal.New(5, 123)), "5e123")
	assert.True(t, ParseIncome("2.5e-100").Equal(decimal.New(25, -101)), "2.5e-100")
	assert.True(t, ParseIncome("1.5E+12xyz").Equal(decimal.New(15, 11)), "1.5E+12xyz")

	// beyond float64: overflow and underflow parse as zero
	assert.True(t, ParseIncome("1e400").IsZero())
	assert.True(t, ParseIncome("1e-400").IsZero())
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("$1,000.25")
	require.NoError(t, err)
	assert.Equal(t, "1000.25", d.String())

	_, err = ParseAmount("twelve")
	assert.Error(t, err)
	_, err = ParseAmount("  ")
	assert.Error(t, err)
}

func TestDecimalFromFloat(t *testing.T) {
	d, err := DecimalFromFloat(111.3)
	require.NoError(t, err)
	assert.Equal(t, "111.3", d.String())

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := DecimalFromFloat(f)
		assert.True(t, errors.Is(err, ErrNonFiniteAmount))
	}
}
