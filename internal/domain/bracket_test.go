package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() []Bracket {
	return []Bracket{
		NewBracket(0, 10000, "0.10"),
		NewBracket(10000, 40000, "0.20"),
		NewTopBracket(40000, "0.30"),
	}
}

func TestBracket_Width(t *testing.T) {
	table := sampleTable()

	w, ok := table[1].Width()
	assert.True(t, ok)
	assert.True(t, w.Equal(decimal.NewFromInt(30000)))

	_, ok = table[2].Width()
	assert.False(t, ok)
	assert.True(t, table[2].Unbounded())
}

func TestCloneBrackets_IsDeep(t *testing.T) {
	table := sampleTable()
	clone := CloneBrackets(table)

	*clone[0].Max = decimal.NewFromInt(5)
	clone[1].Rate = decimal.NewFromFloat(0.5)

	assert.True(t, table[0].Max.Equal(decimal.NewFromInt(10000)))
	assert.True(t, table[1].Rate.Equal(decimal.NewFromFloat(0.20)))
}

func TestValidateBrackets(t *testing.T) {
	require.NoError(t, ValidateBrackets(sampleTable()))

	tests := []struct {
		name   string
		mutate func([]Bracket) []Bracket
	}{
		{"empty", func([]Bracket) []Bracket { return nil }},
		{"negative start", func(b []Bracket) []Bracket {
			b[0].Min = decimal.NewFromInt(-1)
			return b
		}},
		{"gap between brackets", func(b []Bracket) []Bracket {
			b[1].Min = decimal.NewFromInt(10001)
			return b
		}},
		{"inverted bounds", func(b []Bracket) []Bracket {
			b[1] = NewBracket(10000, 9000, "0.20")
			return b
		}},
		{"bounded top", func(b []Bracket) []Bracket {
			b[2] = NewBracket(40000, 90000, "0.30")
			return b
		}},
		{"unbounded middle", func(b []Bracket) []Bracket {
			b[1].Max = nil
			return b
		}},
		{"rate above one", func(b []Bracket) []Bracket {
			b[0].Rate = decimal.NewFromFloat(1.5)
			return b
		}},
		{"negative rate", func(b []Bracket) []Bracket {
			b[2].Rate = decimal.NewFromFloat(-0.01)
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets(tt.mutate(sampleTable()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidBrackets))
		})
	}
}
