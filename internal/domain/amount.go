package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// leadingNumber matches the numeric prefix a browser's parseFloat would accept
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseIncome turns free-form income text into a non-negative amount.
// Unparseable input yields zero. A leading "$" and thousands separators are
// ignored, and trailing garbage after the number is dropped ("52000abc" -> 52000).
// Negative values clamp to zero, as do numbers outside the float64 range
// (parseFloat would yield Infinity or lose them to underflow).
func ParseIncome(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "$")
	s = strings.NewReplacer(",", "", "_", "").Replace(s)

	m := leadingNumber.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	if f, err := strconv.ParseFloat(m, 64); err != nil || f == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// DecimalFromFloat converts a float boundary value into a decimal amount,
// rejecting NaN and infinities.
func DecimalFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNonFiniteAmount
	}
	return decimal.NewFromFloat(f), nil
}

// ParseAmount strictly parses a money amount such as a savings figure.
// Unlike ParseIncome it reports malformed input instead of defaulting to zero.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "$")
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return d, nil
}
