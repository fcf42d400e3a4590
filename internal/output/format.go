package output

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats an amount rounded to whole dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.IsNegative() {
		return "-$" + humanize.Comma(rounded.Neg().IntPart())
	}
	return "$" + humanize.Comma(rounded.IntPart())
}

// FormatNumber formats an amount with thousands separators, keeping up to two
// decimals when it is fractional
func FormatNumber(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return humanize.Comma(amount.IntPart())
	}
	f, _ := amount.Round(2).Float64()
	return humanize.CommafWithDigits(f, 2)
}

// FormatRate formats a fractional rate as a percentage: 0.1 -> "10%", 0.095 -> "9.5%"
func FormatRate(rate decimal.Decimal) string {
	pct := rate.Mul(hundred)
	if pct.Equal(pct.Truncate(0)) {
		return pct.Truncate(0).String() + "%"
	}
	return pct.StringFixed(1) + "%"
}

// FormatRange formats bracket bounds: "0 - 11,925" or "626,350 - ∞"
func FormatRange(min decimal.Decimal, max *decimal.Decimal) string {
	if max == nil {
		return FormatNumber(min) + " - ∞"
	}
	return FormatNumber(min) + " - " + FormatNumber(*max)
}

// FormatRatePointer formats an optional rate, empty when absent
func FormatRatePointer(rate *decimal.Decimal) string {
	if rate == nil {
		return ""
	}
	return FormatRate(*rate)
}

// FormatPercentage formats a fraction as a two-decimal percentage
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(2) + "%"
}
