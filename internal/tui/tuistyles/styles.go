// Package tuistyles holds the shared lipgloss palette so components and the
// root model can both import it without a cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/shopspring/decimal"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("#2E7D32")
	ColorSecondary = lipgloss.Color("#1565C0")
	ColorAccent    = lipgloss.Color("#F9A825")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#00ACC1")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#90A4AE")
	ColorBorder     = lipgloss.Color("#546E7A")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Bold(true)
	ParameterValueStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// MetricTrendStyle picks the trend color. A lower tax is a positive trend.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns the arrow drawn next to a trend
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▼"
	}
	return "▲"
}

// FormatCurrency renders whole dollars for display in cards
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}
