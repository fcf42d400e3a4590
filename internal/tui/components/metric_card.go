package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/tui/tuistyles"
)

// MetricCard displays a single metric with label, value and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend represents a metric's change direction and amount
type Trend struct {
	IsPositive bool
	Change     string
}

func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 24}
}

func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the card with a rounded border
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		trendStyle := tuistyles.MetricTrendStyle(m.Trend.IsPositive)
		content += "\n" + trendStyle.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		trendStyle := tuistyles.MetricTrendStyle(m.Trend.IsPositive)
		out += " " + trendStyle.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	return out
}

// ComparisonCards builds the summary cards shown above the breakdown
func ComparisonCards(c *domain.Comparison, width int) []*MetricCard {
	if c == nil {
		return nil
	}
	saved := c.Savings.IsPositive()
	return []*MetricCard{
		NewMetricCard("Current Tax", output.FormatCurrency(c.TotalCurrentTax)).
			WithDescription("effective " + output.FormatPercentage(c.EffectiveRateCurrent)).
			WithWidth(width),
		NewMetricCard("New Tax", output.FormatCurrency(c.TotalNewTax)).
			WithDescription("effective " + output.FormatPercentage(c.EffectiveRateNew)).
			WithWidth(width),
		NewMetricCard("You Save", output.FormatCurrency(c.Savings)).
			WithTrend(saved, "rate cut "+output.FormatPercentage(c.RateReduction)).
			WithWidth(width),
	}
}

// MetricGrid renders cards in rows of the given column count
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns < 1 {
		return ""
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
