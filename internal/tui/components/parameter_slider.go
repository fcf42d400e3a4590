package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxcut/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays an adjustable dollar amount with a visual bar
type ParameterSlider struct {
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	BigStep     decimal.Decimal
	Format      func(decimal.Decimal) string
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider over [min, max] moving by step
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	s := &ParameterSlider{
		Label:   label,
		Min:     min,
		Max:     max,
		Step:    step,
		BigStep: step.Mul(decimal.NewFromInt(10)),
		Format:  func(d decimal.Decimal) string { return d.String() },
		Width:   30,
	}
	s.SetValue(value)
	return s
}

// WithFormat sets the value formatter
func (p *ParameterSlider) WithFormat(format func(decimal.Decimal) string) *ParameterSlider {
	p.Format = format
	return p
}

func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment raises the value by one step, stopping at Max
func (p *ParameterSlider) Increment() { p.step(p.Step) }

// Decrement lowers the value by one step, stopping at Min
func (p *ParameterSlider) Decrement() { p.step(p.Step.Neg()) }

// IncrementBig and DecrementBig move by BigStep
func (p *ParameterSlider) IncrementBig() { p.step(p.BigStep) }
func (p *ParameterSlider) DecrementBig() { p.step(p.BigStep.Neg()) }

func (p *ParameterSlider) step(delta decimal.Decimal) {
	next := p.Value.Add(delta)
	if delta.IsPositive() {
		if !p.Value.LessThan(p.Max) {
			return
		}
		next = decimal.Min(next, p.Max)
	}
	p.SetValue(next)
}

// SetValue sets the value, raising it to Min when below. Values above Max are
// kept so typed amounts are never truncated; only the bar saturates.
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Max(value, p.Min)
}

// Percentage returns the value's position along the track in [0, 1]
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	pct := p.Value.Sub(p.Min).Div(span).InexactFloat64()
	return math.Max(0, math.Min(1, pct))
}

// Render returns the styled slider with label, value and bar
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.Format(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.Format(p.Min), p.Format(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(p.Description))
	}

	return content.String()
}

func (p *ParameterSlider) renderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 1 {
		filled = 1
	}
	if filled > p.Width {
		filled = p.Width
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty := p.Width - filled; empty > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", empty)))
	}
	bar.WriteString("]")
	return bar.String()
}
