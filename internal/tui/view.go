package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = m.renderCalculator()
	}
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	year := ""
	if m.snapshot.Comparison != nil {
		year = fmt.Sprintf(" %d", m.snapshot.Comparison.TaxYear)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("taxcut - Federal Bracket Tax Cut Calculator"+year),
		SubtitleStyle.Render(m.scene.String()),
	)
}

func (m Model) renderCalculator() string {
	sc := m.snapshot.Scenario

	var inputs []string
	for i, s := range m.sliders {
		rendered := s.Render()
		if m.editing && i == m.focused {
			rendered = s.Label + "\n" + m.input.View()
		}
		inputs = append(inputs, rendered)
	}
	inputs = append(inputs,
		toggleLine("Filing status", domain.FilingStatuses, sc.FilingStatus),
		toggleLine("Cut applies to", domain.ReductionScopes, sc.Scope),
		m.renderPresets(),
	)
	left := BorderStyle.Render(strings.Join(inputs, "\n\n"))

	var results string
	switch {
	case m.err != nil:
		results = ErrorStyle.Render("Error: " + m.err.Error())
	case m.snapshot.Comparison != nil:
		c := m.snapshot.Comparison
		results = lipgloss.JoinVertical(lipgloss.Left,
			components.MetricGrid(components.ComparisonCards(c, 22), 3),
			"",
			components.BreakdownTable(c),
		)
	default:
		results = SubtitleStyle.Render("Calculating...")
	}

	if m.width >= 150 {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", ActiveBorderStyle.Render(results))
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, ActiveBorderStyle.Render(results))
}

type labeled interface {
	comparable
	Label() string
}

func toggleLine[T labeled](label string, options []T, current T) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if o == current {
			parts[i] = SelectedItemStyle.Render("[" + o.Label() + "]")
		} else {
			parts[i] = UnselectedStyle.Render(" " + o.Label() + " ")
		}
	}
	return fmt.Sprintf("%-15s %s", label+":", strings.Join(parts, " "))
}

func (m Model) renderPresets() string {
	if len(m.presets) == 0 {
		return ""
	}
	names := make([]string, len(m.presets))
	for i, p := range m.presets {
		names[i] = fmt.Sprintf("%d %s", i+1, p.Name)
	}
	return SubtitleStyle.Render("Presets: " + strings.Join(names, "  "))
}

func (m Model) renderStatusBar() string {
	line := m.help.View(m.keys)
	if m.status != "" {
		line = InfoStyle.Render(m.status) + "  " + line
	}
	return StatusBarStyle.Render(line)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("How the cut is computed"))
	b.WriteString("\n\n")
	for _, a := range output.DefaultAssumptions {
		b.WriteString("• " + a + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("? or esc to return"))
	return BorderStyle.Render(b.String())
}
