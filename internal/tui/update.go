package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/output"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, waitForSnapshot(m.snapshots)

	case ClipboardMsg:
		if msg.Err != nil {
			m.status = "copy failed: " + msg.Err.Error()
		} else {
			m.status = "summary copied to clipboard"
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input on the calculator and help screens
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Close()
		return m, tea.Quit
	}

	if m.scene == SceneHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.scene = SceneCalculator
		}
		return m, nil
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Help):
		m.scene = SceneHelp

	case key.Matches(msg, m.keys.Up):
		m.focus((m.focused + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Down):
		m.focus((m.focused + 1) % fieldCount)

	case key.Matches(msg, m.keys.BigLeft):
		m.sliders[m.focused].DecrementBig()
		m.commitSlider()

	case key.Matches(msg, m.keys.BigRight):
		m.sliders[m.focused].IncrementBig()
		m.commitSlider()

	case key.Matches(msg, m.keys.Left):
		m.sliders[m.focused].Decrement()
		m.commitSlider()

	case key.Matches(msg, m.keys.Right):
		m.sliders[m.focused].Increment()
		m.commitSlider()

	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.input.SetValue(m.sliders[m.focused].Value.String())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.FilingStatus):
		m.state.ToggleFilingStatus()

	case key.Matches(msg, m.keys.Scope):
		m.state.ToggleScope()

	case key.Matches(msg, m.keys.Presets):
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(m.presets) {
			return m, nil
		}
		p := m.presets[idx]
		if err := m.state.ApplyPreset(p); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "applied " + p.Name

	case key.Matches(msg, m.keys.Copy):
		snap := m.state.Snapshot()
		if snap.Comparison == nil {
			m.status = "nothing to copy"
			return m, nil
		}
		return m, copyCmd(m.copyText, output.Summary(snap.Comparison))
	}

	return m, nil
}

// handleEditKey drives the amount text input
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil

	case "enter":
		text := m.input.Value()
		m.stopEditing()
		if m.focused == fieldIncome {
			m.state.SetIncomeText(text)
			return m, nil
		}
		amount, err := domain.ParseAmount(text)
		if err != nil {
			m.status = fmt.Sprintf("invalid savings %q", text)
			return m, nil
		}
		if err := m.state.SetSavings(amount); err != nil {
			m.status = err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) focus(field int) {
	m.sliders[m.focused].SetFocused(false)
	m.focused = field
	m.sliders[m.focused].SetFocused(true)
}

// commitSlider pushes the focused slider's value into the session
func (m *Model) commitSlider() {
	value := m.sliders[m.focused].Value
	switch m.focused {
	case fieldIncome:
		m.state.SetIncome(value)
	case fieldSavings:
		if err := m.state.SetSavings(value); err != nil {
			m.status = err.Error()
		}
	}
}
