package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxcut/internal/output"
	"github.com/rgehrsitz/taxcut/internal/session"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/rgehrsitz/taxcut/internal/tui/components"
)

const (
	fieldIncome = iota
	fieldSavings
	fieldCount
)

var (
	incomeMax   = decimal.NewFromInt(1_000_000)
	incomeStep  = decimal.NewFromInt(1_000)
	savingsMax  = decimal.NewFromInt(2_000)
	savingsStep = decimal.NewFromInt(10)
)

// Model is the calculator screen. It renders session snapshots and forwards
// every input change to the session; it keeps no inputs of its own.
type Model struct {
	scene Scene

	width  int
	height int

	state       *session.State
	snapshots   chan session.Snapshot
	unsubscribe func()
	snapshot    session.Snapshot

	presets []transform.Preset

	sliders [fieldCount]*components.ParameterSlider
	focused int
	editing bool
	input   textinput.Model

	keys keyMap
	help help.Model

	copyText func(string) error
	status   string
	err      error
}

// Option configures a Model
type Option func(*Model)

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copyText = write
	}
}

// NewModel subscribes to state and binds presets to the number keys in order
func NewModel(state *session.State, presets []transform.Preset, opts ...Option) Model {
	if len(presets) > 9 {
		presets = presets[:9]
	}

	input := textinput.New()
	input.CharLimit = 20
	input.Prompt = "> "

	m := Model{
		scene:     SceneCalculator,
		width:     80,
		height:    24,
		state:     state,
		snapshots: make(chan session.Snapshot, 1),
		presets:   presets,
		input:     input,
		keys:      defaultKeyMap(),
		help:      help.New(),
		copyText:  clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.sliders[fieldIncome] = components.NewParameterSlider("Income", decimal.Zero, decimal.Zero, incomeMax, incomeStep).
		WithFormat(output.FormatCurrency).
		WithWidth(40).
		WithDescription("Taxable income for the year")
	m.sliders[fieldSavings] = components.NewParameterSlider("Savings", decimal.Zero, decimal.Zero, savingsMax, savingsStep).
		WithFormat(func(d decimal.Decimal) string { return "$" + d.StringFixed(1) + "B" }).
		WithWidth(40).
		WithDescription("Revenue savings funding the rate cut")
	m.sliders[fieldIncome].SetFocused(true)

	m.unsubscribe = state.Subscribe(latestOnly(m.snapshots))
	m.applySnapshot(state.Snapshot())
	return m
}

// latestOnly delivers into a one-slot channel, replacing any snapshot the UI
// has not read yet so a slow render never blocks a mutator.
func latestOnly(ch chan session.Snapshot) session.Listener {
	return func(snap session.Snapshot) {
		for {
			select {
			case ch <- snap:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Init starts listening for snapshots
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.snapshots)
}

// Close stops the session subscription
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func waitForSnapshot(ch <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Err: write(text)}
	}
}

// applySnapshot renders a snapshot unless a newer one is already shown
func (m *Model) applySnapshot(snap session.Snapshot) {
	if snap.Version < m.snapshot.Version {
		return
	}
	m.snapshot = snap
	m.sliders[fieldIncome].SetValue(snap.Scenario.Income)
	m.sliders[fieldSavings].SetValue(snap.Scenario.Savings)
	m.err = snap.Err
}

// Run starts the program in the alternate screen and blocks until it exits
func Run(m Model) error {
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
