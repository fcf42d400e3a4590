package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	BigLeft      key.Binding
	BigRight     key.Binding
	Edit         key.Binding
	FilingStatus key.Binding
	Scope        key.Binding
	Presets      key.Binding
	Copy         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev field")),
		Down:         key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next field")),
		Left:         key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
		Right:        key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/l", "increase")),
		BigLeft:      key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "decrease x10")),
		BigRight:     key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "increase x10")),
		Edit:         key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "type amount")),
		FilingStatus: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "single/married")),
		Scope:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "all/top four")),
		Presets:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "preset")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy summary")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.FilingStatus, k.Scope, k.Presets, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.BigLeft, k.BigRight},
		{k.Edit, k.FilingStatus, k.Scope, k.Presets},
		{k.Copy, k.Help, k.Quit},
	}
}
