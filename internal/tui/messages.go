package tui

import (
	"github.com/rgehrsitz/taxcut/internal/session"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// SnapshotMsg carries a recomputed comparison from the session
type SnapshotMsg struct {
	Snapshot session.Snapshot
}

// ClipboardMsg reports the outcome of copying the summary
type ClipboardMsg struct {
	Err error
}
