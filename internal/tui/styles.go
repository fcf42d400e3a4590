package tui

import "github.com/rgehrsitz/taxcut/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted

	AppStyle          = tuistyles.AppStyle
	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	StatusBarStyle    = tuistyles.StatusBarStyle
	BorderStyle       = tuistyles.BorderStyle
	ActiveBorderStyle = tuistyles.ActiveBorderStyle
	SelectedItemStyle = tuistyles.SelectedItemStyle
	UnselectedStyle   = tuistyles.UnselectedItemStyle
	ErrorStyle        = tuistyles.ErrorStyle
	InfoStyle         = tuistyles.InfoStyle
)
