package tui

import "github.com/rgehrsitz/ulipbi/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	TitleStyle         = tuistyles.TitleStyle
	SubtitleStyle      = tuistyles.SubtitleStyle
	StatusBarStyle     = tuistyles.StatusBarStyle
	BorderStyle        = tuistyles.BorderStyle
	ActiveTabStyle     = tuistyles.ActiveTabStyle
	InactiveTabStyle   = tuistyles.InactiveTabStyle
	ErrorStyle         = tuistyles.ErrorStyle
	TableHeaderStyle   = tuistyles.TableHeaderStyle
	TableSelectedStyle = tuistyles.TableSelectedStyle
)

// Re-export helper functions
var (
	FormatCurrency = tuistyles.FormatCurrency
)
