// Package tui provides the session dashboard for tmuxman using bubbletea.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme selects the dashboard palette. Valid values are enforced by
// config.Validate; this package only resolves "auto" against the terminal.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ResolveTheme maps ThemeAuto onto the detected terminal background, leaving
// explicit choices untouched. Detection failures land on the dark palette.
func ResolveTheme(configured Theme) Theme {
	if configured != ThemeAuto {
		return configured
	}
	if termenv.NewOutput(os.Stdout).HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// Dark theme colour palette (for dark terminal backgrounds).
const (
	ColourTeal       = lipgloss.Color("37")  // Headers, active states
	ColourTealDim    = lipgloss.Color("30")  // Separators, secondary chrome
	ColourTealLight  = lipgloss.Color("87")  // Body text, values
	ColourBackground = lipgloss.Color("0")   // Terminal background
	ColourSuccess    = lipgloss.Color("82")  // Clean worktrees, open windows
	ColourWarning    = lipgloss.Color("214") // Uncommitted changes
	ColourError      = lipgloss.Color("196") // Probe failures
	ColourMuted      = lipgloss.Color("243") // Labels, closed windows
)

// Light theme colour palette (for light terminal backgrounds).
const (
	ColourTealDark        = lipgloss.Color("23")
	ColourTealDarkDim     = lipgloss.Color("29")
	ColourTealDarkMid     = lipgloss.Color("30")
	ColourBackgroundLight = lipgloss.Color("231")
	ColourSuccessDark     = lipgloss.Color("22")
	ColourWarningDark     = lipgloss.Color("166")
	ColourErrorDark       = lipgloss.Color("160")
	ColourMutedDark       = lipgloss.Color("241")
)

// Status indicator icons.
const (
	IconOpen   = "●"
	IconClosed = "○"
	IconDirty  = "±"
	IconError  = "✗"
)

// Styles contains all lipgloss styles for the dashboard.
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
	Brand   lipgloss.Style
}

// DarkStyles returns the teal theme optimised for dark terminal backgrounds.
func DarkStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(ColourTeal).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(ColourMuted),
		Value:    lipgloss.NewStyle().Foreground(ColourTealLight),
		Selected: lipgloss.NewStyle().Foreground(ColourBackground).Background(ColourTeal).Bold(true),

		Success: lipgloss.NewStyle().Foreground(ColourSuccess),
		Warning: lipgloss.NewStyle().Foreground(ColourWarning),
		Error:   lipgloss.NewStyle().Foreground(ColourError),
		Muted:   lipgloss.NewStyle().Foreground(ColourMuted),

		HelpBar: lipgloss.NewStyle().Foreground(ColourTealDim),
		HelpKey: lipgloss.NewStyle().Foreground(ColourMuted),
		Brand:   lipgloss.NewStyle().Foreground(ColourTeal).Bold(true),
	}
}

// LightStyles returns the teal theme optimised for light terminal backgrounds.
func LightStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(ColourTealDark).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(ColourMutedDark),
		Value:    lipgloss.NewStyle().Foreground(ColourTealDarkMid),
		Selected: lipgloss.NewStyle().Foreground(ColourBackgroundLight).Background(ColourTealDark).Bold(true),

		Success: lipgloss.NewStyle().Foreground(ColourSuccessDark),
		Warning: lipgloss.NewStyle().Foreground(ColourWarningDark),
		Error:   lipgloss.NewStyle().Foreground(ColourErrorDark),
		Muted:   lipgloss.NewStyle().Foreground(ColourMutedDark),

		HelpBar: lipgloss.NewStyle().Foreground(ColourTealDarkDim),
		HelpKey: lipgloss.NewStyle().Foreground(ColourMutedDark),
		Brand:   lipgloss.NewStyle().Foreground(ColourTealDark).Bold(true),
	}
}

// GetStyles returns the Styles for the given theme.
// Falls back to dark theme for unknown theme values.
func GetStyles(theme Theme) Styles {
	switch theme {
	case ThemeLight:
		return LightStyles()
	default:
		return DarkStyles()
	}
}
