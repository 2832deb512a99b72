package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette (Catppuccin Mocha)
var (
	colorPrimary   = lipgloss.Color("#cba6f7") // Mauve
	colorSecondary = lipgloss.Color("#b4befe") // Lavender
	colorText      = lipgloss.Color("#cdd6f4") // Text
	colorBase      = lipgloss.Color("#1e1e2e") // Base
	colorMantle    = lipgloss.Color("#181825") // Mantle
	colorSurface0  = lipgloss.Color("#313244") // Surface0
	colorSurface2  = lipgloss.Color("#585b70") // Surface2
	colorOverlay0  = lipgloss.Color("#6c7086") // Overlay0
	colorSubtext0  = lipgloss.Color("#a6adc8") // Subtext0
	colorSubtext1  = lipgloss.Color("#bac2de") // Subtext1
	colorGreen     = lipgloss.Color("#a6e3a1") // Green
	colorYellow    = lipgloss.Color("#f9e2af") // Yellow
	colorRed       = lipgloss.Color("#f38ba8") // Red
)

var (
	styleContainer = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).
			Background(colorBase).
			Padding(1, 2)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorSubtext1)

	styleLabelFocused = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleValue = lipgloss.NewStyle().
			Foreground(colorText)

	styleFieldError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleMessage = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSaved = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorOverlay0)
)

// Hint bar styles
var (
	styleHintKey = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Bold(true)

	styleHintDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHintSeparator = lipgloss.NewStyle().
				Foreground(colorSurface2)
)

// renderHintBar renders key/description pairs, e.g.
// renderHintBar("tab", "next field", "esc", "quit") gives
// "tab next field • esc quit".
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, styleHintKey.Render(pairs[i])+" "+styleHintDesc.Render(pairs[i+1]))
	}
	return strings.Join(parts, " "+styleHintSeparator.Render("•")+" ")
}
