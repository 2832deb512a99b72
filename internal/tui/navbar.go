package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listwiz/internal/listing"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button is a single entry of the button bar.
type Button struct {
	Label string
	State ButtonState
}

var (
	styleButton = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1)

	styleButtonDisabled = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				Background(colorMantle).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)

	styleButtonFocused = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorSecondary).
				Bold(true).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)
)

// renderButtons centers the buttons within width.
func renderButtons(buttons []Button, width int) string {
	if len(buttons) == 0 {
		return ""
	}

	var rendered []string
	for _, btn := range buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, styleButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, styleButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, styleButton.Render(btn.Label))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rendered, ""))
}

// navButtons builds the Back / Next (or Submit) pair for step. Next is
// never disabled by validation; it only disappears on the last step.
func navButtons(step listing.Step, stepValid bool) []Button {
	back := Button{Label: "← Back", State: ButtonNormal}
	if step == listing.FirstStep {
		back.State = ButtonDisabled
	}

	if step == listing.LastStep {
		submit := Button{Label: "Submit", State: ButtonFocused}
		if !stepValid {
			submit.State = ButtonNormal
		}
		return []Button{back, submit}
	}
	return []Button{back, {Label: "Next →", State: ButtonFocused}}
}

// stepMark describes how one step is drawn in the progress row.
type stepMark struct {
	Step      listing.Step
	Current   bool
	Reachable bool
	Complete  bool
	Valid     bool
}

// renderProgress draws the step row, e.g. "1 Basics ✓ › 2 Classification".
func renderProgress(marks []stepMark) string {
	parts := make([]string, 0, len(marks))
	for _, m := range marks {
		label := fmt.Sprintf("%d %s", m.Step, m.Step)
		switch {
		case m.Valid:
			label += " ✓"
		case m.Complete:
			label += " •"
		}

		style := styleMuted
		switch {
		case m.Current:
			style = styleTitle
		case m.Reachable:
			style = styleLabel
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, styleMuted.Render(" › "))
}
