package tui

import (
	"github.com/mark3labs/listwiz/internal/draft"
)

// StatusForwarder returns a callback for wizard.Options.OnStatus and the
// channel the program reads from. The callback never blocks; updates are
// dropped while the buffer is full, since the model re-reads the wizard's
// status whenever one arrives.
func StatusForwarder() (func(draft.Status), <-chan draft.Status) {
	ch := make(chan draft.Status, 32)
	return func(st draft.Status) {
		select {
		case ch <- st:
		default:
		}
	}, ch
}

// draftIndicator is the one-line persistence state under the buttons.
func draftIndicator(st draft.Status) string {
	switch {
	case st.IsSaving:
		return styleMessage.Render("Saving draft…")
	case st.Pending:
		return styleMuted.Render("Unsaved changes")
	case st.HasDraft:
		return styleSaved.Render("Draft saved " + st.LastSavedAt.Local().Format("15:04:05"))
	default:
		return styleMuted.Render("No draft yet")
	}
}
