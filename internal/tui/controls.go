package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/listwiz/internal/listing"
)

type controlKind int

const (
	controlText   controlKind = iota // free text
	controlList                      // comma separated values
	controlChoice                    // fixed options, cycled with ←/→
	controlToggle                    // boolean, toggled with space
	controlPaths                     // file paths, attached on enter
)

// control is one editable row of a step.
type control struct {
	field   listing.Field
	label   string
	kind    controlKind
	options []string
	input   textinput.Model
}

var labels = map[listing.Field]string{
	listing.FieldTitle:                 "Title",
	listing.FieldDescription:           "Description",
	listing.FieldLanguage:              "Language",
	listing.FieldDialect:               "Dialect",
	listing.FieldResourceType:          "Resource type",
	listing.FieldCycle:                 "Cycle",
	listing.FieldSubject:               "Subject",
	listing.FieldSubjectCode:           "Subject code",
	listing.FieldCanton:                "Canton",
	listing.FieldCompetencies:          "Competencies",
	listing.FieldLehrmittelIDs:         "Teaching materials",
	listing.FieldPriceType:             "Price type",
	listing.FieldPrice:                 "Price (CHF)",
	listing.FieldEditable:              "Editable file",
	listing.FieldLicenseScope:          "Licence",
	listing.FieldFiles:                 "Files",
	listing.FieldPreviewFiles:          "Preview files",
	listing.FieldLegalOwnContent:       "I created this material myself",
	listing.FieldLegalNoTextbookCopies: "No copied textbook pages",
	listing.FieldLegalNoTrademarks:     "No third-party trademarks",
	listing.FieldLegalSwissGuidelines:  "Follows Swiss curriculum guidelines",
	listing.FieldLegalTermsAccepted:    "I accept the seller terms",
}

// choices lists the options cycled through for enumerated fields. An
// empty option means "not set".
var choices = map[listing.Field][]string{
	listing.FieldLanguage:     listing.Languages,
	listing.FieldDialect:      listing.Dialects,
	listing.FieldResourceType: listing.ResourceTypes,
	listing.FieldCycle:        append([]string{""}, listing.Cycles...),
	listing.FieldCanton:       append([]string{""}, listing.Cantons...),
	listing.FieldPriceType:    listing.PriceTypes,
	listing.FieldLicenseScope: listing.LicenseScopes,
}

func kindOf(field listing.Field) controlKind {
	if _, ok := choices[field]; ok {
		return controlChoice
	}
	switch field {
	case listing.FieldCompetencies, listing.FieldLehrmittelIDs:
		return controlList
	case listing.FieldFiles, listing.FieldPreviewFiles:
		return controlPaths
	case listing.FieldEditable:
		return controlToggle
	}
	for _, f := range listing.LegalFields() {
		if f == field {
			return controlToggle
		}
	}
	return controlText
}

func newInput(value, placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(colorText),
			Placeholder: lipgloss.NewStyle().Foreground(colorSubtext0),
			Prompt:      lipgloss.NewStyle().Foreground(colorSecondary),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(colorSubtext0),
			Placeholder: lipgloss.NewStyle().Foreground(colorOverlay0),
			Prompt:      lipgloss.NewStyle().Foreground(colorOverlay0),
		},
		Cursor: textinput.CursorStyle{
			Color: colorPrimary,
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	in.SetWidth(width)
	in.SetValue(value)
	return in
}

// rowsFor lists the editable rows of step: the validated fields plus the
// optional ones that carry no rules.
func rowsFor(step listing.Step) []listing.Field {
	switch step {
	case listing.StepClassification:
		return []listing.Field{
			listing.FieldCycle, listing.FieldSubject, listing.FieldSubjectCode,
			listing.FieldCanton, listing.FieldCompetencies, listing.FieldLehrmittelIDs,
		}
	case listing.StepArtifacts:
		return append([]listing.Field{listing.FieldFiles, listing.FieldPreviewFiles}, listing.LegalFields()...)
	}
	return listing.StepFields(step)
}

// buildControls creates the rows of step filled from form. Path rows
// start from the names of the attachments currently held.
func buildControls(step listing.Step, form listing.FormData, files, previews []listing.File, width int) []control {
	fields := rowsFor(step)
	out := make([]control, 0, len(fields))
	for _, f := range fields {
		c := control{field: f, label: labels[f], kind: kindOf(f), options: choices[f]}
		switch c.kind {
		case controlText:
			c.input = newInput(stringValue(form, f), "", width)
		case controlList:
			c.input = newInput(stringValue(form, f), "comma separated", width)
		case controlPaths:
			held := files
			if f == listing.FieldPreviewFiles {
				held = previews
			}
			paths := make([]string, 0, len(held))
			for _, h := range held {
				paths = append(paths, h.Path)
			}
			c.input = newInput(strings.Join(paths, ", "), "paths, comma separated, enter to attach", width)
		}
		out = append(out, c)
	}
	return out
}

// stringValue renders the current value of a text-like field.
func stringValue(form listing.FormData, f listing.Field) string {
	v, err := listing.Get(form, f)
	if err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	}
	return ""
}

// cycle returns the option after (dir=1) or before (dir=-1) current.
func cycle(options []string, current string, dir int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	next := (idx + dir + len(options)) % len(options)
	if idx < 0 && dir < 0 {
		next = len(options) - 1
	}
	return options[next]
}

// splitPaths splits comma separated paths, dropping blanks.
func splitPaths(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
