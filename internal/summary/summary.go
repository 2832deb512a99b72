// Package summary renders a human readable overview of a listing draft.
package summary

import (
	"fmt"
	"strings"
	"time"

	"charm.land/glamour/v2"
	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
)

// maxWidth caps the render width for readability.
const maxWidth = 120

// Source is the read side of a wizard.
type Source interface {
	Form() listing.FormData
	CurrentStep() listing.Step
	VisitedSteps() []listing.Step
	ErrorsForStep(step listing.Step) []listing.FieldError
	IsStepComplete(step listing.Step) bool
	AttachedFiles() []listing.File
	Status() draft.Status
}

// Markdown builds the draft overview as markdown.
func Markdown(src Source) string {
	form := src.Form()
	var b strings.Builder

	title := form.Title
	if strings.TrimSpace(title) == "" {
		title = "Untitled listing"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Step %d of %d (%s), visited %s\n\n", src.CurrentStep(), listing.LastStep, src.CurrentStep(), stepList(src.VisitedSteps()))
	b.WriteString(draftLine(src.Status()))
	b.WriteString("\n\n")

	b.WriteString("| Step | Complete | Errors |\n|---|---|---|\n")
	for _, s := range listing.Steps() {
		fmt.Fprintf(&b, "| %d. %s | %s | %d |\n", s, s, yesNo(src.IsStepComplete(s)), len(src.ErrorsForStep(s)))
	}
	b.WriteString("\n")

	b.WriteString("## Basics\n\n")
	field(&b, "Description", form.Description)
	field(&b, "Language", form.Language)
	if form.Language == listing.LanguageGerman {
		field(&b, "Dialect", form.Dialect)
	}
	field(&b, "Resource type", form.ResourceType)

	b.WriteString("\n## Classification\n\n")
	field(&b, "Cycle", form.Cycle)
	field(&b, "Subject", joinNonEmpty(form.Subject, form.SubjectCode))
	field(&b, "Canton", form.Canton)
	field(&b, "Competencies", strings.Join(form.Competencies, ", "))
	field(&b, "Teaching materials", strings.Join(form.LehrmittelIDs, ", "))

	b.WriteString("\n## Commercial terms\n\n")
	if form.PriceType == listing.PriceFree {
		field(&b, "Price", "free")
	} else {
		field(&b, "Price", priceText(form.Price))
	}
	field(&b, "Editable", yesNo(form.Editable))
	field(&b, "Licence", form.LicenseScope)

	b.WriteString("\n## Files & legal\n\n")
	files := src.AttachedFiles()
	switch {
	case len(files) > 0:
		for _, f := range files {
			fmt.Fprintf(&b, "- `%s` (%d bytes)\n", f.Name, f.Size)
		}
	case len(form.FileNames) > 0:
		fmt.Fprintf(&b, "- previously selected: %s (re-attach before submitting)\n", strings.Join(form.FileNames, ", "))
	default:
		b.WriteString("- no files attached\n")
	}
	legal := form.Legal()
	confirmed := 0
	for _, f := range listing.LegalFields() {
		if legal[f] {
			confirmed++
		}
	}
	fmt.Fprintf(&b, "\nLegal confirmations: %d of %d\n", confirmed, len(listing.LegalFields()))

	var problems []string
	for _, s := range listing.Steps() {
		for _, e := range src.ErrorsForStep(s) {
			problems = append(problems, fmt.Sprintf("- step %d, %s", s, e.String()))
		}
	}
	if len(problems) > 0 {
		b.WriteString("\n## Open issues\n\n")
		b.WriteString(strings.Join(problems, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

// Render renders markdown for a terminal of the given width. Falls back to
// the raw markdown if glamour fails.
func Render(md string, width int) string {
	if width <= 0 || width > maxWidth {
		width = maxWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSuffix(rendered, "\n")
}

func draftLine(st draft.Status) string {
	switch {
	case st.IsSaving:
		return "Draft: saving…"
	case st.HasDraft:
		return "Draft: saved " + st.LastSavedAt.Local().Format(time.DateTime)
	case st.Pending:
		return "Draft: unsaved changes"
	default:
		return "Draft: none"
	}
}

func field(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "_not set_"
	}
	fmt.Fprintf(b, "- **%s**: %s\n", label, value)
}

func priceText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return "CHF " + raw
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " / ")
}

func stepList(steps []listing.Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = fmt.Sprint(int(s))
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
