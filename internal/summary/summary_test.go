package summary

import (
	"context"
	"testing"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	w, err := wizard.New(context.Background(), wizard.Options{Store: draft.NewMemoryStore(), Key: "summary"})
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return w
}

func TestMarkdownFreshDraft(t *testing.T) {
	md := Markdown(newWizard(t))

	assert.Contains(t, md, "# Untitled listing")
	assert.Contains(t, md, "Step 1 of 4")
	assert.Contains(t, md, "Draft: none")
	assert.Contains(t, md, "no files attached")
	assert.Contains(t, md, "Legal confirmations: 0 of 5")
	assert.Contains(t, md, "## Open issues")
	assert.Contains(t, md, "- **Dialect**: BOTH")
}

func TestMarkdownFilledDraft(t *testing.T) {
	w := newWizard(t)
	require.NoError(t, w.UpdateFields(map[listing.Field]any{
		listing.FieldTitle:        "Bruchrechnen",
		listing.FieldLanguage:     "fr",
		listing.FieldPriceType:    listing.PriceFree,
		listing.FieldSubject:      "Mathematik",
		listing.FieldSubjectCode:  "MA",
		listing.FieldCompetencies: []string{"MA.1.A.1", "MA.1.A.2"},
	}))
	w.SetAttachedFiles([]listing.File{{Name: "brueche.pdf", Size: 2048}})
	w.GoNext()

	md := Markdown(w)
	assert.Contains(t, md, "# Bruchrechnen")
	assert.Contains(t, md, "Step 2 of 4")
	assert.Contains(t, md, "visited 1, 2")
	assert.Contains(t, md, "- **Price**: free")
	assert.Contains(t, md, "Mathematik / MA")
	assert.Contains(t, md, "MA.1.A.1, MA.1.A.2")
	assert.Contains(t, md, "`brueche.pdf` (2048 bytes)")
	assert.NotContains(t, md, "**Dialect**")
}

func TestDraftLine(t *testing.T) {
	assert.Equal(t, "Draft: none", draftLine(draft.Status{}))
	assert.Equal(t, "Draft: saving…", draftLine(draft.Status{IsSaving: true, HasDraft: true}))
	assert.Equal(t, "Draft: unsaved changes", draftLine(draft.Status{Pending: true}))
}

func TestRender(t *testing.T) {
	out := Render("# Heading\n\nparagraph", 40)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "paragraph")
}
