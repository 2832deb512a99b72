package wizard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuiet = 30 * time.Millisecond

func newTestWizard(t *testing.T, store draft.Store) *Wizard {
	t.Helper()
	w, err := New(context.Background(), Options{Store: store, Key: "listing-draft-test", Quiet: testQuiet})
	require.NoError(t, err)
	t.Cleanup(w.Close)
	return w
}

// fillValid puts the wizard into a fully valid state.
func fillValid(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.UpdateFields(map[listing.Field]any{
		listing.FieldTitle:                 "Fractions for beginners",
		listing.FieldDescription:           "Twelve worksheets introducing fractions with pizzas.",
		listing.FieldCycle:                 "2",
		listing.FieldSubject:               "Mathematics",
		listing.FieldCanton:                "ZH",
		listing.FieldPrice:                 "4.50",
		listing.FieldLegalOwnContent:       true,
		listing.FieldLegalNoTextbookCopies: true,
		listing.FieldLegalNoTrademarks:     true,
		listing.FieldLegalSwissGuidelines:  true,
		listing.FieldLegalTermsAccepted:    true,
	}))
	w.SetAttachedFiles([]listing.File{{Name: "fractions.pdf", Size: 1024}})
}

type unavailableStore struct{}

var errDown = errors.New("storage unavailable")

func (unavailableStore) Get(context.Context, string) ([]byte, error) { return nil, errDown }
func (unavailableStore) Put(context.Context, string, []byte) error { return errDown }
func (unavailableStore) Delete(context.Context, string) error { return errDown }

func TestNewStartsFromDefaults(t *testing.T) {
	w := newTestWizard(t, draft.NewMemoryStore())

	assert.Equal(t, listing.DefaultFormData(), w.Form())
	assert.Equal(t, listing.StepBasics, w.CurrentStep())
	assert.Equal(t, []listing.Step{1}, w.VisitedSteps())
	assert.False(t, w.HasDraft())
	assert.False(t, w.Restored())
	assert.True(t, w.LastSavedAt().IsZero())
	assert.NotEmpty(t, w.ID())
}

func TestNewRequiresStoreAndKey(t *testing.T) {
	_, err := New(context.Background(), Options{Key: "k"})
	assert.Error(t, err)
	_, err = New(context.Background(), Options{Store: draft.NewMemoryStore()})
	assert.Error(t, err)
}

func TestDraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := draft.NewMemoryStore()

	w := newTestWizard(t, store)
	require.NoError(t, w.UpdateField(listing.FieldTitle, "Wortarten"))
	require.NoError(t, w.UpdateField(listing.FieldCompetencies, []string{"D.5.C.1"}))
	w.SetAttachedFiles([]listing.File{{Name: "wortarten.pdf"}})
	assert.True(t, w.GoNext())
	assert.True(t, w.GoNext())
	assert.True(t, w.GoBack())
	w.Flush(ctx)
	require.True(t, w.HasDraft())
	saved := w.LastSavedAt()
	w.Close()

	restored := newTestWizard(t, store)
	assert.True(t, restored.Restored())
	assert.True(t, restored.HasDraft())
	assert.True(t, saved.Equal(restored.LastSavedAt()))
	assert.Equal(t, listing.StepClassification, restored.CurrentStep())
	assert.Equal(t, []listing.Step{1, 2, 3}, restored.VisitedSteps())

	form := restored.Form()
	assert.Equal(t, "Wortarten", form.Title)
	assert.Equal(t, []string{"D.5.C.1"}, form.Competencies)
	assert.Equal(t, []string{"wortarten.pdf"}, form.FileNames)
	assert.Empty(t, restored.AttachedFiles(), "file handles are never restored")
}

func TestRapidUpdatesCollapseIntoOneWrite(t *testing.T) {
	store := draft.NewMemoryStore()
	w := newTestWizard(t, store)

	for i := 0; i < 10; i++ {
		require.NoError(t, w.UpdateField(listing.FieldTitle, fmt.Sprintf("Title %d", i)))
	}
	assert.Equal(t, 0, store.Puts())

	require.Eventually(t, func() bool { return store.Puts() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testQuiet)
	assert.Equal(t, 1, store.Puts())

	raw, err := store.Get(context.Background(), "listing-draft-test")
	require.NoError(t, err)
	snap, err := draft.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "Title 9", snap.FormData.Title)
}

func TestClearDraftIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := draft.NewMemoryStore()
	w := newTestWizard(t, store)

	require.NoError(t, w.UpdateField(listing.FieldTitle, "Something"))
	w.MarkFieldTouched(listing.FieldTitle)
	w.SetPreviewFiles([]listing.File{{Name: "preview.png"}})
	w.GoNext()
	w.Flush(ctx)
	require.True(t, w.HasDraft())

	for i := 0; i < 2; i++ {
		w.ClearDraft(ctx)
		assert.False(t, w.HasDraft())
		assert.Equal(t, listing.DefaultFormData(), w.Form())
		assert.Equal(t, listing.StepBasics, w.CurrentStep())
		assert.Equal(t, []listing.Step{1}, w.VisitedSteps())
		assert.False(t, w.IsTouched(listing.FieldTitle))
		assert.Empty(t, w.PreviewFiles())
	}

	_, err := store.Get(ctx, "listing-draft-test")
	assert.ErrorIs(t, err, draft.ErrNotFound)
}

func TestClearDraftCancelsPendingWrite(t *testing.T) {
	ctx := context.Background()
	store := draft.NewMemoryStore()
	w := newTestWizard(t, store)

	require.NoError(t, w.UpdateField(listing.FieldTitle, "pending"))
	w.ClearDraft(ctx)
	time.Sleep(3 * testQuiet)

	assert.Equal(t, 0, store.Puts())
	assert.False(t, w.HasDraft())
}

func TestGoToStepGuardedBeforeVisit(t *testing.T) {
	store := draft.NewMemoryStore()
	w := newTestWizard(t, store)

	assert.False(t, w.CanNavigateToStep(3))
	assert.False(t, w.GoToStep(3))
	assert.Equal(t, listing.StepBasics, w.CurrentStep())
	assert.Equal(t, []listing.Step{1}, w.VisitedSteps())

	time.Sleep(3 * testQuiet)
	assert.Equal(t, 0, store.Puts(), "a refused jump schedules nothing")

	assert.False(t, w.GoToStep(2), "step 2 is not reachable before advancing")

	require.True(t, w.GoNext())
	require.True(t, w.GoNext())
	assert.True(t, w.GoToStep(1))
	assert.True(t, w.GoToStep(3), "visited steps stay reachable")
	assert.True(t, w.GoToStep(2))
	assert.False(t, w.GoToStep(4))
	assert.Equal(t, listing.StepClassification, w.CurrentStep())
}

func TestRestoreFillsSkippedSteps(t *testing.T) {
	store := draft.NewMemoryStore()
	raw := `{"formData":{},"currentStep":1,"visitedSteps":[1,4]}`
	require.NoError(t, store.Put(context.Background(), "listing-draft-test", []byte(raw)))

	w := newTestWizard(t, store)
	require.True(t, w.Restored())
	assert.Equal(t, listing.StepBasics, w.CurrentStep())
	assert.Equal(t, []listing.Step{1, 2, 3, 4}, w.VisitedSteps())
	assert.True(t, w.CanNavigateToStep(4))
}

func TestGoNextMarksStepTouched(t *testing.T) {
	w := newTestWizard(t, draft.NewMemoryStore())

	assert.Empty(t, w.VisibleErrors(listing.StepBasics))
	assert.NotEmpty(t, w.ErrorsForStep(listing.StepBasics))

	assert.True(t, w.GoNext(), "invalid steps do not block")
	assert.True(t, w.IsTouched(listing.FieldTitle))
	assert.Equal(t, w.ErrorsForStep(listing.StepBasics), w.VisibleErrors(listing.StepBasics))
	assert.False(t, w.IsTouched(listing.FieldCycle))
}

func TestGoNextAtLastStep(t *testing.T) {
	store := draft.NewMemoryStore()
	w := newTestWizard(t, store)
	for w.GoNext() {
	}
	assert.Equal(t, listing.StepArtifacts, w.CurrentStep())
	assert.False(t, w.GoNext())
	assert.True(t, w.GoBack())
	assert.Equal(t, []listing.Step{1, 2, 3, 4}, w.VisitedSteps())
}

func TestUpdateFieldErrors(t *testing.T) {
	w := newTestWizard(t, draft.NewMemoryStore())

	assert.ErrorIs(t, w.UpdateField("nope", "x"), listing.ErrUnknownField)
	assert.ErrorIs(t, w.UpdateField(listing.FieldTitle, 42), listing.ErrFieldType)
	assert.ErrorIs(t, w.UpdateField(listing.FieldFiles, []string{"a"}), listing.ErrReadOnlyField)
	assert.ErrorIs(t, w.SetFieldText(listing.FieldEditable, "maybe"), listing.ErrFieldType)

	require.NoError(t, w.SetFieldText(listing.FieldLehrmittelIDs, "lm-1, lm-2,"))
	assert.Equal(t, []string{"lm-1", "lm-2"}, w.Form().LehrmittelIDs)
}

func TestUpdateFieldsAllOrNothing(t *testing.T) {
	w := newTestWizard(t, draft.NewMemoryStore())

	err := w.UpdateFields(map[listing.Field]any{
		listing.FieldTitle:    "Applied?",
		listing.FieldEditable: "not a bool",
	})
	require.ErrorIs(t, err, listing.ErrFieldType)
	assert.Empty(t, w.Form().Title)

	require.NoError(t, w.UpdateFields(map[listing.Field]any{
		listing.FieldTitle:    "Applied",
		listing.FieldEditable: true,
	}))
	assert.Equal(t, "Applied", w.Form().Title)
	assert.True(t, w.Form().Editable)
}

func TestFormIsACopy(t *testing.T) {
	w := newTestWizard(t, draft.NewMemoryStore())
	require.NoError(t, w.UpdateField(listing.FieldCompetencies, []string{"a"}))

	f := w.Form()
	f.Competencies[0] = "mutated"
	assert.Equal(t, []string{"a"}, w.Form().Competencies)
}

func TestAttachmentsMirrorNames(t *testing.T) {
	store := draft.NewMemoryStore()
	w := newTestWizard(t, store)

	assert.False(t, w.IsStepValid(listing.StepArtifacts))
	w.SetAttachedFiles([]listing.File{{Name: "a.pdf", Path: "/tmp/a.pdf"}, {Name: "b.docx"}})
	w.SetPreviewFiles([]listing.File{{Name: "p.png"}})

	form := w.Form()
	assert.Equal(t, []string{"a.pdf", "b.docx"}, form.FileNames)
	assert.Equal(t, []string{"p.png"}, form.PreviewFileNames)
	assert.Len(t, w.AttachedFiles(), 2)
	assert.Empty(t, w.VisibleErrors(listing.StepArtifacts))

	require.Eventually(t, func() bool { return store.Puts() == 1 }, time.Second, 5*time.Millisecond)
	raw, err := store.Get(context.Background(), "listing-draft-test")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "/tmp/a.pdf", "handles never reach storage")
}

func TestStepValidityAndCompleteness(t *testing.T) {
	w := newTestWizard(t, draft.NewMemoryStore())
	require.NoError(t, w.UpdateFields(map[listing.Field]any{
		listing.FieldTitle:       "Hi",
		listing.FieldDescription: "Too short to pass the rules",
	}))
	assert.True(t, w.IsStepComplete(listing.StepBasics))
	assert.False(t, w.IsStepValid(listing.StepBasics))

	fillValid(t, w)
	for _, s := range listing.Steps() {
		assert.True(t, w.IsStepValid(s), "step %d", s)
		assert.True(t, w.IsStepComplete(s), "step %d", s)
	}
}

func TestStorageUnavailableStillUsable(t *testing.T) {
	ctx := context.Background()
	w := newTestWizard(t, unavailableStore{})

	assert.False(t, w.Restored())
	require.NoError(t, w.UpdateField(listing.FieldTitle, "Offline"))
	assert.True(t, w.GoNext())
	w.Flush(ctx)

	assert.False(t, w.HasDraft())
	assert.ErrorIs(t, w.LastError(), errDown)
	assert.Equal(t, "Offline", w.Form().Title)

	w.ClearDraft(ctx)
	assert.False(t, w.HasDraft())
	assert.Equal(t, listing.StepBasics, w.CurrentStep())
}

func TestCorruptDraftStartsFresh(t *testing.T) {
	ctx := context.Background()
	store := draft.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "listing-draft-test", []byte(`{"currentStep":9}`)))

	w := newTestWizard(t, store)
	assert.False(t, w.Restored())
	assert.Equal(t, listing.DefaultFormData(), w.Form())
	assert.Equal(t, listing.StepBasics, w.CurrentStep())
}

func TestCloseDropsPendingWrite(t *testing.T) {
	store := draft.NewMemoryStore()
	w, err := New(context.Background(), Options{Store: store, Key: "k", Quiet: testQuiet})
	require.NoError(t, err)

	require.NoError(t, w.UpdateField(listing.FieldTitle, "late"))
	w.Close()
	w.Close()
	time.Sleep(3 * testQuiet)

	assert.Equal(t, 0, store.Puts())
}

func TestMisusePanics(t *testing.T) {
	var nilWizard *Wizard
	assert.PanicsWithValue(t, ErrNotInitialized, func() { nilWizard.Form() })

	var zero Wizard
	assert.PanicsWithValue(t, ErrNotInitialized, func() { zero.GoNext() })

	w, err := New(context.Background(), Options{Store: draft.NewMemoryStore(), Key: "k"})
	require.NoError(t, err)
	w.Close()
	assert.PanicsWithValue(t, ErrNotInitialized, func() { _ = w.UpdateField(listing.FieldTitle, "x") })
	assert.NotPanics(t, func() { nilWizard.Close() })
}

func TestStatusCallback(t *testing.T) {
	ctx := context.Background()
	statuses := make(chan draft.Status, 16)
	w, err := New(ctx, Options{
		Store:    draft.NewMemoryStore(),
		Key:      "k",
		Quiet:    time.Hour,
		OnStatus: func(st draft.Status) { statuses <- st },
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.UpdateField(listing.FieldTitle, "x"))
	st := <-statuses
	assert.True(t, st.Pending)
	assert.False(t, w.IsSaving())

	w.Flush(ctx)
	assert.True(t, (<-statuses).IsSaving)
	final := <-statuses
	assert.False(t, final.IsSaving)
	assert.True(t, final.HasDraft)
	assert.Equal(t, final, w.Status())
}
