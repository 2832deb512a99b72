// Package wizard is the single entry point a UI talks to. It composes the
// form data, navigation, touched tracking, validation and draft persistence
// and keeps the transient attachment handles that never reach storage.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/navigation"
	"github.com/mark3labs/listwiz/internal/touch"
	"github.com/mark3labs/listwiz/internal/validation"
)

// ErrNotInitialized is the panic value for calls on a nil, zero or closed
// Wizard.
var ErrNotInitialized = errors.New("wizard not initialized")

// Options configures a Wizard.
type Options struct {
	Store draft.Store
	Key   string
	// Quiet is the debounce window before a draft write.
	Quiet time.Duration
	// Now overrides the clock stamped into snapshots.
	Now func() time.Time
	// OnStatus receives persistence status changes. It runs synchronously
	// and must not call back into the Wizard.
	OnStatus func(draft.Status)
}

// Wizard holds one in-progress listing. All methods are safe for
// concurrent use, though the intended model is a single UI goroutine.
type Wizard struct {
	id       string
	persist  *draft.Persister
	touched  *touch.Tracker
	restored bool

	mu     sync.Mutex
	form   listing.FormData
	nav    *navigation.Navigator
	att    listing.Attachments
	closed bool
}

// New builds a wizard and restores the stored draft, if any. A missing,
// corrupt or unreachable draft silently starts a fresh form.
func New(ctx context.Context, opts Options) (*Wizard, error) {
	p, err := draft.NewPersister(draft.Options{
		Store:    opts.Store,
		Key:      opts.Key,
		Quiet:    opts.Quiet,
		Now:      opts.Now,
		OnStatus: opts.OnStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("creating persister: %w", err)
	}

	w := &Wizard{
		id:      uuid.NewString(),
		persist: p,
		touched: touch.New(),
		form:    listing.DefaultFormData(),
		nav:     navigation.New(),
	}

	if snap, ok := p.Load(ctx); ok {
		if err := w.nav.Restore(snap.CurrentStep, snap.VisitedSteps); err != nil {
			logger.Warn("Wizard %s: discarding draft position: %v", w.id, err)
			w.nav.Reset()
		}
		w.form = snap.FormData
		w.restored = true
	}

	logger.Debug("Wizard %s ready (key %s, restored %t, step %d)", w.id, opts.Key, w.restored, w.nav.Current())
	return w, nil
}

// lock acquires the state mutex or panics on misuse.
func (w *Wizard) lock() {
	if w == nil || w.persist == nil {
		panic(ErrNotInitialized)
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		panic(ErrNotInitialized)
	}
}

// scheduleLocked hands the current state to the persister. Holding mu
// keeps snapshots ordered with the mutations that produced them.
func (w *Wizard) scheduleLocked() {
	w.persist.Schedule(draft.Snapshot{
		FormData:     w.form.Clone(),
		CurrentStep:  w.nav.Current(),
		VisitedSteps: w.nav.Visited(),
	})
}

// ID identifies this wizard instance in logs and tool responses.
func (w *Wizard) ID() string {
	w.lock()
	defer w.mu.Unlock()
	return w.id
}

// Restored reports whether startup found a usable draft.
func (w *Wizard) Restored() bool {
	w.lock()
	defer w.mu.Unlock()
	return w.restored
}

// Key returns the storage key of the draft slot.
func (w *Wizard) Key() string {
	w.lock()
	defer w.mu.Unlock()
	return w.persist.Key()
}

// Form returns a copy of the current form data.
func (w *Wizard) Form() listing.FormData {
	w.lock()
	defer w.mu.Unlock()
	return w.form.Clone()
}

// UpdateField sets a single field. Only unknown fields, wrongly typed
// values and the attachment mirrors are refused.
func (w *Wizard) UpdateField(field listing.Field, value any) error {
	w.lock()
	defer w.mu.Unlock()

	if err := listing.Set(&w.form, field, value); err != nil {
		return err
	}
	w.scheduleLocked()
	return nil
}

// UpdateFields applies several fields at once. Either every value is
// applied or, on the first bad one, none are.
func (w *Wizard) UpdateFields(values map[listing.Field]any) error {
	fields := make([]listing.Field, 0, len(values))
	for f := range values {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	for _, f := range fields {
		if err := listing.Check(f, values[f]); err != nil {
			return err
		}
	}

	w.lock()
	defer w.mu.Unlock()
	for _, f := range fields {
		if err := listing.Set(&w.form, f, values[f]); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		w.scheduleLocked()
	}
	return nil
}

// SetFieldText parses raw the way a text input would and updates field.
func (w *Wizard) SetFieldText(field listing.Field, raw string) error {
	v, err := listing.ParseValue(field, raw)
	if err != nil {
		return err
	}
	return w.UpdateField(field, v)
}

// CurrentStep returns the active step.
func (w *Wizard) CurrentStep() listing.Step {
	w.lock()
	defer w.mu.Unlock()
	return w.nav.Current()
}

// VisitedSteps returns the sorted set of reached steps.
func (w *Wizard) VisitedSteps() []listing.Step {
	w.lock()
	defer w.mu.Unlock()
	return w.nav.Visited()
}

// CanNavigateToStep reports whether GoToStep(step) would move.
func (w *Wizard) CanNavigateToStep(step listing.Step) bool {
	w.lock()
	defer w.mu.Unlock()
	return w.nav.CanNavigateToStep(step)
}

// GoNext marks the current step touched and advances. Errors on the step
// do not block; they merely become visible.
func (w *Wizard) GoNext() bool {
	w.lock()
	defer w.mu.Unlock()

	w.touched.MarkStepTouched(w.nav.Current())
	if !w.nav.GoNext() {
		return false
	}
	w.scheduleLocked()
	return true
}

// GoBack moves to the previous step.
func (w *Wizard) GoBack() bool {
	w.lock()
	defer w.mu.Unlock()

	if !w.nav.GoBack() {
		return false
	}
	w.scheduleLocked()
	return true
}

// GoToStep jumps to a previously visited step.
func (w *Wizard) GoToStep(step listing.Step) bool {
	w.lock()
	defer w.mu.Unlock()

	if !w.nav.GoToStep(step) {
		return false
	}
	w.scheduleLocked()
	return true
}

// MarkFieldTouched records that the user interacted with field.
func (w *Wizard) MarkFieldTouched(field listing.Field) {
	w.lock()
	defer w.mu.Unlock()
	w.touched.MarkTouched(field)
}

// MarkStepTouched marks every field of step touched.
func (w *Wizard) MarkStepTouched(step listing.Step) {
	w.lock()
	defer w.mu.Unlock()
	w.touched.MarkStepTouched(step)
}

// IsTouched reports whether field is touched.
func (w *Wizard) IsTouched(field listing.Field) bool {
	w.lock()
	defer w.mu.Unlock()
	return w.touched.IsTouched(field)
}

// ErrorsForStep returns every validation error of step, touched or not.
func (w *Wizard) ErrorsForStep(step listing.Step) []listing.FieldError {
	w.lock()
	defer w.mu.Unlock()
	return validation.ErrorsForStep(step, w.form, w.att)
}

// VisibleErrors returns the errors of step whose field is touched.
func (w *Wizard) VisibleErrors(step listing.Step) []listing.FieldError {
	w.lock()
	defer w.mu.Unlock()
	return touch.Visible(validation.ErrorsForStep(step, w.form, w.att), w.touched)
}

// IsStepValid reports whether step has no errors.
func (w *Wizard) IsStepValid(step listing.Step) bool {
	w.lock()
	defer w.mu.Unlock()
	return validation.IsStepValid(step, w.form, w.att)
}

// IsStepComplete reports whether step looks filled in.
func (w *Wizard) IsStepComplete(step listing.Step) bool {
	w.lock()
	defer w.mu.Unlock()
	return validation.IsStepComplete(step, w.form, w.att)
}

// AttachedFiles returns the selected primary files.
func (w *Wizard) AttachedFiles() []listing.File {
	w.lock()
	defer w.mu.Unlock()
	return w.att.Clone().Files
}

// SetAttachedFiles replaces the primary files and mirrors their names.
func (w *Wizard) SetAttachedFiles(files []listing.File) {
	w.lock()
	defer w.mu.Unlock()

	w.att.Files = listing.Attachments{Files: files}.Clone().Files
	w.form.FileNames = listing.FileNames(files)
	w.scheduleLocked()
}

// PreviewFiles returns the selected preview files.
func (w *Wizard) PreviewFiles() []listing.File {
	w.lock()
	defer w.mu.Unlock()
	return w.att.Clone().Previews
}

// SetPreviewFiles replaces the preview files and mirrors their names.
func (w *Wizard) SetPreviewFiles(files []listing.File) {
	w.lock()
	defer w.mu.Unlock()

	w.att.Previews = listing.Attachments{Previews: files}.Clone().Previews
	w.form.PreviewFileNames = listing.FileNames(files)
	w.scheduleLocked()
}

// HasDraft reports whether a snapshot currently exists in storage.
func (w *Wizard) HasDraft() bool {
	w.lock()
	defer w.mu.Unlock()
	return w.persist.HasDraft()
}

// LastSavedAt returns when the stored snapshot was written.
func (w *Wizard) LastSavedAt() time.Time {
	w.lock()
	defer w.mu.Unlock()
	return w.persist.LastSavedAt()
}

// IsSaving reports whether a write is in flight.
func (w *Wizard) IsSaving() bool {
	w.lock()
	defer w.mu.Unlock()
	return w.persist.IsSaving()
}

// Status returns the persistence status.
func (w *Wizard) Status() draft.Status {
	w.lock()
	defer w.mu.Unlock()
	return w.persist.Status()
}

// LastError returns the most recent storage failure, for diagnostics.
func (w *Wizard) LastError() error {
	w.lock()
	defer w.mu.Unlock()
	return w.persist.LastError()
}

// ClearDraft deletes the stored draft and restarts the wizard from
// defaults: form, position, touched fields and attachments. Calling it
// again is harmless.
func (w *Wizard) ClearDraft(ctx context.Context) {
	w.lock()
	defer w.mu.Unlock()

	w.persist.Clear(ctx)
	w.form = listing.DefaultFormData()
	w.nav.Reset()
	w.touched.Reset()
	w.att = listing.Attachments{}
	w.restored = false
	logger.Debug("Wizard %s cleared", w.id)
}

// Flush writes a pending snapshot now instead of waiting for the timer.
func (w *Wizard) Flush(ctx context.Context) {
	w.lock()
	p := w.persist
	w.mu.Unlock()
	p.Flush(ctx)
}

// Close stops the debounce timer; a pending snapshot is dropped. Further
// calls other than Close panic with ErrNotInitialized.
func (w *Wizard) Close() {
	if w == nil || w.persist == nil {
		return
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	w.persist.Close()
	logger.Debug("Wizard %s closed", w.id)
}
