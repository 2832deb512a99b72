package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/validation"
)

// Submission is what a Submitter receives: the form plus the live
// attachment handles.
type Submission struct {
	ID          string              `json:"id"`
	Listing     listing.FormData    `json:"listing"`
	Attachments listing.Attachments `json:"attachments"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

// Submitter delivers a finished listing somewhere.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, sub Submission) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, sub Submission) error {
	return f(ctx, sub)
}

// IncompleteError is returned by Submit when any step has errors.
type IncompleteError struct {
	// Step is the first step that failed validation.
	Step   listing.Step
	Errors map[listing.Step][]listing.FieldError
}

func (e *IncompleteError) Error() string {
	n := 0
	for _, errs := range e.Errors {
		n += len(errs)
	}
	return fmt.Sprintf("listing incomplete: %d error(s), first at step %d (%s)", n, e.Step, e.Step)
}

// Submit validates every step and hands the listing to s. All fields are
// marked touched so the UI can show what is missing. The draft is cleared
// only when s succeeds; on failure the wizard stays as it was.
// The lock is not held while s runs, and a successful submit clears the
// whole wizard, so callers must not edit it until Submit returns.
func (w *Wizard) Submit(ctx context.Context, s Submitter) error {
	w.lock()
	all := validation.ValidateAll(w.form, w.att)
	for _, step := range listing.Steps() {
		w.touched.MarkStepTouched(step)
	}
	if first, bad := validation.FirstInvalidStep(all); bad {
		w.mu.Unlock()
		return &IncompleteError{Step: first, Errors: all}
	}
	sub := Submission{
		ID:          w.id,
		Listing:     w.form.Clone(),
		Attachments: w.att.Clone(),
		SubmittedAt: w.persist.Now().UTC(),
	}
	w.mu.Unlock()

	if err := s.Submit(ctx, sub); err != nil {
		logger.Warn("Wizard %s: submission failed: %v", w.id, err)
		return fmt.Errorf("submitting listing: %w", err)
	}

	logger.Info("Wizard %s: listing %q submitted", w.id, sub.Listing.Title)
	w.ClearDraft(ctx)
	return nil
}

// FileSubmitter writes the submission as indented JSON into Dir, one file
// per wizard id.
type FileSubmitter struct {
	Dir string
}

// Path returns the file a submission with id is written to.
func (f FileSubmitter) Path(id string) string {
	return filepath.Join(f.Dir, "listing-"+id+".json")
}

// Submit implements Submitter.
func (f FileSubmitter) Submit(_ context.Context, sub Submission) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("creating submission dir: %w", err)
	}
	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}
	if err := os.WriteFile(f.Path(sub.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing submission: %w", err)
	}
	return nil
}
