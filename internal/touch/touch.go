// Package touch records which fields the user has interacted with. Touch
// state only gates whether an already computed error is shown; validation
// never consults it.
package touch

import (
	"sort"
	"sync"

	"github.com/mark3labs/listwiz/internal/listing"
)

// Tracker is a monotonic set of touched fields. The zero value is ready to use.
type Tracker struct {
	mu      sync.RWMutex
	touched map[listing.Field]bool
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{touched: make(map[listing.Field]bool)}
}

// MarkTouched flips field to touched. It reports whether the field was
// previously untouched.
func (t *Tracker) MarkTouched(field listing.Field) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mark(field)
}

// MarkStepTouched marks every field of step in one update and reports
// whether anything changed.
func (t *Tracker) MarkStepTouched(step listing.Step) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := false
	for _, f := range listing.StepFields(step) {
		if t.mark(f) {
			changed = true
		}
	}
	return changed
}

func (t *Tracker) mark(field listing.Field) bool {
	if t.touched == nil {
		t.touched = make(map[listing.Field]bool)
	}
	if t.touched[field] {
		return false
	}
	t.touched[field] = true
	return true
}

// IsTouched reports whether field has been touched.
func (t *Tracker) IsTouched(field listing.Field) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.touched[field]
}

// Touched returns the touched fields sorted by name.
func (t *Tracker) Touched() []listing.Field {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]listing.Field, 0, len(t.touched))
	for f := range t.touched {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Reset clears all touch state. Only a full draft clear calls this.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched = make(map[listing.Field]bool)
}

// Visible filters errs down to the ones whose field is touched.
func Visible(errs []listing.FieldError, t *Tracker) []listing.FieldError {
	var out []listing.FieldError
	for _, e := range errs {
		if t.IsTouched(e.Field) {
			out = append(out, e)
		}
	}
	return out
}
