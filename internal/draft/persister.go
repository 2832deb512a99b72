// Package draft persists wizard snapshots to a key-value slot. Writes are
// debounced and best-effort: storage failures are logged and swallowed so
// the wizard keeps working without persistence.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/listwiz/internal/logger"
)

const (
	// DefaultQuietPeriod is the debounce window measured from the last change.
	DefaultQuietPeriod = 500 * time.Millisecond
	// DefaultTimeout bounds each storage operation.
	DefaultTimeout = 5 * time.Second
)

// Status is the externally visible persistence state.
type Status struct {
	HasDraft    bool      `json:"hasDraft"`
	IsSaving    bool      `json:"isSaving"`
	Pending     bool      `json:"pending"`
	LastSavedAt time.Time `json:"lastSavedAt"`
}

// Options configures a Persister.
type Options struct {
	Store Store
	Key   string
	// Quiet is the debounce window; zero means DefaultQuietPeriod.
	Quiet time.Duration
	// Timeout bounds each storage call; zero means DefaultTimeout.
	Timeout time.Duration
	// Now overrides the clock used for lastSavedAt.
	Now func() time.Time
	// OnStatus is called synchronously after every status change. It must
	// not block and must not call back into the owning wizard.
	OnStatus func(Status)
}

// Persister owns the debounce timer and the persisted slot for one key.
type Persister struct {
	store    Store
	key      string
	quiet    time.Duration
	timeout  time.Duration
	now      func() time.Time
	onStatus func(Status)

	mu        sync.Mutex
	timer     *time.Timer
	pending   *Snapshot
	gen       uint64
	hasDraft  bool
	saving    bool
	lastSaved time.Time
	lastErr   error
	closed    bool

	// writeMu serialises storage mutations so Clear never races a write.
	writeMu sync.Mutex
}

// NewPersister validates options and returns an idle persister.
func NewPersister(opts Options) (*Persister, error) {
	if opts.Store == nil {
		return nil, errors.New("draft: store is required")
	}
	if opts.Key == "" {
		return nil, errors.New("draft: key is required")
	}
	p := &Persister{
		store:    opts.Store,
		key:      opts.Key,
		quiet:    opts.Quiet,
		timeout:  opts.Timeout,
		now:      opts.Now,
		onStatus: opts.OnStatus,
	}
	if p.quiet <= 0 {
		p.quiet = DefaultQuietPeriod
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p, nil
}

// Key returns the storage key this persister writes to.
func (p *Persister) Key() string {
	return p.key
}

// Now returns the persister's clock reading.
func (p *Persister) Now() time.Time {
	return p.now()
}

// Load performs the single startup read. Missing, unreadable or corrupt
// drafts all yield ok=false; nothing is returned as an error.
func (p *Persister) Load(ctx context.Context) (Snapshot, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	data, err := p.store.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		logger.Debug("No draft stored under %s", p.key)
		return Snapshot{}, false
	}
	if err != nil {
		logger.Warn("Failed to read draft %s: %v", p.key, err)
		p.setErr(err)
		return Snapshot{}, false
	}

	snap, err := Decode(data)
	if err != nil {
		logger.Warn("Ignoring unreadable draft %s: %v", p.key, err)
		p.setErr(err)
		return Snapshot{}, false
	}

	p.mu.Lock()
	p.hasDraft = true
	p.lastSaved = snap.LastSavedAt
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)

	logger.Info("Restored draft %s (step %d, saved %s)", p.key, snap.CurrentStep, snap.LastSavedAt.Format(time.RFC3339))
	return snap, true
}

// Schedule records snap as the latest state and restarts the quiet period.
// Bursts of calls collapse into a single write of the final snapshot.
func (p *Persister) Schedule(snap Snapshot) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.pending = &snap
	p.gen++
	gen := p.gen
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.quiet, func() { p.fire(gen) })
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)
}

// fire runs on the timer goroutine. A stale generation means the snapshot
// was superseded, flushed or cleared in the meantime.
func (p *Persister) fire(gen uint64) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	snap, ok := p.take(func() bool { return gen == p.gen })
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	p.write(ctx, snap)
}

// Flush writes any pending snapshot immediately.
func (p *Persister) Flush(ctx context.Context) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	snap, ok := p.take(func() bool { return true })
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	p.write(ctx, snap)
}

// take claims the pending snapshot and flips isSaving. Callers hold writeMu.
func (p *Persister) take(current func() bool) (Snapshot, bool) {
	p.mu.Lock()
	if p.closed || p.pending == nil || !current() {
		p.mu.Unlock()
		return Snapshot{}, false
	}
	snap := *p.pending
	p.pending = nil
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.saving = true
	st := p.statusLocked()
	p.mu.Unlock()
	p.notify(st)
	return snap, true
}

func (p *Persister) write(ctx context.Context, snap Snapshot) {
	snap.LastSavedAt = p.now().UTC()

	data, err := snap.Encode()
	if err == nil {
		err = p.store.Put(ctx, p.key, data)
	}

	p.mu.Lock()
	p.saving = false
	if err != nil {
		p.lastErr = fmt.Errorf("saving draft: %w", err)
	} else {
		p.lastErr = nil
		p.hasDraft = true
		p.lastSaved = snap.LastSavedAt
	}
	st := p.statusLocked()
	p.mu.Unlock()

	if err != nil {
		logger.Warn("Failed to save draft %s: %v", p.key, err)
	} else {
		logger.Debug("Draft %s saved (step %d)", p.key, snap.CurrentStep)
	}
	p.notify(st)
}

// Clear drops any pending write, waits for an in-flight one, and removes
// the stored draft. Storage errors are logged, never returned.
func (p *Persister) Clear(ctx context.Context) {
	p.mu.Lock()
	p.pending = nil
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err := p.store.Delete(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		err = nil
	}

	p.mu.Lock()
	p.hasDraft = false
	p.lastSaved = time.Time{}
	if err != nil {
		p.lastErr = fmt.Errorf("clearing draft: %w", err)
	}
	st := p.statusLocked()
	p.mu.Unlock()

	if err != nil {
		logger.Warn("Failed to delete draft %s: %v", p.key, err)
	} else {
		logger.Debug("Draft %s cleared", p.key)
	}
	p.notify(st)
}

// Close cancels the pending timer so nothing is written after teardown,
// and waits for a write already in flight.
func (p *Persister) Close() {
	p.mu.Lock()
	p.closed = true
	p.pending = nil
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	// Empty critical section: blocks until an in-flight write returns.
	p.writeMu.Lock()
	p.writeMu.Unlock()
}

// Status returns a copy of the current persistence state.
func (p *Persister) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// HasDraft reports whether a snapshot currently exists in storage.
func (p *Persister) HasDraft() bool {
	return p.Status().HasDraft
}

// IsSaving reports whether a write is in progress.
func (p *Persister) IsSaving() bool {
	return p.Status().IsSaving
}

// LastSavedAt returns the timestamp of the stored snapshot, zero if none.
func (p *Persister) LastSavedAt() time.Time {
	return p.Status().LastSavedAt
}

// LastError returns the most recent storage failure, if any.
func (p *Persister) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Persister) setErr(err error) {
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}

func (p *Persister) statusLocked() Status {
	return Status{
		HasDraft:    p.hasDraft,
		IsSaving:    p.saving,
		Pending:     p.pending != nil,
		LastSavedAt: p.lastSaved,
	}
}

func (p *Persister) notify(st Status) {
	if p.onStatus != nil {
		p.onStatus(st)
	}
}
