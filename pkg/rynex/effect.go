package rynex

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Effect represents a reactive side effect that re-runs when its
// dependencies change.
//
// Effects run immediately when created, and re-run on the next flush after
// any signal or memo they read during execution changes. The dependency
// set is re-derived from scratch on every run, so a cell that is no longer
// read is dropped from the effect's subscriptions. An effect can return a
// Cleanup that is called before the effect re-runs or when it is disposed.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the cells this effect currently depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the Owner that owns this effect. Never nil.
	owner *Owner

	// pending indicates the effect is scheduled for re-run.
	pending atomic.Bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool

	// label identifies this effect in error-hook reports.
	label string
}

// EffectOption configures an Effect.
type EffectOption interface {
	isEffectOption()
	applyEffect(e *Effect)
}

type effectOptionFunc func(*Effect)

func (f effectOptionFunc) isEffectOption()       {}
func (f effectOptionFunc) applyEffect(e *Effect) { f(e) }

// EffectLabel sets the label reported to the error hook when this
// effect's body panics.
func EffectLabel(label string) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.label = label
	})
}

// NewEffect creates and runs a new effect owned by the given owner.
// The owner is mandatory: disposal of the owner disposes the effect, and
// an effect with no owning scope would leak its subscriptions. A nil
// owner panics.
//
// The effect body runs immediately and re-runs on flush when any signal
// or memo it reads changes. If the body returns a Cleanup, it is called
// before the next run and on disposal.
func NewEffect(owner *Owner, fn func() Cleanup, opts ...EffectOption) *Effect {
	if owner == nil {
		panic("rynex: NewEffect requires an owner")
	}

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}

	for _, opt := range opts {
		opt.applyEffect(e)
	}

	owner.registerEffect(e)

	// Run immediately to establish the initial dependency set.
	e.runGuarded()

	return e
}

// MarkDirty marks the effect as needing to re-run.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	// CAS ensures the effect is scheduled at most once per flush cycle,
	// so multiple writes before a flush coalesce into one re-run.
	if e.pending.CompareAndSwap(false, true) {
		e.owner.scheduleEffect(e)
	}
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// IsDisposed returns true if this effect has been disposed.
func (e *Effect) IsDisposed() bool {
	return e.disposed.Load()
}

// run executes the effect body with dependency tracking.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.pending.Store(false)

	// Run cleanup from previous run
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Drop the previous run's dependency set; the body re-establishes it.
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	// Track new sources during execution. The previous listener is
	// restored even if the body panics, so a nested run never corrupts
	// the outer run's tracking.
	old := setCurrentListener(e)
	defer setCurrentListener(old)

	e.cleanup = e.fn()
}

// runGuarded runs the effect body, converting a panic into an error-hook
// report so one failing effect never aborts its siblings.
func (e *Effect) runGuarded() {
	defer func() {
		if r := recover(); r != nil {
			reportError(e.errorLabel(), fmt.Errorf("effect panicked: %v", r))
		}
	}()
	e.run()
}

func (e *Effect) errorLabel() string {
	if e.label != "" {
		return e.label
	}
	return fmt.Sprintf("effect-%d", e.id)
}

// addSource records a cell this effect read during its current run.
// Called by cells when they are read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose tears down the effect: runs its cleanup and removes it from
// every cell's subscriber set. After disposal the effect is never
// notified again. Dispose is idempotent.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

var _ sourceTracker = (*Effect)(nil)
