package rynex

import (
	"log"
	"sync"
	"sync/atomic"
)

// MaxFlushPasses bounds how many times a single Flush re-drains the
// pending queue when effects schedule new work from inside their own
// bodies. An effect that writes a cell it also reads would otherwise
// re-enqueue itself forever; exceeding the cap reports ErrFlushOverrun
// through the error hook and abandons the remaining queue for that tick.
var MaxFlushPasses = 100

// Owner represents a scope that owns reactive effects.
// When an Owner is disposed, all effects, cleanup callbacks, and child
// owners it contains are also disposed. Owners form a hierarchy that
// mirrors the component tree: each component instance creates an Owner
// under its parent's Owner.
type Owner struct {
	id uint64

	// parent is the parent Owner in the hierarchy, nil for a root.
	parent *Owner

	// children are child Owners (sub-components).
	children   []*Owner
	childrenMu sync.Mutex

	// effects owned by this scope.
	effects   []*Effect
	effectsMu sync.Mutex

	// cleanups are manual cleanup functions registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// pendingEffects are effects marked dirty and waiting for a flush.
	pendingEffects   []*Effect
	pendingEffectsMu sync.Mutex

	// disposed indicates whether this Owner has been disposed.
	disposed atomic.Bool
}

// NewOwner creates a new Owner with the given parent.
// The new Owner is automatically registered as a child of the parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// addChild registers a child Owner.
func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

// removeChild removes a child Owner from this Owner's children.
func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// registerEffect adds an effect to this Owner.
// The effect will be disposed when this Owner is disposed.
func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnCleanup registers a cleanup function to run when this Owner is
// disposed. If the owner is already disposed, the function runs
// immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// scheduleEffect adds an effect to the pending queue for the next flush.
func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.pendingEffectsMu.Lock()
	defer o.pendingEffectsMu.Unlock()
	o.pendingEffects = append(o.pendingEffects, e)
}

// Flush runs all pending effects in this owner's subtree. This is the
// deferred tick: writes only mark effects pending, and the host calls
// Flush once the current synchronous turn has unwound, so writes within
// a turn coalesce into one re-run per effect.
//
// Effects that mark new work pending from inside their own bodies extend
// the flush, up to MaxFlushPasses drains.
func (o *Owner) Flush() {
	if o.disposed.Load() {
		return
	}

	inst := getInstrument()
	if inst != nil {
		inst.FlushStarted()
	}

	ran := 0
	passes := 0
	for o.HasPending() {
		passes++
		if passes > MaxFlushPasses {
			reportError("flush", ErrFlushOverrun)
			o.clearPending()
			break
		}
		ran += o.flushOnce(inst)
	}

	if inst != nil {
		inst.FlushCompleted(ran)
	}

	if DebugMode {
		log.Printf("rynex: flush ran %d effects in %d passes", ran, passes)
	}
}

// flushOnce drains the current pending queue of this owner and its
// children, running each effect in its own guarded call. Returns the
// number of effects run.
func (o *Owner) flushOnce(inst Instrument) int {
	if o.disposed.Load() {
		return 0
	}

	o.pendingEffectsMu.Lock()
	effects := o.pendingEffects
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()

	ran := 0
	for _, e := range effects {
		if e.pending.Load() {
			e.runGuarded()
			ran++
			if inst != nil {
				inst.EffectRan()
			}
		}
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		ran += child.flushOnce(inst)
	}

	return ran
}

// HasPending returns true if this owner or any child has pending effects.
func (o *Owner) HasPending() bool {
	if o.disposed.Load() {
		return false
	}

	o.pendingEffectsMu.Lock()
	hasPending := len(o.pendingEffects) > 0
	o.pendingEffectsMu.Unlock()

	if hasPending {
		return true
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		if child.HasPending() {
			return true
		}
	}

	return false
}

// clearPending drops all pending effects in the subtree without running
// them, resetting each effect's pending flag so a later write can
// schedule it again.
func (o *Owner) clearPending() {
	o.pendingEffectsMu.Lock()
	dropped := o.pendingEffects
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()

	for _, e := range dropped {
		e.pending.Store(false)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		child.clearPending()
	}
}

// Dispose disposes this Owner and all its children, effects, and
// cleanups. Children are disposed in reverse order (last created first).
// After disposal, the Owner cannot be used.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()
}
