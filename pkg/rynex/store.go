package rynex

import (
	"fmt"
	"sync"
)

// Container is the capability interface for keyed reactive state.
// Reads inside a tracked context subscribe the current listener to the
// cell addressed by the key; writes notify that cell's subscribers when
// the value changes. Any concrete store (map-backed, struct-backed,
// code-generated) satisfies callers through this interface rather than
// through language-level property interception.
type Container interface {
	// Get returns the value for key and whether the key is present.
	// Safe to call outside any tracked context (plain read).
	Get(key string) (any, bool)

	// Set stores value under key. A write that does not change the value
	// never notifies.
	Set(key string, value any)
}

// Store is a discrete named-slot container: a fixed set of reactive
// cells declared at construction and addressed by key. Writing an
// undeclared key is a programmer error and panics; the slot set never
// grows.
//
// Equality is the package default (shallow identity): mutating a slice
// held in a slot without re-assigning a fresh value is not observable
// through a Store. Use DeepStore for tracked nested state.
type Store struct {
	cells map[string]*Signal[any]
}

// NewStore creates a store with one reactive cell per key of initial.
func NewStore(initial map[string]any) *Store {
	cells := make(map[string]*Signal[any], len(initial))
	for key, value := range initial {
		cells[key] = NewSignal[any](value)
	}
	return &Store{cells: cells}
}

// Get returns the value of the named slot, subscribing the current
// listener. The second result is false for undeclared keys.
func (s *Store) Get(key string) (any, bool) {
	cell, ok := s.cells[key]
	if !ok {
		return nil, false
	}
	return cell.Get(), true
}

// Peek returns the value of the named slot without subscribing.
func (s *Store) Peek(key string) (any, bool) {
	cell, ok := s.cells[key]
	if !ok {
		return nil, false
	}
	return cell.Peek(), true
}

// Set writes the named slot, notifying subscribers if the value changed.
// Panics if the key was not declared at construction.
func (s *Store) Set(key string, value any) {
	cell, ok := s.cells[key]
	if !ok {
		panic(fmt.Sprintf("rynex: Store.Set on undeclared slot %q", key))
	}
	cell.Set(value)
}

// Keys returns the declared slot names in unspecified order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.cells))
	for key := range s.cells {
		keys = append(keys, key)
	}
	return keys
}

// DeepStore is a deep tracked container over an arbitrary object graph.
// Every key resolves to its own reactive cell, created on first access,
// so reads of keys that do not exist yet still subscribe and observe a
// later write.
//
// Nested map[string]any values are wrapped into child DeepStore nodes
// lazily on first Get (recursive wrapping rather than flat
// (object, key) registration: cell identity stays local to each node,
// and tracking of deeply nested writes falls out of the same code path).
// The wrapper is cached so repeated reads observe a stable identity;
// re-assigning the key drops the cached wrapper.
type DeepStore struct {
	mu sync.Mutex

	// cells holds one reactive cell per accessed key.
	cells map[string]*Signal[any]

	// present records which keys currently hold a value.
	present map[string]bool

	// wrapped caches child stores for nested map values.
	wrapped map[string]*DeepStore
}

// NewDeepStore creates a deep tracked container seeded from initial.
// The initial map is copied shallowly; nested maps are wrapped on first
// access, not eagerly.
func NewDeepStore(initial map[string]any) *DeepStore {
	d := &DeepStore{
		cells:   make(map[string]*Signal[any], len(initial)),
		present: make(map[string]bool, len(initial)),
		wrapped: make(map[string]*DeepStore),
	}
	for key, value := range initial {
		d.cells[key] = NewSignal[any](value)
		d.present[key] = true
	}
	return d
}

// cell returns the reactive cell for key, creating it on demand so that
// a read of an absent key still establishes a subscription.
func (d *DeepStore) cell(key string) *Signal[any] {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cell, ok := d.cells[key]; ok {
		return cell
	}
	cell := NewSignal[any](nil)
	d.cells[key] = cell
	return cell
}

// Get returns the value under key, subscribing the current listener.
// Nested map[string]any values are returned as child *DeepStore nodes.
func (d *DeepStore) Get(key string) (any, bool) {
	value := d.cell(key).Get()

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.present[key] {
		return nil, false
	}

	if child, ok := d.wrapped[key]; ok {
		return child, true
	}
	if nested, ok := value.(map[string]any); ok {
		child := NewDeepStore(nested)
		d.wrapped[key] = child
		return child, true
	}
	return value, true
}

// Peek returns the value under key without subscribing and without
// wrapping nested maps.
func (d *DeepStore) Peek(key string) (any, bool) {
	d.mu.Lock()
	cell, ok := d.cells[key]
	present := d.present[key]
	d.mu.Unlock()

	if !ok || !present {
		return nil, false
	}
	return cell.Peek(), true
}

// Set stores value under key, notifying the key's subscribers if the
// value changed or if the key was absent. Assigning over a nested map
// discards its cached child store, so the next Get re-wraps the new
// value.
func (d *DeepStore) Set(key string, value any) {
	cell := d.cell(key)

	d.mu.Lock()
	wasPresent := d.present[key]
	d.present[key] = true
	delete(d.wrapped, key)
	d.mu.Unlock()

	if !wasPresent {
		// Presence changed even if the stored value did not (an absent
		// key reads as nil); notify unconditionally.
		d.forceSet(cell, value)
		return
	}
	cell.Set(value)
}

// Delete removes key from the store. Subscribers of the key are always
// notified of the presence change, and a subsequent Get reports absence.
func (d *DeepStore) Delete(key string) {
	d.mu.Lock()
	cell, ok := d.cells[key]
	wasPresent := d.present[key]
	delete(d.present, key)
	delete(d.wrapped, key)
	d.mu.Unlock()

	if ok && wasPresent {
		d.forceSet(cell, nil)
	}
}

// forceSet writes a cell and notifies subscribers regardless of value
// equality, for writes whose observable change is key presence.
func (d *DeepStore) forceSet(cell *Signal[any], value any) {
	cell.mu.Lock()
	cell.value = value
	cell.mu.Unlock()
	cell.base.notifySubscribers()
}

var (
	_ Container = (*Store)(nil)
	_ Container = (*DeepStore)(nil)
)
