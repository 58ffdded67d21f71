// Package reconcile diffs render-node trees and applies the minimal set
// of mutations to live output handles.
//
// A Reconciler is bound to a dom.Document and exposes the
// Mount/Patch/Unmount triad. Patch walks the previous and next trees in
// lockstep: nodes of a different kind or tag are replaced wholesale,
// nodes of the same kind keep their live handle and receive a property
// diff and a child diff. Child lists without keys are paired
// positionally; lists where either side carries keys go through keyed
// reconciliation with moves.
//
// Property handling follows the live-handle contract: "on"-prefixed keys
// are only ever listener registrations, class and style map onto the
// class attribute and the merged inline style declaration, and value and
// checked are written through live properties, skipped entirely when
// unchanged so cursor position and other transient input state survive
// a re-render.
//
// All methods mutate handles on the caller's goroutine; the reconciler
// is part of the single-threaded cooperative model and is not safe for
// concurrent use.
package reconcile
