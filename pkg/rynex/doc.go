// Package rynex implements the reactive core: signals, memos, effects,
// owners, and batched change propagation.
//
// # Reactive Primitives
//
// Signal[T] is a mutable reactive cell. Reading it inside a tracked
// context (an effect run or memo computation) subscribes the current
// listener; writing it marks subscribers dirty. Memo[T] is a lazy derived
// cell that recomputes when its sources change. Effect is a unit of
// re-computation owned by an Owner scope.
//
// # Scheduling
//
// Writes never re-run dependents inline. A write marks each dependent
// effect pending on its owner; the host drains pending work with
// Owner.Flush at turn boundaries. Multiple writes within a turn coalesce
// into one re-run per effect, and Batch extends the coalescing window
// explicitly across nested calls.
//
// # Ownership
//
// Every effect belongs to an Owner. Disposing an owner transitively
// disposes its child owners, effects, and cleanup callbacks; a disposed
// effect is never notified again.
//
// # Failure Isolation
//
// A panic inside one effect body does not stop sibling effects in the
// same flush. Recovered panics are reported through the hook installed
// with SetErrorHook.
package rynex
