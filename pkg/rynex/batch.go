package rynex

// DebugMode enables debug logging throughout the rynex package.
// This should be set at startup and not changed during runtime.
var DebugMode bool

// Batch groups multiple signal writes into a single notification phase.
// All writes within the batch function are collected, deduplicated by
// listener, and the affected listeners are marked dirty once when the
// outermost batch completes.
//
// Batches nest: the depth is counted, and notifications only fire when
// the depth returns to zero.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	    age.Set(30)
//	})
//	// Dependent effects re-run once on the next flush
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if !seen[id] {
			seen[id] = true
			listener.MarkDirty()
		}
	}
}

// Untracked runs a function without tracking signal reads as dependencies.
//
// Note: for single signal reads, signal.Peek() is more direct.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedGet reads a signal's value without creating a dependency.
// This is a convenience function equivalent to signal.Peek().
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}
