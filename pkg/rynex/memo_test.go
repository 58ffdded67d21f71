package rynex

import "testing"

func TestMemoLazyComputation(t *testing.T) {
	computeCount := 0
	memo := NewMemo(func() int {
		computeCount++
		return 42
	})

	if computeCount != 0 {
		t.Error("memo should not compute before first read")
	}

	if got := memo.Get(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if computeCount != 1 {
		t.Errorf("expected 1 computation, got %d", computeCount)
	}
}

func TestMemoCaching(t *testing.T) {
	count := NewSignal(1)
	computeCount := 0
	memo := NewMemo(func() int {
		computeCount++
		return count.Get() * 2
	})

	for i := 0; i < 3; i++ {
		if got := memo.Get(); got != 2 {
			t.Errorf("expected 2, got %d", got)
		}
	}
	if computeCount != 1 {
		t.Errorf("repeated reads should use the cache, got %d computations", computeCount)
	}
}

func TestMemoInvalidation(t *testing.T) {
	count := NewSignal(1)
	memo := NewMemo(func() int {
		return count.Get() * 2
	})

	if got := memo.Get(); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}

	count.Set(5)

	if got := memo.Get(); got != 10 {
		t.Errorf("expected 10 after source change, got %d", got)
	}
}

func TestMemoInvalidatesOnceBetweenReads(t *testing.T) {
	count := NewSignal(1)
	memo := NewMemo(func() int {
		return count.Get()
	})
	_ = memo.Get()

	listener := newTestListener()
	memo.base.subscribe(listener)

	// Several writes before the next read collapse into one invalidation.
	count.Set(2)
	count.Set(3)
	count.Set(4)

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
	if got := memo.Get(); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestMemoChaining(t *testing.T) {
	count := NewSignal(2)
	doubled := NewMemo(func() int {
		return count.Get() * 2
	})
	quadrupled := NewMemo(func() int {
		return doubled.Get() * 2
	})

	if got := quadrupled.Get(); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}

	count.Set(3)

	if got := quadrupled.Get(); got != 12 {
		t.Errorf("expected 12 after propagation through chain, got %d", got)
	}
}

func TestMemoDynamicDependencies(t *testing.T) {
	useFirst := NewSignal(true)
	first := NewSignal("a")
	second := NewSignal("b")

	computeCount := 0
	memo := NewMemo(func() string {
		computeCount++
		if useFirst.Get() {
			return first.Get()
		}
		return second.Get()
	})

	if got := memo.Get(); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}

	// second is not a dependency yet; writing it must not invalidate.
	second.Set("c")
	_ = memo.Get()
	if computeCount != 1 {
		t.Errorf("write to untracked cell must not invalidate, got %d computations", computeCount)
	}

	useFirst.Set(false)
	if got := memo.Get(); got != "c" {
		t.Errorf("expected %q after branch switch, got %q", "c", got)
	}

	// After the switch, first is no longer a dependency.
	first.Set("z")
	_ = memo.Get()
	if computeCount != 2 {
		t.Errorf("stale dependency must be dropped, got %d computations", computeCount)
	}
}

func TestMemoDrivesEffect(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	count := NewSignal(1)
	doubled := NewMemo(func() int {
		return count.Get() * 2
	})

	var seen []int
	NewEffect(owner, func() Cleanup {
		seen = append(seen, doubled.Get())
		return nil
	})

	count.Set(4)
	owner.Flush()

	if len(seen) != 2 || seen[0] != 2 || seen[1] != 8 {
		t.Errorf("expected [2 8], got %v", seen)
	}
}

func TestMemoPeekDoesNotTrack(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	count := NewSignal(1)
	memo := NewMemo(func() int {
		return count.Get()
	})

	runs := 0
	NewEffect(owner, func() Cleanup {
		runs++
		_ = memo.Peek()
		return nil
	})

	count.Set(2)
	owner.Flush()

	if runs != 1 {
		t.Errorf("Peek must not subscribe, got %d runs", runs)
	}
}

func TestMemoDispose(t *testing.T) {
	count := NewSignal(1)
	computeCount := 0
	memo := NewMemo(func() int {
		computeCount++
		return count.Get()
	})
	_ = memo.Get()

	memo.Dispose()

	listener := newTestListener()
	memo.base.subscribe(listener)

	count.Set(2)
	if listener.getDirtyCount() != 0 {
		t.Error("disposed memo must not receive invalidations")
	}
}
