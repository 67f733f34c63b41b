package engine

import (
	"sync"
	"testing"
)

// TestPoolRunFixedCoversEveryIndexOnce checks that ScheduleFixed's
// contiguous chunks partition [0, n) with no gaps and no overlap.
func TestPoolRunFixedCoversEveryIndexOnce(t *testing.T) {
	n := 37
	seen := make([]int, n)
	var mu sync.Mutex

	p := NewPool(4)
	p.Run(n, ScheduleFixed, func(lo, hi int) {
		mu.Lock()
		for i := lo; i < hi; i++ {
			seen[i]++
		}
		mu.Unlock()
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

// TestPoolRunDynamicCoversEveryIndexOnce checks the same invariant for
// ScheduleDynamic's one-index-per-job channel fan-out.
func TestPoolRunDynamicCoversEveryIndexOnce(t *testing.T) {
	n := 50
	seen := make([]int, n)
	var mu sync.Mutex

	p := NewPool(8)
	p.Run(n, ScheduleDynamic, func(lo, hi int) {
		if hi != lo+1 {
			t.Fatalf("dynamic schedule job covered [%d, %d), want a single index", lo, hi)
		}
		mu.Lock()
		seen[lo]++
		mu.Unlock()
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

// TestPoolRunSingleWorkerRunsInline checks that a pool sized below 2
// workers (or a region of a single index) still runs body
// exactly once over the full range, without spawning goroutines.
func TestPoolRunSingleWorkerRunsInline(t *testing.T) {
	p := NewPool(1)
	var calls int
	p.Run(5, ScheduleFixed, func(lo, hi int) {
		calls++
		if lo != 0 || hi != 5 {
			t.Fatalf("expected a single [0, 5) call, got [%d, %d)", lo, hi)
		}
	})
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}
