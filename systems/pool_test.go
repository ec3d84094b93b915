package systems

import (
	"sync/atomic"
	"testing"
)

func TestPoolVisitsEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name      string
		workers   int
		threshold int
		n         int
	}{
		{"inline below threshold", 4, 100, 50},
		{"parallel", 4, 16, 1000},
		{"uneven chunks", 3, 1, 10},
		{"more workers than items", 8, 1, 5},
		{"single worker", 1, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.workers, tt.threshold)
			defer p.Stop()

			visits := make([]atomic.Int32, tt.n)
			p.For(tt.n, func(i0, i1 int) {
				for i := i0; i < i1; i++ {
					visits[i].Add(1)
				}
			})

			// For has returned, so every chunk must already be done.
			for i := range visits {
				if got := visits[i].Load(); got != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, got)
				}
			}
		})
	}
}

func TestPoolZeroItems(t *testing.T) {
	p := NewPool(2, 1)
	defer p.Stop()

	called := false
	p.For(0, func(i0, i1 int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}

func TestPoolRestartAfterStop(t *testing.T) {
	p := NewPool(2, 1)
	var sum atomic.Int64
	add := func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			sum.Add(int64(i))
		}
	}

	p.For(10, add)
	p.Stop()
	p.Stop() // idempotent
	p.For(10, add)
	p.Stop()

	if got := sum.Load(); got != 90 {
		t.Errorf("sum = %d, want 90", got)
	}
}

func TestPoolDefaults(t *testing.T) {
	p := NewPool(0, 0)
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
	if p.threshold != DefaultParallelThreshold {
		t.Errorf("threshold = %d, want %d", p.threshold, DefaultParallelThreshold)
	}
}
