package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/rectangles/components"
	"github.com/pthm-cable/rectangles/rng"
)

func TestLatestResize(t *testing.T) {
	tests := []struct {
		name   string
		events []ResizeEvent
		want   ResizeEvent
		wantOK bool
	}{
		{"none", nil, ResizeEvent{}, false},
		{"only other windows", []ResizeEvent{{Window: 2, Width: 10, Height: 10}}, ResizeEvent{}, false},
		{
			"last primary wins",
			[]ResizeEvent{
				{Window: PrimaryWindow, Width: 900, Height: 700},
				{Window: PrimaryWindow, Width: 800, Height: 600},
			},
			ResizeEvent{Window: PrimaryWindow, Width: 800, Height: 600},
			true,
		},
		{
			"trailing other window ignored",
			[]ResizeEvent{
				{Window: PrimaryWindow, Width: 800, Height: 765},
				{Window: 1, Width: 300, Height: 300},
			},
			ResizeEvent{Window: PrimaryWindow, Width: 800, Height: 765},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LatestResize(tt.events, PrimaryWindow)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LatestResize() = %+v, %v, want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResizeSkipsWithoutViewport(t *testing.T) {
	s, r := newTestStore(t, rng.DefaultSeed)
	s.Spawn(10, testViewport)
	draws := r.Draws()

	rr := NewResizeReactor(s, r)
	if rr.Update(nil, []ResizeEvent{{Width: 800, Height: 600}}) {
		t.Error("Update without viewport consumed an event")
	}
	if rr.PreviousHeight() != 0 {
		t.Errorf("PreviousHeight() = %v, want 0", rr.PreviousHeight())
	}
	if r.Draws() != draws {
		t.Error("Update without viewport drew from the RNG")
	}
}

func TestResizeInitializesPreviousHeight(t *testing.T) {
	s, r := newTestStore(t, rng.DefaultSeed)
	rr := NewResizeReactor(s, r)

	vp := testViewport
	if rr.Update(&vp, nil) {
		t.Error("Update without events reported a resize")
	}
	if rr.PreviousHeight() != 765 {
		t.Errorf("PreviousHeight() = %v, want 765", rr.PreviousHeight())
	}

	// Later frames do not overwrite it without an event.
	other := Viewport{Width: 1000, Height: 900}
	rr.Update(&other, nil)
	if rr.PreviousHeight() != 765 {
		t.Errorf("PreviousHeight() = %v after static frame, want 765", rr.PreviousHeight())
	}
}

func TestResizeRecomputesTeleportTargets(t *testing.T) {
	s, r := newTestStore(t, rng.DefaultSeed)
	s.Spawn(1000, testViewport)
	rr := NewResizeReactor(s, r)

	vp := testViewport
	rr.Update(&vp, nil)

	vp = Viewport{Width: 800, Height: 765}
	events := []ResizeEvent{
		{Window: PrimaryWindow, Width: 800, Height: 765},
		{Window: 3, Width: 200, Height: 100},
	}
	if !rr.Update(&vp, events) {
		t.Fatal("Update did not consume the primary resize")
	}

	s.ForEach(func(i int, rect *components.Rectangle, _ *components.Position) {
		if want := float32(-400) - rect.Width; rect.TeleportTarget != want {
			t.Fatalf("body %d teleport target = %v, want %v", i, rect.TeleportTarget, want)
		}
	})

	// Nothing is recomputed on a frame with no event.
	draws := r.Draws()
	if rr.Update(&vp, nil) {
		t.Error("static frame reported a resize")
	}
	if r.Draws() != draws {
		t.Error("static frame drew from the RNG")
	}
}

func TestResizeEqualHeightLeavesYUntouched(t *testing.T) {
	s, r := newTestStore(t, rng.DefaultSeed)
	s.Spawn(500, testViewport)
	rr := NewResizeReactor(s, r)

	vp := testViewport
	rr.Update(&vp, nil)
	before := collectBodies(s)

	vp.Width = 1200
	rr.Update(&vp, []ResizeEvent{{Width: 1200, Height: 765}})

	if rr.LastRespawned() != 0 {
		t.Errorf("LastRespawned() = %d, want 0", rr.LastRespawned())
	}
	after := collectBodies(s)
	for k := range before {
		if after[k] == 0 {
			t.Fatalf("body %+v moved on width-only resize", k)
		}
	}
}

func TestResizeGrowRespawnFraction(t *testing.T) {
	const n = 10000
	s, r := newTestStore(t, rng.DefaultSeed)
	s.Spawn(n, testViewport)
	rr := NewResizeReactor(s, r)

	vp := testViewport
	rr.Update(&vp, nil)

	before := make([]float32, n)
	s.ForEach(func(i int, _ *components.Rectangle, p *components.Position) {
		before[i] = p.Y
	})

	vp = Viewport{Width: 1000, Height: 1000}
	rr.Update(&vp, []ResizeEvent{{Width: 1000, Height: 1000}})

	moved := make([]float64, n)
	s.ForEach(func(i int, _ *components.Rectangle, p *components.Position) {
		if p.Y == before[i] {
			return
		}
		moved[i] = 1
		abs := math.Abs(float64(p.Y))
		if abs < 382.5 || abs >= 500 {
			t.Errorf("body %d resampled y = %v, outside the revealed band", i, p.Y)
		}
	})

	frac := stat.Mean(moved, nil)
	// p = 1 - 765/1000; the binomial std dev at n=10000 is ~0.0042.
	if math.Abs(frac-0.235) > 0.02 {
		t.Errorf("respawn fraction = %v, want ~0.235", frac)
	}
	if got := int(stat.Mean(moved, nil)*n + 0.5); got != rr.LastRespawned() {
		t.Errorf("LastRespawned() = %d, counted %d", rr.LastRespawned(), got)
	}
	if rr.PreviousHeight() != 1000 {
		t.Errorf("PreviousHeight() = %v, want 1000", rr.PreviousHeight())
	}
}

func TestResizeRespawnBothSides(t *testing.T) {
	s, r := newTestStore(t, 11)
	s.Spawn(4000, testViewport)
	rr := NewResizeReactor(s, r)

	vp := testViewport
	rr.Update(&vp, nil)
	rr.Update(&vp, []ResizeEvent{{Width: 1000, Height: 1530}})

	var above, below int
	s.ForEach(func(_ int, _ *components.Rectangle, p *components.Position) {
		switch {
		case p.Y >= 382.5:
			above++
		case p.Y <= -382.5:
			below++
		}
	})
	if above == 0 || below == 0 {
		t.Fatalf("revealed band sides: above=%d below=%d", above, below)
	}
	ratio := float64(above) / float64(above+below)
	if math.Abs(ratio-0.5) > 0.06 {
		t.Errorf("above/(above+below) = %v, want ~0.5", ratio)
	}
}

func TestResizeShrinkClampsOutOfRange(t *testing.T) {
	s, r := newTestStore(t, rng.DefaultSeed)
	s.Spawn(2000, testViewport)
	rr := NewResizeReactor(s, r)

	vp := testViewport
	rr.Update(&vp, nil)

	before := make([]float32, s.Len())
	outside := 0
	s.ForEach(func(i int, _ *components.Rectangle, p *components.Position) {
		before[i] = p.Y
		if p.Y < -200 || p.Y > 200 {
			outside++
		}
	})

	vp = Viewport{Width: 1000, Height: 400}
	rr.Update(&vp, []ResizeEvent{{Width: 1000, Height: 400}})

	if rr.LastRespawned() != outside {
		t.Errorf("LastRespawned() = %d, want %d", rr.LastRespawned(), outside)
	}
	s.ForEach(func(i int, _ *components.Rectangle, p *components.Position) {
		if p.Y < -200 || p.Y > 200 {
			t.Fatalf("body %d y = %v outside [-200, 200]", i, p.Y)
		}
		wasInside := before[i] >= -200 && before[i] <= 200
		if wasInside && p.Y != before[i] {
			t.Fatalf("body %d inside the new bounds was moved", i)
		}
	})
}

func TestResizeMinimizeAndRestore(t *testing.T) {
	const n = 1000
	s, r := newTestStore(t, rng.DefaultSeed)
	s.Spawn(n, testViewport)
	rr := NewResizeReactor(s, r)

	vp := testViewport
	rr.Update(&vp, nil)

	// Minimize: height 0 collapses every body onto the x axis.
	vp = Viewport{Width: 1000, Height: 0}
	rr.Update(&vp, []ResizeEvent{{Width: 1000, Height: 0}})
	if rr.PreviousHeight() != 0 {
		t.Fatalf("PreviousHeight() = %v after minimize, want 0", rr.PreviousHeight())
	}

	// A quiet frame at height 0 must not reinitialize the stored height.
	rr.Update(&vp, nil)
	if rr.PreviousHeight() != 0 {
		t.Fatalf("PreviousHeight() = %v after quiet frame, want 0", rr.PreviousHeight())
	}

	// Restore: the whole height is revealed, so every body is re-placed.
	vp = testViewport
	rr.Update(&vp, []ResizeEvent{{Width: vp.Width, Height: vp.Height}})
	if rr.LastRespawned() != n {
		t.Errorf("LastRespawned() = %d after restore, want %d", rr.LastRespawned(), n)
	}
	if rr.PreviousHeight() != vp.Height {
		t.Errorf("PreviousHeight() = %v, want %v", rr.PreviousHeight(), vp.Height)
	}

	bound := vp.Height / 2
	onAxis := 0
	s.ForEach(func(i int, _ *components.Rectangle, p *components.Position) {
		if p.Y == 0 {
			onAxis++
		}
		if p.Y < -bound || p.Y >= bound {
			t.Fatalf("body %d y = %v outside [-%v, %v)", i, p.Y, bound, bound)
		}
	})
	if onAxis > n/100 {
		t.Errorf("%d of %d bodies still on the x axis after restore", onAxis, n)
	}
}

func TestResizeDeterministic(t *testing.T) {
	run := func() map[bodyKey]int {
		s, r := newTestStore(t, 42)
		s.Spawn(3000, testViewport)
		rr := NewResizeReactor(s, r)
		vp := testViewport
		rr.Update(&vp, nil)
		rr.Update(&vp, []ResizeEvent{{Width: 1280, Height: 1024}})
		rr.Update(&vp, []ResizeEvent{{Width: 640, Height: 480}})
		rr.Update(&vp, []ResizeEvent{{Width: 1920, Height: 1080}})
		return collectBodies(s)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs produced %d and %d distinct bodies", len(a), len(b))
	}
	for k, n := range a {
		if b[k] != n {
			t.Fatalf("body %+v differs between runs", k)
		}
	}
}
