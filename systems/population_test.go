package systems

import (
	"testing"

	"github.com/pthm-cable/rectangles/components"
	"github.com/pthm-cable/rectangles/rng"
)

var testViewport = Viewport{Width: 1000, Height: 765}

// newTestStore creates a store whose pool goes parallel above 16 bodies.
func newTestStore(t testing.TB, seed uint64) (*Store, *rng.Rand) {
	t.Helper()
	r := rng.New(seed)
	pool := NewPool(4, 16)
	t.Cleanup(pool.Stop)
	return NewStore(r, pool), r
}

// bodyKey identifies a body by its attributes for before/after comparisons.
type bodyKey struct {
	velocity, width, x, y, z float32
}

func collectBodies(s *Store) map[bodyKey]int {
	m := make(map[bodyKey]int, s.Len())
	s.ForEach(func(_ int, r *components.Rectangle, p *components.Position) {
		m[bodyKey{r.Velocity, r.Width, p.X, p.Y, p.Z}]++
	})
	return m
}

func TestSpawnAttributeBounds(t *testing.T) {
	s, _ := newTestStore(t, rng.DefaultSeed)
	s.Spawn(10000, testViewport)

	if s.Len() != 10000 {
		t.Fatalf("Len() = %d, want 10000", s.Len())
	}

	s.ForEach(func(i int, r *components.Rectangle, p *components.Position) {
		if r.Velocity < MinVelocity || r.Velocity >= MaxVelocity {
			t.Errorf("body %d velocity %v outside [60,120)", i, r.Velocity)
		}
		if r.Width < MinWidth || r.Width >= MinWidth+WidthRange {
			t.Errorf("body %d width %v outside [10,50)", i, r.Width)
		}
		if want := -(testViewport.Width / 2) - r.Width; r.TeleportTarget != want {
			t.Errorf("body %d teleport target %v, want %v", i, r.TeleportTarget, want)
		}
		if p.X < -500 || p.X >= 500 || p.Y < -382.5 || p.Y >= 382.5 {
			t.Errorf("body %d position (%v,%v) outside viewport", i, p.X, p.Y)
		}
		if p.Z < 0 || p.Z >= 1 {
			t.Errorf("body %d z %v outside [0,1)", i, p.Z)
		}
	})
}

func TestSpawnDrawOrder(t *testing.T) {
	s, _ := newTestStore(t, 99)
	s.Spawn(1, testViewport)

	ref := rng.New(99)
	width := MinWidth + ref.Uniform01()*WidthRange
	velocity := ref.UniformRange(MinVelocity, MaxVelocity)
	x := (ref.Uniform01() - 0.5) * testViewport.Width
	y := (ref.Uniform01() - 0.5) * testViewport.Height
	z := ref.Uniform01()

	s.ForEach(func(_ int, r *components.Rectangle, p *components.Position) {
		if r.Width != width || r.Velocity != velocity {
			t.Errorf("got width=%v velocity=%v, want %v %v", r.Width, r.Velocity, width, velocity)
		}
		if p.X != x || p.Y != y || p.Z != z {
			t.Errorf("got (%v,%v,%v), want (%v,%v,%v)", p.X, p.Y, p.Z, x, y, z)
		}
	})
}

func TestDespawnExactCount(t *testing.T) {
	s, _ := newTestStore(t, 1)
	s.Spawn(100, testViewport)

	if got := s.Despawn(40); got != 40 {
		t.Errorf("Despawn(40) = %d, want 40", got)
	}
	if s.Len() != 60 {
		t.Errorf("Len() = %d, want 60", s.Len())
	}

	n := 0
	s.ForEach(func(int, *components.Rectangle, *components.Position) { n++ })
	if n != 60 {
		t.Errorf("iterated %d bodies, want 60", n)
	}
}

func TestDespawnClampsToPopulation(t *testing.T) {
	s, _ := newTestStore(t, 1)
	s.Spawn(3, testViewport)

	if got := s.Despawn(10); got != 3 {
		t.Errorf("Despawn(10) = %d, want 3", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if got := s.Despawn(1); got != 0 {
		t.Errorf("Despawn on empty store = %d, want 0", got)
	}
}

func TestParForEachMatchesForEachIndex(t *testing.T) {
	s, _ := newTestStore(t, 5)
	s.Spawn(500, testViewport)

	want := make([]float32, s.Len())
	s.ForEach(func(i int, r *components.Rectangle, _ *components.Position) {
		want[i] = r.Width
	})

	got := make([]float32, s.Len())
	s.ParForEach(func(i int, r *components.Rectangle, _ *components.Position) {
		got[i] = r.Width
	})

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: parallel saw width %v, serial %v", i, got[i], want[i])
		}
	}
}

func TestSprites(t *testing.T) {
	s, _ := newTestStore(t, 5)
	s.Spawn(20, testViewport)

	sprites := s.Sprites(nil)
	if len(sprites) != 20 {
		t.Fatalf("len(Sprites) = %d, want 20", len(sprites))
	}
	s.ForEach(func(i int, r *components.Rectangle, p *components.Position) {
		sp := sprites[i]
		if sp.X != p.X || sp.Y != p.Y || sp.Z != p.Z || sp.Width != r.Width {
			t.Errorf("sprite %d = %+v, body pos %+v width %v", i, sp, *p, r.Width)
		}
	})

	// Reuses the caller's buffer.
	again := s.Sprites(sprites[:0])
	if &again[0] != &sprites[0] {
		t.Error("Sprites did not append into the provided buffer")
	}
}
