package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rectangles/components"
	"github.com/pthm-cable/rectangles/rng"
)

// Attribute ranges drawn at spawn time.
const (
	MinWidth    float32 = 10
	WidthRange  float32 = 40
	MinVelocity float32 = 60
	MaxVelocity float32 = 120
)

// Viewport is the size of the primary window in world units.
type Viewport struct {
	Width, Height float32
}

// Store owns the live bodies and the target population count.
// Bodies live in an ark world as (Rectangle, Position) entities.
type Store struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Rectangle, components.Position]
	filter *ecs.Filter2[components.Rectangle, components.Position]
	rng    *rng.Rand
	pool   *Pool

	target int
	count  int

	// Component pointers in query order. Valid until the next structural
	// change; rebuilt lazily when dirty.
	entities  []ecs.Entity
	rects     []*components.Rectangle
	positions []*components.Position
	dirty     bool
}

// NewStore creates an empty store drawing attributes from r and running
// parallel iteration on pool.
func NewStore(r *rng.Rand, pool *Pool) *Store {
	world := ecs.NewWorld()
	return &Store{
		world:  world,
		mapper: ecs.NewMap2[components.Rectangle, components.Position](world),
		filter: ecs.NewFilter2[components.Rectangle, components.Position](world),
		rng:    r,
		pool:   pool,
	}
}

// Len returns the number of live bodies.
func (s *Store) Len() int {
	return s.count
}

// Target returns the desired population size.
func (s *Store) Target() int {
	return s.target
}

// SetTarget records a new desired population size. It does not spawn or
// despawn; PopulationController keeps the two in step.
func (s *Store) SetTarget(n int) {
	s.target = n
}

// Spawn creates exactly n bodies sized for vp.
func (s *Store) Spawn(n int, vp Viewport) {
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		// Draw order is part of the reproducibility contract.
		width := MinWidth + s.rng.Uniform01()*WidthRange
		velocity := s.rng.UniformRange(MinVelocity, MaxVelocity)
		x := (s.rng.Uniform01() - 0.5) * vp.Width
		y := (s.rng.Uniform01() - 0.5) * vp.Height
		z := s.rng.Uniform01()

		rect := components.Rectangle{
			Velocity:       velocity,
			Width:          width,
			TeleportTarget: components.TeleportTargetFor(vp.Width, width),
		}
		pos := components.Position{X: x, Y: y, Z: z}
		s.mapper.NewEntity(&rect, &pos)
	}
	s.count += n
	s.dirty = true
}

// Despawn removes n arbitrary bodies and returns how many were removed.
// Requests larger than the population are clamped.
func (s *Store) Despawn(n int) int {
	if n <= 0 {
		return 0
	}
	if n > s.count {
		slog.Warn("despawn exceeds population, clamping", "requested", n, "population", s.count)
		n = s.count
	}

	s.refresh()
	// Query iteration in refresh is complete, so the world is unlocked.
	for _, e := range s.entities[len(s.entities)-n:] {
		s.world.RemoveEntity(e)
	}
	s.count -= n
	s.dirty = true
	return n
}

// refresh rebuilds the cached component view after structural changes.
func (s *Store) refresh() {
	if !s.dirty && len(s.entities) == s.count {
		return
	}
	s.entities = s.entities[:0]
	s.rects = s.rects[:0]
	s.positions = s.positions[:0]

	// Must consume entire query to release world lock
	query := s.filter.Query()
	for query.Next() {
		rect, pos := query.Get()
		s.entities = append(s.entities, query.Entity())
		s.rects = append(s.rects, rect)
		s.positions = append(s.positions, pos)
	}
	s.dirty = false
}

// ForEach calls fn for every body, serially and in store order.
func (s *Store) ForEach(fn func(i int, r *components.Rectangle, p *components.Position)) {
	s.refresh()
	for i := range s.rects {
		fn(i, s.rects[i], s.positions[i])
	}
}

// ParForEach calls fn for every body on the worker pool. Each body is visited
// by exactly one invocation, and ParForEach returns once all have completed.
// The index matches the one ForEach passes for the same body.
func (s *Store) ParForEach(fn func(i int, r *components.Rectangle, p *components.Position)) {
	s.refresh()
	rects, positions := s.rects, s.positions
	s.pool.For(len(rects), func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			fn(i, rects[i], positions[i])
		}
	})
}

// Sprites appends a render snapshot of every body to dst.
func (s *Store) Sprites(dst []components.Sprite) []components.Sprite {
	s.refresh()
	for i, pos := range s.positions {
		dst = append(dst, components.Sprite{
			X:     pos.X,
			Y:     pos.Y,
			Z:     pos.Z,
			Width: s.rects[i].Width,
		})
	}
	return dst
}
