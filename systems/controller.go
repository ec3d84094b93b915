package systems

// Change describes what a controller pass did to the population.
type Change struct {
	Setup   bool // the initial population was spawned this frame
	Grew    bool
	Shrank  bool
	From    int // target before the pass
	To      int // target after the pass
	Spawned int
	Removed int
}

// Changed reports whether the target count moved.
func (c Change) Changed() bool {
	return c.Setup || c.Grew || c.Shrank
}

// PopulationController drives the store toward its target count in
// response to edge-triggered grow and shrink signals.
type PopulationController struct {
	store *Store
	ready bool
}

// NewPopulationController creates a controller for store.
func NewPopulationController(store *Store) *PopulationController {
	return &PopulationController{store: store}
}

// Ready reports whether the initial population has been spawned.
func (c *PopulationController) Ready() bool {
	return c.ready
}

// Setup spawns the initial population on the first call that has a viewport.
// Without a viewport it does nothing; callers retry next frame.
func (c *PopulationController) Setup(initial int, vp *Viewport) (Change, bool) {
	if c.ready {
		return Change{}, true
	}
	if vp == nil {
		return Change{}, false
	}
	from := c.store.Target()
	c.store.SetTarget(initial)
	c.store.Spawn(initial, *vp)
	c.ready = true
	return Change{Setup: true, From: from, To: initial, Spawned: initial}, true
}

// Grow doubles the target (minimum 1) and spawns the difference.
// Without a viewport the whole operation is skipped.
func (c *PopulationController) Grow(vp *Viewport) (spawned int, ok bool) {
	if vp == nil {
		return 0, false
	}
	old := c.store.Target()
	target := max(1, old*2)
	c.store.SetTarget(target)
	c.store.Spawn(target-old, *vp)
	return target - old, true
}

// Shrink halves the target with floor division and despawns the difference.
// A target of 1 becomes 0; grow is the only path clamped to a minimum.
func (c *PopulationController) Shrink() (removed int) {
	old := c.store.Target()
	target := old / 2
	c.store.SetTarget(target)
	return c.store.Despawn(old - target)
}

// Apply runs the grow and shrink triggers for one frame. They are checked
// independently and both may fire.
func (c *PopulationController) Apply(grow, shrink bool, vp *Viewport) Change {
	change := Change{From: c.store.Target()}
	if grow {
		if n, ok := c.Grow(vp); ok {
			change.Grew = true
			change.Spawned = n
		}
	}
	if shrink {
		change.Removed = c.Shrink()
		change.Shrank = true
	}
	change.To = c.store.Target()
	return change
}
