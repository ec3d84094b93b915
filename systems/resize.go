package systems

import (
	"math"

	"github.com/pthm-cable/rectangles/components"
	"github.com/pthm-cable/rectangles/rng"
)

// WindowID identifies a host window.
type WindowID uint32

// PrimaryWindow is the only window the simulation reacts to.
const PrimaryWindow WindowID = 0

// ResizeEvent reports a window's new size.
type ResizeEvent struct {
	Window        WindowID
	Width, Height float32
}

// LatestResize returns the most recent event for window, discarding earlier
// ones and events for other windows.
func LatestResize(events []ResizeEvent, window WindowID) (ResizeEvent, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Window == window {
			return events[i], true
		}
	}
	return ResizeEvent{}, false
}

// ResizeReactor recomputes wrap boundaries and vertical placement when the
// primary window changes size. previousHeight is its only frame-to-frame state;
// it may legitimately be 0 after the window is minimized.
type ResizeReactor struct {
	store *Store
	rng   *rng.Rand

	previousHeight float32
	initialized    bool
	lastRespawned  int

	// Per-body draw plan, filled serially and applied in parallel.
	planY   []float32
	planHit []bool
}

// NewResizeReactor creates a reactor for store drawing from r.
func NewResizeReactor(store *Store, r *rng.Rand) *ResizeReactor {
	return &ResizeReactor{store: store, rng: r}
}

// PreviousHeight returns the last observed viewport height (0 before the
// first frame with a viewport).
func (rr *ResizeReactor) PreviousHeight() float32 {
	return rr.previousHeight
}

// LastRespawned returns how many bodies had Y re-placed by the last event.
func (rr *ResizeReactor) LastRespawned() int {
	return rr.lastRespawned
}

// Update consumes at most one resize event for this frame and reports whether
// one was applied.
func (rr *ResizeReactor) Update(vp *Viewport, events []ResizeEvent) bool {
	if vp == nil {
		return false
	}
	if !rr.initialized {
		rr.previousHeight = vp.Height
		rr.initialized = true
	}

	e, ok := LatestResize(events, PrimaryWindow)
	if !ok {
		return false
	}

	width := e.Width
	rr.store.ParForEach(func(_ int, r *components.Rectangle, _ *components.Position) {
		r.TeleportTarget = components.TeleportTargetFor(width, r.Width)
	})

	heightBound := e.Height / 2
	respawnProbability := 1 - rr.previousHeight/e.Height

	// NaN compares false, so a degenerate height falls through to the clamp.
	if respawnProbability > 0 {
		rr.lastRespawned = rr.planRespawn(respawnProbability, rr.previousHeight/2, heightBound)
	} else {
		rr.lastRespawned = rr.planClamp(heightBound)
	}
	rr.applyPlan()

	rr.previousHeight = e.Height
	return true
}

// planRespawn draws, for every body in store order, whether it moves into the
// newly revealed band [prevBound, bound) on a random side.
func (rr *ResizeReactor) planRespawn(p, prevBound, bound float32) int {
	rr.resetPlan()
	hits := 0
	rr.store.ForEach(func(i int, _ *components.Rectangle, _ *components.Position) {
		if rr.rng.Uniform01() >= p {
			return
		}
		y := rr.rng.Uniform01()*(bound-prevBound) + prevBound
		if y >= bound {
			// float32 rounding near the top of the band
			y = math.Nextafter32(bound, prevBound)
		}
		if !rr.rng.Bernoulli(0.5) {
			y = -y
		}
		rr.planY[i] = y
		rr.planHit[i] = true
		hits++
	})
	return hits
}

// planClamp resamples every body that now lies outside [-bound, bound].
func (rr *ResizeReactor) planClamp(bound float32) int {
	rr.resetPlan()
	hits := 0
	rr.store.ForEach(func(i int, _ *components.Rectangle, p *components.Position) {
		if p.Y >= -bound && p.Y <= bound {
			return
		}
		rr.planY[i] = rr.rng.UniformRange(-bound, bound)
		rr.planHit[i] = true
		hits++
	})
	return hits
}

func (rr *ResizeReactor) resetPlan() {
	n := rr.store.Len()
	if cap(rr.planY) < n {
		rr.planY = make([]float32, n)
		rr.planHit = make([]bool, n)
	}
	rr.planY = rr.planY[:n]
	rr.planHit = rr.planHit[:n]
	clear(rr.planHit)
}

func (rr *ResizeReactor) applyPlan() {
	ys, hit := rr.planY, rr.planHit
	rr.store.ParForEach(func(i int, _ *components.Rectangle, p *components.Position) {
		if hit[i] {
			p.Y = ys[i]
		}
	})
}
