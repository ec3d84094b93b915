package systems

import (
	"sync/atomic"

	"github.com/pthm-cable/rectangles/components"
)

// Move advances every body leftward by its velocity over dt seconds.
func Move(store *Store, dt float32) {
	store.ParForEach(func(_ int, r *components.Rectangle, p *components.Position) {
		p.X -= r.Velocity * dt
	})
}

// Wrap reflects every body that has passed its teleport target about the
// origin (x = -x) and returns how many were wrapped.
//
// The reflection only mirrors the exit point when the viewport is centred
// on the origin; it is not a true edge-to-edge teleport.
func Wrap(store *Store) int {
	var wrapped atomic.Int64
	store.ParForEach(func(_ int, r *components.Rectangle, p *components.Position) {
		if p.X < r.TeleportTarget {
			p.X = -p.X
			wrapped.Add(1)
		}
	})
	return int(wrapped.Load())
}
