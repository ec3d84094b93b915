// Package components defines the ECS components of a scrolling body.
package components

// Rectangle holds the per-body constants and the derived wrap boundary.
type Rectangle struct {
	Velocity float32 // leftward speed in units per second
	Width    float32 // side length of the square

	// TeleportTarget is the X threshold past which the body is reflected back
	// into view: -(viewportWidth/2) - Width.
	TeleportTarget float32
}

// TeleportTargetFor returns the wrap threshold for a body of the given width.
func TeleportTargetFor(viewportWidth, width float32) float32 {
	return -(viewportWidth / 2) - width
}

// Sprite is the read-only view of a body handed to renderers.
type Sprite struct {
	X, Y, Z float32
	Width   float32
}
