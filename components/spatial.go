package components

// Position is a body's location in viewport space.
// The viewport is centred on the origin with Y pointing up.
type Position struct {
	X, Y float32
	Z    float32 // draw-order tiebreak, assigned once at spawn
}
