package telemetry

import "time"

// Collector accumulates frame events within time windows and produces
// WindowStats. Windows are measured in simulated seconds, so hosts with a
// variable frame time still flush at a steady cadence. Frame-time stats use
// the wall-clock interval between frames instead, which stays meaningful
// when a host feeds a fixed timestep.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	frame            int32
	simTime          float64
	windowStartFrame int32
	windowStartTime  float64

	// Event counters for current window
	grows     int
	shrinks   int
	spawned   int
	despawned int
	resizes   int
	respawned int
	wrapped   int

	// Wall-clock frame intervals in milliseconds
	frameMS []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame advances the window by one frame of elapsed simulated seconds.
// wall is the real time since the previous frame; zero (no previous frame)
// is left out of the frame-time stats.
func (c *Collector) RecordFrame(elapsed float32, wall time.Duration) {
	c.frame++
	c.simTime += float64(elapsed)
	if wall > 0 {
		c.frameMS = append(c.frameMS, float64(wall)/float64(time.Millisecond))
	}
}

// RecordGrow records a grow signal and the bodies it spawned.
func (c *Collector) RecordGrow(spawned int) {
	c.grows++
	c.spawned += spawned
}

// RecordShrink records a shrink signal and the bodies it removed.
func (c *Collector) RecordShrink(removed int) {
	c.shrinks++
	c.despawned += removed
}

// RecordSpawn records bodies spawned outside a grow signal (initial setup).
func (c *Collector) RecordSpawn(n int) {
	c.spawned += n
}

// RecordResize records a consumed resize event.
func (c *Collector) RecordResize(respawned int) {
	c.resizes++
	c.respawned += respawned
}

// RecordWrap records bodies wrapped this frame.
func (c *Collector) RecordWrap(n int) {
	c.wrapped += n
}

// Frame returns the number of frames recorded so far.
func (c *Collector) Frame() int32 {
	return c.frame
}

// SimTime returns the simulated seconds recorded so far.
func (c *Collector) SimTime() float64 {
	return c.simTime
}

// ShouldFlush returns true once the current window spans its duration.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
// bodies and target are the population at window end.
func (c *Collector) Flush(bodies, target int) WindowStats {
	ft := ComputeFrameTimeStats(c.frameMS)

	var meanFPS float64
	if ft.Mean > 0 {
		meanFPS = 1000 / ft.Mean
	}

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.frame,
		SimTimeSec:       c.simTime,

		Bodies: bodies,
		Target: target,

		Grows:     c.grows,
		Shrinks:   c.shrinks,
		Spawned:   c.spawned,
		Despawned: c.despawned,
		Resizes:   c.resizes,
		Respawned: c.respawned,
		Wrapped:   c.wrapped,

		FrameMeanMS: ft.Mean,
		FrameStdMS:  ft.Std,
		FrameP50MS:  ft.P50,
		FrameP90MS:  ft.P90,
		FrameP99MS:  ft.P99,
		MeanFPS:     meanFPS,
	}

	// Reset for next window
	c.windowStartFrame = c.frame
	c.windowStartTime = c.simTime
	c.grows = 0
	c.shrinks = 0
	c.spawned = 0
	c.despawned = 0
	c.resizes = 0
	c.respawned = 0
	c.wrapped = 0
	c.frameMS = c.frameMS[:0]

	return stats
}

// WindowDurationSec returns the window length in simulated seconds.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
