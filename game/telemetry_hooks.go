package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/rectangles/systems"
	"github.com/pthm-cable/rectangles/telemetry"
)

// recordTelemetry feeds the frame into the stats window, emits population
// and resize events, and flushes the window when it is due. wall is the real
// time since the previous Step.
func (g *Game) recordTelemetry(in FrameInput, res FrameResult, wall time.Duration) {
	g.collector.RecordFrame(in.Elapsed, wall)
	g.collector.RecordWrap(res.Wrapped)

	if res.Setup.Setup {
		g.collector.RecordSpawn(res.Setup.Spawned)
		g.emit(telemetry.NewSetupEvent(res.Frame, res.Setup.To))
	}
	if res.Change.Grew {
		g.collector.RecordGrow(res.Change.Spawned)
	}
	if res.Change.Shrank {
		g.collector.RecordShrink(res.Change.Removed)
	}
	switch {
	case res.Change.Grew && res.Change.Shrank:
		// Both fired; the intermediate target is From*2 (min 1).
		mid := max(1, res.Change.From*2)
		g.emit(telemetry.NewGrowEvent(res.Frame, res.Change.From, mid))
		g.emit(telemetry.NewShrinkEvent(res.Frame, mid, res.Change.To))
	case res.Change.Grew:
		g.emit(telemetry.NewGrowEvent(res.Frame, res.Change.From, res.Change.To))
	case res.Change.Shrank:
		g.emit(telemetry.NewShrinkEvent(res.Frame, res.Change.From, res.Change.To))
	}

	if res.Resized {
		g.collector.RecordResize(res.Respawned)
		e, _ := systems.LatestResize(in.Resizes, systems.PrimaryWindow)
		g.emit(telemetry.NewResizeEvent(res.Frame, e.Width, e.Height, res.Respawned))
	}

	g.flushTelemetry()
}

// emit logs an event when event logging is on and appends it to events.csv.
func (g *Game) emit(e telemetry.Event) {
	if g.logEvents {
		slog.Info("event", "event", e)
	}
	if err := g.output.WriteEvent(e); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.store.Len(), g.store.Target())
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats(stats.Bodies)
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndFrame, stats.Bodies); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
