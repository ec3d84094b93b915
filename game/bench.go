package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/rectangles/config"
	"github.com/pthm-cable/rectangles/systems"
	"github.com/pthm-cable/rectangles/telemetry"
)

// BenchSchedule returns the input for a given bench frame (1-based) and the
// viewport in effect after it.
func BenchSchedule(b config.BenchConfig, frame int, vp systems.Viewport, dt float32) (FrameInput, systems.Viewport) {
	in := FrameInput{Elapsed: dt}
	for _, r := range b.Resizes {
		if r.Frame != frame {
			continue
		}
		vp = systems.Viewport{Width: float32(r.Width), Height: float32(r.Height)}
		in.Resizes = append(in.Resizes, systems.ResizeEvent{
			Window: systems.PrimaryWindow,
			Width:  vp.Width,
			Height: vp.Height,
		})
	}
	in.Grow = b.GrowEvery > 0 && frame%b.GrowEvery == 0
	in.Shrink = b.ShrinkEvery > 0 && frame%b.ShrinkEvery == 0
	in.Viewport = &vp
	return in, vp
}

// RunBench steps a headless game through the configured bench schedule with
// a fixed dt. It stops between frames when ctx is cancelled and returns the
// partial result along with ctx.Err().
func RunBench(ctx context.Context, cfg *config.Config, opts Options) (telemetry.BenchResult, error) {
	g, err := NewGame(cfg, opts)
	if err != nil {
		return telemetry.BenchResult{}, err
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("closing game", "error", err)
		}
	}()

	vp := systems.Viewport{Width: cfg.Derived.ScreenW32, Height: cfg.Derived.ScreenH32}
	dt := cfg.Derived.BenchDT32

	slog.Info("starting bench",
		"seed", cfg.RNG.Seed,
		"frames", cfg.Bench.Frames,
		"workers", g.Workers(),
		"grow_every", cfg.Bench.GrowEvery,
		"resizes", len(cfg.Bench.Resizes),
	)

	start := time.Now()
	var runErr error
	for frame := 1; frame <= cfg.Bench.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			slog.Warn("bench interrupted", "frame", frame-1)
			runErr = err
			break
		}
		var in FrameInput
		in, vp = BenchSchedule(cfg.Bench, frame, vp, dt)
		g.Step(in)
	}
	elapsed := time.Since(start)

	frames := int(g.Frame())
	perf := g.Perf()
	result := telemetry.BenchResult{
		Seed:        cfg.RNG.Seed,
		Frames:      frames,
		FinalBodies: g.Count(),
		PeakBodies:  g.PeakCount(),
		P99TickUS:   perf.P99TickDuration.Microseconds(),
		Workers:     g.Workers(),
		Host:        telemetry.ReadHostInfo(),
		CreatedAt:   time.Now(),
	}
	if frames > 0 {
		result.AvgTickUS = (elapsed / time.Duration(frames)).Microseconds()
		result.TicksPerSec = float64(frames) / elapsed.Seconds()
	}

	slog.Info("bench finished",
		"frames", result.Frames,
		"final_bodies", result.FinalBodies,
		"peak_bodies", result.PeakBodies,
		"avg_tick_us", result.AvgTickUS,
		"p99_tick_us", result.P99TickUS,
		"ticks_per_sec", int(result.TicksPerSec),
		"host", result.Host,
	)
	return result, runErr
}
