// Package game drives one benchmark frame at a time: population control,
// resize handling, motion and wrap, plus the telemetry around them.
// It holds no window or terminal state; hosts feed it a FrameInput and draw
// the sprites it returns.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/rectangles/components"
	"github.com/pthm-cable/rectangles/config"
	"github.com/pthm-cable/rectangles/rng"
	"github.com/pthm-cable/rectangles/systems"
	"github.com/pthm-cable/rectangles/telemetry"
)

// Options configures a Game beyond the YAML config.
type Options struct {
	LogStats       bool    // Log window and perf stats via slog
	StatsWindowSec float64 // Override telemetry.stats_window (0 = use config)
	OutputDir      string  // CSV + config snapshot directory ("" = disabled)
	Workers        int     // Override parallel.workers (0 = use config)

	// StatsCallback is called each time a stats window is flushed.
	StatsCallback func(telemetry.WindowStats)
}

// FrameInput is everything a host supplies for one frame.
type FrameInput struct {
	// Viewport is the primary window size, or nil when no window exists yet.
	Viewport *systems.Viewport
	// Elapsed is the time since the previous frame in seconds.
	Elapsed float32
	// Resizes holds every resize event observed since the previous frame.
	Resizes []systems.ResizeEvent
	// Grow and Shrink are release-edge signals.
	Grow, Shrink bool
}

// FrameResult reports what a frame changed.
type FrameResult struct {
	Frame         int32
	Count         int
	Target        int
	TargetChanged bool
	Setup         systems.Change // initial spawn, if it happened this frame
	Change        systems.Change // grow/shrink signals
	Resized       bool
	Respawned     int
	Wrapped       int
}

// Game holds the complete benchmark state.
type Game struct {
	cfg *config.Config

	rng        *rng.Rand
	pool       *systems.Pool
	store      *systems.Store
	controller *systems.PopulationController
	reactor    *systems.ResizeReactor
	registry   *systems.SystemRegistry

	// Telemetry
	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	logStats      bool
	logEvents     bool
	statsCallback func(telemetry.WindowStats)

	// State
	frame      int32
	peakCount  int
	lastTarget int
	lastStepAt time.Time
}

// NewGame creates a game from cfg. No bodies exist until the first Step
// that carries a viewport.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	workers := cfg.Parallel.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	r := rng.New(cfg.RNG.Seed)
	pool := systems.NewPool(workers, cfg.Parallel.Threshold)
	store := systems.NewStore(r, pool)

	g := &Game{
		cfg:           cfg,
		rng:           r,
		pool:          pool,
		store:         store,
		controller:    systems.NewPopulationController(store),
		reactor:       systems.NewResizeReactor(store, r),
		registry:      systems.NewSystemRegistry(),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(statsWindow),
		output:        output,
		logStats:      opts.LogStats,
		logEvents:     cfg.Telemetry.LogEvents,
		statsCallback: opts.StatsCallback,
	}

	slog.Debug("game created",
		"seed", cfg.RNG.Seed,
		"workers", pool.Workers(),
		"parallel_threshold", cfg.Parallel.Threshold,
		"initial", cfg.Population.Initial,
		"output_dir", output.Dir(),
	)
	return g, nil
}

// Step runs one frame: population, resize, motion, wrap, telemetry.
func (g *Game) Step(in FrameInput) FrameResult {
	now := time.Now()
	var wall time.Duration
	if !g.lastStepAt.IsZero() {
		wall = now.Sub(g.lastStepAt)
	}
	g.lastStepAt = now

	g.perf.StartTick()
	g.frame++
	res := FrameResult{Frame: g.frame}

	g.perf.StartPhase(systems.PhasePopulation)
	if !g.controller.Ready() {
		res.Setup, _ = g.controller.Setup(g.cfg.Population.Initial, in.Viewport)
	}
	if in.Grow || in.Shrink {
		res.Change = g.controller.Apply(in.Grow, in.Shrink, in.Viewport)
	}

	g.perf.StartPhase(systems.PhaseResize)
	res.Resized = g.reactor.Update(in.Viewport, in.Resizes)
	if res.Resized {
		res.Respawned = g.reactor.LastRespawned()
	}

	g.perf.StartPhase(systems.PhaseMotion)
	systems.Move(g.store, in.Elapsed)

	g.perf.StartPhase(systems.PhaseWrap)
	res.Wrapped = systems.Wrap(g.store)

	g.perf.StartPhase(systems.PhaseTelemetry)
	res.Count = g.store.Len()
	res.Target = g.store.Target()
	res.TargetChanged = res.Target != g.lastTarget
	g.lastTarget = res.Target
	if res.Count > g.peakCount {
		g.peakCount = res.Count
	}
	g.recordTelemetry(in, res, wall)

	g.perf.EndTick()
	return res
}

// Sprites appends a render snapshot of every body to dst.
func (g *Game) Sprites(dst []components.Sprite) []components.Sprite {
	return g.store.Sprites(dst)
}

// Count returns the number of live bodies.
func (g *Game) Count() int {
	return g.store.Len()
}

// Target returns the target population count.
func (g *Game) Target() int {
	return g.store.Target()
}

// PeakCount returns the largest population seen so far.
func (g *Game) PeakCount() int {
	return g.peakCount
}

// Frame returns the number of frames stepped.
func (g *Game) Frame() int32 {
	return g.frame
}

// Workers returns the worker pool size.
func (g *Game) Workers() int {
	return g.pool.Workers()
}

// RNGDraws returns how many raw draws the generator has produced.
func (g *Game) RNGDraws() uint64 {
	return g.rng.Draws()
}

// Perf returns timing statistics over the rolling perf window.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perf.Stats()
}

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perf.RecordFrame()
}

// Registry returns phase metadata for display.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// Close stops the worker pool and flushes output files.
func (g *Game) Close() error {
	g.pool.Stop()
	return g.output.Close()
}
