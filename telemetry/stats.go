package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Population at window end
	Bodies int `csv:"bodies"`
	Target int `csv:"target"`

	// Events during window
	Grows     int `csv:"grows"`
	Shrinks   int `csv:"shrinks"`
	Spawned   int `csv:"spawned"`
	Despawned int `csv:"despawned"`
	Resizes   int `csv:"resizes"`
	Respawned int `csv:"respawned"`
	Wrapped   int `csv:"wrapped"`

	// Host frame time distribution in milliseconds
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP90MS  float64 `csv:"frame_p90_ms"`
	FrameP99MS  float64 `csv:"frame_p99_ms"`
	MeanFPS     float64 `csv:"mean_fps"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FrameTimeStats summarizes a set of frame durations.
type FrameTimeStats struct {
	Mean, Std     float64
	P50, P90, P99 float64
}

// ComputeFrameTimeStats calculates population mean, standard deviation and
// percentiles from frame durations. values is not modified.
func ComputeFrameTimeStats(values []float64) FrameTimeStats {
	if len(values) == 0 {
		return FrameTimeStats{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return FrameTimeStats{
		Mean: mean,
		Std:  std,
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		P99:  Percentile(sorted, 0.99),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("target", s.Target),
		slog.Int("grows", s.Grows),
		slog.Int("shrinks", s.Shrinks),
		slog.Int("spawned", s.Spawned),
		slog.Int("despawned", s.Despawned),
		slog.Int("resizes", s.Resizes),
		slog.Int("respawned", s.Respawned),
		slog.Int("wrapped", s.Wrapped),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_p99_ms", s.FrameP99MS),
		slog.Float64("mean_fps", s.MeanFPS),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"bodies", s.Bodies,
		"target", s.Target,
		"grows", s.Grows,
		"shrinks", s.Shrinks,
		"spawned", s.Spawned,
		"despawned", s.Despawned,
		"resizes", s.Resizes,
		"respawned", s.Respawned,
		"wrapped", s.Wrapped,
		"frame_mean_ms", s.FrameMeanMS,
		"frame_std_ms", s.FrameStdMS,
		"frame_p50_ms", s.FrameP50MS,
		"frame_p90_ms", s.FrameP90MS,
		"frame_p99_ms", s.FrameP99MS,
		"mean_fps", s.MeanFPS,
	)
}
