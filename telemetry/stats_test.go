package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeFrameTimeStats(t *testing.T) {
	// Unsorted on purpose; the input must not be reordered.
	values := []float64{20, 10, 16, 16, 18, 14, 12, 22, 16, 16}
	first := values[0]

	got := ComputeFrameTimeStats(values)

	if math.Abs(got.Mean-16) > 1e-9 {
		t.Errorf("mean = %v, want 16", got.Mean)
	}
	// Population std dev: sqrt((16+36+0+0+4+4+16+36+0+0)/10) = sqrt(11.2)
	if math.Abs(got.Std-math.Sqrt(11.2)) > 1e-9 {
		t.Errorf("std = %v, want %v", got.Std, math.Sqrt(11.2))
	}
	if got.P50 != 16 {
		t.Errorf("p50 = %v, want 16", got.P50)
	}
	if got.P99 < got.P90 || got.P99 > 22 {
		t.Errorf("p90 = %v, p99 = %v", got.P90, got.P99)
	}
	if values[0] != first {
		t.Error("ComputeFrameTimeStats reordered its input")
	}
}

func TestComputeFrameTimeStatsEmpty(t *testing.T) {
	if got := ComputeFrameTimeStats(nil); got != (FrameTimeStats{}) {
		t.Errorf("empty input = %+v, want zero", got)
	}
}
