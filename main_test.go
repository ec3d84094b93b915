package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/rectangles/config"
	"github.com/pthm-cable/rectangles/telemetry"
)

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
		json    bool
	}{
		{"auto", false, true}, // a buffer is not a terminal
		{"json", false, true},
		{"JSON", false, true},
		{"text", false, false},
		{"xml", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			h, err := newHandler(&buf, slog.LevelInfo, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("newHandler error: %v", err)
			}

			slog.New(h).Info("hello", "n", 1)
			out := buf.String()
			if !strings.Contains(out, "hello") {
				t.Errorf("output missing message: %q", out)
			}
			if isJSON := strings.HasPrefix(out, "{"); isJSON != tt.json {
				t.Errorf("json output = %v, want %v: %q", isJSON, tt.json, out)
			}
		})
	}
}

func TestNewHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	h, err := newHandler(&buf, slog.LevelWarn, "json")
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(h)
	logger.Info("dropped")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("level filter failed: %q", buf.String())
	}
}

func TestHistoryTable(t *testing.T) {
	out := historyTable([]telemetry.BenchResult{{
		ID:          7,
		Seed:        395992934456271,
		Frames:      3000,
		PeakBodies:  64000,
		FinalBodies: 64000,
		AvgTickUS:   812,
		P99TickUS:   1500,
		TicksPerSec: 1231.6,
		Workers:     8,
		Host:        telemetry.HostInfo{CPUModel: "Test CPU"},
		CreatedAt:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}})

	for _, want := range []string{"Seed", "395992934456271", "2026-03-01 12:30", "64000", "1232", "Test CPU"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestBenchRunsConsecutiveSeeds(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry.LogEvents = false
	cfg.Bench.Frames = 10
	cfg.Bench.Resizes = nil

	results, err := benchRuns(context.Background(), cfg, 3, 2)
	if err != nil {
		t.Fatalf("benchRuns error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Seed != cfg.RNG.Seed+uint64(i) {
			t.Errorf("run %d seed = %d, want %d", i, r.Seed, cfg.RNG.Seed+uint64(i))
		}
		if r.Frames != 10 {
			t.Errorf("run %d frames = %d, want 10", i, r.Frames)
		}
	}
}
