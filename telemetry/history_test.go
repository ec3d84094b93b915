package telemetry

import (
	"path/filepath"
	"testing"
)

func TestHistoryDisabled(t *testing.T) {
	h, err := OpenHistory("")
	if err != nil || h != nil {
		t.Fatalf("OpenHistory(\"\") = %v, %v; want nil, nil", h, err)
	}
	if _, err := h.Save(BenchResult{}); err != nil {
		t.Error(err)
	}
	if got, err := h.Recent(5); err != nil || got != nil {
		t.Errorf("Recent on nil = %v, %v", got, err)
	}
	if err := h.Close(); err != nil {
		t.Error(err)
	}
}

func TestHistorySaveAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	h, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory error: %v", err)
	}
	defer h.Close()

	runs := []BenchResult{
		{Seed: 395992934456271, Frames: 3000, FinalBodies: 4000, PeakBodies: 8000, AvgTickUS: 210, P99TickUS: 900, TicksPerSec: 4761.9, Workers: 8},
		// Seeds above MaxInt64 must survive the round trip.
		{Seed: 1<<63 + 5, Frames: 10, FinalBodies: 1, PeakBodies: 2, Workers: 1,
			Host: HostInfo{CPUModel: "test cpu", LogicalCPUs: 4, TotalMemMB: 2048}},
	}
	for _, r := range runs {
		if _, err := h.Save(r); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	got, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent returned %d results, want 2", len(got))
	}

	// Newest first
	if got[0].Seed != 1<<63+5 || got[0].Host.CPUModel != "test cpu" || got[0].Host.TotalMemMB != 2048 {
		t.Errorf("newest = %+v", got[0])
	}
	if got[1].Seed != 395992934456271 || got[1].PeakBodies != 8000 || got[1].TicksPerSec != 4761.9 {
		t.Errorf("oldest = %+v", got[1])
	}
	if got[0].ID <= got[1].ID {
		t.Errorf("IDs not descending: %d, %d", got[0].ID, got[1].ID)
	}

	limited, err := h.Recent(1)
	if err != nil || len(limited) != 1 {
		t.Errorf("Recent(1) = %d results, %v", len(limited), err)
	}
}

func TestReadHostInfo(t *testing.T) {
	info := ReadHostInfo()
	if info.GOMAXPROCS < 1 {
		t.Errorf("GOMAXPROCS = %d", info.GOMAXPROCS)
	}
}
