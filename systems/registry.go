// Package systems contains the population store and the per-frame systems
// that mutate it.
package systems

import "github.com/pthm-cable/rectangles/telemetry"

// Phase IDs, in the order a frame runs them.
const (
	PhasePopulation = telemetry.PhasePopulation
	PhaseResize     = telemetry.PhaseResize
	PhaseMotion     = telemetry.PhaseMotion
	PhaseWrap       = telemetry.PhaseWrap
	PhaseTelemetry  = telemetry.PhaseTelemetry
)

// SystemInfo describes a frame phase for UI display and perf tracking.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Parallel    bool   // Runs on the worker pool
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the frame phases in execution order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhasePopulation, Name: "Population", Description: "Spawns or despawns toward the target count"})
	r.Register(SystemInfo{ID: PhaseResize, Name: "Resize", Description: "Recomputes bounds after a window resize", Parallel: true})
	r.Register(SystemInfo{ID: PhaseMotion, Name: "Motion", Description: "Advances bodies by velocity", Parallel: true})
	r.Register(SystemInfo{ID: PhaseWrap, Name: "Wrap", Description: "Reflects bodies past their teleport target", Parallel: true})
	r.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Records window stats and events"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
