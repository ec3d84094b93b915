package telemetry

import (
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo describes the machine a bench ran on.
type HostInfo struct {
	CPUModel    string
	LogicalCPUs int
	TotalMemMB  int64
	GOMAXPROCS  int
}

// ReadHostInfo gathers CPU and memory details. Fields that cannot be read
// are left zero and logged at debug level.
func ReadHostInfo() HostInfo {
	info := HostInfo{GOMAXPROCS: runtime.GOMAXPROCS(0)}

	if infos, err := cpu.Info(); err != nil {
		slog.Debug("reading cpu info", "error", err)
	} else if len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
	}

	if n, err := cpu.Counts(true); err != nil {
		slog.Debug("reading cpu count", "error", err)
	} else {
		info.LogicalCPUs = n
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		slog.Debug("reading memory info", "error", err)
	} else {
		info.TotalMemMB = int64(vm.Total / (1 << 20))
	}

	return info
}

// LogValue implements slog.LogValuer for structured logging.
func (h HostInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("cpu", h.CPUModel),
		slog.Int("logical_cpus", h.LogicalCPUs),
		slog.Int64("total_mem_mb", h.TotalMemMB),
		slog.Int("gomaxprocs", h.GOMAXPROCS),
	)
}
