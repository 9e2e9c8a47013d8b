package system

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats is a snapshot of the machine the render runs on.
type HostStats struct {
	LogicalCPUs     int
	TotalMemory     uint64
	AvailableMemory uint64
	MemoryUsed      float64 // percent
}

// ReadHostStats queries the host. Fields it cannot read are left at zero,
// except LogicalCPUs which falls back to runtime.NumCPU.
func ReadHostStats() HostStats {
	s := HostStats{LogicalCPUs: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		s.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.AvailableMemory = vm.Available
		s.MemoryUsed = vm.UsedPercent
	}
	return s
}

func (s HostStats) String() string {
	return fmt.Sprintf("%d CPUs, %.1f/%.1f GiB available (%.0f%% used)",
		s.LogicalCPUs, gib(s.AvailableMemory), gib(s.TotalMemory), s.MemoryUsed)
}

// FitBatch shrinks a batch of frames so that it uses at most half of the
// available memory. Unknown memory leaves the batch alone.
func (s HostStats) FitBatch(batch, frameBytes int) int {
	if s.AvailableMemory == 0 || frameBytes <= 0 {
		return batch
	}
	limit := int(s.AvailableMemory / 2 / uint64(frameBytes))
	if limit < 1 {
		limit = 1
	}
	if batch > limit {
		return limit
	}
	return batch
}

// FitWorkers caps workers at the CPU count.
func (s HostStats) FitWorkers(workers int) int {
	if s.LogicalCPUs > 0 && workers > s.LogicalCPUs {
		return s.LogicalCPUs
	}
	if workers < 1 {
		return 1
	}
	return workers
}

func gib(b uint64) float64 {
	return float64(b) / (1 << 30)
}
