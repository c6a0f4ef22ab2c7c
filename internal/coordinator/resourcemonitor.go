package coordinator

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/process"
)

const (
	sampleInterval    = 500 * time.Millisecond
	diskSampleEvery   = 10
)

// runResourceMonitor samples aggregate CPU utilization, this process's
// resident memory, and the free/total bytes of the filesystem containing
// diskPath, writing each sample into progress. It runs until ctx is
// canceled, which the Coordinator does when a run finishes.
func runResourceMonitor(ctx context.Context, progress *ScanProgress, diskPath string) {
	proc, err := process.NewProcess(int32(currentPID()))
	if err != nil {
		return
	}

	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()

	var stats ResourceStats
	var sampleCount int

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
				stats.CPUPercent = pct[0]
			}
			if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
				stats.MemoryBytes = memInfo.RSS
			}

			sampleCount++
			if sampleCount%diskSampleEvery == 1 {
				if usage, err := disk.Usage(diskPath); err == nil {
					stats.DiskFreeBytes = usage.Free
					stats.DiskTotalBytes = usage.Total
				}
			}

			progress.setResources(stats)
		}
	}
}
