package coordinator

import (
	"sync"
	"time"
)

// ResourceStats is the resource monitor's most recent sample.
type ResourceStats struct {
	CPUPercent     float64
	MemoryBytes    uint64
	DiskFreeBytes  uint64
	DiskTotalBytes uint64
}

// ScanProgress is the snapshot the HTTP adapter and the CLI poll during a
// run. It is guarded by a sync.RWMutex: the resource monitor and the merge
// step both write it, and readers do not block each other. The lock does
// not prefer readers: once a writer is waiting, new readers wait for it.
type ScanProgress struct {
	mu sync.RWMutex

	isScanning     bool
	filesTotal     int
	filesProcessed int
	filesFailed    int
	currentFile    string
	resources      ResourceStats
	startedAt      time.Time
	endedAt        time.Time
}

// Snapshot is an immutable copy of ScanProgress for external consumption.
type Snapshot struct {
	IsScanning     bool
	FilesTotal     int
	FilesProcessed int
	FilesFailed    int
	CurrentFile    string
	Resources      ResourceStats
	ElapsedS       float64
}

func (p *ScanProgress) snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		IsScanning:     p.isScanning,
		FilesTotal:     p.filesTotal,
		FilesProcessed: p.filesProcessed,
		FilesFailed:    p.filesFailed,
		CurrentFile:    p.currentFile,
		Resources:      p.resources,
		ElapsedS:       p.elapsedLocked(),
	}
}

// elapsedLocked computes seconds since the run started, frozen at the
// value reached when finish() ran, for a run that already ended. Callers
// must hold p.mu (read or write).
func (p *ScanProgress) elapsedLocked() float64 {
	if p.startedAt.IsZero() {
		return 0
	}
	if p.isScanning {
		return time.Since(p.startedAt).Seconds()
	}
	if p.endedAt.IsZero() {
		return 0
	}
	return p.endedAt.Sub(p.startedAt).Seconds()
}

func (p *ScanProgress) start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isScanning = true
	p.filesTotal = total
	p.filesProcessed = 0
	p.filesFailed = 0
	p.currentFile = ""
	p.startedAt = time.Now()
	p.endedAt = time.Time{}
}

func (p *ScanProgress) addSkipped(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filesProcessed += n
}

func (p *ScanProgress) recordResult(path string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filesProcessed++
	if !ok {
		p.filesFailed++
	}
	p.currentFile = path
}

func (p *ScanProgress) setResources(r ResourceStats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resources = r
}

func (p *ScanProgress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isScanning = false
	p.endedAt = time.Now()
}
