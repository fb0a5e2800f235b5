// package profiler tracks frame timing, geometry throughput and Go memory
// statistics for the geometry pass, and can stream periodic snapshots to
// debugging clients over a websocket.
package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/verdant-engine/verdant-go/engine/pipeline"
)

// Snapshot is one interval's worth of performance numbers, shaped for JSON
// streaming to debug clients.
type Snapshot struct {
	FPS             float64 `json:"fps"`
	VerticesPerSec  float64 `json:"verticesPerSec"`
	PatchesPerSec   float64 `json:"patchesPerSec"`
	GeneratedPerSec float64 `json:"generatedPerSec"`
	PassMillis      float64 `json:"passMillis"`
	HeapMB          float64 `json:"heapMB"`
	AllocRateMB     float64 `json:"allocRateMB"`
	GCCount         uint32  `json:"gcCount"`
	LastPauseUs     uint64  `json:"lastPauseUs"`
	MaxPauseUs      uint64  `json:"maxPauseUs"`
	SysMB           float64 `json:"sysMB"`
}

// Profiler tracks frame rate, geometry pass throughput and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// Cumulative pipeline counters as of the latest Observe call and as of
	// the end of the previous interval, so rates are per-interval deltas.
	latest pipeline.Stats
	marked pipeline.Stats

	last Snapshot
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to further configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...Option) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Observe records the geometry pass's cumulative counters. Call once per
// frame, after the pass has processed the frame's draws.
//
// Parameters:
//   - stats: the pass's cumulative counters
func (p *Profiler) Observe(stats pipeline.Stats) {
	p.latest = stats
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, geometry throughput, heap usage, allocation rate,
// GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	seconds := elapsed.Seconds()
	fps := float64(p.frameCount) / seconds

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.last = Snapshot{
		FPS:             fps,
		VerticesPerSec:  float64(p.latest.Vertices-p.marked.Vertices) / seconds,
		PatchesPerSec:   float64(p.latest.Patches-p.marked.Patches) / seconds,
		GeneratedPerSec: float64(p.latest.Generated-p.marked.Generated) / seconds,
		PassMillis:      float64((p.latest.Elapsed - p.marked.Elapsed).Microseconds()) / 1000,
		HeapMB:          allocMB,
		AllocRateMB:     allocRateMB,
		GCCount:         gcCount,
		LastPauseUs:     lastPauseUs,
		MaxPauseUs:      maxPauseUs,
		SysMB:           sysMB,
	}

	log.Printf("[Profiler] FPS: %.2f | Verts/s: %.0f | Tess: %.0f patches/s -> %.0f verts/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.last.FPS, p.last.VerticesPerSec, p.last.PatchesPerSec, p.last.GeneratedPerSec,
		allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.marked = p.latest
	return true
}

// Snapshot returns the most recently computed interval snapshot.
//
// Returns:
//   - Snapshot: the latest interval's numbers, zero before the first full interval
func (p *Profiler) Snapshot() Snapshot {
	return p.last
}
