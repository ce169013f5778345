// Package progress tracks a single transfer's chunk-level progress, for
// callers (cmd/hikyakud) that want to poll "how far along is this" while
// pkg/driver's Transfer call is still in flight.
package progress

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Tracker accumulates chunk completions for one transfer.
type Tracker struct {
	totalChunks    int64
	totalSize      int64
	copiedChunks   atomic.Int64
	copiedSize     atomic.Int64
	failedChunks   atomic.Int64
	startTime      time.Time
	lastUpdateTime time.Time
	transferSpeeds []float64
	mu             sync.RWMutex
}

// NewTracker creates a tracker for a transfer of totalSize bytes split
// into totalChunks chunks.
func NewTracker(totalChunks int64, totalSize int64) *Tracker {
	return &Tracker{
		totalChunks:    totalChunks,
		totalSize:      totalSize,
		startTime:      time.Now(),
		lastUpdateTime: time.Now(),
		transferSpeeds: make([]float64, 0, 10),
	}
}

// Update records one chunk's outcome. chunkSize is the number of bytes
// that chunk carried (0 for a failed chunk is fine).
func (t *Tracker) Update(chunkSize int64, success bool) {
	now := time.Now()

	if success {
		t.copiedChunks.Add(1)
		t.copiedSize.Add(chunkSize)
	} else {
		t.failedChunks.Add(1)
	}

	t.mu.Lock()
	elapsed := now.Sub(t.lastUpdateTime).Seconds()
	if elapsed > 0 && chunkSize > 0 {
		speed := float64(chunkSize) / elapsed
		t.transferSpeeds = append(t.transferSpeeds, speed)
		if len(t.transferSpeeds) > 10 {
			t.transferSpeeds = t.transferSpeeds[1:]
		}
	}
	t.lastUpdateTime = now
	t.mu.Unlock()
}

// Stats is a snapshot of progress fit for JSON responses.
type Stats struct {
	ProgressPct     float64
	CopiedChunks    int64
	TotalChunks     int64
	CopiedSizeMB    float64
	TotalSizeMB     float64
	FailedChunks    int64
	ElapsedTime     string
	TransferSpeedMB float64
	ETA             string
}

// GetStats returns the current snapshot.
func (t *Tracker) GetStats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copiedChunks := t.copiedChunks.Load()
	copiedSize := t.copiedSize.Load()
	failedChunks := t.failedChunks.Load()

	elapsed := time.Since(t.startTime)

	var avgSpeed float64
	if len(t.transferSpeeds) > 0 {
		var sum float64
		for _, speed := range t.transferSpeeds {
			sum += speed
		}
		avgSpeed = sum / float64(len(t.transferSpeeds))
	}

	remainingSize := t.totalSize - copiedSize
	var eta string
	if avgSpeed > 0 {
		etaSeconds := float64(remainingSize) / avgSpeed
		eta = time.Duration(etaSeconds * float64(time.Second)).String()
	} else {
		eta = "calculating..."
	}

	progressPct := 0.0
	if t.totalChunks > 0 {
		progressPct = float64(copiedChunks) / float64(t.totalChunks) * 100
	}

	return Stats{
		ProgressPct:     progressPct,
		CopiedChunks:    copiedChunks,
		TotalChunks:     t.totalChunks,
		CopiedSizeMB:    float64(copiedSize) / (1024 * 1024),
		TotalSizeMB:     float64(t.totalSize) / (1024 * 1024),
		FailedChunks:    failedChunks,
		ElapsedTime:     elapsed.String(),
		TransferSpeedMB: avgSpeed / (1024 * 1024),
		ETA:             eta,
	}
}

// FormatProgress renders the current snapshot as a single status line.
func (t *Tracker) FormatProgress() string {
	stats := t.GetStats()
	return fmt.Sprintf(
		"\rProgress: %.1f%% (%d/%d chunks, %.1f/%.1f MB) | Speed: %.1f MB/s | ETA: %s | Failed: %d",
		stats.ProgressPct,
		stats.CopiedChunks,
		stats.TotalChunks,
		stats.CopiedSizeMB,
		stats.TotalSizeMB,
		stats.TransferSpeedMB,
		stats.ETA,
		stats.FailedChunks,
	)
}
