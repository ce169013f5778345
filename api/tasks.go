package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hikyaku/pkg/driver"
	"hikyaku/pkg/pool"
	"hikyaku/pkg/progress"
	"hikyaku/pkg/state"
)

// TaskManager tracks in-flight and completed transfers: an in-memory
// map for the progress tracker every poll needs cheaply, backed by
// store for history that survives a restart. Actual transfer work runs
// on a bounded worker pool so a burst of submissions can't spin up an
// unbounded number of concurrent fan-out pipelines.
type TaskManager struct {
	mu      sync.RWMutex
	tasks   map[string]*taskEntry
	store   *state.Store
	workers *pool.WorkerPool
}

type taskEntry struct {
	id        string
	sourceURI string
	destURI   string
	status    string // queued, running, completed, failed
	tracker   *progress.Tracker
	err       string

	driveTokens []driveTokenRef
}

// driveTokenRef names a Drive token this task is holding, for the expiry
// sweep to warn about. It does not carry the token itself.
type driveTokenRef struct {
	uri     string
	expires time.Time
}

// NewTaskManager wires a task manager to a Postgres-backed store and a
// fixed-size worker pool. ctx governs the worker pool's lifetime, not
// any individual transfer's.
func NewTaskManager(ctx context.Context, store *state.Store, maxConcurrentTransfers int) *TaskManager {
	return &TaskManager{
		tasks:   make(map[string]*taskEntry),
		store:   store,
		workers: pool.NewWorkerPool(ctx, maxConcurrentTransfers),
	}
}

// Submit builds src/dst and enqueues a transfer, returning its task id
// immediately; the transfer itself runs asynchronously on the worker
// pool.
func (tm *TaskManager) Submit(ctx context.Context, req TransferRequest) (string, error) {
	id := uuid.New().String()

	src, err := buildObject(ctx, req.Source)
	if err != nil {
		return "", err
	}
	dst, err := buildObject(ctx, req.Destination)
	if err != nil {
		return "", err
	}
	if !src.IsDownloadable() {
		return "", fmt.Errorf("source %s://%s does not name an existing file", req.Source.Scheme, req.Source.Path)
	}

	totalChunks := int64(0)
	if src.ChunkSize > 0 {
		totalChunks = (*src.FileSize + src.ChunkSize - 1) / src.ChunkSize
	}
	tracker := progress.NewTracker(totalChunks, *src.FileSize)

	entry := &taskEntry{
		id:        id,
		sourceURI: req.Source.Scheme + "://" + req.Source.Path,
		destURI:   req.Destination.Scheme + "://" + req.Destination.Path,
		status:    "queued",
		tracker:   tracker,
	}
	entry.driveTokens = append(entry.driveTokens, driveTokenExpiry(req.Source)...)
	entry.driveTokens = append(entry.driveTokens, driveTokenExpiry(req.Destination)...)

	tm.mu.Lock()
	tm.tasks[id] = entry
	tm.mu.Unlock()

	start := time.Now()
	tm.persist(entry, start, nil)

	submitted := tm.workers.Submit(func(taskCtx context.Context) error {
		tm.mu.Lock()
		entry.status = "running"
		tm.mu.Unlock()
		tm.persist(entry, start, nil)

		runErr := driver.TransferWithProgress(taskCtx, src, dst, tracker)

		tm.mu.Lock()
		if runErr != nil {
			entry.status = "failed"
			entry.err = runErr.Error()
		} else {
			entry.status = "completed"
		}
		tm.mu.Unlock()
		tm.persist(entry, start, runErr)
		return runErr
	})
	if !submitted {
		tm.mu.Lock()
		entry.status = "failed"
		entry.err = "server is shutting down"
		tm.mu.Unlock()
	}

	return id, nil
}

// Get returns the current status of one transfer, or nil if unknown.
func (tm *TaskManager) Get(id string) *TransferResponse {
	tm.mu.RLock()
	entry, ok := tm.tasks[id]
	tm.mu.RUnlock()
	if !ok {
		return nil
	}
	return entry.response()
}

// PoolStats reports the transfer worker pool's current load, for the
// health endpoint to surface alongside liveness.
func (tm *TaskManager) PoolStats() pool.WorkerPoolStats {
	return tm.workers.Stats()
}

// Shutdown stops accepting new transfers and waits for in-flight ones
// to finish before returning.
func (tm *TaskManager) Shutdown() {
	tm.workers.Stop()
}

// List returns every tracked transfer, most recently submitted order
// is not guaranteed (the in-memory map has none); callers wanting
// history order should query the store directly.
func (tm *TaskManager) List() []*TransferResponse {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	out := make([]*TransferResponse, 0, len(tm.tasks))
	for _, entry := range tm.tasks {
		out = append(out, entry.response())
	}
	return out
}

func (e *taskEntry) response() *TransferResponse {
	stats := e.tracker.GetStats()
	return &TransferResponse{
		ID:              e.id,
		Status:          e.status,
		SourceURI:       e.sourceURI,
		DestURI:         e.destURI,
		ProgressPercent: stats.ProgressPct,
		CopiedChunks:    stats.CopiedChunks,
		TotalChunks:     stats.TotalChunks,
		CopiedSizeMB:    stats.CopiedSizeMB,
		TotalSizeMB:     stats.TotalSizeMB,
		TransferSpeedMB: stats.TransferSpeedMB,
		ETA:             stats.ETA,
		Error:           e.err,
	}
}

// driveTokenExpiry extracts the token-expiry fact from an endpoint spec,
// if it names a Drive credential with a known expiry. It never looks at
// the token value itself.
func driveTokenExpiry(spec EndpointSpec) []driveTokenRef {
	if spec.Drive == nil || spec.Drive.ExpiresInSec <= 0 {
		return nil
	}
	return []driveTokenRef{{
		uri:     spec.Scheme + "://" + spec.Path,
		expires: time.Now().Add(time.Duration(spec.Drive.ExpiresInSec) * time.Second),
	}}
}

// ExpiringDriveTokens returns every tracked Drive token due to expire
// within window, across queued and running tasks; completed and failed
// tasks are skipped. It is the read side the expiry sweep polls; it never
// refreshes anything.
func (tm *TaskManager) ExpiringDriveTokens(window time.Duration) []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	cutoff := time.Now().Add(window)
	var warnings []string
	for _, entry := range tm.tasks {
		if entry.status == "completed" || entry.status == "failed" {
			continue
		}
		for _, tok := range entry.driveTokens {
			if tok.expires.Before(cutoff) {
				warnings = append(warnings, fmt.Sprintf("task %s: Drive token for %s expires at %s", entry.id, tok.uri, tok.expires.Format(time.RFC3339)))
			}
		}
	}
	return warnings
}

func (tm *TaskManager) persist(entry *taskEntry, start time.Time, runErr error) {
	if tm.store == nil {
		return
	}
	stats := entry.tracker.GetStats()
	record := &state.Transfer{
		ID:         entry.id,
		Status:     entry.status,
		SourceURI:  entry.sourceURI,
		DestURI:    entry.destURI,
		TotalSize:  int64(stats.TotalSizeMB * 1024 * 1024),
		CopiedSize: int64(stats.CopiedSizeMB * 1024 * 1024),
		StartTime:  start,
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}
	if entry.status == "completed" || entry.status == "failed" {
		now := time.Now()
		record.EndTime = &now
	}
	if err := tm.store.Save(record); err != nil {
		fmt.Printf("warning: failed to persist transfer %s: %v\n", entry.id, err)
	}
}
