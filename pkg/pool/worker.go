package pool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Task is one transfer run: build its endpoints, drive the chunk
// pipeline, and report its own outcome — the pool only bounds how many
// run at once.
type Task func(ctx context.Context) error

// WorkerPool bounds how many transfers run concurrently. The HTTP layer
// submits one Task per accepted transfer request; a burst of submissions
// queues instead of spawning an unbounded number of concurrent chunk
// fan-outs.
type WorkerPool struct {
	workers     int
	tasks       chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	activeCount atomic.Int32
	totalTasks  atomic.Int64
	failedTasks atomic.Int64
}

// NewWorkerPool starts workers transfer-runner goroutines, each pulling
// from a shared task queue until ctx is cancelled or Stop is called.
func NewWorkerPool(ctx context.Context, workers int) *WorkerPool {
	poolCtx, cancel := context.WithCancel(ctx)

	wp := &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, workers*2),
		ctx:     poolCtx,
		cancel:  cancel,
	}

	for i := 0; i < workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}

	return wp
}

// worker runs transfers off the queue until it's closed or cancelled.
// A task's error is its own concern (the submitting closure persists it
// to the transfer's status); the pool only tracks it for Stats.
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}

			wp.activeCount.Add(1)
			wp.totalTasks.Add(1)

			if err := task(wp.ctx); err != nil {
				wp.failedTasks.Add(1)
			}

			wp.activeCount.Add(-1)

		case <-wp.ctx.Done():
			return
		}
	}
}

// Submit enqueues a transfer, returning false if the pool is shutting
// down — the caller reports that as a submission failure rather than
// queuing indefinitely.
func (wp *WorkerPool) Submit(task Task) bool {
	select {
	case wp.tasks <- task:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Stop closes the queue and waits for every running transfer to finish
// before returning; no further Submit call will be accepted.
func (wp *WorkerPool) Stop() {
	close(wp.tasks)
	wp.wg.Wait()
}

// ActiveWorkers reports how many transfers are running right now.
func (wp *WorkerPool) ActiveWorkers() int32 {
	return wp.activeCount.Load()
}

// WorkerPoolStats summarizes the pool's lifetime and current load, for
// the health endpoint to report alongside liveness.
type WorkerPoolStats struct {
	TotalWorkers  int
	ActiveWorkers int32
	TotalTasks    int64
	FailedTasks   int64
	SuccessRate   float64
}

// Stats snapshots the pool's counters.
func (wp *WorkerPool) Stats() WorkerPoolStats {
	total := wp.totalTasks.Load()
	failed := wp.failedTasks.Load()

	successRate := 0.0
	if total > 0 {
		successRate = float64(total-failed) / float64(total) * 100
	}

	return WorkerPoolStats{
		TotalWorkers:  wp.workers,
		ActiveWorkers: wp.activeCount.Load(),
		TotalTasks:    total,
		FailedTasks:   failed,
		SuccessRate:   successRate,
	}
}
