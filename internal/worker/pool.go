package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// RefreshTask asks for one leaderboard snapshot to be rebuilt and cached.
// Zero IDs mean the unfiltered leaderboard.
type RefreshTask struct {
	CarID   uint
	TrackID uint
}

// Refresher rebuilds and caches the snapshot a task names
type Refresher interface {
	RefreshSnapshot(ctx context.Context, task RefreshTask) error
}

// Pool manages a pool of workers that rebuild leaderboard snapshots
// asynchronously after lap writes. Dropping a task under backpressure is
// safe: snapshots are cache only and expire on their own.
type Pool struct {
	jobs        chan RefreshTask
	workerCount int
	refresher   Refresher
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	metrics     *PoolMetrics
}

// PoolMetrics tracks worker pool performance
type PoolMetrics struct {
	mu              sync.RWMutex
	processed       int64
	failed          int64
	backpressure    int64
	totalProcessing time.Duration
}

// NewPool creates a new refresh pool
func NewPool(workerCount, queueSize int, refresher Refresher) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		jobs:        make(chan RefreshTask, queueSize),
		workerCount: workerCount,
		refresher:   refresher,
		ctx:         ctx,
		cancel:      cancel,
		metrics:     &PoolMetrics{},
	}
}

// Start initializes and starts all worker goroutines
func (p *Pool) Start() {
	log.Printf("Starting refresh pool with %d workers and queue size %d", p.workerCount, cap(p.jobs))

	for i := 1; i <= p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// worker is the main worker loop that processes tasks
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return

		case task, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processTask(id, task)
		}
	}
}

// processTask rebuilds a single snapshot with panic recovery
func (p *Pool) processTask(workerID int, task RefreshTask) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Worker #%d PANIC recovered: %v (task: %+v)", workerID, r, task)
			p.metrics.incrementFailed()
		}
	}()

	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := p.refresher.RefreshSnapshot(ctx, task)
	processingTime := time.Since(startTime)

	if err != nil {
		log.Printf("Worker #%d failed to refresh snapshot (car=%d track=%d): %v (took %v)",
			workerID, task.CarID, task.TrackID, err, processingTime)
		p.metrics.incrementFailed()
		return
	}

	p.metrics.recordSuccess(processingTime)
}

// Submit attempts to queue a task with backpressure handling. A full queue
// drops the task: the snapshot stays stale until its TTL or the next lap.
func (p *Pool) Submit(task RefreshTask) error {
	select {
	case p.jobs <- task:
		return nil

	default:
		log.Printf("Backpressure: refresh queue full, dropping task (car=%d track=%d)",
			task.CarID, task.TrackID)
		p.metrics.incrementBackpressure()
		return fmt.Errorf("refresh pool queue full (backpressure)")
	}
}

// Shutdown gracefully stops the pool, draining queued tasks
func (p *Pool) Shutdown(timeout time.Duration) error {
	close(p.jobs)

	done := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.printMetrics()
		return nil

	case <-time.After(timeout):
		p.cancel()
		return fmt.Errorf("shutdown timeout exceeded")
	}
}

// GetMetrics returns a snapshot of the pool metrics
func (p *Pool) GetMetrics() map[string]interface{} {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()

	avgProcessing := time.Duration(0)
	if p.metrics.processed > 0 {
		avgProcessing = p.metrics.totalProcessing / time.Duration(p.metrics.processed)
	}

	return map[string]interface{}{
		"processed":           p.metrics.processed,
		"failed":              p.metrics.failed,
		"backpressure_events": p.metrics.backpressure,
		"avg_processing_time": avgProcessing.String(),
		"queue_utilization":   fmt.Sprintf("%d/%d", len(p.jobs), cap(p.jobs)),
	}
}

// printMetrics logs the final metrics
func (p *Pool) printMetrics() {
	metrics := p.GetMetrics()
	log.Printf("Refresh pool metrics: processed=%v failed=%v backpressure=%v avg=%v",
		metrics["processed"], metrics["failed"],
		metrics["backpressure_events"], metrics["avg_processing_time"])
}

// Metrics helper methods
func (pm *PoolMetrics) recordSuccess(duration time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.processed++
	pm.totalProcessing += duration
}

func (pm *PoolMetrics) incrementFailed() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.failed++
}

func (pm *PoolMetrics) incrementBackpressure() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.backpressure++
}
