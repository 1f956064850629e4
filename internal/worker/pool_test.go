package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRefresher struct {
	mu    sync.Mutex
	tasks []RefreshTask
	err   error
}

func (r *recordingRefresher) RefreshSnapshot(ctx context.Context, task RefreshTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return r.err
}

func (r *recordingRefresher) seen() []RefreshTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RefreshTask, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func TestPoolProcessesSubmittedTasks(t *testing.T) {
	refresher := &recordingRefresher{}
	pool := NewPool(2, 16, refresher)
	pool.Start()

	require.NoError(t, pool.Submit(RefreshTask{CarID: 1}))
	require.NoError(t, pool.Submit(RefreshTask{CarID: 1, TrackID: 2}))

	require.NoError(t, pool.Shutdown(5*time.Second))

	tasks := refresher.seen()
	assert.Len(t, tasks, 2)
	assert.Contains(t, tasks, RefreshTask{CarID: 1})
	assert.Contains(t, tasks, RefreshTask{CarID: 1, TrackID: 2})
}

func TestPoolSubmitDropsWhenQueueFull(t *testing.T) {
	// No workers started, so nothing drains the queue.
	refresher := &recordingRefresher{}
	pool := NewPool(1, 1, refresher)

	require.NoError(t, pool.Submit(RefreshTask{CarID: 1}))
	err := pool.Submit(RefreshTask{CarID: 2})
	assert.Error(t, err)

	metrics := pool.GetMetrics()
	assert.Equal(t, int64(1), metrics["backpressure_events"])
}

func TestPoolCountsFailures(t *testing.T) {
	refresher := &recordingRefresher{err: errors.New("redis down")}
	pool := NewPool(1, 4, refresher)
	pool.Start()

	require.NoError(t, pool.Submit(RefreshTask{CarID: 3}))
	require.NoError(t, pool.Shutdown(5*time.Second))

	metrics := pool.GetMetrics()
	assert.Equal(t, int64(1), metrics["failed"])
	assert.Equal(t, int64(0), metrics["processed"])
}

func TestPoolShutdownDrainsQueue(t *testing.T) {
	refresher := &recordingRefresher{}
	pool := NewPool(1, 32, refresher)
	pool.Start()

	for i := 0; i < 10; i++ {
		require.NoError(t, pool.Submit(RefreshTask{CarID: uint(i + 1)}))
	}

	require.NoError(t, pool.Shutdown(5*time.Second))
	assert.Len(t, refresher.seen(), 10)
}
