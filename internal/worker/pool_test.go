package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
	"github.com/alvinquach/fgo-planner-go/internal/testing/leaktest"
)

type countingJob struct {
	executed *int32
}

func (j *countingJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

type failingJob struct {
	executed *int32
}

func (j *failingJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return errors.New("processing failed")
}

func TestPool_ProcessesEnqueuedJobs(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	job := &countingJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)
	pool.Enqueue(job)

	time.Sleep(50 * time.Millisecond)
	pool.Stop()

	assert.Equal(t, int32(3), atomic.LoadInt32(&executed))
}

func TestPool_SurvivesFailingJobs(t *testing.T) {
	var failed, ok int32
	pool := NewPool(1, 10)
	pool.Start()

	pool.Enqueue(&failingJob{executed: &failed})
	pool.Enqueue(&countingJob{executed: &ok})

	time.Sleep(50 * time.Millisecond)
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&failed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&ok), "worker should keep processing after a job error")
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(4, 10)
		pool.Start()
		pool.Stop()
	})
}

func TestCatalogRefreshJob_SyncsAndClearsCache(t *testing.T) {
	cache := gamedata.NewServantCache(10, time.Minute)
	cache.Set(&gamedata.Servant{ID: 100100, Name: "Altria Pendragon"})

	var synced int32
	job := NewCatalogRefreshJob(func(ctx context.Context) error {
		atomic.AddInt32(&synced, 1)
		return nil
	}, cache, nil)

	err := job.Process(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&synced))
	_, found := cache.Get(100100)
	assert.False(t, found, "cache should be cleared after refresh")
}

func TestCatalogRefreshJob_SyncFailureKeepsCache(t *testing.T) {
	cache := gamedata.NewServantCache(10, time.Minute)
	cache.Set(&gamedata.Servant{ID: 100100, Name: "Altria Pendragon"})

	job := NewCatalogRefreshJob(func(ctx context.Context) error {
		return errors.New("load failed")
	}, cache, nil)

	err := job.Process(context.Background())
	require.Error(t, err)

	_, found := cache.Get(100100)
	assert.True(t, found, "cache should be left intact when sync fails")
}

func TestCatalogRefreshJob_RewarmsAfterClear(t *testing.T) {
	cache := gamedata.NewServantCache(10, time.Minute)
	cache.Set(&gamedata.Servant{ID: 100100, Name: "Altria Pendragon"})

	job := NewCatalogRefreshJob(func(ctx context.Context) error {
		return nil
	}, cache, func(ctx context.Context) error {
		_, found := cache.Get(100100)
		assert.False(t, found, "warm should run against a cleared cache")
		cache.Set(&gamedata.Servant{ID: 100100, Name: "Altria Pendragon"})
		return nil
	})

	err := job.Process(context.Background())
	require.NoError(t, err)

	_, found := cache.Get(100100)
	assert.True(t, found, "warm should repopulate the cache")
}

func TestCatalogRefreshJob_WarmFailureIsNotFatal(t *testing.T) {
	cache := gamedata.NewServantCache(10, time.Minute)

	job := NewCatalogRefreshJob(func(ctx context.Context) error {
		return nil
	}, cache, func(ctx context.Context) error {
		return errors.New("catalog read failed")
	})

	assert.NoError(t, job.Process(context.Background()), "a cold cache after refresh is acceptable")
}

func TestCatalogRefreshJob_NilCache(t *testing.T) {
	job := NewCatalogRefreshJob(func(ctx context.Context) error { return nil }, nil, nil)
	assert.NoError(t, job.Process(context.Background()))
}
