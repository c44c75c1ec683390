package scheduler

import (
	"sync"
	"time"

	"github.com/alvinquach/fgo-planner-go/internal/worker"
)

// Scheduler enqueues jobs to a worker pool at fixed intervals.
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a scheduler backed by the given pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval. The ticker goroutine
// starts immediately and runs until Stop is called.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Blocks if the pool queue is full, which throttles
				// scheduling to what the pool can absorb.
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop cancels all scheduled jobs and waits for the ticker goroutines.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
