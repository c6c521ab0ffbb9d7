package render

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"lindenmayer/internal/logging"
)

// Pool runs a task over submitted jobs on a fixed number of goroutines.
// Failed jobs do not stop the pool; their errors are returned by Close.
type Pool[T any] struct {
	name   string
	jobs   chan T
	wg     sync.WaitGroup
	task   func(job T, log *logging.Logger) error
	logger *logging.Logger

	mu   sync.Mutex
	errs []error

	submitted atomic.Int64
	closed    atomic.Bool
}

// NewPool starts workers goroutines running task. Each worker logs under
// its own name.
func NewPool[T any](name string, workers int, logger *logging.Logger, task func(job T, log *logging.Logger) error) *Pool[T] {
	if workers < 1 {
		workers = 1
	}
	p := &Pool[T]{
		name:   name,
		jobs:   make(chan T, workers),
		task:   task,
		logger: logger,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work(logger.Named(fmt.Sprintf("%s %d", name, i+1)))
	}
	return p
}

func (p *Pool[T]) work(log *logging.Logger) {
	defer p.wg.Done()
	for job := range p.jobs {
		if err := p.task(job, log); err != nil {
			log.Log("%v", err)
			p.mu.Lock()
			p.errs = append(p.errs, err)
			p.mu.Unlock()
		}
	}
}

// Submit queues a job, blocking while every worker is busy. Submitting
// after Close panics.
func (p *Pool[T]) Submit(job T) {
	p.submitted.Add(1)
	p.jobs <- job
}

// Close waits for the queued jobs to finish. If any failed, the error
// counts them and wraps every job error.
func (p *Pool[T]) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	close(p.jobs)
	p.wg.Wait()
	if len(p.errs) > 0 {
		return fmt.Errorf("%s: %d of %d jobs failed: %w", p.name, len(p.errs), p.submitted.Load(), errors.Join(p.errs...))
	}
	p.logger.Log("%s: %d jobs done", p.name, p.submitted.Load())
	return nil
}
