package engine

import (
	"sync"
	"sync/atomic"
)

// workerPool runs tasks on a fixed set of goroutines that live as long as
// the engine, so iterations do not pay for goroutine start-up.
type workerPool struct {
	numWorkers int
	workCh     chan func()
	wg         sync.WaitGroup
	closed     atomic.Bool
	submitMu   sync.RWMutex
}

// newWorkerPool starts numWorkers goroutines. numWorkers must be positive.
func newWorkerPool(numWorkers int) *workerPool {
	wp := &workerPool{
		numWorkers: numWorkers,
		workCh:     make(chan func(), numWorkers),
	}

	wp.wg.Add(numWorkers)
	for range numWorkers {
		go wp.worker()
	}

	return wp
}

func (wp *workerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.workCh {
		task()
	}
}

// submit enqueues task, blocking while every worker is busy and the queue is full.
func (wp *workerPool) submit(task func()) error {
	wp.submitMu.RLock()
	defer wp.submitMu.RUnlock()

	if wp.closed.Load() {
		return ErrClosed
	}

	wp.workCh <- task
	return nil
}

// close drains queued tasks and stops the workers. It is idempotent.
func (wp *workerPool) close() {
	if !wp.closed.CompareAndSwap(false, true) {
		return
	}

	wp.submitMu.Lock()
	close(wp.workCh)
	wp.submitMu.Unlock()

	wp.wg.Wait()
}
