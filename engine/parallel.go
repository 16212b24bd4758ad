package engine

import (
	"fmt"
	"sync"

	"github.com/hupe1980/lloyd/model"
)

// chunk is a contiguous range [lo, hi) of point indices.
type chunk struct {
	lo, hi int
}

// partition splits [0, n) into at most parts contiguous chunks whose sizes
// differ by at most one. Every index is covered exactly once.
func partition(n, parts int) []chunk {
	if parts > n {
		parts = n
	}
	if parts <= 0 {
		return nil
	}

	chunks := make([]chunk, parts)
	size, rem := n/parts, n%parts
	lo := 0
	for i := range chunks {
		hi := lo + size
		if i < rem {
			hi++
		}
		chunks[i] = chunk{lo: lo, hi: hi}
		lo = hi
	}
	return chunks
}

// Parallel fans the scan out over a fixed worker pool: Parallel, or
// ParallelSIMD when scanning with lane groups.
//
// Every worker scans one chunk into its private accumulator, then merges it
// into the shared accumulator under mu. The update stage runs after all
// workers have merged.
type Parallel struct {
	kind   Kind
	ds     *model.Dataset
	scan   scanner
	lanes  bool
	chunks []chunk
	locals []Accumulator
	pool   *workerPool
	opts   options

	mu     sync.Mutex
	merged Accumulator
}

// NewParallel creates the multi-threaded scalar engine.
func NewParallel(ds *model.Dataset, optFns ...Option) (*Parallel, error) {
	return newParallel(KindParallel, ds, optFns)
}

// NewParallelSIMD creates the multi-threaded lane-group engine.
func NewParallelSIMD(ds *model.Dataset, optFns ...Option) (*Parallel, error) {
	return newParallel(KindParallelSIMD, ds, optFns)
}

func newParallel(kind Kind, ds *model.Dataset, optFns []Option) (*Parallel, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%s engine: %w", kind, err)
	}

	o := buildOptions(optFns)
	lanes := o.useLanes(kind)
	chunks := partition(ds.Count, o.workers)

	o.logger.Debug("engine created",
		"kind", kind.String(),
		"points", ds.Count,
		"dimension", ds.Dims,
		"workers", len(chunks),
		"vectorized", lanes,
	)

	return &Parallel{
		kind:   kind,
		ds:     ds,
		scan:   newScanner(lanes),
		lanes:  lanes,
		chunks: chunks,
		locals: make([]Accumulator, len(chunks)),
		pool:   newWorkerPool(len(chunks)),
		opts:   o,
	}, nil
}

// Iterate implements Engine.
func (e *Parallel) Iterate(c *model.Centroids) (bool, error) {
	if e.pool.closed.Load() {
		return false, ErrClosed
	}
	if err := checkCentroids(e.ds, c); err != nil {
		return false, err
	}
	if err := e.scan.prepare(c); err != nil {
		return false, err
	}

	e.merged.Reset(c.K, c.Dims)

	err := e.fanOut(func(w int, ch chunk) {
		local := &e.locals[w]
		local.Reset(c.K, c.Dims)
		scanRange(e.ds, e.scan, ch.lo, ch.hi, local)

		e.mu.Lock()
		e.merged.Merge(local)
		e.mu.Unlock()
	})
	if err != nil {
		return false, err
	}
	e.opts.logger.Debug("iteration scanned",
		"kind", e.kind.String(),
		"points", e.merged.Total(),
		"workers", e.Workers(),
	)

	return UpdateCentroids(c, &e.merged, e.opts.emptyClusters), nil
}

// Assign implements Engine.
func (e *Parallel) Assign(c *model.Centroids, dst []int) error {
	if e.pool.closed.Load() {
		return ErrClosed
	}
	if err := checkAssign(e.ds, c, dst); err != nil {
		return err
	}
	if err := e.scan.prepare(c); err != nil {
		return err
	}

	// Chunks are disjoint, so workers write to dst without locking.
	return e.fanOut(func(_ int, ch chunk) {
		assignRange(e.ds, e.scan, ch.lo, ch.hi, dst)
	})
}

// fanOut runs task once per chunk on the pool and waits for all of them.
func (e *Parallel) fanOut(task func(w int, ch chunk)) error {
	var wg sync.WaitGroup

	for w, ch := range e.chunks {
		wg.Add(1)
		err := e.pool.submit(func() {
			defer wg.Done()
			task(w, ch)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}

	wg.Wait()
	return nil
}

// Workers returns the number of workers, which never exceeds the number of points.
func (e *Parallel) Workers() int { return len(e.chunks) }

// Kind implements Engine.
func (e *Parallel) Kind() Kind { return e.kind }

// Vectorized implements Engine.
func (e *Parallel) Vectorized() bool { return e.lanes }

// Close implements Engine.
func (e *Parallel) Close() error {
	e.pool.close()
	e.opts.logger.Debug("engine closed", "kind", e.kind.String(), "workers", e.Workers())
	return nil
}
