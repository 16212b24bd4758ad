package lloyd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/engine"
	"github.com/hupe1980/lloyd/model"
	"github.com/hupe1980/lloyd/snapshot"
)

// Model owns the centroid set of one clustering run over a fixed dataset.
//
// A Model is not safe for concurrent use while Seed, SetCentroids, Restore
// or Fit run. Classify, Assign, Partition and Inertia may run concurrently
// with each other.
type Model struct {
	ds        *model.Dataset
	k         int
	centroids *model.Centroids
	converged bool
	opts      options
	logger    *Logger
}

// New creates a model that clusters ds into k clusters.
// The dataset is referenced, not copied, and must not change during the run.
func New(ds *model.Dataset, k int, optFns ...Option) (*Model, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}

	o := applyOptions(optFns)

	m := &Model{
		ds:   ds,
		opts: o,
	}
	m.setK(k)
	return m, nil
}

// setK sets the cluster count and the logger fields derived from it.
func (m *Model) setK(k int) {
	m.k = k
	m.logger = m.opts.logger.WithK(k).WithDimension(m.ds.Dims)
}

// K returns the number of clusters.
func (m *Model) K() int { return m.k }

// Dataset returns the dataset the model clusters.
func (m *Model) Dataset() *model.Dataset { return m.ds }

// Centroids returns a copy of the current centroids, or nil before seeding.
func (m *Model) Centroids() *model.Centroids {
	if m.centroids == nil {
		return nil
	}
	return m.centroids.Clone()
}

// Converged reports whether the last Fit ended at a fixed point.
func (m *Model) Converged() bool { return m.converged }

// SetCentroids replaces the centroids with a copy of c. The number of
// clusters becomes c.K.
func (m *Model) SetCentroids(c *model.Centroids) error {
	if err := c.Validate(m.ds.Dims); err != nil {
		return fmt.Errorf("set centroids: %w", err)
	}
	m.centroids = c.Clone()
	m.setK(c.K)
	m.converged = false
	return nil
}

// NewEngine creates an engine of the given kind over the model's dataset.
// It inherits the model's worker count and logger; optFns are applied after.
func (m *Model) NewEngine(kind engine.Kind, optFns ...engine.Option) (engine.Engine, error) {
	opts := append([]engine.Option{
		engine.WithWorkers(m.opts.workers),
		engine.WithLogger(m.opts.logger.Logger),
	}, optFns...)
	return engine.New(kind, m.ds, opts...)
}

// Fit runs Lloyd iterations on e until the centroids stop moving or
// maxIterations iterations were performed.
//
// The returned count excludes the converging iteration: if the centroids are
// already a fixed point, Fit returns 0. If the cap is reached without
// convergence, Fit returns maxIterations and Converged reports false.
func (m *Model) Fit(e engine.Engine, maxIterations int) (int, error) {
	if m.centroids == nil {
		return 0, ErrNotSeeded
	}
	if maxIterations < 0 {
		return 0, ErrInvalidIterations
	}

	kind := e.Kind().String()
	logger := m.logger.WithEngine(kind)

	sometimes := rate.Sometimes{Interval: m.opts.iterationLogInterval}
	if sometimes.Interval <= 0 {
		sometimes.Every = 1
	}

	m.converged = false
	start := time.Now()
	iterations := 0

	for iterations < maxIterations {
		iterStart := time.Now()
		converged, err := e.Iterate(m.centroids)
		if err != nil {
			err = fmt.Errorf("iteration %d: %w", iterations+1, err)
			dur := time.Since(start)
			m.opts.metricsCollector.RecordFit(kind, iterations, false, dur, err)
			logger.LogFit(iterations, false, dur, err)
			return iterations, err
		}
		d := time.Since(iterStart)
		m.opts.metricsCollector.RecordIteration(kind, d, converged)

		if converged {
			m.converged = true
			break
		}
		iterations++
		sometimes.Do(func() { logger.LogIteration(iterations, false, d) })
	}

	dur := time.Since(start)
	m.opts.metricsCollector.RecordFit(kind, iterations, m.converged, dur, nil)
	logger.LogFit(iterations, m.converged, dur, nil)
	return iterations, nil
}

// Classify returns the index of the centroid nearest to point.
// Ties resolve to the lowest index.
func (m *Model) Classify(point []float32) (int, error) {
	if m.centroids == nil {
		return -1, ErrNotSeeded
	}
	if len(point) != m.ds.Dims {
		return -1, &ErrDimensionMismatch{Expected: m.ds.Dims, Actual: len(point)}
	}
	idx, _ := distance.Nearest(point, m.centroids.Data, m.centroids.Dims)
	return idx, nil
}

// Assign classifies every dataset point. Result i is the cluster of point i.
func (m *Model) Assign(ctx context.Context) ([]int, error) {
	if m.centroids == nil {
		return nil, ErrNotSeeded
	}
	labels := make([]int, m.ds.Count)
	err := m.forEachRange(ctx, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			labels[i], _ = distance.Nearest(m.ds.Point(i), m.centroids.Data, m.centroids.Dims)
		}
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

// Partition returns one bitmap of point indices per cluster.
func (m *Model) Partition(ctx context.Context) ([]*roaring.Bitmap, error) {
	labels, err := m.Assign(ctx)
	if err != nil {
		return nil, err
	}

	parts := make([]*roaring.Bitmap, m.centroids.K)
	for j := range parts {
		parts[j] = roaring.New()
	}
	for i, j := range labels {
		parts[j].Add(uint32(i))
	}
	for _, b := range parts {
		b.RunOptimize()
	}
	return parts, nil
}

// Inertia returns the sum of squared distances of every point to its
// nearest centroid.
func (m *Model) Inertia(ctx context.Context) (float64, error) {
	if m.centroids == nil {
		return 0, ErrNotSeeded
	}

	partial := make([]float64, m.opts.workers)
	err := m.forEachRange(ctx, func(w, lo, hi int) {
		var sum float64
		for i := lo; i < hi; i++ {
			_, d := distance.Nearest(m.ds.Point(i), m.centroids.Data, m.centroids.Dims)
			sum += float64(d)
		}
		partial[w] = sum
	})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, s := range partial {
		total += s
	}
	return total, nil
}

// forEachRange splits the dataset into at most workers contiguous ranges and
// runs fn on each concurrently. w is the range number.
func (m *Model) forEachRange(ctx context.Context, fn func(w, lo, hi int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.workers)

	n := m.ds.Count
	parts := min(m.opts.workers, n)
	size, rem := n/parts, n%parts

	lo := 0
	for w := range parts {
		start, hi := lo, lo+size
		if w < rem {
			hi++
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(w, start, hi)
			return nil
		})
		lo = hi
	}
	return g.Wait()
}

// Snapshot writes the current centroids to w.
func (m *Model) Snapshot(w io.Writer, compression snapshot.Compression) error {
	if m.centroids == nil {
		return ErrNotSeeded
	}
	return snapshot.Encode(w, m.centroids, compression)
}

// Restore replaces the centroids with a snapshot read from r.
func (m *Model) Restore(r io.Reader) error {
	c, err := snapshot.Decode(r)
	if err != nil {
		return err
	}
	return m.SetCentroids(c)
}
