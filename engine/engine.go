package engine

import (
	"fmt"

	"github.com/hupe1980/lloyd/model"
)

// Engine runs Lloyd iterations over a fixed dataset.
//
// Implementations are not safe for concurrent calls on the same value.
type Engine interface {
	// Iterate assigns every point to its nearest centroid, replaces c in
	// place with the new centroids and reports whether c was already a
	// fixed point.
	Iterate(c *model.Centroids) (bool, error)

	// Assign writes the nearest centroid index of every point into dst,
	// which must have one entry per point. c is not modified.
	Assign(c *model.Centroids, dst []int) error

	// Kind returns the engine kind.
	Kind() Kind

	// Vectorized reports whether the engine scans with lane groups.
	Vectorized() bool

	// Close releases the engine's workers. Further calls return ErrClosed.
	Close() error
}

// New creates an engine of the given kind over ds.
func New(kind Kind, ds *model.Dataset, optFns ...Option) (Engine, error) {
	switch kind {
	case KindBasic:
		return NewBasic(ds, optFns...)
	case KindSIMD:
		return NewSIMD(ds, optFns...)
	case KindParallel:
		return NewParallel(ds, optFns...)
	case KindParallelSIMD:
		return NewParallelSIMD(ds, optFns...)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
}

// checkCentroids validates the iteration inputs against the dataset.
func checkCentroids(ds *model.Dataset, c *model.Centroids) error {
	if err := c.Validate(ds.Dims); err != nil {
		return fmt.Errorf("invalid centroids: %w", err)
	}
	return nil
}

// checkAssign validates the inputs of Assign.
func checkAssign(ds *model.Dataset, c *model.Centroids, dst []int) error {
	if err := checkCentroids(ds, c); err != nil {
		return err
	}
	if len(dst) != ds.Count {
		return fmt.Errorf("assignment buffer has %d entries, want %d", len(dst), ds.Count)
	}
	return nil
}
