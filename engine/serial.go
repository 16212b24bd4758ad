package engine

import (
	"fmt"

	"github.com/hupe1980/lloyd/model"
)

// Serial is a single-threaded engine: Basic, or SIMD when scanning with
// lane groups.
type Serial struct {
	kind   Kind
	ds     *model.Dataset
	scan   scanner
	lanes  bool
	acc    Accumulator
	opts   options
	closed bool
}

// NewBasic creates the scalar reference engine.
func NewBasic(ds *model.Dataset, optFns ...Option) (*Serial, error) {
	return newSerial(KindBasic, ds, optFns)
}

// NewSIMD creates the lane-group engine. Without native vector width it
// falls back to the scalar scan unless WithVectorMode says otherwise.
func NewSIMD(ds *model.Dataset, optFns ...Option) (*Serial, error) {
	return newSerial(KindSIMD, ds, optFns)
}

func newSerial(kind Kind, ds *model.Dataset, optFns []Option) (*Serial, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%s engine: %w", kind, err)
	}

	o := buildOptions(optFns)
	lanes := o.useLanes(kind)

	o.logger.Debug("engine created",
		"kind", kind.String(),
		"points", ds.Count,
		"dimension", ds.Dims,
		"vectorized", lanes,
	)

	return &Serial{
		kind:  kind,
		ds:    ds,
		scan:  newScanner(lanes),
		lanes: lanes,
		opts:  o,
	}, nil
}

// Iterate implements Engine.
func (e *Serial) Iterate(c *model.Centroids) (bool, error) {
	if e.closed {
		return false, ErrClosed
	}
	if err := checkCentroids(e.ds, c); err != nil {
		return false, err
	}
	if err := e.scan.prepare(c); err != nil {
		return false, err
	}

	e.acc.Reset(c.K, c.Dims)
	scanRange(e.ds, e.scan, 0, e.ds.Count, &e.acc)
	e.opts.logger.Debug("iteration scanned", "kind", e.kind.String(), "points", e.acc.Total())

	return UpdateCentroids(c, &e.acc, e.opts.emptyClusters), nil
}

// Assign implements Engine.
func (e *Serial) Assign(c *model.Centroids, dst []int) error {
	if e.closed {
		return ErrClosed
	}
	if err := checkAssign(e.ds, c, dst); err != nil {
		return err
	}
	if err := e.scan.prepare(c); err != nil {
		return err
	}

	assignRange(e.ds, e.scan, 0, e.ds.Count, dst)
	return nil
}

// Kind implements Engine.
func (e *Serial) Kind() Kind { return e.kind }

// Vectorized implements Engine.
func (e *Serial) Vectorized() bool { return e.lanes }

// Close implements Engine.
func (e *Serial) Close() error {
	e.closed = true
	return nil
}
