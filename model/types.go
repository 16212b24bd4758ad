package model

import (
	"fmt"
	"slices"
)

// Dataset is an immutable view of N points of dimension D.
// Data holds the points back to back: point i is Data[i*Dims : (i+1)*Dims].
type Dataset struct {
	Count int
	Dims  int
	Data  []float32
}

// NewDataset wraps a flattened N-by-D array. The slice is referenced, not copied.
func NewDataset(data []float32, dims int) (*Dataset, error) {
	if dims <= 0 {
		return nil, ErrInvalidDimension
	}
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(data)%dims != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of dimension %d", len(data), dims)
	}

	return &Dataset{
		Count: len(data) / dims,
		Dims:  dims,
		Data:  data,
	}, nil
}

// DatasetFromRows copies rows into a single backing array.
// All rows must have the length of the first row.
func DatasetFromRows(rows [][]float32) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	dims := len(rows[0])
	if dims == 0 {
		return nil, ErrInvalidDimension
	}

	data := make([]float32, 0, len(rows)*dims)
	for i, row := range rows {
		if len(row) != dims {
			return nil, fmt.Errorf("row %d: %w", i, &DimensionMismatchError{Expected: dims, Actual: len(row)})
		}
		data = append(data, row...)
	}

	return &Dataset{
		Count: len(rows),
		Dims:  dims,
		Data:  data,
	}, nil
}

// Point returns point i as a view into the dataset.
func (d *Dataset) Point(i int) []float32 {
	return d.Data[i*d.Dims : (i+1)*d.Dims : (i+1)*d.Dims]
}

// Validate checks the dataset invariants.
func (d *Dataset) Validate() error {
	if d == nil || d.Count == 0 {
		return ErrEmptyDataset
	}
	if d.Dims <= 0 {
		return ErrInvalidDimension
	}
	if len(d.Data) != d.Count*d.Dims {
		return fmt.Errorf("dataset holds %d values, want %d", len(d.Data), d.Count*d.Dims)
	}
	return nil
}

// Centroids is a mutable set of K centroids of dimension D.
// Centroid j is Data[j*Dims : (j+1)*Dims].
type Centroids struct {
	K    int
	Dims int
	Data []float32
}

// NewCentroids allocates k zero centroids.
func NewCentroids(k, dims int) *Centroids {
	return &Centroids{
		K:    k,
		Dims: dims,
		Data: make([]float32, k*dims),
	}
}

// CentroidsFromRows copies rows into a new centroid set.
func CentroidsFromRows(rows [][]float32) (*Centroids, error) {
	if len(rows) == 0 {
		return nil, ErrNoCentroids
	}

	dims := len(rows[0])
	if dims == 0 {
		return nil, ErrInvalidDimension
	}

	c := NewCentroids(len(rows), dims)
	for j, row := range rows {
		if len(row) != dims {
			return nil, fmt.Errorf("centroid %d: %w", j, &DimensionMismatchError{Expected: dims, Actual: len(row)})
		}
		copy(c.Row(j), row)
	}
	return c, nil
}

// Row returns centroid j as a mutable view.
func (c *Centroids) Row(j int) []float32 {
	return c.Data[j*c.Dims : (j+1)*c.Dims : (j+1)*c.Dims]
}

// Rows returns a copy of the centroids as separate slices.
func (c *Centroids) Rows() [][]float32 {
	rows := make([][]float32, c.K)
	for j := range rows {
		rows[j] = slices.Clone(c.Row(j))
	}
	return rows
}

// Clone returns a deep copy.
func (c *Centroids) Clone() *Centroids {
	return &Centroids{
		K:    c.K,
		Dims: c.Dims,
		Data: slices.Clone(c.Data),
	}
}

// Equal reports whether both sets have the same shape and exactly equal values.
func (c *Centroids) Equal(other *Centroids) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.K == other.K && c.Dims == other.Dims && slices.Equal(c.Data, other.Data)
}

// Validate checks the centroid set against the dimension fixed for the run.
func (c *Centroids) Validate(dims int) error {
	if c == nil || c.K <= 0 {
		return ErrNoCentroids
	}
	if c.Dims != dims {
		return &DimensionMismatchError{Expected: dims, Actual: c.Dims}
	}
	if len(c.Data) != c.K*c.Dims {
		return fmt.Errorf("centroid set holds %d values, want %d", len(c.Data), c.K*c.Dims)
	}
	return nil
}
