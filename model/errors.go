package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when a dataset has no points.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrInvalidDimension is returned when the dimension is not positive.
	ErrInvalidDimension = errors.New("dimension must be positive")

	// ErrNoCentroids is returned when a centroid set has no centroids.
	ErrNoCentroids = errors.New("centroid set is empty")
)

// DimensionMismatchError indicates a vector whose length differs from the
// dimension fixed for the run.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
