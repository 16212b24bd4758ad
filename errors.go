package lloyd

import (
	"errors"

	"github.com/hupe1980/lloyd/model"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrTooFewPoints is returned when seeding asks for more centroids than
	// there are points.
	ErrTooFewPoints = errors.New("k exceeds the number of points")

	// ErrNotSeeded is returned when an operation needs centroids before Seed
	// or SetCentroids was called.
	ErrNotSeeded = errors.New("model has no centroids")

	// ErrInvalidIterations is returned when the iteration cap is negative.
	ErrInvalidIterations = errors.New("max iterations must not be negative")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch = model.DimensionMismatchError
