package engine

import (
	"errors"

	"github.com/hupe1980/lloyd/internal/simd"
)

var (
	// ErrClosed is returned when an engine is used after Close.
	ErrClosed = errors.New("engine is closed")

	// ErrUnknownKind is returned for an unsupported engine kind.
	ErrUnknownKind = errors.New("unknown engine kind")

	// ErrTooManyCentroids is returned by vectorized engines when the centroid
	// ids cannot be encoded exactly in a float32 lane.
	ErrTooManyCentroids = simd.ErrTooManyCentroids
)
