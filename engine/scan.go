package engine

import (
	"github.com/hupe1980/lloyd/internal/simd"
	"github.com/hupe1980/lloyd/model"
)

// scanner finds the nearest centroid of a point. prepare is called once per
// iteration before any nearest call; nearest must be safe for concurrent use.
type scanner interface {
	prepare(c *model.Centroids) error
	nearest(p []float32) int
}

// scalarScanner compares a point against every centroid in index order.
type scalarScanner struct {
	c *model.Centroids
}

func (s *scalarScanner) prepare(c *model.Centroids) error {
	s.c = c
	return nil
}

func (s *scalarScanner) nearest(p []float32) int {
	best := 0
	bestDist := simd.SquaredL2(p, s.c.Row(0))
	for j := 1; j < s.c.K; j++ {
		if d := simd.SquaredL2(p, s.c.Row(j)); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// laneScanner compares a point against lane groups of packed centroids.
type laneScanner struct {
	groups simd.Groups
}

func (s *laneScanner) prepare(c *model.Centroids) error {
	return s.groups.Pack(c.Data, c.K, c.Dims)
}

func (s *laneScanner) nearest(p []float32) int {
	return s.groups.Nearest(p)
}

func newScanner(lanes bool) scanner {
	if lanes {
		return &laneScanner{}
	}
	return &scalarScanner{}
}

// scanRange assigns points [lo, hi) of ds and accumulates them into acc.
func scanRange(ds *model.Dataset, s scanner, lo, hi int, acc *Accumulator) {
	for i := lo; i < hi; i++ {
		p := ds.Point(i)
		acc.Add(s.nearest(p), p)
	}
}

// assignRange writes the nearest centroid of points [lo, hi) into dst.
func assignRange(ds *model.Dataset, s scanner, lo, hi int, dst []int) {
	for i := lo; i < hi; i++ {
		dst[i] = s.nearest(ds.Point(i))
	}
}
