package lloyd

import (
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/model"
)

// Seed chooses the initial centroids with k-means++ and replaces the current
// centroid set. The first centroid is a uniformly chosen point; every further
// centroid is a point drawn with probability proportional to its squared
// distance to the nearest centroid chosen so far.
//
// Seed requires k <= number of points.
func (m *Model) Seed(rng RandomSource) error {
	start := time.Now()
	c, err := kmeansPlusPlus(m.ds, m.k, rng)
	dur := time.Since(start)

	m.opts.metricsCollector.RecordSeed(m.k, dur, err)
	m.logger.LogSeed(m.ds.Count, dur, err)
	if err != nil {
		return err
	}

	m.centroids = c
	m.converged = false
	return nil
}

func kmeansPlusPlus(ds *model.Dataset, k int, rng RandomSource) (*model.Centroids, error) {
	if rng == nil {
		return nil, fmt.Errorf("seed: random source is nil")
	}
	if k > ds.Count {
		return nil, fmt.Errorf("seed: %w: k=%d, points=%d", ErrTooFewPoints, k, ds.Count)
	}

	c := model.NewCentroids(k, ds.Dims)
	copy(c.Row(0), ds.Point(rng.IntN(ds.Count)))

	// minDist[i] is the squared distance of point i to its nearest chosen
	// centroid. Only the newest centroid has to be folded in per round.
	minDist := make([]float64, ds.Count)
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}
	dists := make([]float32, ds.Count)

	for j := 1; j < k; j++ {
		distance.SquaredL2Batch(c.Row(j-1), ds.Data, ds.Dims, dists)
		for i, d := range dists {
			if float64(d) < minDist[i] {
				minDist[i] = float64(d)
			}
		}
		copy(c.Row(j), ds.Point(weightedIndex(rng, minDist)))
	}

	return c, nil
}
