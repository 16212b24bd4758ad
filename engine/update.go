package engine

import "github.com/hupe1980/lloyd/model"

// UpdateCentroids replaces every centroid that received points with the
// mean of those points and reports whether no centroid changed.
//
// Centroids without points keep their coordinates; policy decides whether
// they count as converged. Equality is exact.
func UpdateCentroids(c *model.Centroids, acc *Accumulator, policy EmptyClusterPolicy) bool {
	converged := true

	for j := range c.K {
		row := c.Row(j)
		n := acc.Counts[j]

		if n == 0 {
			if policy == EmptyClusterZeroCheck && !isZero(row) {
				converged = false
			}
			continue
		}

		sum := acc.Sums[j*c.Dims : (j+1)*c.Dims]
		for d := range row {
			mean := float32(sum[d] / float64(n))
			if mean != row[d] {
				row[d] = mean
				converged = false
			}
		}
	}

	return converged
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
