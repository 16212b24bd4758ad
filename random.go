package lloyd

import (
	"math/rand/v2"
)

// RandomSource supplies the randomness used by Seed.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// NewRandom returns a deterministic PCG-backed source. It is not safe for
// concurrent use.
func NewRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// weightedIndex samples an index with probability proportional to its
// weight. Entries with zero weight are never chosen unless every weight is
// zero, in which case the index is uniform.
func weightedIndex(rng RandomSource, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if !(total > 0) {
		return rng.IntN(len(weights))
	}

	target := rng.Float64() * total
	last := -1
	var cum float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if cum > target {
			return i
		}
	}
	// Rounding left target at or above the final cumulative sum.
	return last
}
