package distance

import (
	"fmt"

	"github.com/hupe1980/lloyd/internal/simd"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	return simd.SquaredL2(a, b)
}

// SquaredL2Checked is SquaredL2 with a length check.
func SquaredL2Checked(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector sizes do not match: %d != %d", len(a), len(b))
	}
	return simd.SquaredL2(a, b), nil
}

// SquaredL2Batch writes the squared L2 distance from query to each of the
// len(out) vectors stored back to back in targets.
func SquaredL2Batch(query, targets []float32, dim int, out []float32) {
	simd.SquaredL2Batch(query, targets, dim, out)
}

// Nearest returns the index of the row in rows (flattened, dim values each)
// closest to v. Ties resolve to the lowest index. Returns -1 if rows is empty.
func Nearest(v, rows []float32, dim int) (int, float32) {
	if dim <= 0 || len(rows) < dim {
		return -1, 0
	}

	best := 0
	bestDist := simd.SquaredL2(v, rows[:dim])
	for j, n := 1, len(rows)/dim; j < n; j++ {
		if d := simd.SquaredL2(v, rows[j*dim:(j+1)*dim]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}
