package simd

// SquaredL2 calculates the squared Euclidean distance between a and b.
//
// Terms are summed in index order and every product is rounded to float32
// before the add, so the result matches Groups.Distances lane for lane.
//
// SAFETY: Assumes len(a) == len(b). Caller MUST ensure lengths match.
func SquaredL2(a, b []float32) float32 {
	b = b[:len(a)]

	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += float32(d * d)
	}
	return sum
}

// SquaredL2Batch computes the squared distance from query to each of the
// n = len(out) vectors stored back to back in targets.
func SquaredL2Batch(query []float32, targets []float32, dim int, out []float32) {
	if dim <= 0 || len(query) < dim {
		return
	}

	q := query[:dim]
	n := min(len(out), len(targets)/dim)
	for i := range n {
		out[i] = SquaredL2(q, targets[i*dim:(i+1)*dim])
	}
}
