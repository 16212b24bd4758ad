package engine

// Accumulator holds per-centroid coordinate sums and point counts for one
// iteration. Sums are kept in float64 and divided once in the update stage.
type Accumulator struct {
	K      int
	Dims   int
	Sums   []float64
	Counts []int
}

// NewAccumulator returns a zeroed accumulator for k centroids of dimension dims.
func NewAccumulator(k, dims int) *Accumulator {
	a := &Accumulator{}
	a.Reset(k, dims)
	return a
}

// Reset zeroes the accumulator and resizes it to k centroids of dimension dims.
func (a *Accumulator) Reset(k, dims int) {
	a.K, a.Dims = k, dims
	if cap(a.Sums) < k*dims {
		a.Sums = make([]float64, k*dims)
	}
	a.Sums = a.Sums[:k*dims]
	if cap(a.Counts) < k {
		a.Counts = make([]int, k)
	}
	a.Counts = a.Counts[:k]

	clear(a.Sums)
	clear(a.Counts)
}

// Add assigns point p to centroid j.
func (a *Accumulator) Add(j int, p []float32) {
	sum := a.Sums[j*a.Dims : (j+1)*a.Dims]
	for d, x := range p[:a.Dims] {
		sum[d] += float64(x)
	}
	a.Counts[j]++
}

// Merge adds every cell of other into a. Both must have the same shape.
func (a *Accumulator) Merge(other *Accumulator) {
	for i, s := range other.Sums {
		a.Sums[i] += s
	}
	for j, n := range other.Counts {
		a.Counts[j] += n
	}
}

// Total returns the number of points accumulated.
func (a *Accumulator) Total() int {
	var n int
	for _, c := range a.Counts {
		n += c
	}
	return n
}
