package testutil

import (
	"math/rand"
	"sync"
)

// RNG wraps a seeded generator. It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformVectors returns num*dimensions values in [minVal, maxVal), flattened.
func (r *RNG) UniformVectors(num, dimensions int, minVal, maxVal float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	data := make([]float32, num*dimensions)
	for i := range data {
		data[i] = minVal + r.rand.Float32()*span
	}
	return data
}

// BlobSet is a flattened set of points drawn around known centres.
type BlobSet struct {
	Points  []float32
	Centres []float32
	Labels  []int
}

// Blobs draws num points of dimension dim around k centres. Centres are
// placed on a grid with spacing 100 per cluster index, and points get
// Gaussian noise with standard deviation spread. Point i belongs to centre
// i % k.
func (r *RNG) Blobs(num, k, dim int, spread float32) BlobSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	centres := make([]float32, k*dim)
	for c := range k {
		for d := range dim {
			centres[c*dim+d] = float32(c*100) + r.rand.Float32()*10
		}
	}

	points := make([]float32, num*dim)
	labels := make([]int, num)
	for i := range num {
		c := i % k
		labels[i] = c
		for d := range dim {
			points[i*dim+d] = centres[c*dim+d] + float32(r.rand.NormFloat64())*spread
		}
	}

	return BlobSet{Points: points, Centres: centres, Labels: labels}
}

// Pick copies k rows of dimension dim from data, chosen without replacement.
func (r *RNG) Pick(data []float32, dim, k int) []float32 {
	r.mu.Lock()
	perm := r.rand.Perm(len(data) / dim)
	r.mu.Unlock()

	out := make([]float32, 0, k*dim)
	for _, i := range perm[:k] {
		out = append(out, data[i*dim:(i+1)*dim]...)
	}
	return out
}

// Flatten concatenates rows into one slice.
func Flatten(rows [][]float32) []float32 {
	var out []float32
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
