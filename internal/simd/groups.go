package simd

import (
	"errors"
	"math"
)

// MaxGroupedCentroids is the largest centroid count whose ids are exactly
// representable in a float32 lane.
const MaxGroupedCentroids = 1 << 24

// ErrTooManyCentroids is returned when a centroid set exceeds MaxGroupedCentroids.
var ErrTooManyCentroids = errors.New("too many centroids for lane-encoded ids")

// Groups holds a centroid set packed into lane groups.
//
// Centroid j is stored at group j%N, lane j/N. Within a group the layout is
// dimension-major: coordinate d of lane x is coords[(g*dims+d)*Lanes+x], so
// one dimension of a whole group is a single contiguous Vec. Unused lanes
// hold +Inf coordinates and id -1.
type Groups struct {
	k      int
	dims   int
	n      int
	coords []float32
	ids    []Vec
}

// NumGroups returns the number of lane groups needed for k centroids.
func NumGroups(k int) int {
	return (k + Lanes - 1) / Lanes
}

// Locate returns the group and lane holding centroid j when k centroids are packed.
func Locate(j, k int) (group, lane int) {
	n := NumGroups(k)
	return j % n, j / n
}

// Pack lays out k centroids of dimension dims, stored back to back in
// centroids, reusing the buffers of g.
func (g *Groups) Pack(centroids []float32, k, dims int) error {
	if k > MaxGroupedCentroids {
		return ErrTooManyCentroids
	}

	n := NumGroups(k)
	size := n * dims * Lanes
	if cap(g.coords) < size {
		g.coords = make([]float32, size)
	}
	g.coords = g.coords[:size]
	if cap(g.ids) < n {
		g.ids = make([]Vec, n)
	}
	g.ids = g.ids[:n]
	g.k, g.dims, g.n = k, dims, n

	inf := float32(math.Inf(1))
	for i := range g.coords {
		g.coords[i] = inf
	}
	for i := range g.ids {
		g.ids[i] = Splat(-1)
	}

	for j := range k {
		grp, lane := j%n, j/n
		src := centroids[j*dims : (j+1)*dims]
		base := grp * dims * Lanes
		for d, x := range src {
			g.coords[base+d*Lanes+lane] = x
		}
		g.ids[grp][lane] = float32(j)
	}
	return nil
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return g.n
}

// IDs returns the lane-encoded centroid ids of group grp.
func (g *Groups) IDs(grp int) *Vec {
	return &g.ids[grp]
}

// Distances writes the squared distance from point to every lane of group
// grp into out. The point coordinate of each dimension is broadcast across
// the lanes and the squared differences are accumulated in dimension order.
func (g *Groups) Distances(point []float32, grp int, out *Vec) {
	*out = Vec{}
	rows := g.coords[grp*g.dims*Lanes : (grp+1)*g.dims*Lanes]
	for d, p := range point[:g.dims] {
		row := (*Vec)(rows[d*Lanes : (d+1)*Lanes])
		for x := range out {
			diff := p - row[x]
			out[x] += float32(diff * diff)
		}
	}
}

// Nearest returns the id of the centroid closest to point, preferring the
// lowest id on ties.
func (g *Groups) Nearest(point []float32) int {
	var best, next Vec

	g.Distances(point, 0, &best)
	bestIdx := g.ids[0]

	for grp := 1; grp < g.n; grp++ {
		g.Distances(point, grp, &next)
		MergeLess(&best, &bestIdx, &next, &g.ids[grp])
	}

	lane := FirstLane(&best, ReduceMin(&best))
	if lane < 0 {
		// Only reachable with NaN distances; lane 0 always holds centroid 0.
		lane = 0
	}
	return int(bestIdx[lane])
}
