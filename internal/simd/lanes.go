package simd

// Lanes is the number of slots in a lane group.
const Lanes = 8

// Vec is one lane group of float32 values.
type Vec [Lanes]float32

// Splat returns a Vec with every lane set to x.
func Splat(x float32) Vec {
	var v Vec
	for i := range v {
		v[i] = x
	}
	return v
}

// ReduceMin returns the smallest lane of v.
func ReduceMin(v *Vec) float32 {
	// Pairwise tree, the shape of a shuffle-based horizontal reduction.
	var h [Lanes / 2]float32
	for i := range h {
		h[i] = min32(v[i], v[i+Lanes/2])
	}
	q0 := min32(h[0], h[2])
	q1 := min32(h[1], h[3])
	return min32(q0, q1)
}

// FirstLane returns the lowest lane of v equal to x, or -1.
func FirstLane(v *Vec, x float32) int {
	var mask uint8
	for i := range v {
		if v[i] == x {
			mask |= 1 << i
		}
	}
	if mask == 0 {
		return -1
	}

	lane := 0
	for mask&1 == 0 {
		mask >>= 1
		lane++
	}
	return lane
}

// MergeLess replaces dist[i] and idx[i] with next[i] and nextIdx[i] in every
// lane where next[i] < dist[i]. Equal distances keep the current lane value.
func MergeLess(dist, idx, next, nextIdx *Vec) {
	for i := range dist {
		if next[i] < dist[i] {
			dist[i] = next[i]
			idx[i] = nextIdx[i]
		}
	}
}

func min32(a, b float32) float32 {
	if b < a {
		return b
	}
	return a
}
