// Package distance exposes the squared Euclidean distance kernel used by
// every clustering engine. Results are bit-identical to the lane-group
// kernel in internal/simd, which is what keeps scalar and vectorized
// engines in agreement.
package distance
