// Package simd provides the distance kernels used by the clustering engines.
//
// # Lane Groups
//
// Vec is a fixed-width group of Lanes float32 slots. Groups packs a centroid
// set into lane groups using an interleaved layout: centroid j lives at
// group j mod G, lane j div G, where G is the number of groups. With this
// layout "lowest lane wins" on ties selects the lowest centroid index, the
// same rule the scalar scan applies.
//
// The lane operations are written in portable Go with a fixed iteration
// order so that vectorized and scalar distances round identically.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2
//   - ARM64: NEON, SVE2
//
// Runtime CPU feature detection reports whether the platform has native
// vector width. Build with -tags noasm or set LLOYD_SIMD=generic to report
// the generic implementation; engines then use the scalar scan.
package simd
