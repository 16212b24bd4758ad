// Package engine implements one Lloyd iteration (nearest-centroid assignment
// followed by centroid recomputation) with four interchangeable engines.
//
// # Kinds
//
//   - Basic: single-threaded scalar scan, the reference for all others
//   - SIMD: single-threaded scan over 8-wide lane groups
//   - Parallel: scalar scan fanned out over a fixed worker pool
//   - ParallelSIMD: lane-group scan fanned out over a fixed worker pool
//
// Basic and SIMD produce bit-identical centroids and assignments. The
// parallel kinds sum per-worker partial accumulators, so their centroids
// match the serial kinds up to floating-point reassociation.
//
// # Usage
//
//	e, err := engine.New(engine.KindParallelSIMD, ds, engine.WithWorkers(8))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	converged, err := e.Iterate(centroids)
//
// # Empty Clusters
//
// A centroid that receives no points keeps its coordinates. Whether such a
// centroid counts as converged is set with WithEmptyClusterPolicy.
package engine
