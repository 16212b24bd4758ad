// Package model defines the data types shared by the clustering engines
// and the orchestrator.
//
// # Data Types
//
//   - Dataset: N points of dimension D, flattened row-major, read-only
//   - Centroids: K centroids of dimension D, flattened row-major, mutable
//
// Both types keep a single backing slice so rows are views, never copies:
//
//	ds, err := model.DatasetFromRows([][]float32{{0, 0}, {0, 1}})
//	p := ds.Point(1) // []float32{0, 1}, aliases ds.Data
package model
