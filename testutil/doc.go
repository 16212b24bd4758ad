// Package testutil provides deterministic data generators for tests and
// benchmarks.
//
//	rng := testutil.NewRNG(42)
//	data := rng.Blobs(1000, 8, 16, 0.5) // 1000 points around 8 centres
//	ds, _ := model.NewDataset(data.Points, 16)
package testutil
