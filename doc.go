// Package lloyd clusters float32 vectors with Lloyd's k-means algorithm.
//
// A Model owns the centroid set of one clustering run. It seeds the centroids
// with k-means++, drives an engine until the centroids stop moving and
// classifies points against the result.
//
// # Quick Start
//
//	ds, _ := model.NewDataset(data, 128)
//	m, _ := lloyd.New(ds, 16)
//	_ = m.Seed(lloyd.NewRandom(42))
//
//	e, _ := m.NewEngine(engine.KindParallelSIMD)
//	defer e.Close()
//
//	iterations, _ := m.Fit(e, 100)
//	cluster, _ := m.Classify(query)
//
// # Engines
//
// Four engines compute the same iteration and produce bit-identical
// centroids:
//
//   - basic: single-threaded linear scan, the reference.
//   - simd: single-threaded scan over centroids packed into 8-lane groups.
//   - parallel: the basic scan split over a fixed worker pool.
//   - parallel-simd: the lane-group scan split over a fixed worker pool.
//
// Ties between equidistant centroids always resolve to the lowest centroid
// index.
//
// # Configuration
//
// LoadConfig reads LLOYD_* environment variables:
//
//	cfg, _ := lloyd.LoadConfig()
//	m, _ := lloyd.New(ds, 16, cfg.ModelOptions()...)
//	_ = m.Seed(cfg.Random())
//	e, _ := m.NewEngine(cfg.EngineKind(), cfg.EngineOptions()...)
//
// # Snapshots
//
// Fitted centroids can be written with Snapshot and loaded with Restore; see
// package snapshot for the format.
package lloyd
