package lloyd

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// See metric.PrometheusCollector for a Prometheus implementation.
type MetricsCollector interface {
	// RecordSeed is called after each k-means++ seeding.
	// k is the number of centroids requested, err is nil if successful.
	RecordSeed(k int, duration time.Duration, err error)

	// RecordIteration is called after each Lloyd iteration run by Fit.
	// kind names the engine.
	RecordIteration(kind string, duration time.Duration, converged bool)

	// RecordFit is called when Fit returns.
	RecordFit(kind string, iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeed(int, time.Duration, error)              {}
func (NoopMetricsCollector) RecordIteration(string, time.Duration, bool)       {}
func (NoopMetricsCollector) RecordFit(string, int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SeedCount           atomic.Int64
	SeedErrors          atomic.Int64
	SeedTotalNanos      atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	FitCount            atomic.Int64
	FitConverged        atomic.Int64
	FitErrors           atomic.Int64
	FitTotalNanos       atomic.Int64
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(_ int, duration time.Duration, err error) {
	b.SeedCount.Add(1)
	b.SeedTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SeedErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ string, duration time.Duration, _ bool) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(_ string, _ int, converged bool, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
		return
	}
	if converged {
		b.FitConverged.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SeedCount:         b.SeedCount.Load(),
		SeedErrors:        b.SeedErrors.Load(),
		SeedAvgNanos:      avg(b.SeedTotalNanos.Load(), b.SeedCount.Load()),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		FitCount:          b.FitCount.Load(),
		FitConverged:      b.FitConverged.Load(),
		FitErrors:         b.FitErrors.Load(),
		FitAvgNanos:       avg(b.FitTotalNanos.Load(), b.FitCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SeedCount         int64
	SeedErrors        int64
	SeedAvgNanos      int64
	IterationCount    int64
	IterationAvgNanos int64
	FitCount          int64
	FitConverged      int64
	FitErrors         int64
	FitAvgNanos       int64
}
