// Package metric exports clustering metrics to Prometheus.
package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/lloyd"
)

var _ lloyd.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements lloyd.MetricsCollector with Prometheus
// counters and histograms labelled by engine kind.
type PrometheusCollector struct {
	SeedsTotal        *prometheus.CounterVec
	SeedDuration      prometheus.Histogram
	IterationsTotal   *prometheus.CounterVec
	IterationDuration *prometheus.HistogramVec
	FitsTotal         *prometheus.CounterVec
	FitDuration       *prometheus.HistogramVec
	FitIterations     *prometheus.HistogramVec
}

// NewPrometheusCollector creates the collectors and registers them on reg.
// A nil reg registers on prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		SeedsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lloyd_seeds_total",
				Help: "Total k-means++ seedings by status",
			},
			[]string{"status"},
		),
		SeedDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lloyd_seed_duration_seconds",
				Help:    "Duration of k-means++ seeding",
				Buckets: prometheus.DefBuckets,
			},
		),
		IterationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lloyd_iterations_total",
				Help: "Total Lloyd iterations by engine and convergence",
			},
			[]string{"engine", "converged"},
		),
		IterationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lloyd_iteration_duration_seconds",
				Help:    "Duration of a single Lloyd iteration",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
			},
			[]string{"engine"},
		),
		FitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lloyd_fits_total",
				Help: "Total fits by engine and outcome",
			},
			[]string{"engine", "status"},
		),
		FitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lloyd_fit_duration_seconds",
				Help:    "Duration of a fit",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"engine"},
		),
		FitIterations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lloyd_fit_iterations",
				Help:    "Iterations performed per fit",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"engine"},
		),
	}
}

// RecordSeed implements lloyd.MetricsCollector.
func (p *PrometheusCollector) RecordSeed(_ int, duration time.Duration, err error) {
	p.SeedsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		p.SeedDuration.Observe(duration.Seconds())
	}
}

// RecordIteration implements lloyd.MetricsCollector.
func (p *PrometheusCollector) RecordIteration(kind string, duration time.Duration, converged bool) {
	p.IterationsTotal.WithLabelValues(kind, strconv.FormatBool(converged)).Inc()
	p.IterationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordFit implements lloyd.MetricsCollector.
func (p *PrometheusCollector) RecordFit(kind string, iterations int, converged bool, duration time.Duration, err error) {
	switch {
	case err != nil:
		p.FitsTotal.WithLabelValues(kind, "error").Inc()
		return
	case converged:
		p.FitsTotal.WithLabelValues(kind, "converged").Inc()
	default:
		p.FitsTotal.WithLabelValues(kind, "capped").Inc()
	}
	p.FitDuration.WithLabelValues(kind).Observe(duration.Seconds())
	p.FitIterations.WithLabelValues(kind).Observe(float64(iterations))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
