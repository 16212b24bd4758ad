package lloyd

import (
	"log/slog"
	"runtime"
	"time"
)

const defaultIterationLogInterval = time.Second

type options struct {
	workers              int
	metricsCollector     MetricsCollector
	logger               *Logger
	iterationLogInterval time.Duration
}

// Option configures a Model.
type Option func(*options)

// WithWorkers bounds the number of goroutines used by Assign, Partition and
// Inertia. Values <= 0 select runtime.GOMAXPROCS(0).
//
// Engines created with NewEngine use the same count unless an
// engine.WithWorkers option overrides it.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	m, _ := lloyd.New(ds, 8, lloyd.WithMetricsCollector(metrics))
//	// ... seed and fit ...
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d, Avg latency: %dns\n", stats.IterationCount, stats.IterationAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lloyd.NewJSONLogger(slog.LevelInfo)
//	m, _ := lloyd.New(ds, 8, lloyd.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithIterationLogInterval sets the minimum time between per-iteration debug
// log lines emitted by Fit. The first iteration is always logged; the final
// state is reported by the fit summary line. Zero logs every iteration.
func WithIterationLogInterval(d time.Duration) Option {
	return func(o *options) {
		o.iterationLogInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector:     NoopMetricsCollector{},
		logger:               NoopLogger(),
		iterationLogInterval: defaultIterationLogInterval,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}
