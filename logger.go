package lloyd

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds a k (centroid count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithEngine adds an engine field to the logger.
func (l *Logger) WithEngine(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("engine", kind),
	}
}

// LogSeed logs a k-means++ seeding.
func (l *Logger) LogSeed(points int, duration time.Duration, err error) {
	if err != nil {
		l.Error("seeding failed",
			"points", points,
			"error", err,
		)
		return
	}
	l.Debug("seeding completed",
		"points", points,
		"duration", duration,
	)
}

// LogIteration logs a single Lloyd iteration.
func (l *Logger) LogIteration(iteration int, converged bool, duration time.Duration) {
	l.Debug("iteration completed",
		"iteration", iteration,
		"converged", converged,
		"duration", duration,
	)
}

// LogFit logs the outcome of a fit.
func (l *Logger) LogFit(iterations int, converged bool, duration time.Duration, err error) {
	switch {
	case err != nil:
		l.Error("fit failed",
			"iterations", iterations,
			"error", err,
		)
	case converged:
		l.Info("fit converged",
			"iterations", iterations,
			"duration", duration,
		)
	default:
		l.Warn("fit stopped at iteration cap",
			"iterations", iterations,
			"duration", duration,
		)
	}
}
