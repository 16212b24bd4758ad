package lloyd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/hupe1980/lloyd/engine"
)

// EnvPrefix is the prefix of every environment variable read by LoadConfig.
const EnvPrefix = "LLOYD"

// Config is the environment configuration of a clustering run.
type Config struct {
	Engine        string `envconfig:"ENGINE" default:"parallel-simd"`
	Workers       int    `envconfig:"WORKERS" default:"0"` // 0 means GOMAXPROCS
	MaxIterations int    `envconfig:"MAX_ITERATIONS" default:"300"`
	VectorMode    string `envconfig:"VECTOR_MODE" default:"auto"`
	EmptyClusters string `envconfig:"EMPTY_CLUSTERS" default:"zero-check"`
	Seed          uint64 `envconfig:"SEED" default:"0"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"text"`

	kind          engine.Kind
	vectorMode    engine.VectorMode
	emptyClusters engine.EmptyClusterPolicy
	level         slog.Level
}

// LoadConfig reads LLOYD_* environment variables and validates them.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate parses the string fields and checks the numeric ones.
func (c *Config) Validate() error {
	var err error
	if c.kind, err = engine.ParseKind(c.Engine); err != nil {
		return fmt.Errorf("config: engine: %w", err)
	}
	if c.vectorMode, err = engine.ParseVectorMode(c.VectorMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.emptyClusters, err = engine.ParseEmptyClusterPolicy(c.EmptyClusters); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err = c.level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config: %w", ErrInvalidIterations)
	}
	return nil
}

// EngineKind returns the configured engine kind.
func (c *Config) EngineKind() engine.Kind { return c.kind }

// EngineOptions returns the engine options derived from the configuration.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithWorkers(c.Workers),
		engine.WithVectorMode(c.vectorMode),
		engine.WithEmptyClusterPolicy(c.emptyClusters),
	}
}

// NewLogger returns a stderr logger with the configured level and format.
func (c *Config) NewLogger() *Logger {
	opts := &slog.HandlerOptions{Level: c.level}
	if strings.EqualFold(c.LogFormat, "json") {
		return NewLogger(slog.NewJSONHandler(os.Stderr, opts))
	}
	return NewLogger(slog.NewTextHandler(os.Stderr, opts))
}

// Random returns a source seeded with the configured seed.
func (c *Config) Random() RandomSource {
	return NewRandom(c.Seed)
}

// ModelOptions returns the Model options derived from the configuration.
func (c *Config) ModelOptions() []Option {
	return []Option{
		WithWorkers(c.Workers),
		WithLogger(c.NewLogger()),
	}
}
