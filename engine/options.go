package engine

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/hupe1980/lloyd/internal/simd"
)

// VectorMode selects the scan path of the lane-group engines.
type VectorMode uint8

const (
	// VectorAuto uses lane groups when the CPU has native vector width and
	// the scalar scan otherwise.
	VectorAuto VectorMode = iota
	// VectorAlways uses lane groups on every platform.
	VectorAlways
	// VectorNever always uses the scalar scan.
	VectorNever
)

func (m VectorMode) String() string {
	switch m {
	case VectorAuto:
		return "auto"
	case VectorAlways:
		return "always"
	case VectorNever:
		return "never"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// ParseVectorMode parses "auto", "always" or "never".
func ParseVectorMode(s string) (VectorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return VectorAuto, nil
	case "always", "on":
		return VectorAlways, nil
	case "never", "off":
		return VectorNever, nil
	default:
		return VectorAuto, fmt.Errorf("unknown vector mode %q", s)
	}
}

// EmptyClusterPolicy decides how a centroid with no assigned points
// contributes to convergence. The centroid itself is never moved.
type EmptyClusterPolicy uint8

const (
	// EmptyClusterZeroCheck treats a frozen centroid as converged only if
	// it is the all-zero vector.
	EmptyClusterZeroCheck EmptyClusterPolicy = iota
	// EmptyClusterStable treats a frozen centroid as unchanged, so it never
	// blocks convergence.
	EmptyClusterStable
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case EmptyClusterZeroCheck:
		return "zero-check"
	case EmptyClusterStable:
		return "stable"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseEmptyClusterPolicy parses "zero-check" or "stable".
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", "zero-check":
		return EmptyClusterZeroCheck, nil
	case "stable":
		return EmptyClusterStable, nil
	default:
		return EmptyClusterZeroCheck, fmt.Errorf("unknown empty cluster policy %q", s)
	}
}

type options struct {
	workers       int
	vectorMode    VectorMode
	emptyClusters EmptyClusterPolicy
	logger        *slog.Logger
}

// Option configures an engine.
type Option func(*options)

// WithWorkers sets the worker pool size of the parallel engines.
// Values <= 0 select runtime.GOMAXPROCS(0). Ignored by serial engines.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithVectorMode overrides the scan path selection of the lane-group engines.
func WithVectorMode(m VectorMode) Option {
	return func(o *options) {
		o.vectorMode = m
	}
}

// WithEmptyClusterPolicy sets how frozen centroids count toward convergence.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyClusters = p
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// useLanes reports whether an engine of kind k scans with lane groups.
func (o *options) useLanes(k Kind) bool {
	if !k.lanes() {
		return false
	}
	switch o.vectorMode {
	case VectorAlways:
		return true
	case VectorNever:
		return false
	default:
		return simd.HasNativeLanes()
	}
}
