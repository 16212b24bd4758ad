package engine

import (
	"fmt"
	"strings"
)

// Kind identifies an engine implementation.
type Kind uint8

const (
	// KindBasic is the single-threaded scalar engine.
	KindBasic Kind = iota
	// KindSIMD is the single-threaded lane-group engine.
	KindSIMD
	// KindParallel is the multi-threaded scalar engine.
	KindParallel
	// KindParallelSIMD is the multi-threaded lane-group engine.
	KindParallelSIMD
)

// Kinds lists every engine kind.
var Kinds = []Kind{KindBasic, KindSIMD, KindParallel, KindParallelSIMD}

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindSIMD:
		return "simd"
	case KindParallel:
		return "parallel"
	case KindParallelSIMD:
		return "parallel-simd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseKind parses the String form of a kind. Underscores are accepted in
// place of dashes.
func ParseKind(s string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, k := range Kinds {
		if k.String() == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) parallel() bool {
	return k == KindParallel || k == KindParallelSIMD
}

func (k Kind) lanes() bool {
	return k == KindSIMD || k == KindParallelSIMD
}
