package simd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISA(t *testing.T) {
	tests := []struct {
		in   string
		want ISA
		ok   bool
	}{
		{"generic", Generic, true},
		{" AVX2 ", AVX2, true},
		{"avx512", AVX512, true},
		{"neon", NEON, true},
		{"sve2", SVE2, true},
		{"sse", Generic, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseISA(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
			if ok {
				assert.Equal(t, tc.want, mustParse(t, got.String()))
			}
		})
	}
}

func TestISAWidth(t *testing.T) {
	assert.Equal(t, 1, Generic.Width())
	assert.Equal(t, 4, NEON.Width())
	assert.Equal(t, 8, AVX2.Width())
	assert.Equal(t, 16, AVX512.Width())
	assert.Equal(t, "unknown", ISA(42).String())
}

func TestActiveISAIsAvailable(t *testing.T) {
	assert.True(t, isISAAvailable(ActiveISA()))
	assert.Equal(t, ActiveISA() != Generic, HasNativeLanes())
}

func mustParse(t *testing.T, s string) ISA {
	t.Helper()
	isa, ok := ParseISA(s)
	assert.True(t, ok)
	return isa
}
