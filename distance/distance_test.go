package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, float32(27), SquaredL2([]float32{1, 2, 3}, []float32{4, 5, 6}))

	d, err := SquaredL2Checked([]float32{0, 0}, []float32{3, 4})
	require.NoError(t, err)
	assert.Equal(t, float32(25), d)

	_, err = SquaredL2Checked([]float32{0}, []float32{3, 4})
	assert.Error(t, err)
}

func TestSquaredL2Batch(t *testing.T) {
	query := []float32{1, 1}
	targets := []float32{
		1, 1,
		4, 5,
		-1, 1,
	}
	out := make([]float32, 3)
	SquaredL2Batch(query, targets, 2, out)
	assert.Equal(t, []float32{0, 25, 4}, out)

	for i := range out {
		assert.Equal(t, SquaredL2(query, targets[i*2:(i+1)*2]), out[i])
	}
}

func TestNearest(t *testing.T) {
	rows := []float32{
		0, 0, // 0
		10, 10, // 1
		0, 0, // 2, duplicate of 0
		20, 20, // 3
	}

	tests := []struct {
		name  string
		query []float32
		want  int
		dist  float32
	}{
		{"closest to origin prefers lowest index", []float32{1, 0}, 0, 1},
		{"middle", []float32{11, 10}, 1, 1},
		{"far", []float32{19, 20}, 3, 1},
		{"equidistant between 0 and 1", []float32{5, 5}, 0, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, dist := Nearest(tc.query, rows, 2)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.dist, dist)
		})
	}

	got, _ := Nearest([]float32{1}, nil, 1)
	assert.Equal(t, -1, got)
}
