package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/hupe1980/lloyd/model"
	"github.com/hupe1980/lloyd/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engineCases covers every kind, forcing lane groups on so the vectorized
// path is exercised regardless of the CPU running the tests.
var engineCases = []struct {
	kind Kind
	opts []Option
}{
	{KindBasic, nil},
	{KindSIMD, []Option{WithVectorMode(VectorAlways)}},
	{KindParallel, []Option{WithWorkers(3)}},
	{KindParallelSIMD, []Option{WithWorkers(3), WithVectorMode(VectorAlways)}},
}

func newTestEngine(t *testing.T, kind Kind, ds *model.Dataset, opts ...Option) Engine {
	t.Helper()
	e, err := New(kind, ds, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func mustDataset(t *testing.T, rows [][]float32) *model.Dataset {
	t.Helper()
	ds, err := model.DatasetFromRows(rows)
	require.NoError(t, err)
	return ds
}

func mustCentroids(t *testing.T, rows [][]float32) *model.Centroids {
	t.Helper()
	c, err := model.CentroidsFromRows(rows)
	require.NoError(t, err)
	return c
}

func TestIterateWorkedExample(t *testing.T) {
	for _, tc := range engineCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			ds := mustDataset(t, [][]float32{{0, 0}, {0, 1}, {10, 0}, {10, 1}})
			e := newTestEngine(t, tc.kind, ds, tc.opts...)
			c := mustCentroids(t, [][]float32{{0, 0}, {10, 0}})

			converged, err := e.Iterate(c)
			require.NoError(t, err)
			assert.False(t, converged)
			assert.Equal(t, [][]float32{{0, 0.5}, {10, 0.5}}, c.Rows())

			converged, err = e.Iterate(c)
			require.NoError(t, err)
			assert.True(t, converged)
			assert.Equal(t, [][]float32{{0, 0.5}, {10, 0.5}}, c.Rows())

			assignments := make([]int, ds.Count)
			require.NoError(t, e.Assign(c, assignments))
			assert.Equal(t, []int{0, 0, 1, 1}, assignments)
		})
	}
}

func TestIterateTieBreakLowestIndex(t *testing.T) {
	for _, tc := range engineCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			ds := mustDataset(t, [][]float32{{5, 0}})
			e := newTestEngine(t, tc.kind, ds, tc.opts...)
			c := mustCentroids(t, [][]float32{{0, 0}, {10, 0}})

			_, err := e.Iterate(c)
			require.NoError(t, err)
			assert.Equal(t, []float32{5, 0}, c.Row(0))
			assert.Equal(t, []float32{10, 0}, c.Row(1))
		})
	}
}

func TestAssignTieBreakAcrossGroups(t *testing.T) {
	// 20 centroids span three lane groups. Centroids 7 and 13 sit at the
	// point; every other centroid is far away.
	k, dims := 20, 2
	rows := make([][]float32, k)
	for j := range rows {
		rows[j] = []float32{float32(100 + j), 100}
	}
	rows[13] = []float32{1, 1}
	rows[7] = []float32{1, 1}

	for _, tc := range engineCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			ds := mustDataset(t, [][]float32{{1, 1}, {1, 1}, {1, 1}})
			e := newTestEngine(t, tc.kind, ds, tc.opts...)
			c := mustCentroids(t, rows)
			require.Equal(t, dims, c.Dims)

			got := make([]int, ds.Count)
			require.NoError(t, e.Assign(c, got))
			assert.Equal(t, []int{7, 7, 7}, got)
		})
	}
}

func TestIterateConvergenceIsIdempotent(t *testing.T) {
	rng := testutil.NewRNG(9)
	blobs := rng.Blobs(200, 4, 3, 1)
	ds, err := model.NewDataset(blobs.Points, 3)
	require.NoError(t, err)

	for _, tc := range engineCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			e := newTestEngine(t, tc.kind, ds, tc.opts...)
			c := &model.Centroids{K: 4, Dims: 3, Data: append([]float32(nil), blobs.Points[:12]...)}

			converged := false
			for i := 0; i < 100 && !converged; i++ {
				converged, err = e.Iterate(c)
				require.NoError(t, err)
			}
			require.True(t, converged)

			before := c.Clone()
			for range 3 {
				converged, err = e.Iterate(c)
				require.NoError(t, err)
				assert.True(t, converged)
				assert.True(t, before.Equal(c))
			}
		})
	}
}

func TestIterateFrozenCentroid(t *testing.T) {
	ds := [][]float32{{10, 10}, {10, 12}}

	tests := []struct {
		name      string
		policy    EmptyClusterPolicy
		frozen    []float32
		converged bool
	}{
		{"zero-check with non-zero centroid never converges", EmptyClusterZeroCheck, []float32{100, 100}, false},
		{"zero-check with zero centroid converges", EmptyClusterZeroCheck, []float32{0, 0}, true},
		{"stable converges", EmptyClusterStable, []float32{100, 100}, true},
	}
	for _, tt := range tests {
		for _, tc := range engineCases {
			t.Run(fmt.Sprintf("%s/%s", tt.name, tc.kind), func(t *testing.T) {
				opts := append([]Option{WithEmptyClusterPolicy(tt.policy)}, tc.opts...)
				e := newTestEngine(t, tc.kind, mustDataset(t, ds), opts...)

				// Centroid 0 already sits at the mean, so centroid 1 decides convergence.
				c := mustCentroids(t, [][]float32{{10, 11}, tt.frozen})

				var converged bool
				var err error
				for range 3 {
					converged, err = e.Iterate(c)
					require.NoError(t, err)
					assert.Equal(t, tt.frozen, c.Row(1))
				}
				assert.Equal(t, tt.converged, converged)
			})
		}
	}
}

func TestSIMDMatchesBasicExactly(t *testing.T) {
	rng := testutil.NewRNG(21)
	for _, k := range []int{1, 3, 8, 9, 17, 33} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			dims := 6
			data := rng.UniformVectors(400, dims, -50, 50)
			ds, err := model.NewDataset(data, dims)
			require.NoError(t, err)

			seeds := rng.Pick(data, dims, k)
			basic := &model.Centroids{K: k, Dims: dims, Data: append([]float32(nil), seeds...)}
			vector := basic.Clone()

			eb := newTestEngine(t, KindBasic, ds)
			es := newTestEngine(t, KindSIMD, ds, WithVectorMode(VectorAlways))
			require.True(t, es.Vectorized())

			gotBasic := make([]int, ds.Count)
			gotVector := make([]int, ds.Count)

			for range 10 {
				require.NoError(t, eb.Assign(basic, gotBasic))
				require.NoError(t, es.Assign(vector, gotVector))
				require.Equal(t, gotBasic, gotVector)

				cb, err := eb.Iterate(basic)
				require.NoError(t, err)
				cs, err := es.Iterate(vector)
				require.NoError(t, err)

				require.Equal(t, cb, cs)
				require.Equal(t, basic.Data, vector.Data)
			}
		})
	}
}

func TestParallelMatchesBasic(t *testing.T) {
	rng := testutil.NewRNG(33)
	blobs := rng.Blobs(503, 7, 5, 1)
	ds, err := model.NewDataset(blobs.Points, 5)
	require.NoError(t, err)
	seeds := rng.Pick(blobs.Points, 5, 7)

	fit := func(t *testing.T, e Engine) *model.Centroids {
		t.Helper()
		c := &model.Centroids{K: 7, Dims: 5, Data: append([]float32(nil), seeds...)}
		for range 100 {
			converged, err := e.Iterate(c)
			require.NoError(t, err)
			if converged {
				break
			}
		}
		return c
	}

	want := fit(t, newTestEngine(t, KindBasic, ds))

	for _, workers := range []int{1, 2, 3, 7, 16, 1000} {
		for _, kind := range []Kind{KindParallel, KindParallelSIMD} {
			t.Run(fmt.Sprintf("%s/workers=%d", kind, workers), func(t *testing.T) {
				e := newTestEngine(t, kind, ds, WithWorkers(workers), WithVectorMode(VectorAlways))
				got := fit(t, e)
				require.Equal(t, want.K, got.K)
				for i := range want.Data {
					assert.InDelta(t, want.Data[i], got.Data[i], 1e-3)
				}
			})
		}
	}
}

func TestIterateErrors(t *testing.T) {
	ds := mustDataset(t, [][]float32{{0, 0}, {1, 1}})

	for _, tc := range engineCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			e := newTestEngine(t, tc.kind, ds, tc.opts...)

			_, err := e.Iterate(mustCentroids(t, [][]float32{{0, 0, 0}}))
			var dimErr *model.DimensionMismatchError
			require.True(t, errors.As(err, &dimErr))
			assert.Equal(t, 2, dimErr.Expected)
			assert.Equal(t, 3, dimErr.Actual)

			_, err = e.Iterate(&model.Centroids{Dims: 2})
			assert.ErrorIs(t, err, model.ErrNoCentroids)

			err = e.Assign(mustCentroids(t, [][]float32{{0, 0}}), make([]int, 1))
			assert.Error(t, err)

			require.NoError(t, e.Close())
			_, err = e.Iterate(mustCentroids(t, [][]float32{{0, 0}}))
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, e.Assign(mustCentroids(t, [][]float32{{0, 0}}), make([]int, 2)), ErrClosed)
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(KindBasic, &model.Dataset{})
	assert.ErrorIs(t, err, model.ErrEmptyDataset)

	_, err = New(KindParallel, &model.Dataset{Count: 1, Dims: 2, Data: []float32{1}})
	assert.Error(t, err)

	_, err = New(Kind(99), mustDataset(t, [][]float32{{1}}))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestVectorModeSelection(t *testing.T) {
	ds := mustDataset(t, [][]float32{{1}})

	basic := newTestEngine(t, KindBasic, ds, WithVectorMode(VectorAlways))
	assert.False(t, basic.Vectorized())

	never := newTestEngine(t, KindSIMD, ds, WithVectorMode(VectorNever))
	assert.False(t, never.Vectorized())

	always := newTestEngine(t, KindParallelSIMD, ds, WithVectorMode(VectorAlways))
	assert.True(t, always.Vectorized())

	// A fallback engine still iterates like the reference.
	c := mustCentroids(t, [][]float32{{0}, {3}})
	converged, err := never.Iterate(c)
	require.NoError(t, err)
	assert.False(t, converged)
	assert.Equal(t, []float32{1, 3}, c.Data)
}

func TestIterateLogsScannedPoints(t *testing.T) {
	ds := mustDataset(t, [][]float32{{0, 0}, {0, 1}, {10, 0}, {10, 1}, {5, 5}})

	for _, tc := range engineCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			e := newTestEngine(t, tc.kind, ds, append(tc.opts, WithLogger(logger))...)
			_, err := e.Iterate(mustCentroids(t, [][]float32{{0, 0}, {10, 0}}))
			require.NoError(t, err)

			var scanned map[string]any
			dec := json.NewDecoder(&buf)
			for dec.More() {
				var rec map[string]any
				require.NoError(t, dec.Decode(&rec))
				if rec["msg"] == "iteration scanned" {
					scanned = rec
				}
			}
			require.NotNil(t, scanned)
			assert.Equal(t, float64(ds.Count), scanned["points"])
			if tc.kind.parallel() {
				assert.Equal(t, float64(3), scanned["workers"])
			}
		})
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	k, err := ParseKind("Parallel_SIMD")
	require.NoError(t, err)
	assert.Equal(t, KindParallelSIMD, k)

	_, err = ParseKind("gpu")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseOptions(t *testing.T) {
	m, err := ParseVectorMode("Always")
	require.NoError(t, err)
	assert.Equal(t, VectorAlways, m)

	m, err = ParseVectorMode("")
	require.NoError(t, err)
	assert.Equal(t, VectorAuto, m)

	_, err = ParseVectorMode("sometimes")
	assert.Error(t, err)

	p, err := ParseEmptyClusterPolicy("stable")
	require.NoError(t, err)
	assert.Equal(t, EmptyClusterStable, p)

	p, err = ParseEmptyClusterPolicy("zero_check")
	require.NoError(t, err)
	assert.Equal(t, EmptyClusterZeroCheck, p)

	_, err = ParseEmptyClusterPolicy("reseed")
	assert.Error(t, err)
}

func BenchmarkIterate(b *testing.B) {
	rng := testutil.NewRNG(1)
	dims, k := 16, 24
	blobs := rng.Blobs(20000, k, dims, 5)
	ds, err := model.NewDataset(blobs.Points, dims)
	if err != nil {
		b.Fatal(err)
	}
	seeds := rng.Pick(blobs.Points, dims, k)

	for _, kind := range Kinds {
		b.Run(kind.String(), func(b *testing.B) {
			e, err := New(kind, ds, WithVectorMode(VectorAlways))
			if err != nil {
				b.Fatal(err)
			}
			defer e.Close()

			c := &model.Centroids{K: k, Dims: dims, Data: append([]float32(nil), seeds...)}
			b.ResetTimer()
			for b.Loop() {
				if _, err := e.Iterate(c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
