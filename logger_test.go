package lloyd_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/engine"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		out = append(out, rec)
	}
	return out
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := lloyd.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.WithK(4).WithDimension(3).WithEngine("simd").LogFit(7, true, time.Millisecond, nil)
	logger.LogFit(300, false, time.Second, nil)
	logger.LogSeed(10, 0, errors.New("boom"))

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 3)

	assert.Equal(t, "fit converged", recs[0]["msg"])
	assert.Equal(t, float64(4), recs[0]["k"])
	assert.Equal(t, float64(3), recs[0]["dimension"])
	assert.Equal(t, "simd", recs[0]["engine"])
	assert.Equal(t, float64(7), recs[0]["iterations"])

	assert.Equal(t, "WARN", recs[1]["level"])
	assert.Equal(t, "ERROR", recs[2]["level"])
	assert.Equal(t, "boom", recs[2]["error"])
}

func TestFitLogsIterations(t *testing.T) {
	var buf bytes.Buffer
	logger := lloyd.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ds := newDataset(t, [][]float32{{0, 0}, {0, 1}, {10, 0}, {10, 1}})
	m, err := lloyd.New(ds, 2, lloyd.WithLogger(logger), lloyd.WithIterationLogInterval(0))
	require.NoError(t, err)
	require.NoError(t, m.SetCentroids(newCentroids(t, [][]float32{{0, 0}, {10, 0}})))

	e, err := m.NewEngine(engine.KindBasic)
	require.NoError(t, err)
	defer e.Close()

	_, err = m.Fit(e, 10)
	require.NoError(t, err)

	var msgs []string
	for _, rec := range decodeLines(t, &buf) {
		msgs = append(msgs, rec["msg"].(string))
	}
	assert.Contains(t, msgs, "engine created")
	assert.Contains(t, msgs, "iteration completed")
	assert.Contains(t, msgs, "fit converged")
}

func TestNoopLogger(t *testing.T) {
	assert.False(t, lloyd.NoopLogger().Enabled(t.Context(), slog.LevelError))
}

func TestLogFieldsFollowCentroidCount(t *testing.T) {
	var buf bytes.Buffer
	logger := lloyd.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ds := newDataset(t, [][]float32{{0, 0}, {0, 1}, {10, 0}, {10, 1}})
	m, err := lloyd.New(ds, 2, lloyd.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, m.SetCentroids(newCentroids(t, [][]float32{{0, 0}, {0, 1}, {10, 0}})))

	e, err := m.NewEngine(engine.KindBasic)
	require.NoError(t, err)
	defer e.Close()

	_, err = m.Fit(e, 10)
	require.NoError(t, err)

	recs := decodeLines(t, &buf)
	require.NotEmpty(t, recs)
	fit := recs[len(recs)-1]
	assert.Equal(t, "fit converged", fit["msg"])
	assert.Equal(t, float64(3), fit["k"])
	assert.Equal(t, float64(2), fit["dimension"])
}
