package chesscrypt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generated(t *testing.T, size, iterations int, seed int64) *SBox {
	t.Helper()
	e, err := NewEngine(size, WithSeed(seed))
	require.NoError(t, err)
	require.NoError(t, e.Run(iterations))
	return e.SBox()
}

func TestSubstituteMatchesTableRead(t *testing.T) {
	box := generated(t, 16, 1000, 2024)

	out, err := box.Substitute(123)
	require.NoError(t, err)
	assert.Equal(t, box.At(123/16, 123%16), out)
}

func TestSubstituteOutOfRange(t *testing.T) {
	box := generated(t, 16, 100, 1)

	for _, in := range []int{-1, 256, 1000} {
		_, err := box.Substitute(in)
		assert.ErrorIs(t, err, ErrOutOfRange, "input %d", in)
	}
}

func TestStatsIdentityTable(t *testing.T) {
	box := generated(t, 16, 0, 1)

	stats, err := box.Stats()
	require.NoError(t, err)
	assert.True(t, stats.IsBijective)
	assert.Equal(t, 0, stats.Min)
	assert.Equal(t, 255, stats.Max)
	assert.InDelta(t, 127.5, stats.Mean, 1e-9)
	assert.InDelta(t, 73.90027063, stats.StdDev, 1e-6)
}

func TestEndToEnd(t *testing.T) {
	// Generate, then evaluate the whole domain: every input must map to a
	// distinct output and the outputs must cover 0..255.
	box := generated(t, 16, 1000, 7777)

	stats, err := box.Stats()
	require.NoError(t, err)
	require.True(t, stats.IsBijective)
	assert.Equal(t, 0, stats.Min)
	assert.Equal(t, 255, stats.Max)

	outs := make(map[int]bool)
	for in := 0; in < box.Domain(); in++ {
		out, err := box.Substitute(in)
		require.NoError(t, err)
		outs[out] = true
	}
	require.Len(t, outs, box.Domain())
	for v := 0; v < box.Domain(); v++ {
		assert.True(t, outs[v], "missing output %d", v)
	}
}

func TestStatsDetectsCorruption(t *testing.T) {
	box := generated(t, 4, 10, 5)
	box.cells[0] = box.cells[1] // simulate an external overwrite

	stats, err := box.Stats()
	assert.ErrorIs(t, err, ErrBijectivityViolation)
	assert.False(t, stats.IsBijective)
}

func TestStatsJSON(t *testing.T) {
	stats := SBoxStats{IsBijective: true, Min: 0, Max: 255, Mean: 127.5, StdDev: 73.9}
	data, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isBijective":true,"minValue":0,"maxValue":255,"meanValue":127.5,"stdDev":73.9}`, string(data))
}
