package sbitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	collector := &BasicMetricsCollector{}

	bm, err := New(1, WithShift(0), WithMetrics(collector))
	require.NoError(t, err)

	hint := NewHint()

	slot, ok := bm.Get(hint)
	require.True(t, ok)

	_, ok = bm.Get(hint)
	require.False(t, ok)

	bm.Put(slot, hint)

	stats := collector.Stats()
	assert.Equal(t, int64(2), stats.GetCount)
	assert.Equal(t, int64(1), stats.GetMisses)
	assert.Equal(t, int64(1), stats.PutCount)
}

func TestMetrics_BatchOps(t *testing.T) {
	collector := &BasicMetricsCollector{}

	bm, err := New(64, WithShift(6), WithMetrics(collector))
	require.NoError(t, err)

	hint := NewHint()

	start, ok := bm.GetBatch(4, hint)
	require.True(t, ok)
	bm.PutBatch(start, 4, hint)

	stats := collector.Stats()
	assert.Equal(t, int64(1), stats.GetCount)
	assert.Equal(t, int64(0), stats.GetMisses)
	assert.Equal(t, int64(1), stats.PutCount)
}

func TestNilOptionsFallBackToNoop(t *testing.T) {
	bm, err := New(8, WithLogger(nil), WithMetrics(nil))
	require.NoError(t, err)

	hint := NewHint()
	slot, ok := bm.Get(hint)
	require.True(t, ok)
	bm.Put(slot, hint)
}
