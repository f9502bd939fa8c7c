package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaiveBitmap(t *testing.T) {
	nb := NewNaiveBitmap(70)

	seen := make(map[int]bool)
	for i := 0; i < 70; i++ {
		slot, ok := nb.Get(nil)
		require.True(t, ok, "get %d", i)
		require.Less(t, slot, 70)
		require.False(t, seen[slot])
		seen[slot] = true
	}

	_, ok := nb.Get(nil)
	assert.False(t, ok)
	assert.Equal(t, 70, nb.Weight())

	nb.Put(42, nil)
	assert.Equal(t, 69, nb.Weight())

	slot, ok := nb.Get(nil)
	require.True(t, ok)
	assert.Equal(t, 42, slot)

	// Out-of-range puts are ignored; the baseline has no contract
	// checking to measure.
	nb.Put(-1, nil)
	nb.Put(100, nil)
	assert.Equal(t, 70, nb.Weight())
}
