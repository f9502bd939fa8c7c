package sbitmap

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrent_GetPut(t *testing.T) {
	bm, err := New(1024)
	require.NoError(t, err)

	const workers = 8

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			hint := NewHint()

			var local []int
			for i := 0; i < 100; i++ {
				if slot, ok := bm.Get(hint); ok {
					local = append(local, slot)
				}
			}
			for _, slot := range local {
				bm.Put(slot, hint)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bm.Weight())
}

// TestConcurrent_NoDoubleAllocation tracks ownership in a side table
// that is independent of the bitmap: if two callers ever believe they
// own the same slot at the same time, the counter exceeds one.
func TestConcurrent_NoDoubleAllocation(t *testing.T) {
	const (
		depth   = 256
		workers = 8
		iters   = 5000
	)

	bm, err := New(depth)
	require.NoError(t, err)

	owners := make([]atomic.Int32, depth)
	var violations atomic.Int64

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			hint := SeededHint(depth)
			for i := 0; i < iters; i++ {
				slot, ok := bm.Get(hint)
				if !ok {
					continue
				}

				if owners[slot].Add(1) != 1 {
					violations.Add(1)
				}
				owners[slot].Add(-1)

				bm.Put(slot, hint)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, violations.Load(), "slots were double-allocated")
	assert.Equal(t, 0, bm.Weight())
}

// TestConcurrent_WeightBounds hammers the bitmap while an observer
// samples Weight; every observation must stay within [0, depth].
func TestConcurrent_WeightBounds(t *testing.T) {
	const (
		depth   = 64
		workers = 6
		iters   = 3000
	)

	bm, err := New(depth)
	require.NoError(t, err)

	done := make(chan struct{})
	var outOfBounds atomic.Int64

	var observer sync.WaitGroup
	observer.Add(1)
	go func() {
		defer observer.Done()
		for {
			select {
			case <-done:
				return
			default:
			}

			if w := bm.Weight(); w < 0 || w > depth {
				outOfBounds.Add(1)
			}
		}
	}()

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			hint := SeededHint(depth)
			for i := 0; i < iters; i++ {
				if slot, ok := bm.Get(hint); ok {
					bm.Put(slot, hint)
				}
			}
		}()
	}
	wg.Wait()
	close(done)
	observer.Wait()

	assert.Zero(t, outOfBounds.Load())
	assert.Equal(t, 0, bm.Weight())
}

func TestConcurrent_PerCallerHints(t *testing.T) {
	bm, err := New(128)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			hint := NewHint()
			for i := 0; i < 50; i++ {
				if slot, ok := bm.Get(hint); ok {
					bm.Put(slot, hint)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bm.Weight())
}
