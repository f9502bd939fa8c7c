package bench

import (
	"math/bits"
	"sync/atomic"

	"github.com/hupe1980/sbitmap"
)

// NaiveBitmap is the baseline: a lock-free bitmap with no cache-line
// isolation and no hint use. Every Get scans linearly from word 0, so
// all callers hammer the same leading words and the words share cache
// lines. Its throughput gap against sbitmap.Bitmap is the point of the
// comparison.
type NaiveBitmap struct {
	depth int
	words []atomic.Uint64
}

// NewNaiveBitmap creates a baseline bitmap with depth slots, all free.
func NewNaiveBitmap(depth int) *NaiveBitmap {
	return &NaiveBitmap{
		depth: depth,
		words: make([]atomic.Uint64, (depth+63)/64),
	}
}

// Get claims the first free slot found by a linear scan. The hint is
// accepted for interface compatibility and ignored.
func (n *NaiveBitmap) Get(_ *sbitmap.Hint) (int, bool) {
	for i := range n.words {
		for {
			cur := n.words[i].Load()

			inv := ^cur
			if inv == 0 {
				break
			}

			bit := bits.TrailingZeros64(inv)
			slot := i*64 + bit
			if slot >= n.depth {
				break
			}

			if n.words[i].CompareAndSwap(cur, cur|uint64(1)<<uint(bit)) {
				return slot, true
			}
		}
	}
	return 0, false
}

// Put releases a previously claimed slot.
func (n *NaiveBitmap) Put(slot int, _ *sbitmap.Hint) {
	if slot < 0 || slot >= n.depth {
		return
	}
	w := &n.words[slot/64]
	mask := ^(uint64(1) << uint(slot%64))
	for {
		cur := w.Load()
		if w.CompareAndSwap(cur, cur&mask) {
			return
		}
	}
}

// Weight returns the number of currently allocated slots.
func (n *NaiveBitmap) Weight() int {
	count := 0
	for i := range n.words {
		count += bits.OnesCount64(n.words[i].Load())
	}
	return count
}
