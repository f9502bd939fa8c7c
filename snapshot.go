package sbitmap

import (
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
)

// Snapshot copies the currently allocated slots into a roaring bitmap.
//
// Like Weight, the words are read independently, so under concurrent
// mutation the result is not a consistent point-in-time view. Intended
// for diagnostics, reporting and offline analysis of allocation
// patterns.
func (b *Bitmap) Snapshot() *roaring.Bitmap {
	rb := roaring.New()

	for i := 0; i < b.mapNr; i++ {
		v := b.words[i].bits.Load()
		if depth := b.wordDepth(i); depth < wordBits {
			v &= uint64(1)<<uint(depth) - 1
		}

		base := uint32(i << uint(b.shift))
		for v != 0 {
			rb.Add(base + uint32(bits.TrailingZeros64(v)))
			v &= v - 1
		}
	}

	return rb
}
