package sbitmap

import "fmt"

// GetBatch claims n consecutive slots and returns the first index, or
// false if no run of n free bits exists. The run never spans a word
// boundary, so n must not exceed BitsPerWord; n < 1 or n > BitsPerWord
// reports false without searching. n == 1 behaves exactly like Get.
func (b *Bitmap) GetBatch(n int, h *Hint) (int, bool) {
	if n < 1 || n > b.BitsPerWord() {
		return 0, false
	}
	if n == 1 {
		return b.Get(h)
	}

	if h.next < 0 || h.next >= b.depth {
		h.next = 0
	}

	index := b.wordIndex(h.next)
	offset := b.wordOffset(h.next)
	wrap := !b.roundRobin

	slot, ok := 0, false
	for i := 0; i < b.mapNr; i++ {
		if depth := b.wordDepth(index); depth >= n {
			if nr := b.words[index].claimRun(offset, depth, n, wrap); nr >= 0 {
				slot, ok = index<<uint(b.shift)+nr, true
				break
			}
		}

		offset = 0
		index++
		if index == b.mapNr {
			index = 0
		}
	}

	switch {
	case !ok:
		h.next = 0
	case b.roundRobin:
		h.next = slot + n
		if h.next >= b.depth {
			h.next = 0
		}
	default:
		next := b.wordIndex(slot) + 1
		if next == b.mapNr {
			next = 0
		}
		h.next = next << uint(b.shift)
	}

	b.metrics.RecordGet(ok)

	return slot, ok
}

// PutBatch releases n consecutive slots previously claimed by a single
// GetBatch call.
//
// Like Put, a malformed release is a fatal caller error: PutBatch
// panics if the run is out of range, spans a word boundary, exceeds
// BitsPerWord, or contains a slot that is not currently allocated.
func (b *Bitmap) PutBatch(slot, n int, h *Hint) {
	if n < 1 || n > b.BitsPerWord() {
		panic(fmt.Sprintf("sbitmap: put batch of invalid size %d (bits per word %d)", n, b.BitsPerWord()))
	}
	if n == 1 {
		b.Put(slot, h)
		return
	}
	if slot < 0 || slot+n > b.depth {
		panic(fmt.Sprintf("sbitmap: put batch [%d, %d) out of range (depth %d)", slot, slot+n, b.depth))
	}

	index := b.wordIndex(slot)
	if index != b.wordIndex(slot+n-1) {
		panic(fmt.Sprintf("sbitmap: put batch [%d, %d) spans a word boundary", slot, slot+n))
	}

	offset := b.wordOffset(slot)
	mask := (uint64(1)<<uint(n) - 1) << uint(offset)

	old := b.words[index].clearRun(offset, n)
	if old&mask != mask {
		panic(fmt.Sprintf("sbitmap: put batch [%d, %d) contains slots which are not allocated", slot, slot+n))
	}

	if !b.roundRobin {
		h.next = slot
	}

	b.metrics.RecordPut()
}
