package sbitmap

import (
	"math/bits"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// wordBits is the width of one allocation word. maxShift is the
// largest shift for which 2^shift bits still fit in one word.
const (
	wordBits = 64
	maxShift = 6
)

// word is a single bitmap word. The trailing pad keeps every word on
// its own cache line so that concurrent claims against different words
// never contend through false sharing.
type word struct {
	bits atomic.Uint64
	_    cpu.CacheLinePad
}

// findZeroBit returns the lowest zero bit of w in [start, depth), or
// -1 if every bit in that range is set. depth bounds the usable bits
// of the word, which keeps padding bits in the last word of a bitmap
// out of reach.
func findZeroBit(w uint64, depth, start int) int {
	if start >= depth {
		return -1
	}

	// Treat bits below start as set, then invert and bound by depth.
	inv := ^(w | (uint64(1)<<uint(start) - 1))
	if depth < wordBits {
		inv &= uint64(1)<<uint(depth) - 1
	}
	if inv == 0 {
		return -1
	}

	return bits.TrailingZeros64(inv)
}

// findZeroRun returns the lowest position in [start, depth-n] where n
// consecutive zero bits begin, or -1 if no such run exists.
func findZeroRun(w uint64, depth, start, n int) int {
	if depth < n || start > depth-n {
		return -1
	}

	mask := uint64(1)<<uint(n) - 1
	for pos := start; pos <= depth-n; pos++ {
		if w&(mask<<uint(pos)) == 0 {
			return pos
		}
	}

	return -1
}

// claim atomically sets the lowest zero bit at or after start and
// returns its offset, or -1 if the word has no usable zero bit. When
// wrap is true and the range [start, depth) is exhausted, the search
// restarts at offset 0 so a word is not wasted just because the hint
// points mid-word. The CAS loop retries only when the word changed
// underneath us; it is bounded by contention, never by a counter.
func (w *word) claim(start, depth int, wrap bool) int {
	wrap = wrap && start > 0

	for {
		cur := w.bits.Load()

		nr := findZeroBit(cur, depth, start)
		if nr < 0 && wrap {
			nr = findZeroBit(cur, start, 0)
		}
		if nr < 0 {
			return -1
		}

		if w.bits.CompareAndSwap(cur, cur|uint64(1)<<uint(nr)) {
			return nr
		}
	}
}

// claimRun atomically sets n consecutive zero bits starting at or
// after start and returns the first offset, or -1 if no run fits.
func (w *word) claimRun(start, depth, n int, wrap bool) int {
	wrap = wrap && start > 0
	mask := uint64(1)<<uint(n) - 1

	for {
		cur := w.bits.Load()

		nr := findZeroRun(cur, depth, start, n)
		if nr < 0 && wrap {
			nr = findZeroRun(cur, depth, 0, n)
		}
		if nr < 0 {
			return -1
		}

		if w.bits.CompareAndSwap(cur, cur|mask<<uint(nr)) {
			return nr
		}
	}
}

// and atomically ANDs mask into the word and returns the value from
// before the update, like atomic.Uint64.And on newer Go releases.
func (w *word) and(mask uint64) uint64 {
	for {
		cur := w.bits.Load()
		if w.bits.CompareAndSwap(cur, cur&mask) {
			return cur
		}
	}
}

// clear unconditionally clears the bit at off and returns the word
// value from before the clear, letting the caller detect a clear of an
// already-free bit.
func (w *word) clear(off int) uint64 {
	return w.and(^(uint64(1) << uint(off)))
}

// clearRun clears n consecutive bits starting at off and returns the
// word value from before the clear.
func (w *word) clearRun(off, n int) uint64 {
	mask := uint64(1)<<uint(n) - 1
	return w.and(^(mask << uint(off)))
}

// weight counts the set bits among the usable depth bits. Plain load
// plus popcount; diagnostics only.
func (w *word) weight(depth int) int {
	v := w.bits.Load()
	if depth < wordBits {
		v &= uint64(1)<<uint(depth) - 1
	}
	return bits.OnesCount64(v)
}
