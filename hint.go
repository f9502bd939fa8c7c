package sbitmap

import "time"

// Hint is a caller-owned allocation cursor passed by pointer into Get
// and Put. It is purely advisory search-position state: the bitmap
// never reads it without re-validating, so a stale or badly seeded
// hint costs locality, never correctness.
//
// A Hint must not be shared between concurrent callers. It carries no
// synchronization; give every goroutine its own.
type Hint struct {
	// next is the slot number to start the next search at. The word
	// index is next >> shift and the intra-word offset next & mask.
	next int
}

// NewHint returns a hint that starts searching at slot 0.
func NewHint() *Hint {
	return &Hint{}
}

// SeededHint returns a hint starting at a pseudo-random slot in
// [0, depth). Seeding per-caller hints from the clock spreads initial
// allocations across the words, which reduces contention when many
// callers start at the same time.
func SeededHint(depth int) *Hint {
	if depth <= 0 {
		return &Hint{}
	}
	return &Hint{next: int(uint64(time.Now().UnixNano()) % uint64(depth))}
}
