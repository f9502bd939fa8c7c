// Package sbitmap provides a fast, scalable bitmap for lock-free slot
// allocation under high goroutine contention, modeled on the Linux
// kernel's sbitmap. Typical uses are claiming tags, journal slots or
// queue entries from a fixed pool.
//
// # Design
//
// The pool's bits are partitioned into cache-line isolated words so
// that concurrent callers claiming from different words never fight
// over a cache line. Every caller threads its own *Hint through Get
// and Put; the hint steers where the next search starts and is purely
// advisory, so sharing or corrupting it can only hurt locality, never
// correctness.
//
// # Quick start
//
//	bm, err := sbitmap.New(128)
//	if err != nil {
//		// handle err
//	}
//
//	hint := sbitmap.NewHint() // one per goroutine
//	slot, ok := bm.Get(hint)
//	if !ok {
//		// pool exhausted
//	}
//	// ... use slot ...
//	bm.Put(slot, hint)
//
// # Memory ordering
//
// A successful Get acquires the slot and Put releases it: writes made
// to slot-associated data before Put are visible to the caller that
// claims the same slot afterwards. No ordering is guaranteed between
// operations on unrelated slots.
//
// # Modes
//
// The default mode spreads allocations across words to minimize
// contention. WithRoundRobin(true) instead guarantees strict cyclic
// slot order at a throughput cost.
package sbitmap
