package sbitmap

import "fmt"

// Bitmap is a scalable bitmap for lock-free slot allocation.
//
// The bits are spread across cache-line isolated words to reduce
// contention between concurrent callers. Each caller keeps its own
// Hint so searches start from different positions.
//
// All methods are safe for concurrent use by any number of goroutines
// sharing one Bitmap. A successful Get acts as an acquire operation
// and Put as a release operation on the claimed slot, so data a caller
// attaches to a slot after Get is visible to whichever caller claims
// that slot after the corresponding Put.
type Bitmap struct {
	depth      int
	shift      int
	mapNr      int
	roundRobin bool
	words      []word

	logger  *Logger
	metrics MetricsCollector
}

// New creates a Bitmap with depth allocatable slots, all free.
//
// By default the bits-per-word sizing is computed from depth; use
// WithShift to pin it explicitly. Round-robin mode (WithRoundRobin)
// trades throughput for a strict sequential allocation order.
func New(depth int, opts ...Option) (*Bitmap, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if depth <= 0 {
		return nil, ErrInvalidDepth
	}

	shift := o.shift
	if shift == autoShift {
		shift = calcShift(depth)
	} else if shift < 0 || shift > maxShift {
		// 2^shift bits must fit in a single word; larger shifts would
		// leave slots beyond bit 63 permanently unallocatable.
		return nil, ErrInvalidShift
	}

	mapNr := wordCount(depth, shift)

	b := &Bitmap{
		depth:      depth,
		shift:      shift,
		mapNr:      mapNr,
		roundRobin: o.roundRobin,
		words:      make([]word, mapNr),
		logger:     o.logger,
		metrics:    o.metrics,
	}

	b.logger.Debug("sbitmap created",
		"depth", depth,
		"shift", shift,
		"words", mapNr,
		"bits_per_word", 1<<uint(shift),
		"round_robin", o.roundRobin,
	)

	return b, nil
}

// Depth returns the total number of allocatable slots.
func (b *Bitmap) Depth() int {
	return b.depth
}

// Shift returns log2(bits per word).
func (b *Bitmap) Shift() int {
	return b.shift
}

// BitsPerWord returns the number of usable bits per word.
func (b *Bitmap) BitsPerWord() int {
	return 1 << uint(b.shift)
}

// wordDepth returns the number of usable bits in word index. The last
// word may hold fewer than BitsPerWord bits; everything beyond is
// inert padding that the scan never reaches.
func (b *Bitmap) wordDepth(index int) int {
	if index == b.mapNr-1 {
		return b.depth - index<<uint(b.shift)
	}
	return 1 << uint(b.shift)
}

func (b *Bitmap) wordIndex(slot int) int {
	return slot >> uint(b.shift)
}

func (b *Bitmap) wordOffset(slot int) int {
	return slot & (1<<uint(b.shift) - 1)
}

// findBit visits every word exactly once, wrapping from the last word
// back to word 0. Only the first word visited honors the intra-word
// offset; subsequent words start at 0.
func (b *Bitmap) findBit(index, offset int, wrap bool) (int, bool) {
	for i := 0; i < b.mapNr; i++ {
		if nr := b.words[index].claim(offset, b.wordDepth(index), wrap); nr >= 0 {
			return index<<uint(b.shift) + nr, true
		}

		offset = 0
		index++
		if index == b.mapNr {
			index = 0
		}
	}

	return 0, false
}

// Get claims a free slot and returns its index, or false if the pool
// is exhausted. Exhaustion is an expected steady-state outcome, not an
// error.
//
// The search starts near the caller's hint and makes at most one full
// pass over the words; Get never blocks and the only internal retry is
// the per-word CAS loop, which is bounded by contention.
func (b *Bitmap) Get(h *Hint) (int, bool) {
	if h.next < 0 || h.next >= b.depth {
		h.next = 0
	}

	index := b.wordIndex(h.next)
	offset := b.wordOffset(h.next)

	slot, ok := b.findBit(index, offset, !b.roundRobin)

	switch {
	case !ok:
		// Pool is full; restart from the beginning next time.
		h.next = 0
	case b.roundRobin:
		// Strict sequential order: advance by exactly one bit.
		h.next = slot + 1
		if h.next >= b.depth {
			h.next = 0
		}
	default:
		// Point the hint at the word after the one that satisfied the
		// request so consecutive calls spread across words.
		next := b.wordIndex(slot) + 1
		if next == b.mapNr {
			next = 0
		}
		h.next = next << uint(b.shift)
	}

	b.metrics.RecordGet(ok)

	return slot, ok
}

// Put releases a slot previously returned by Get.
//
// Put panics if slot is out of range or not currently allocated: that
// means the caller's slot bookkeeping is corrupted, which is not a
// recoverable condition. Contention never panics.
func (b *Bitmap) Put(slot int, h *Hint) {
	if slot < 0 || slot >= b.depth {
		panic(fmt.Sprintf("sbitmap: put of out-of-range slot %d (depth %d)", slot, b.depth))
	}

	index := b.wordIndex(slot)
	offset := b.wordOffset(slot)

	old := b.words[index].clear(offset)
	if old&(uint64(1)<<uint(offset)) == 0 {
		panic(fmt.Sprintf("sbitmap: put of slot %d which is not allocated", slot))
	}

	// Revisit the freed region first on the next Get; the word is warm
	// in this caller's cache. Round-robin mode must not disturb the
	// sequential cursor.
	if !b.roundRobin {
		h.next = slot
	}

	b.metrics.RecordPut()
}

// TestBit reports whether slot is currently allocated. This is a
// best-effort snapshot that may be stale by the time it returns; use
// it for diagnostics, never for synchronization. Out-of-range slots
// report false.
func (b *Bitmap) TestBit(slot int) bool {
	if slot < 0 || slot >= b.depth {
		return false
	}

	v := b.words[b.wordIndex(slot)].bits.Load()
	return v&(uint64(1)<<uint(b.wordOffset(slot))) != 0
}

// Weight returns the number of currently allocated slots. The per-word
// counts are read independently, so under concurrent mutation the sum
// is not a consistent global snapshot. Always in [0, Depth()].
func (b *Bitmap) Weight() int {
	count := 0
	for i := 0; i < b.mapNr; i++ {
		count += b.words[i].weight(b.wordDepth(i))
	}
	return count
}
