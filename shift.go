package sbitmap

import "math/bits"

// calcShift picks log2(bits per word) for a pool of the given depth.
//
// The heuristic follows the kernel's sbitmap sizing rule: start at a
// full native word and, for small pools, shrink the word so the bits
// spread over a few cache lines and concurrent callers land on
// different words. Below 4 bits there is nothing worth spreading, so
// tiny pools keep a full word. Bits per word grows monotonically with
// depth and converges to 64 once depth reaches 256.
func calcShift(depth int) int {
	shift := bits.TrailingZeros(uint(wordBits))

	if depth >= 4 {
		for 4<<uint(shift) > depth {
			shift--
		}
	}

	return shift
}

// wordCount returns ceil(depth / 2^shift).
func wordCount(depth, shift int) int {
	bitsPerWord := 1 << uint(shift)
	return (depth + bitsPerWord - 1) / bitsPerWord
}
