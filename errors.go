package sbitmap

import "errors"

var (
	// ErrInvalidDepth is returned by New when depth is not positive.
	ErrInvalidDepth = errors.New("depth must be positive")

	// ErrInvalidShift is returned by New when an explicit shift is
	// outside [0, 6]; a word holds at most 64 bits.
	ErrInvalidShift = errors.New("shift must be in [0, 6]")
)
