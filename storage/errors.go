package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrChainBroken signals that a sector chain points at a sector the
	// backend cannot produce (missing block or short read).
	ErrChainBroken = errors.New("sector chain broken")

	// ErrChainCycle signals that a chain kept going past the number of
	// sectors the archive length allows for, which means the next
	// pointers loop back on themselves.
	ErrChainCycle = errors.New("sector chain exceeds expected sector count")
)

// ArchiveMismatchError is returned when a sector belongs to a different
// archive than the chain being read.
type ArchiveMismatchError struct {
	Actual, Expected uint32
}

func (e *ArchiveMismatchError) Error() string {
	return fmt.Sprintf("sector archive mismatch: got %d, expected %d", e.Actual, e.Expected)
}

// ChunkMismatchError is returned when a sector is out of sequence
// within its chain.
type ChunkMismatchError struct {
	Actual, Expected int
}

func (e *ChunkMismatchError) Error() string {
	return fmt.Sprintf("sector chunk mismatch: got %d, expected %d", e.Actual, e.Expected)
}

// IndexMismatchError is returned when a sector belongs to a different
// index than the chain being read.
type IndexMismatchError struct {
	Actual, Expected uint8
}

func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("sector index mismatch: got %d, expected %d", e.Actual, e.Expected)
}
