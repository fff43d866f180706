package storage

import (
	"io"
	"math"
)

const (
	// HeaderSize is the on-disk size of a normal sector header.
	HeaderSize = 8
	// ExpandedHeaderSize is the on-disk size of an expanded sector header.
	ExpandedHeaderSize = 10
	// DataSize is the payload capacity of a sector with a normal header.
	DataSize = 512
	// ExpandedDataSize is the payload capacity of a sector with an
	// expanded header. The larger header eats two payload bytes.
	ExpandedDataSize = 510
	// SectorSize is the total on-disk size of one sector. It is the same
	// for both header layouts.
	SectorSize = HeaderSize + DataSize
)

// HeaderKind selects between the two sector header layouts.
type HeaderKind int

const (
	// Normal is the 8-byte header with a 16-bit archive id.
	Normal HeaderKind = iota
	// Expanded is the 10-byte header with a 32-bit archive id.
	Expanded
)

// HeaderKindFor picks the header layout for an archive. Archives whose
// id fits in 16 bits use the normal layout, larger ids use the expanded
// one. The choice is a property of the archive: every sector of one
// archive uses the same layout.
func HeaderKindFor(archiveID uint32) HeaderKind {
	if archiveID > math.MaxUint16 {
		return Expanded
	}
	return Normal
}

// Sizes returns the header and payload sizes of the layout.
func (k HeaderKind) Sizes() (headerSize, dataSize int) {
	if k == Expanded {
		return ExpandedHeaderSize, ExpandedDataSize
	}
	return HeaderSize, DataSize
}

func (k HeaderKind) String() string {
	if k == Expanded {
		return "expanded"
	}
	return "normal"
}

// Backend represents positioned read access to the main data file.
// *os.File satisfies it; tests use MemBackend.
type Backend interface {
	io.ReaderAt
}

// Locator describes where an archive lives inside the data file and how
// many logical bytes it occupies. Locators come from the index files.
type Locator struct {
	ID      uint32
	IndexID uint8
	Sector  int
	Length  int
}
