package storage

import (
	"github.com/rg-atte/rs-cache/buffer"
)

// SectorHeader precedes the payload of every sector. It names the
// archive the sector belongs to, the sector's position within that
// archive's chain, and the absolute index of the next sector.
type SectorHeader struct {
	ArchiveID uint32
	Chunk     int
	Next      int
	IndexID   uint8
}

// Sector is one decoded block: its header plus the payload bytes. The
// payload aliases the buffer the sector was decoded from and is only
// valid as long as that buffer is.
type Sector struct {
	Header SectorHeader
	Data   []byte
}

// DecodeHeader decodes a sector header from the front of buf using the
// given layout. It performs no semantic checks, that is Validate's job.
func DecodeHeader(buf []byte, kind HeaderKind) (SectorHeader, error) {
	cur := buffer.New(buf)
	var h SectorHeader

	if kind == Expanded {
		id, err := cur.U32()
		if err != nil {
			return h, err
		}
		h.ArchiveID = id
	} else {
		id, err := cur.U16()
		if err != nil {
			return h, err
		}
		h.ArchiveID = uint32(id)
	}

	chunk, err := cur.U16()
	if err != nil {
		return h, err
	}
	next, err := cur.U24()
	if err != nil {
		return h, err
	}
	indexID, err := cur.U8()
	if err != nil {
		return h, err
	}

	h.Chunk = int(chunk)
	h.Next = int(next)
	h.IndexID = indexID
	return h, nil
}

// DecodeSector decodes a header and takes every remaining byte of buf
// as the payload. The caller bounds the payload by sizing buf to one
// sector beforehand.
func DecodeSector(buf []byte, kind HeaderKind) (Sector, error) {
	h, err := DecodeHeader(buf, kind)
	if err != nil {
		return Sector{}, err
	}
	headerSize, _ := kind.Sizes()
	return Sector{Header: h, Data: buf[headerSize:]}, nil
}

// Validate checks the header against the identity the chain reader
// expects for the current sector. Checks run in fixed priority order:
// archive first, then chunk, then index, stopping at the first failure.
func (h *SectorHeader) Validate(archiveID uint32, chunk int, indexID uint8) error {
	if h.ArchiveID != archiveID {
		return &ArchiveMismatchError{Actual: h.ArchiveID, Expected: archiveID}
	}
	if h.Chunk != chunk {
		return &ChunkMismatchError{Actual: h.Chunk, Expected: chunk}
	}
	if h.IndexID != indexID {
		return &IndexMismatchError{Actual: h.IndexID, Expected: indexID}
	}
	return nil
}
