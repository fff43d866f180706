package checksum

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/rg-atte/rs-cache/codec"
)

// ErrConsumed is returned when a table is encoded a second time.
var ErrConsumed = errors.New("checksum table already encoded")

// Entry holds the integrity pair of one index: a CRC-32 of the raw
// reference archive and the index revision.
type Entry struct {
	CRC      uint32
	Revision uint32
}

// Table is an ordered collection of entries, one per index, where the
// position of an entry is the index id. The client sends its own CRC
// list and the server compares it against the table to decide which
// indices the client must re-download.
//
// A table is built once while the cache opens and is then either
// validated against or encoded; Encode consumes the table.
type Table struct {
	entries  []Entry
	consumed bool
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Push appends an entry. Callers push in index-id order; the table does
// not reorder.
func (t *Table) Push(entry Entry) {
	t.entries = append(t.entries, entry)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in insertion order. The slice is the
// table's own backing array, callers must not modify it.
func (t *Table) Entries() []Entry {
	return t.entries
}

// ValidateCRCs reports whether crcs matches the table's CRC sequence
// element for element. Any differing entry, or a length mismatch,
// invalidates the whole comparison. A consumed table matches nothing.
func (t *Table) ValidateCRCs(crcs []uint32) bool {
	if t.consumed {
		return false
	}
	if len(crcs) != len(t.entries) {
		return false
	}
	for i, entry := range t.entries {
		if crcs[i] != entry.CRC {
			return false
		}
	}
	return true
}

// Encode serializes the table for transmission: each entry as a
// big-endian CRC and revision, in order, wrapped in an uncompressed
// container. Encode consumes the table; a second call returns
// ErrConsumed.
func (t *Table) Encode() ([]byte, error) {
	if t.consumed {
		return nil, ErrConsumed
	}
	t.consumed = true

	buf := new(bytes.Buffer)
	buf.Grow(len(t.entries) * 8)
	for _, entry := range t.entries {
		binary.Write(buf, binary.BigEndian, entry.CRC)
		binary.Write(buf, binary.BigEndian, entry.Revision)
	}

	return codec.Encode(codec.None, buf.Bytes(), codec.NoRevision)
}
