package cache

import (
	"github.com/rg-atte/rs-cache/buffer"
	"github.com/rg-atte/rs-cache/storage"
)

// IndexEntrySize is the on-disk size of one index file entry: a 24-bit
// archive length followed by a 24-bit starting sector.
const IndexEntrySize = 6

// Index is one decoded index file: an ordered table of archive
// locators where an archive's id is its position in the file.
type Index struct {
	ID       uint8
	locators []storage.Locator
}

// DecodeIndex decodes the raw bytes of an index file. Trailing bytes
// that do not make up a whole entry are ignored, matching the client.
func DecodeIndex(id uint8, data []byte) (*Index, error) {
	cur := buffer.New(data)
	idx := &Index{
		ID:       id,
		locators: make([]storage.Locator, 0, len(data)/IndexEntrySize),
	}

	for archiveID := uint32(0); cur.Remaining() >= IndexEntrySize; archiveID++ {
		length, err := cur.U24()
		if err != nil {
			return nil, err
		}
		sector, err := cur.U24()
		if err != nil {
			return nil, err
		}
		idx.locators = append(idx.locators, storage.Locator{
			ID:      archiveID,
			IndexID: id,
			Sector:  int(sector),
			Length:  int(length),
		})
	}

	return idx, nil
}

// Locator returns the locator of the given archive id.
func (i *Index) Locator(archiveID uint32) (storage.Locator, bool) {
	if int(archiveID) >= len(i.locators) {
		return storage.Locator{}, false
	}
	return i.locators[archiveID], true
}

// ArchiveCount returns the number of archive slots in the index,
// including empty ones.
func (i *Index) ArchiveCount() int {
	return len(i.locators)
}
