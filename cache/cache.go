package cache

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	logging "github.com/op/go-logging"

	"github.com/rg-atte/rs-cache/buffer"
	"github.com/rg-atte/rs-cache/checksum"
	"github.com/rg-atte/rs-cache/codec"
	"github.com/rg-atte/rs-cache/storage"
)

const (
	// MainDataFile is the name of the flat container file holding all
	// sectors.
	MainDataFile = "main_file_cache.dat2"
	// IndexFilePrefix is the shared prefix of index files; the index id
	// is the numeric suffix.
	IndexFilePrefix = "main_file_cache.idx"
	// ReferenceIndex is the id of the metadata index describing every
	// other index. Checksum entries are computed from its archives.
	ReferenceIndex = 255
)

var (
	// ErrIndexNotFound is returned when the cache has no index file for
	// the requested index id.
	ErrIndexNotFound = errors.New("index not found")
	// ErrArchiveNotFound is returned when an index has no archive slot
	// for the requested archive id, or the slot is empty.
	ErrArchiveNotFound = errors.New("archive not found")
)

var (
	log = logging.MustGetLogger("rscache")
)

// Cache ties the pieces together: the sector store over the main data
// file plus the decoded index tables. All reads are positioned, so one
// Cache can serve concurrent readers.
type Cache struct {
	store   *storage.Store
	indices map[uint8]*Index
	closer  io.Closer
}

// New builds a cache from an already-opened backend and decoded
// indices. Tests and non-file deployments use this directly.
func New(backend storage.Backend, indices map[uint8]*Index) *Cache {
	return &Cache{
		store:   storage.NewStore(backend),
		indices: indices,
	}
}

// Open opens the cache in the given directory: the main data file plus
// every index file present.
func Open(dir string) (*Cache, error) {
	dataFile, err := os.Open(filepath.Join(dir, MainDataFile))
	if err != nil {
		return nil, fmt.Errorf("opening main data file: %w", err)
	}

	indices := make(map[uint8]*Index)
	for id := 0; id <= ReferenceIndex; id++ {
		name := filepath.Join(dir, fmt.Sprintf("%s%d", IndexFilePrefix, id))
		data, err := os.ReadFile(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			dataFile.Close()
			return nil, fmt.Errorf("reading index file %s: %w", name, err)
		}
		idx, err := DecodeIndex(uint8(id), data)
		if err != nil {
			dataFile.Close()
			return nil, fmt.Errorf("decoding index %d: %w", id, err)
		}
		indices[uint8(id)] = idx
	}

	log.Infof("cache opened at %s with %d indices", dir, len(indices))

	c := New(dataFile, indices)
	c.closer = dataFile
	return c, nil
}

// Close releases the underlying data file, if the cache owns one.
func (c *Cache) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// IndexCount returns the number of indices the cache holds.
func (c *Cache) IndexCount() int {
	return len(c.indices)
}

// Index returns the decoded index table with the given id.
func (c *Cache) Index(id uint8) (*Index, error) {
	idx, ok := c.indices[id]
	if !ok {
		return nil, fmt.Errorf("index %d: %w", id, ErrIndexNotFound)
	}
	return idx, nil
}

// ReadRaw returns the container bytes of an archive exactly as stored:
// the sector chain is reassembled and validated but the container is
// not decoded.
func (c *Cache) ReadRaw(indexID uint8, archiveID uint32) ([]byte, error) {
	idx, err := c.Index(indexID)
	if err != nil {
		return nil, err
	}
	loc, ok := idx.Locator(archiveID)
	if !ok || (loc.Length == 0 && loc.Sector == 0) {
		return nil, fmt.Errorf("archive %d/%d: %w", indexID, archiveID, ErrArchiveNotFound)
	}
	return c.store.ReadArchive(loc)
}

// ReadArchive returns the decompressed logical bytes of an archive,
// ready for the definition decoders.
func (c *Cache) ReadArchive(indexID uint8, archiveID uint32) ([]byte, error) {
	raw, err := c.ReadRaw(indexID, archiveID)
	if err != nil {
		return nil, err
	}
	container, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("archive %d/%d: %w", indexID, archiveID, err)
	}
	return container.Data, nil
}

// Checksum builds the validation table the client checks its cached
// revisions against: one CRC-32 of the raw reference archive plus its
// revision, per index, in index-id order. Index slots without a
// reference archive contribute a zero entry.
func (c *Cache) Checksum() (*checksum.Table, error) {
	ref, err := c.Index(ReferenceIndex)
	if err != nil {
		return nil, err
	}

	table := checksum.New()
	for archiveID := 0; archiveID < ref.ArchiveCount(); archiveID++ {
		raw, err := c.ReadRaw(ReferenceIndex, uint32(archiveID))
		if errors.Is(err, ErrArchiveNotFound) {
			table.Push(checksum.Entry{})
			continue
		}
		if err != nil {
			return nil, err
		}

		revision, err := referenceRevision(raw)
		if err != nil {
			return nil, fmt.Errorf("reference archive %d: %w", archiveID, err)
		}

		table.Push(checksum.Entry{
			CRC:      crc32.ChecksumIEEE(raw),
			Revision: revision,
		})
	}

	log.Debugf("built checksum table with %d entries", table.Len())
	return table, nil
}

// referenceRevision decodes a reference archive container and extracts
// the index revision from its metadata: a format byte, then a 32-bit
// revision for format 6 and up. Older formats carry no revision.
func referenceRevision(raw []byte) (uint32, error) {
	container, err := codec.Decode(raw)
	if err != nil {
		return 0, err
	}
	cur := buffer.New(container.Data)
	format, err := cur.U8()
	if err != nil {
		return 0, err
	}
	if format < 6 {
		return 0, nil
	}
	return cur.U32()
}
