package storage

import (
	"fmt"

	logging "github.com/op/go-logging"
)

var (
	log = logging.MustGetLogger("rscache")
)

// cycleSlack is how many sectors past the expected count a chain may
// run before the read is aborted as cyclic. Correct chains never use
// it; it only exists to turn a looping next pointer into an error
// instead of an endless read.
const cycleSlack = 1

// Store reads archives out of the main cache data file by walking
// their sector chains. Reads are positioned, so a single Store can be
// shared between goroutines as long as the backend supports concurrent
// ReadAt calls (*os.File does).
type Store struct {
	backend Backend
}

// NewStore wraps a backend into a Store.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// ReadArchive reassembles the archive described by loc and returns
// exactly loc.Length bytes of container data, in chunk order.
//
// Every sector along the chain is validated against the locator's
// identity before its payload is used; the first mismatch aborts the
// read with the specific mismatch error. Once the declared length is
// satisfied the read stops without following the final next pointer,
// which is frequently stale in caches of this family.
func (s *Store) ReadArchive(loc Locator) ([]byte, error) {
	kind := HeaderKindFor(loc.ID)
	_, dataSize := kind.Sizes()

	expected := (loc.Length + dataSize - 1) / dataSize
	log.Debugf("reading archive %d/%d: %d byte(s), %d sector(s), %s header",
		loc.IndexID, loc.ID, loc.Length, expected, kind)

	out := make([]byte, 0, loc.Length)
	block := make([]byte, SectorSize)
	sector := loc.Sector
	remaining := loc.Length

	for chunk := 0; remaining > 0; chunk++ {
		if chunk >= expected+cycleSlack {
			return nil, fmt.Errorf("archive %d/%d: %w: read %d, expected %d",
				loc.IndexID, loc.ID, ErrChainCycle, chunk, expected)
		}

		offset := int64(sector) * SectorSize
		if _, err := s.backend.ReadAt(block, offset); err != nil {
			return nil, fmt.Errorf("archive %d/%d: %w: sector %d at offset %d: %v",
				loc.IndexID, loc.ID, ErrChainBroken, sector, offset, err)
		}

		sec, err := DecodeSector(block, kind)
		if err != nil {
			return nil, fmt.Errorf("archive %d/%d: decoding sector %d: %w",
				loc.IndexID, loc.ID, sector, err)
		}

		if err = sec.Header.Validate(loc.ID, chunk, loc.IndexID); err != nil {
			return nil, fmt.Errorf("archive %d/%d: sector %d: %w",
				loc.IndexID, loc.ID, sector, err)
		}

		n := remaining
		if n > dataSize {
			n = dataSize
		}
		out = append(out, sec.Data[:n]...)
		remaining -= n
		sector = sec.Header.Next
	}

	return out, nil
}
