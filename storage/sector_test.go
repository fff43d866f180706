package storage

import (
	"errors"
	"testing"

	"github.com/rg-atte/rs-cache/buffer"
)

// encodeHeader builds the on-disk form of a header, the inverse of
// DecodeHeader. The read engine has no write path so this lives in
// test code only.
func encodeHeader(h SectorHeader, kind HeaderKind) []byte {
	var buf []byte
	if kind == Expanded {
		buf = append(buf,
			byte(h.ArchiveID>>24), byte(h.ArchiveID>>16),
			byte(h.ArchiveID>>8), byte(h.ArchiveID))
	} else {
		buf = append(buf, byte(h.ArchiveID>>8), byte(h.ArchiveID))
	}
	buf = append(buf,
		byte(h.Chunk>>8), byte(h.Chunk),
		byte(h.Next>>16), byte(h.Next>>8), byte(h.Next),
		h.IndexID)
	return buf
}

func TestHeaderKindBoundary(t *testing.T) {
	if kind := HeaderKindFor(65535); kind != Normal {
		t.Errorf("archive 65535: got %s, expected normal", kind)
	}
	if kind := HeaderKindFor(65536); kind != Expanded {
		t.Errorf("archive 65536: got %s, expected expanded", kind)
	}
}

func TestHeaderSizes(t *testing.T) {
	hs, ds := Normal.Sizes()
	if hs != 8 || ds != 512 || hs+ds != SectorSize {
		t.Errorf("normal layout: %d+%d", hs, ds)
	}
	hs, ds = Expanded.Sizes()
	if hs != 10 || ds != 510 || hs+ds != SectorSize {
		t.Errorf("expanded layout: %d+%d", hs, ds)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	cases := []struct {
		kind   HeaderKind
		header SectorHeader
	}{
		{Normal, SectorHeader{ArchiveID: 0, Chunk: 0, Next: 2, IndexID: 255}},
		{Normal, SectorHeader{ArchiveID: 65535, Chunk: 17, Next: 0xFFFFFF, IndexID: 2}},
		{Expanded, SectorHeader{ArchiveID: 70000, Chunk: 3, Next: 9, IndexID: 5}},
		{Expanded, SectorHeader{ArchiveID: 0xFFFFFFFF, Chunk: 0xFFFF, Next: 1, IndexID: 0}},
	}

	for _, c := range cases {
		decoded, err := DecodeHeader(encodeHeader(c.header, c.kind), c.kind)
		if err != nil {
			t.Error(err)
			continue
		}
		if decoded != c.header {
			t.Errorf("round trip (%s): got %+v, expected %+v", c.kind, decoded, c.header)
		}
	}
}

func TestParseHeader(t *testing.T) {
	header, err := DecodeHeader([]byte{0, 0, 0, 0, 0, 0, 2, 255}, Normal)
	if err != nil {
		t.Fatal(err)
	}
	expected := SectorHeader{ArchiveID: 0, Chunk: 0, Next: 2, IndexID: 255}
	if header != expected {
		t.Errorf("got %+v, expected %+v", header, expected)
	}
}

func TestHeaderTruncation(t *testing.T) {
	if _, err := DecodeHeader([]byte{0, 0, 0, 0, 0, 0, 2}, Normal); !errors.Is(err, buffer.ErrShort) {
		t.Errorf("short normal header: expected ErrShort, got %v", err)
	}
	// 8 bytes is a whole normal header but not an expanded one
	if _, err := DecodeHeader([]byte{0, 0, 0, 0, 0, 0, 2, 255}, Expanded); !errors.Is(err, buffer.ErrShort) {
		t.Errorf("short expanded header: expected ErrShort, got %v", err)
	}
}

func TestHeaderValidationOrder(t *testing.T) {
	header := SectorHeader{ArchiveID: 1, Chunk: 0, Next: 2, IndexID: 255}

	var archiveErr *ArchiveMismatchError
	// archive differs, chunk and index also wrong: archive wins
	if err := header.Validate(0, 1, 0); !errors.As(err, &archiveErr) {
		t.Errorf("expected archive mismatch, got %v", err)
	}

	var chunkErr *ChunkMismatchError
	if err := header.Validate(1, 1, 255); !errors.As(err, &chunkErr) {
		t.Errorf("expected chunk mismatch, got %v", err)
	}

	var indexErr *IndexMismatchError
	if err := header.Validate(1, 0, 0); !errors.As(err, &indexErr) {
		t.Errorf("expected index mismatch, got %v", err)
	}

	if err := header.Validate(1, 0, 255); err != nil {
		t.Errorf("valid header rejected: %v", err)
	}
}

func TestDecodeSectorTakesRest(t *testing.T) {
	block := append(encodeHeader(SectorHeader{ArchiveID: 7, IndexID: 3}, Normal), 0xAA, 0xBB, 0xCC)
	sec, err := DecodeSector(block, Normal)
	if err != nil {
		t.Fatal(err)
	}
	if len(sec.Data) != 3 {
		t.Fatalf("payload length %d, expected the 3 bytes past the header", len(sec.Data))
	}
	if sec.Data[0] != 0xAA || sec.Data[2] != 0xCC {
		t.Errorf("payload bytes % x", sec.Data)
	}
}
