package codec

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	dbzip2 "github.com/dsnet/compress/bzip2"

	"github.com/rg-atte/rs-cache/buffer"
)

// Compression identifies the algorithm a container's payload is stored
// with.
type Compression uint8

// Compression tags as they appear on the wire.
const (
	None  Compression = 0
	Bzip2 Compression = 1
	Gzip  Compression = 2
)

// ErrUnknownCompression is returned for container tags this codec does
// not implement.
var ErrUnknownCompression = errors.New("unknown compression type")

// NoRevision is passed to Encode when the container carries no
// trailing revision.
const NoRevision = -1

// Container is a decoded compression envelope: the tag it was stored
// under, the decompressed payload, and the trailing revision if the
// buffer carried one (Revision is NoRevision otherwise).
type Container struct {
	Compression Compression
	Data        []byte
	Revision    int
}

// bzip2 streams inside containers are stored headerless: the client
// assumes a fixed "BZh1" prefix and the cache strips it.
var bzipHeader = []byte{'B', 'Z', 'h', '1'}

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Bzip2:
		return "bzip2"
	case Gzip:
		return "gzip"
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

func (c Compression) valid() error {
	switch c {
	case None, Bzip2, Gzip:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
}

// Encode wraps data into a container: a compression tag, the big-endian
// length of the stored payload, the payload itself and, when revision
// is not NoRevision, a trailing 2-byte revision.
func Encode(compression Compression, data []byte, revision int) ([]byte, error) {
	if err := compression.valid(); err != nil {
		return nil, err
	}

	compressed, err := compress(compression, data)
	if err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	out.Grow(1 + 4 + len(compressed) + 2)
	out.WriteByte(byte(compression))
	binary.Write(out, binary.BigEndian, uint32(len(compressed)))
	out.Write(compressed)
	if revision != NoRevision {
		binary.Write(out, binary.BigEndian, uint16(revision))
	}
	return out.Bytes(), nil
}

// Decode unwraps a container. The declared length is trusted only for
// locating the payload inside buf: a buffer shorter than the declared
// length is a hard truncation error, and decompressor failures
// surface unchanged. A revision is decoded when exactly two bytes
// follow the payload.
func Decode(buf []byte) (*Container, error) {
	cur := buffer.New(buf)

	tag, err := cur.U8()
	if err != nil {
		return nil, err
	}
	compression := Compression(tag)
	if err = compression.valid(); err != nil {
		return nil, err
	}

	length, err := cur.U32()
	if err != nil {
		return nil, err
	}
	payload, err := cur.Bytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("container payload: %w", err)
	}

	data, err := decompress(compression, payload)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s container: %w", compression, err)
	}

	revision := NoRevision
	if cur.Remaining() >= 2 {
		rev, err := cur.U16()
		if err != nil {
			return nil, err
		}
		revision = int(rev)
	}

	return &Container{Compression: compression, Data: data, Revision: revision}, nil
}

func compress(compression Compression, data []byte) ([]byte, error) {
	switch compression {
	case None:
		return data, nil
	case Gzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Bzip2:
		var buf bytes.Buffer
		zw, err := dbzip2.NewWriter(&buf, &dbzip2.WriterConfig{Level: 1})
		if err != nil {
			return nil, err
		}
		if _, err = zw.Write(data); err != nil {
			return nil, err
		}
		if err = zw.Close(); err != nil {
			return nil, err
		}
		// strip the stream header the client never stores
		return buf.Bytes()[len(bzipHeader):], nil
	}
	return nil, compression.valid()
}

func decompress(compression Compression, payload []byte) ([]byte, error) {
	switch compression {
	case None:
		return payload, nil
	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case Bzip2:
		stream := make([]byte, 0, len(bzipHeader)+len(payload))
		stream = append(stream, bzipHeader...)
		stream = append(stream, payload...)
		return io.ReadAll(bzip2.NewReader(bytes.NewReader(stream)))
	}
	return nil, compression.valid()
}
