package buffer

import (
	"errors"
	"fmt"
)

// ErrShort is returned when a read requires more bytes than the
// underlying buffer has left.
var ErrShort = errors.New("short buffer")

// Cursor is a sequential big-endian reader over a byte slice. All cache
// structures (sector headers, index entries, codec envelopes, definition
// opcodes) are decoded through it. Reads never go past the end of the
// slice: a read that needs more bytes than remain fails with ErrShort.
type Cursor struct {
	data []byte
	pos  int
}

// New returns a cursor positioned at the start of data. The cursor
// borrows the slice, it does not copy it.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *Cursor) need(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("need %d byte(s) at offset %d, %d left: %w",
			n, c.pos, c.Remaining(), ErrShort)
	}
	return nil
}

// Bytes reads the next n bytes. The returned slice aliases the
// underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Rest returns all unread bytes without copying.
func (c *Cursor) Rest() []byte {
	b := c.data[c.pos:]
	c.pos = len(c.data)
	return b
}

// U8 reads an unsigned 8-bit integer.
func (c *Cursor) U8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// U16 reads a big-endian unsigned 16-bit integer.
func (c *Cursor) U16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := uint16(c.data[c.pos])<<8 | uint16(c.data[c.pos+1])
	c.pos += 2
	return v, nil
}

// U24 reads a big-endian unsigned 24-bit integer.
func (c *Cursor) U24() (uint32, error) {
	if err := c.need(3); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.pos])<<16 | uint32(c.data[c.pos+1])<<8 | uint32(c.data[c.pos+2])
	c.pos += 3
	return v, nil
}

// U32 reads a big-endian unsigned 32-bit integer.
func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.pos])<<24 | uint32(c.data[c.pos+1])<<16 |
		uint32(c.data[c.pos+2])<<8 | uint32(c.data[c.pos+3])
	c.pos += 4
	return v, nil
}

// U64 reads a big-endian unsigned 64-bit integer.
func (c *Cursor) U64() (uint64, error) {
	hi, err := c.U32()
	if err != nil {
		return 0, err
	}
	lo, err := c.U32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// I8 reads a signed 8-bit integer.
func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

// I16 reads a big-endian signed 16-bit integer.
func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

// I32 reads a big-endian signed 32-bit integer.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// String reads a zero-terminated string.
func (c *Cursor) String() (string, error) {
	start := c.pos
	for i := c.pos; i < len(c.data); i++ {
		if c.data[i] == 0 {
			c.pos = i + 1
			return string(c.data[start:i]), nil
		}
	}
	return "", fmt.Errorf("unterminated string at offset %d: %w", start, ErrShort)
}

// USmart reads a variable-width unsigned integer: one byte when the
// value fits in 7 bits, two bytes (minus 0x8000) otherwise.
func (c *Cursor) USmart() (uint16, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	if c.data[c.pos] < 0x80 {
		v, err := c.U8()
		return uint16(v), err
	}
	v, err := c.U16()
	if err != nil {
		return 0, err
	}
	return v - 0x8000, nil
}

// Smart reads the signed variant of USmart, centered on zero.
func (c *Cursor) Smart() (int, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	if c.data[c.pos] < 0x80 {
		v, err := c.U8()
		return int(v) - 0x40, err
	}
	v, err := c.U16()
	if err != nil {
		return 0, err
	}
	return int(v) - 0xC000, nil
}

// Params decodes a definition parameter map: a count byte followed by
// count entries of {isString:u8, key:u24, value:string|i32}. Values are
// either string or int32.
func (c *Cursor) Params() (map[uint32]interface{}, error) {
	count, err := c.U8()
	if err != nil {
		return nil, err
	}
	params := make(map[uint32]interface{}, count)
	for i := 0; i < int(count); i++ {
		isString, err := c.U8()
		if err != nil {
			return nil, err
		}
		key, err := c.U24()
		if err != nil {
			return nil, err
		}
		if isString == 1 {
			v, err := c.String()
			if err != nil {
				return nil, err
			}
			params[key] = v
		} else {
			v, err := c.I32()
			if err != nil {
				return nil, err
			}
			params[key] = v
		}
	}
	return params, nil
}
