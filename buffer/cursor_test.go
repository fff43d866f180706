package buffer

import (
	"errors"
	"testing"
)

func TestFixedWidthReads(t *testing.T) {
	cur := New([]byte{
		0x12,
		0x34, 0x56,
		0x01, 0x02, 0x03,
		0xDE, 0xAD, 0xBE, 0xEF,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02,
	})

	v8, err := cur.U8()
	if err != nil || v8 != 0x12 {
		t.Errorf("u8: got %#x (%v), expected 0x12", v8, err)
	}
	v16, err := cur.U16()
	if err != nil || v16 != 0x3456 {
		t.Errorf("u16: got %#x (%v), expected 0x3456", v16, err)
	}
	v24, err := cur.U24()
	if err != nil || v24 != 0x010203 {
		t.Errorf("u24: got %#x (%v), expected 0x010203", v24, err)
	}
	v32, err := cur.U32()
	if err != nil || v32 != 0xDEADBEEF {
		t.Errorf("u32: got %#x (%v), expected 0xdeadbeef", v32, err)
	}
	v64, err := cur.U64()
	if err != nil || v64 != 0x0000000100000002 {
		t.Errorf("u64: got %#x (%v)", v64, err)
	}
	if cur.Remaining() != 0 {
		t.Errorf("expected cursor to be drained, %d byte(s) left", cur.Remaining())
	}
}

func TestSignedReads(t *testing.T) {
	cur := New([]byte{0xFF, 0xFF, 0xFE, 0xFF, 0xFF, 0xFF, 0xFD})

	i8, err := cur.I8()
	if err != nil || i8 != -1 {
		t.Errorf("i8: got %d (%v), expected -1", i8, err)
	}
	i16, err := cur.I16()
	if err != nil || i16 != -2 {
		t.Errorf("i16: got %d (%v), expected -2", i16, err)
	}
	i32, err := cur.I32()
	if err != nil || i32 != -3 {
		t.Errorf("i32: got %d (%v), expected -3", i32, err)
	}
}

func TestTruncationError(t *testing.T) {
	cur := New([]byte{0x01})
	if _, err := cur.U16(); !errors.Is(err, ErrShort) {
		t.Errorf("expected ErrShort, got %v", err)
	}
	// failed read must not advance
	if cur.Remaining() != 1 {
		t.Errorf("failed read consumed bytes, %d left", cur.Remaining())
	}
	if _, err := cur.Bytes(2); !errors.Is(err, ErrShort) {
		t.Errorf("expected ErrShort from Bytes, got %v", err)
	}
}

func TestString(t *testing.T) {
	cur := New([]byte{'D', 'r', 'a', 'g', 'o', 'n', 0, 'x'})
	s, err := cur.String()
	if err != nil {
		t.Error(err)
	}
	if s != "Dragon" {
		t.Errorf("got %q, expected %q", s, "Dragon")
	}
	if cur.Remaining() != 1 {
		t.Errorf("terminator not consumed, %d byte(s) left", cur.Remaining())
	}

	cur = New([]byte{'a', 'b'})
	if _, err = cur.String(); !errors.Is(err, ErrShort) {
		t.Errorf("unterminated string: expected ErrShort, got %v", err)
	}
}

func TestUSmart(t *testing.T) {
	cases := []struct {
		input    []byte
		expected uint16
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7F}, 127},
		{[]byte{0x80, 0x80}, 128},
		{[]byte{0xFF, 0xFF}, 32767},
	}
	for _, c := range cases {
		v, err := New(c.input).USmart()
		if err != nil {
			t.Error(err)
		}
		if v != c.expected {
			t.Errorf("usmart(% x): got %d, expected %d", c.input, v, c.expected)
		}
	}
}

func TestSmart(t *testing.T) {
	cases := []struct {
		input    []byte
		expected int
	}{
		{[]byte{0x00}, -64},
		{[]byte{0x40}, 0},
		{[]byte{0x7F}, 63},
		{[]byte{0x80, 0x00}, -16384},
		{[]byte{0xC0, 0x00}, 0},
		{[]byte{0xFF, 0xFF}, 16383},
	}
	for _, c := range cases {
		v, err := New(c.input).Smart()
		if err != nil {
			t.Error(err)
		}
		if v != c.expected {
			t.Errorf("smart(% x): got %d, expected %d", c.input, v, c.expected)
		}
	}
}

func TestParams(t *testing.T) {
	cur := New([]byte{
		2,
		1, 0x00, 0x00, 0x05, 'h', 'i', 0, // string entry, key 5
		0, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x2A, // int entry, key 9
	})
	params, err := cur.Params()
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 2 {
		t.Fatalf("got %d entries, expected 2", len(params))
	}
	if s, ok := params[5].(string); !ok || s != "hi" {
		t.Errorf("param 5: got %v", params[5])
	}
	if n, ok := params[9].(int32); !ok || n != 42 {
		t.Errorf("param 9: got %v", params[9])
	}
}
