// Package cursor provides the checked, forward-only byte reading primitives
// the FIT decoder builds every higher-level parse on top of.
package cursor

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"unicode/utf8"
)

// Reader is the minimal capability a cursor needs from its source: plain
// byte-at-a-time reads plus bulk reads, mirroring the teacher decoder's own
// reader interface (io.Reader + io.ByteReader).
type Reader interface {
	io.Reader
	io.ByteReader
}

// ErrUnexpectedEOF is returned when fewer bytes are available than
// requested. It is io.ErrUnexpectedEOF itself.
var ErrUnexpectedEOF = io.ErrUnexpectedEOF

// Cursor reads fixed-width integers, floats and strings from a Reader,
// tracking total bytes consumed.
type Cursor struct {
	r        Reader
	consumed uint32
}

// New wraps r in a Cursor.
func New(r Reader) *Cursor {
	return &Cursor{r: r}
}

// Consumed returns the number of bytes read so far.
func (c *Cursor) Consumed() uint32 {
	return c.consumed
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	c.consumed++
	return b, nil
}

// SkipByte reads and discards one byte (used for FIT's reserved bytes).
func (c *Cursor) SkipByte() error {
	_, err := c.ReadByte()
	return err
}

// ReadFull reads exactly len(buf) bytes into buf.
func (c *Cursor) ReadFull(buf []byte) error {
	n, err := io.ReadFull(c.r, buf)
	c.consumed += uint32(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// Take reads and returns exactly n bytes.
func (c *Cursor) Take(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := c.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.ReadByte()
	return b, err
}

// ReadInt8 reads a signed 8-bit integer.
func (c *Cursor) ReadInt8() (int8, error) {
	b, err := c.ReadByte()
	return int8(b), err
}

// ReadUint16 reads an unsigned 16-bit integer in the given byte order.
func (c *Cursor) ReadUint16(order binary.ByteOrder) (uint16, error) {
	buf, err := c.Take(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(buf), nil
}

// ReadInt16 reads a signed 16-bit integer in the given byte order.
func (c *Cursor) ReadInt16(order binary.ByteOrder) (int16, error) {
	v, err := c.ReadUint16(order)
	return int16(v), err
}

// ReadUint32 reads an unsigned 32-bit integer in the given byte order.
func (c *Cursor) ReadUint32(order binary.ByteOrder) (uint32, error) {
	buf, err := c.Take(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(buf), nil
}

// ReadInt32 reads a signed 32-bit integer in the given byte order.
func (c *Cursor) ReadInt32(order binary.ByteOrder) (int32, error) {
	v, err := c.ReadUint32(order)
	return int32(v), err
}

// ReadUint64 reads an unsigned 64-bit integer in the given byte order.
func (c *Cursor) ReadUint64(order binary.ByteOrder) (uint64, error) {
	buf, err := c.Take(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(buf), nil
}

// ReadInt64 reads a signed 64-bit integer in the given byte order.
func (c *Cursor) ReadInt64(order binary.ByteOrder) (int64, error) {
	v, err := c.ReadUint64(order)
	return int64(v), err
}

// ReadFloat32 reads an IEEE-754 32-bit float in the given byte order.
func (c *Cursor) ReadFloat32(order binary.ByteOrder) (float32, error) {
	v, err := c.ReadUint32(order)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads an IEEE-754 64-bit float in the given byte order.
func (c *Cursor) ReadFloat64(order binary.ByteOrder) (float64, error) {
	v, err := c.ReadUint64(order)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadString reads exactly n bytes and decodes a NUL-terminated, possibly
// NUL-padded UTF-8 string from the prefix before the first NUL.
func (c *Cursor) ReadString(n int) (string, error) {
	buf, err := c.Take(n)
	if err != nil {
		return "", err
	}
	end := len(buf)
	for i, b := range buf {
		if b == 0x00 {
			end = i
			break
		}
	}
	if !utf8.Valid(buf[:end]) {
		return "", errInvalidUTF8
	}
	return string(buf[:end]), nil
}

var errInvalidUTF8 = errors.New("cursor: invalid utf-8 in string field")
