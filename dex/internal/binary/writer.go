package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer provides buffered writing utilities for DEX binary encoding.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteU32 writes an unsigned LEB128 encoded uint32.
func (w *Writer) WriteU32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// WriteU32p1 writes v+1 as uleb128, so NO_INDEX encodes as a single zero byte.
func (w *Writer) WriteU32p1(v uint32) {
	w.WriteU32(v + 1)
}

// WriteS32 writes a signed LEB128 encoded int32.
func (w *Writer) WriteS32(v int32) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && (b&0x40) == 0) || (v == -1 && (b&0x40) != 0) {
			more = false
		} else {
			b |= 0x80
		}
		w.buf.WriteByte(b)
	}
}

// WriteLittle writes the low n bytes of v in little-endian order.
func (w *Writer) WriteLittle(v uint64, n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(byte(v))
		v >>= 8
	}
}

// SignedSize returns the fewest bytes whose sign extension reproduces v.
func SignedSize(v int64) int {
	n := 1
	for n < 8 {
		shift := uint(64 - 8*n)
		if (v<<shift)>>shift == v {
			break
		}
		n++
	}
	return n
}

// UnsignedSize returns the fewest bytes (at least one) that hold v.
func UnsignedSize(v uint64) int {
	n := 1
	for n < 8 && v>>uint(8*n) != 0 {
		n++
	}
	return n
}

// RightExtendedSize returns the fewest high-order bytes of a width-byte
// value that reproduce it when the low bytes are zero-filled, and the value
// shifted down to those bytes.
func RightExtendedSize(v uint64, width int) (int, uint64) {
	n := width
	for n > 1 && v&0xff == 0 {
		v >>= 8
		n--
	}
	return n, v
}

// WriteU32LE writes a little-endian uint32 (fixed 4 bytes).
func (w *Writer) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}
