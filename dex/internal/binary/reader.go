package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrOverflow is returned when a LEB128 value exceeds the maximum size.
var ErrOverflow = errors.New("leb128: overflow")

// ErrSize is returned when a sized read asks for a width outside 1..8 bytes.
var ErrSize = errors.New("sized read: width out of range")

// Reader wraps an io.ByteReader with position tracking and DEX-specific read methods.
type Reader struct {
	r   io.ByteReader
	pos int
}

// NewReader creates a new Reader wrapping the given io.ByteReader.
func NewReader(r io.ByteReader) *Reader {
	return &Reader{r: r, pos: 0}
}

// NewBytesReader creates a Reader over a byte slice.
func NewBytesReader(data []byte) *Reader {
	return NewReader(bytes.NewReader(data))
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Reset seeks to the given position. Only works with bytes.Reader.
func (r *Reader) Reset(pos int) error {
	if br, ok := r.r.(*bytes.Reader); ok {
		_, err := br.Seek(int64(pos), io.SeekStart)
		if err != nil {
			return err
		}
		r.pos = pos
		return nil
	}
	return errors.New("Reset not supported on this reader type")
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

// ReadU32 reads an unsigned LEB128 encoded uint32 (uleb128).
func (r *Reader) ReadU32() (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, eof(err)
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, r.wrapError(ErrOverflow)
		}
	}
}

// ReadU32p1 reads a uleb128p1 value: the encoded value minus one, so the
// single byte 0x00 decodes to 0xffffffff (NO_INDEX).
func (r *Reader) ReadU32p1() (uint32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return v - 1, nil
}

// ReadS32 reads a signed LEB128 encoded int32 (sleb128).
func (r *Reader) ReadS32() (int32, error) {
	var result int32
	var shift uint
	var b byte
	var err error
	for {
		b, err = r.ReadByte()
		if err != nil {
			return 0, eof(err)
		}
		result |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
		if shift >= 35 {
			return 0, r.wrapError(ErrOverflow)
		}
	}
	// Sign extend
	if shift < 32 && b&0x40 != 0 {
		result |= ^int32(0) << shift
	}
	return result, nil
}

// ReadU32LE reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32LE() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUnsigned reads an n-byte little-endian unsigned value, zero-extended.
func (r *Reader) ReadUnsigned(n int) (uint64, error) {
	if n < 1 || n > 8 {
		return 0, r.wrapError(ErrSize)
	}
	buf, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return v, nil
}

// ReadSigned reads an n-byte little-endian signed value, sign-extended from its top bit.
func (r *Reader) ReadSigned(n int) (int64, error) {
	v, err := r.ReadUnsigned(n)
	if err != nil {
		return 0, err
	}
	shift := uint(64 - 8*n)
	return int64(v<<shift) >> shift, nil
}

// ReadRightExtended reads an n-byte little-endian value whose bytes are the
// high-order bytes of a width-byte quantity; the missing low bytes are zero.
// This is the layout of encoded float and double values.
func (r *Reader) ReadRightExtended(n, width int) (uint64, error) {
	if n > width {
		return 0, r.wrapError(ErrSize)
	}
	v, err := r.ReadUnsigned(n)
	if err != nil {
		return 0, err
	}
	return v << uint(8*(width-n)), nil
}

// Remaining reports the number of unread bytes. Only works with bytes.Reader.
func (r *Reader) Remaining() int {
	if br, ok := r.r.(*bytes.Reader); ok {
		return br.Len()
	}
	return -1
}

func eof(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

// ParseError represents an error during binary parsing with position information.
type ParseError struct {
	Err      error
	Item     string
	Position int
}

func (e *ParseError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("dex: %s at position %d: %v", e.Item, e.Position, e.Err)
	}
	return fmt.Sprintf("dex: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError with the current position.
func (r *Reader) WrapError(item string, err error) error {
	return &ParseError{
		Position: r.pos,
		Item:     item,
		Err:      err,
	}
}
