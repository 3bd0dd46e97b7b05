package dex

import (
	"bytes"
	"io"

	"github.com/wippyai/dexmodel/dex/internal/binary"
)

// LEB128 encoding/decoding utilities for the DEX binary format

// ErrOverflow is returned when a LEB128 value exceeds 32 bits.
var ErrOverflow = binary.ErrOverflow

// ReadULEB128 reads an unsigned LEB128 value.
func ReadULEB128(r io.ByteReader) (uint32, error) {
	return binary.NewReader(r).ReadU32()
}

// ReadULEB128p1 reads a uleb128p1 value, where NoIndex is encoded as 0.
func ReadULEB128p1(r io.ByteReader) (uint32, error) {
	return binary.NewReader(r).ReadU32p1()
}

// ReadSLEB128 reads a signed LEB128 value.
func ReadSLEB128(r io.ByteReader) (int32, error) {
	return binary.NewReader(r).ReadS32()
}

// WriteULEB128 writes an unsigned LEB128 value.
func WriteULEB128(w *bytes.Buffer, v uint32) {
	bw := binary.NewWriter()
	bw.WriteU32(v)
	w.Write(bw.Bytes())
}

// WriteULEB128p1 writes a uleb128p1 value.
func WriteULEB128p1(w *bytes.Buffer, v uint32) {
	WriteULEB128(w, v+1)
}

// WriteSLEB128 writes a signed LEB128 value.
func WriteSLEB128(w *bytes.Buffer, v int32) {
	bw := binary.NewWriter()
	bw.WriteS32(v)
	w.Write(bw.Bytes())
}

// EncodeULEB128 encodes an unsigned LEB128 value to bytes.
func EncodeULEB128(v uint32) []byte {
	var buf bytes.Buffer
	WriteULEB128(&buf, v)
	return buf.Bytes()
}

// EncodeSLEB128 encodes a signed LEB128 value to bytes.
func EncodeSLEB128(v int32) []byte {
	var buf bytes.Buffer
	WriteSLEB128(&buf, v)
	return buf.Bytes()
}
