package dex

import (
	"github.com/wippyai/dexmodel/dex/internal/binary"
)

// EncodeValue encodes v as an encoded_value using the smallest value_arg
// each scalar allows.
func EncodeValue(v Value) []byte {
	w := binary.NewWriter()
	writeValue(w, v)
	return w.Bytes()
}

// EncodeArray encodes a as an encoded_array.
func EncodeArray(a *Array) []byte {
	w := binary.NewWriter()
	writeArray(w, a)
	return w.Bytes()
}

// EncodeAnnotation encodes a as an encoded_annotation.
func EncodeAnnotation(a *EncodedAnnotation) []byte {
	w := binary.NewWriter()
	writeAnnotation(w, a)
	return w.Bytes()
}

// EncodeAnnotationItem encodes a as an annotation_item.
func EncodeAnnotationItem(a Annotation) []byte {
	w := binary.NewWriter()
	w.Byte(byte(a.visibility))
	writeAnnotation(w, a.EncodedAnnotation)
	return w.Bytes()
}

func writeHeader(w *binary.Writer, typ ValueType, arg int) {
	w.Byte(byte(arg<<5) | byte(typ))
}

func writeValue(w *binary.Writer, v Value) {
	switch v.typ {
	case ValueByte:
		writeHeader(w, v.typ, 0)
		w.Byte(byte(v.bits))
	case ValueShort, ValueInt, ValueLong:
		n := binary.SignedSize(int64(v.bits))
		writeHeader(w, v.typ, n-1)
		w.WriteLittle(v.bits, n)
	case ValueFloat:
		n, bits := binary.RightExtendedSize(v.bits, 4)
		writeHeader(w, v.typ, n-1)
		w.WriteLittle(bits, n)
	case ValueDouble:
		n, bits := binary.RightExtendedSize(v.bits, 8)
		writeHeader(w, v.typ, n-1)
		w.WriteLittle(bits, n)
	case ValueArray:
		writeHeader(w, v.typ, 0)
		writeArray(w, v.array)
	case ValueAnnotation:
		writeHeader(w, v.typ, 0)
		writeAnnotation(w, v.annotation)
	case ValueNull:
		writeHeader(w, v.typ, 0)
	case ValueBoolean:
		writeHeader(w, v.typ, int(v.bits&1))
	default:
		// char and index types
		n := binary.UnsignedSize(v.bits)
		writeHeader(w, v.typ, n-1)
		w.WriteLittle(v.bits, n)
	}
}

func writeArray(w *binary.Writer, a *Array) {
	vals := a.Values()
	w.WriteU32(uint32(len(vals)))
	for _, v := range vals {
		writeValue(w, v)
	}
}

func writeAnnotation(w *binary.Writer, a *EncodedAnnotation) {
	if a == nil {
		w.WriteU32(0)
		w.WriteU32(0)
		return
	}
	w.WriteU32(a.typeIndex)
	w.WriteU32(uint32(len(a.elements)))
	for _, e := range a.elements {
		w.WriteU32(e.name)
		writeValue(w, e.value)
	}
}
