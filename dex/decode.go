package dex

import (
	"bytes"
	stderrors "errors"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/dexmodel/dex/internal/binary"
	"github.com/wippyai/dexmodel/errors"
)

// maximum value_arg + 1 per value type
var valueSizes = map[ValueType]int{
	ValueByte:         1,
	ValueShort:        2,
	ValueChar:         2,
	ValueInt:          4,
	ValueLong:         8,
	ValueFloat:        4,
	ValueDouble:       8,
	ValueMethodType:   4,
	ValueMethodHandle: 4,
	ValueString:       4,
	ValueTypeID:       4,
	ValueField:        4,
	ValueMethod:       4,
	ValueEnum:         4,
}

// streamPrealloc caps preallocation when reading from a stream.
const streamPrealloc = 64

// Decoder reads encoded values, annotations and annotation directories.
// It holds no state between calls and is safe for concurrent use.
type Decoder struct {
	log  *zap.Logger
	opts Options
}

// NewDecoder creates a decoder with the given options.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts, log: Logger()}
}

// Options returns the decoder configuration.
func (d *Decoder) Options() Options { return d.opts }

// DecodeValue decodes the encoded_value at the start of data. Bytes after the
// value are ignored.
func (d *Decoder) DecodeValue(data []byte) (Value, error) {
	return d.ReadValue(bytes.NewReader(data))
}

// ReadValue reads one encoded_value from r.
func (d *Decoder) ReadValue(r io.ByteReader) (Value, error) {
	return d.readValue(binary.NewReader(r), 0)
}

// DecodeArray decodes the encoded_array at the start of data, such as an
// encoded_array_item holding a class's static values.
func (d *Decoder) DecodeArray(data []byte) (*Array, error) {
	return d.ReadArray(bytes.NewReader(data))
}

// ReadArray reads one encoded_array from r.
func (d *Decoder) ReadArray(r io.ByteReader) (*Array, error) {
	return d.readArray(binary.NewReader(r), 1)
}

// DecodeAnnotation decodes the encoded_annotation at the start of data.
func (d *Decoder) DecodeAnnotation(data []byte) (*EncodedAnnotation, error) {
	return d.ReadAnnotation(bytes.NewReader(data))
}

// ReadAnnotation reads one encoded_annotation from r.
func (d *Decoder) ReadAnnotation(r io.ByteReader) (*EncodedAnnotation, error) {
	return d.readAnnotation(binary.NewReader(r), 1)
}

// DecodeAnnotationItem decodes the annotation_item at the start of data.
func (d *Decoder) DecodeAnnotationItem(data []byte) (Annotation, error) {
	return d.ReadAnnotationItem(bytes.NewReader(data))
}

// ReadAnnotationItem reads one annotation_item (visibility and
// encoded_annotation) from r.
func (d *Decoder) ReadAnnotationItem(r io.ByteReader) (Annotation, error) {
	return d.readAnnotationItem(binary.NewReader(r))
}

// ParseVisibility maps an annotation_item visibility byte.
func ParseVisibility(b byte) (Visibility, error) {
	switch v := Visibility(b); v {
	case VisibilityBuild, VisibilityRuntime, VisibilitySystem:
		return v, nil
	default:
		return 0, errors.InvalidEnum(errors.PhaseDecode, []string{"visibility"}, b, "visibility")
	}
}

func (d *Decoder) readValue(r *binary.Reader, depth int) (Value, error) {
	start := r.Position()
	header, err := r.ReadByte()
	if err != nil {
		return Value{}, d.fail(r, "encoded_value", err)
	}
	typ := ValueType(header & 0x1f)
	arg := int(header >> 5)

	if width, ok := valueSizes[typ]; ok {
		size := arg + 1
		if size > width {
			return Value{}, badArg(start, typ, arg)
		}
		return d.readScalar(r, typ, size)
	}

	switch typ {
	case ValueArray:
		if arg != 0 {
			return Value{}, badArg(start, typ, arg)
		}
		a, err := d.readArray(r, depth+1)
		if err != nil {
			return Value{}, err
		}
		return ArrayValue(a), nil
	case ValueAnnotation:
		if arg != 0 {
			return Value{}, badArg(start, typ, arg)
		}
		a, err := d.readAnnotation(r, depth+1)
		if err != nil {
			return Value{}, err
		}
		return AnnotationValue(a), nil
	case ValueNull:
		if arg != 0 {
			return Value{}, badArg(start, typ, arg)
		}
		return NullValue(), nil
	case ValueBoolean:
		if arg > 1 {
			return Value{}, badArg(start, typ, arg)
		}
		return BooleanValue(arg == 1), nil
	default:
		return Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidEnum).
			Path("encoded_value").
			Value(byte(typ)).
			Detail("unknown value_type 0x%02x at offset %d", byte(typ), start).
			Build()
	}
}

func (d *Decoder) readScalar(r *binary.Reader, typ ValueType, size int) (Value, error) {
	switch typ {
	case ValueByte, ValueShort, ValueInt, ValueLong:
		v, err := r.ReadSigned(size)
		if err != nil {
			return Value{}, d.fail(r, "encoded_value", err)
		}
		switch typ {
		case ValueByte:
			return ByteValue(int8(v)), nil
		case ValueShort:
			return ShortValue(int16(v)), nil
		case ValueInt:
			return IntValue(int32(v)), nil
		default:
			return LongValue(v), nil
		}
	case ValueFloat:
		bits, err := r.ReadRightExtended(size, 4)
		if err != nil {
			return Value{}, d.fail(r, "encoded_value", err)
		}
		return Value{typ: ValueFloat, bits: bits}, nil
	case ValueDouble:
		bits, err := r.ReadRightExtended(size, 8)
		if err != nil {
			return Value{}, d.fail(r, "encoded_value", err)
		}
		return Value{typ: ValueDouble, bits: bits}, nil
	default:
		// char and the index-carrying types are zero-extended
		v, err := r.ReadUnsigned(size)
		if err != nil {
			return Value{}, d.fail(r, "encoded_value", err)
		}
		return Value{typ: typ, bits: v}, nil
	}
}

// readArray reads an encoded_array whose elements sit at the given depth.
func (d *Decoder) readArray(r *binary.Reader, depth int) (*Array, error) {
	if limit := d.opts.maxDepth(); depth > limit {
		return nil, errors.DepthExceeded(errors.PhaseDecode, []string{"encoded_array"}, limit)
	}
	size, err := r.ReadU32()
	if err != nil {
		return nil, d.fail(r, "encoded_array", err)
	}
	if err := d.checkCount(r, "encoded_array", uint64(size)); err != nil {
		return nil, err
	}
	values := make([]Value, 0, d.capacity(r, size))
	for i := uint32(0); i < size; i++ {
		v, err := d.readValue(r, depth)
		if err != nil {
			return nil, prefix(err, "["+strconv.FormatUint(uint64(i), 10)+"]")
		}
		values = append(values, v)
	}
	return NewArray(values...), nil
}

// readAnnotation reads an encoded_annotation whose element values sit at the
// given depth.
func (d *Decoder) readAnnotation(r *binary.Reader, depth int) (*EncodedAnnotation, error) {
	if limit := d.opts.maxDepth(); depth > limit {
		return nil, errors.DepthExceeded(errors.PhaseDecode, []string{"encoded_annotation"}, limit)
	}
	typeIdx, err := r.ReadU32()
	if err != nil {
		return nil, d.fail(r, "encoded_annotation", err)
	}
	size, err := r.ReadU32()
	if err != nil {
		return nil, d.fail(r, "encoded_annotation", err)
	}
	// each element is a name index and a value, two bytes at least
	if err := d.checkCount(r, "encoded_annotation", uint64(size)*2); err != nil {
		return nil, err
	}
	elements := make([]AnnotationElement, 0, d.capacity(r, size))
	for i := uint32(0); i < size; i++ {
		name, err := r.ReadU32()
		if err != nil {
			return nil, d.fail(r, "annotation_element", err)
		}
		v, err := d.readValue(r, depth)
		if err != nil {
			return nil, prefix(err, "elements", strconv.FormatUint(uint64(i), 10))
		}
		elements = append(elements, NewAnnotationElement(name, v))
	}
	a := NewEncodedAnnotation(typeIdx, elements...)
	if d.opts.ValidateOrdering {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (d *Decoder) readAnnotationItem(r *binary.Reader) (Annotation, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Annotation{}, d.fail(r, "annotation_item", err)
	}
	vis, err := ParseVisibility(b)
	if err != nil {
		return Annotation{}, err
	}
	a, err := d.readAnnotation(r, 1)
	if err != nil {
		return Annotation{}, err
	}
	return NewAnnotation(vis, a), nil
}

// checkCount rejects element counts that cannot fit in the unread input.
func (d *Decoder) checkCount(r *binary.Reader, item string, count uint64) error {
	if rem := r.Remaining(); rem >= 0 && count > uint64(rem) {
		return errors.New(errors.PhaseDecode, errors.KindUnexpectedEOF).
			Path(item).
			Value(count).
			Detail("%d entries declared, %d bytes remain", count, rem).
			Build()
	}
	return nil
}

// capacity bounds a preallocation for count entries. Without a known input
// length the count is untrusted and the slice grows as entries decode.
func (d *Decoder) capacity(r *binary.Reader, count uint32) int {
	if r.Remaining() < 0 {
		return int(min(count, streamPrealloc))
	}
	return int(count)
}

// fail converts a reader error into a structured decode error.
func (d *Decoder) fail(r *binary.Reader, item string, err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		return errors.UnexpectedEOF(errors.PhaseDecode, []string{item}, r.WrapError(item, err))
	}
	return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, r.WrapError(item, err), "malformed "+item)
}

func badArg(offset int, typ ValueType, arg int) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path("encoded_value").
		Value(arg).
		Detail("value_arg %d invalid for %s at offset %d", arg, typ, offset).
		Build()
}

// prefix prepends path segments to a structured error.
func prefix(err error, segments ...string) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append(segments, e.Path...)
	}
	return err
}
