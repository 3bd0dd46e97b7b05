package dex

import (
	"math"

	"golang.org/x/exp/slices"
)

// ValueType is the value_type code of an encoded value.
type ValueType byte

const (
	ValueByte         ValueType = 0x00
	ValueShort        ValueType = 0x02
	ValueChar         ValueType = 0x03
	ValueInt          ValueType = 0x04
	ValueLong         ValueType = 0x06
	ValueFloat        ValueType = 0x10
	ValueDouble       ValueType = 0x11
	ValueMethodType   ValueType = 0x15
	ValueMethodHandle ValueType = 0x16
	ValueString       ValueType = 0x17
	ValueTypeID       ValueType = 0x18
	ValueField        ValueType = 0x19
	ValueMethod       ValueType = 0x1a
	ValueEnum         ValueType = 0x1b
	ValueArray        ValueType = 0x1c
	ValueAnnotation   ValueType = 0x1d
	ValueNull         ValueType = 0x1e
	ValueBoolean      ValueType = 0x1f
)

func (t ValueType) String() string {
	switch t {
	case ValueByte:
		return "byte"
	case ValueShort:
		return "short"
	case ValueChar:
		return "char"
	case ValueInt:
		return "int"
	case ValueLong:
		return "long"
	case ValueFloat:
		return "float"
	case ValueDouble:
		return "double"
	case ValueMethodType:
		return "method_type"
	case ValueMethodHandle:
		return "method_handle"
	case ValueString:
		return "string"
	case ValueTypeID:
		return "type"
	case ValueField:
		return "field"
	case ValueMethod:
		return "method"
	case ValueEnum:
		return "enum"
	case ValueArray:
		return "array"
	case ValueAnnotation:
		return "annotation"
	case ValueNull:
		return "null"
	case ValueBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// IsIndex reports whether values of this type carry an index into a shared table.
func (t ValueType) IsIndex() bool {
	return t >= ValueMethodType && t <= ValueEnum
}

// Value is an encoded constant. The zero Value is a byte 0.
//
// Scalars are held as raw bits; use the accessor matching Type. Index
// variants hold a position in a table owned by the container and are never
// resolved here.
type Value struct {
	array      *Array
	annotation *EncodedAnnotation
	bits       uint64
	typ        ValueType
}

// ByteValue returns a byte value.
func ByteValue(v int8) Value { return Value{typ: ValueByte, bits: uint64(int64(v))} }

// ShortValue returns a short value.
func ShortValue(v int16) Value { return Value{typ: ValueShort, bits: uint64(int64(v))} }

// CharValue returns a char value.
func CharValue(v uint16) Value { return Value{typ: ValueChar, bits: uint64(v)} }

// IntValue returns an int value.
func IntValue(v int32) Value { return Value{typ: ValueInt, bits: uint64(int64(v))} }

// LongValue returns a long value.
func LongValue(v int64) Value { return Value{typ: ValueLong, bits: uint64(v)} }

// FloatValue returns a float value.
func FloatValue(v float32) Value { return Value{typ: ValueFloat, bits: uint64(math.Float32bits(v))} }

// DoubleValue returns a double value.
func DoubleValue(v float64) Value { return Value{typ: ValueDouble, bits: math.Float64bits(v)} }

// StringValue returns a reference into the string_ids table.
func StringValue(idx uint32) Value { return Value{typ: ValueString, bits: uint64(idx)} }

// TypeValue returns a reference into the type_ids table.
func TypeValue(idx uint32) Value { return Value{typ: ValueTypeID, bits: uint64(idx)} }

// FieldValue returns a reference into the field_ids table.
func FieldValue(idx uint32) Value { return Value{typ: ValueField, bits: uint64(idx)} }

// MethodValue returns a reference into the method_ids table.
func MethodValue(idx uint32) Value { return Value{typ: ValueMethod, bits: uint64(idx)} }

// EnumValue returns an enum constant, a reference into the field_ids table.
func EnumValue(idx uint32) Value { return Value{typ: ValueEnum, bits: uint64(idx)} }

// MethodTypeValue returns a reference into the proto_ids table.
func MethodTypeValue(idx uint32) Value { return Value{typ: ValueMethodType, bits: uint64(idx)} }

// MethodHandleValue returns a reference into the method_handles table.
func MethodHandleValue(idx uint32) Value { return Value{typ: ValueMethodHandle, bits: uint64(idx)} }

// ArrayValue wraps an array.
func ArrayValue(a *Array) Value { return Value{typ: ValueArray, array: a} }

// AnnotationValue wraps an annotation.
func AnnotationValue(a *EncodedAnnotation) Value { return Value{typ: ValueAnnotation, annotation: a} }

// NullValue returns the null reference.
func NullValue() Value { return Value{typ: ValueNull} }

// BooleanValue returns a boolean value.
func BooleanValue(v bool) Value {
	if v {
		return Value{typ: ValueBoolean, bits: 1}
	}
	return Value{typ: ValueBoolean}
}

// Type returns the value's type code.
func (v Value) Type() ValueType { return v.typ }

// Int returns the sign-extended integer of a byte, short, int or long value,
// or the zero-extended code unit of a char value.
func (v Value) Int() int64 { return int64(v.bits) }

// Float32 returns the value of a float.
func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.bits)) }

// Float64 returns the value of a double, widening a float.
func (v Value) Float64() float64 {
	if v.typ == ValueFloat {
		return float64(v.Float32())
	}
	return math.Float64frombits(v.bits)
}

// Index returns the table index of an index-carrying value.
func (v Value) Index() uint32 { return uint32(v.bits) }

// Bool returns the value of a boolean.
func (v Value) Bool() bool { return v.bits != 0 }

// Array returns the array of an array value, or nil.
func (v Value) Array() *Array { return v.array }

// Annotation returns the annotation of an annotation value, or nil.
func (v Value) Annotation() *EncodedAnnotation { return v.annotation }

// Bits returns the raw scalar bits.
func (v Value) Bits() uint64 { return v.bits }

// IsNull reports whether v is the null reference.
func (v Value) IsNull() bool { return v.typ == ValueNull }

// ZeroValue returns the default a static field of type t takes when it has no
// entry in the class's static values.
func ZeroValue(t Type) Value {
	switch t.kind {
	case KindBoolean:
		return BooleanValue(false)
	case KindByte:
		return ByteValue(0)
	case KindShort:
		return ShortValue(0)
	case KindChar:
		return CharValue(0)
	case KindInt:
		return IntValue(0)
	case KindLong:
		return LongValue(0)
	case KindFloat:
		return FloatValue(0)
	case KindDouble:
		return DoubleValue(0)
	default:
		return NullValue()
	}
}

// Array is an ordered sequence of values. Elements need not share a type.
type Array struct {
	values []Value
}

// NewArray returns an array holding values.
func NewArray(values ...Value) *Array {
	return &Array{values: values}
}

// Values returns the elements.
func (a *Array) Values() []Value {
	if a == nil {
		return nil
	}
	return a.values
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// At returns element i.
func (a *Array) At(i int) Value { return a.values[i] }

// AnnotationElement is a name/value pair of an annotation.
type AnnotationElement struct {
	value Value
	name  uint32
}

// NewAnnotationElement returns an element named by a string_ids index.
func NewAnnotationElement(nameIndex uint32, value Value) AnnotationElement {
	return AnnotationElement{name: nameIndex, value: value}
}

// NameIndex returns the string_ids index of the element name.
func (e AnnotationElement) NameIndex() uint32 { return e.name }

// Value returns the element value.
func (e AnnotationElement) Value() Value { return e.value }

// EncodedAnnotation is an annotation type and its elements, which the format
// stores sorted by name index with no duplicates.
type EncodedAnnotation struct {
	elements  []AnnotationElement
	typeIndex uint32
}

// NewEncodedAnnotation returns an annotation of the type at typeIndex. The
// elements are kept in the given order; see Validate.
func NewEncodedAnnotation(typeIndex uint32, elements ...AnnotationElement) *EncodedAnnotation {
	return &EncodedAnnotation{typeIndex: typeIndex, elements: elements}
}

// TypeIndex returns the type_ids index of the annotation type.
func (a *EncodedAnnotation) TypeIndex() uint32 { return a.typeIndex }

// Elements returns the elements in stored order.
func (a *EncodedAnnotation) Elements() []AnnotationElement { return a.elements }

// Element looks up an element by name index. The elements must be sorted.
func (a *EncodedAnnotation) Element(nameIndex uint32) (Value, bool) {
	i, ok := slices.BinarySearchFunc(a.elements, nameIndex, func(e AnnotationElement, name uint32) int {
		return compareIndex(e.name, name)
	})
	if !ok {
		return Value{}, false
	}
	return a.elements[i].value, true
}

func compareIndex(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Visibility is the retention of an annotation item.
type Visibility byte

const (
	VisibilityBuild   Visibility = 0x00
	VisibilityRuntime Visibility = 0x01
	VisibilitySystem  Visibility = 0x02
)

func (v Visibility) String() string {
	switch v {
	case VisibilityBuild:
		return "build"
	case VisibilityRuntime:
		return "runtime"
	case VisibilitySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Annotation is an annotation item: an encoded annotation with its visibility.
type Annotation struct {
	*EncodedAnnotation
	visibility Visibility
}

// NewAnnotation returns an annotation item.
func NewAnnotation(visibility Visibility, annotation *EncodedAnnotation) Annotation {
	return Annotation{visibility: visibility, EncodedAnnotation: annotation}
}

// Visibility returns the annotation's visibility.
func (a Annotation) Visibility() Visibility { return a.visibility }
