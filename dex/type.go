package dex

import (
	"strconv"
	"strings"

	"github.com/wippyai/dexmodel/errors"
)

// MaxArrayDimensions is the largest array rank a type descriptor may carry.
const MaxArrayDimensions = 255

// TypeKind identifies the shape of a Type.
type TypeKind byte

const (
	KindVoid TypeKind = iota
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindReference
	KindArray
)

var kindKeywords = [...]string{
	KindVoid:    "void",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindShort:   "short",
	KindChar:    "char",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
}

var kindTags = [...]byte{
	KindVoid:    'V',
	KindBoolean: 'Z',
	KindByte:    'B',
	KindShort:   'S',
	KindChar:    'C',
	KindInt:     'I',
	KindLong:    'J',
	KindFloat:   'F',
	KindDouble:  'D',
}

func (k TypeKind) String() string {
	switch {
	case k <= KindDouble:
		return kindKeywords[k]
	case k == KindReference:
		return "reference"
	case k == KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Type is a parsed type descriptor.
//
// Arrays are flattened: a Type of KindArray carries its rank in Dimensions
// and an element type that is never itself an array.
type Type struct {
	elem       *Type
	name       string
	kind       TypeKind
	dimensions uint8
}

// Primitive returns the primitive type of the given kind.
// It panics if kind is KindReference or KindArray.
func Primitive(kind TypeKind) Type {
	if kind > KindDouble {
		panic("dex: Primitive called with non-primitive kind " + kind.String())
	}
	return Type{kind: kind}
}

// Reference returns a reference type with the given name. The name is kept
// exactly as given, so a name taken from a descriptor keeps its trailing ';'.
func Reference(name string) Type {
	return Type{kind: KindReference, name: name}
}

// ArrayOf returns an array of elem with the given rank. An array element is
// flattened into the result, adding its dimensions.
func ArrayOf(elem Type, dimensions int) (Type, error) {
	if elem.kind == KindArray {
		dimensions += int(elem.dimensions)
		elem = *elem.elem
	}
	if dimensions < 1 || dimensions > MaxArrayDimensions {
		return Type{}, errors.New(errors.PhaseParse, errors.KindInvalidTypeDescriptor).
			Value(dimensions).
			Detail("array rank %d outside 1..%d", dimensions, MaxArrayDimensions).
			Build()
	}
	e := elem
	return Type{kind: KindArray, dimensions: uint8(dimensions), elem: &e}, nil
}

// ParseType parses a type descriptor.
//
// The first character selects the type. A primitive tag consumes exactly one
// character and anything after it is ignored. 'L' takes the rest of the string
// verbatim as the reference name. A run of '[' sets the array rank and the
// remainder is parsed as the element type.
func ParseType(s string) (Type, error) {
	if s == "" {
		return Type{}, errors.InvalidTypeDescriptor(s)
	}
	if s[0] == '[' {
		dims := 1
		for dims < len(s) && s[dims] == '[' {
			dims++
		}
		if dims == len(s) {
			return Type{}, errors.InvalidTypeDescriptor(s)
		}
		if dims > MaxArrayDimensions {
			return Type{}, errors.New(errors.PhaseParse, errors.KindInvalidTypeDescriptor).
				Descriptor(s).
				Value(s).
				Detail("array rank %d exceeds %d", dims, MaxArrayDimensions).
				Build()
		}
		elem, err := parseElement(s, s[dims:])
		if err != nil {
			return Type{}, err
		}
		return Type{kind: KindArray, dimensions: uint8(dims), elem: &elem}, nil
	}
	return parseElement(s, s)
}

// parseElement parses a non-array descriptor. full is the whole input, used
// for error reporting.
func parseElement(full, s string) (Type, error) {
	switch s[0] {
	case 'V':
		return Type{kind: KindVoid}, nil
	case 'Z':
		return Type{kind: KindBoolean}, nil
	case 'B':
		return Type{kind: KindByte}, nil
	case 'S':
		return Type{kind: KindShort}, nil
	case 'C':
		return Type{kind: KindChar}, nil
	case 'I':
		return Type{kind: KindInt}, nil
	case 'J':
		return Type{kind: KindLong}, nil
	case 'F':
		return Type{kind: KindFloat}, nil
	case 'D':
		return Type{kind: KindDouble}, nil
	case 'L':
		return Type{kind: KindReference, name: s[1:]}, nil
	default:
		return Type{}, errors.InvalidTypeDescriptor(full)
	}
}

// MustParseType is like ParseType but panics on error.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind returns the type's kind.
func (t Type) Kind() TypeKind { return t.kind }

// Name returns the reference name, or "" for other kinds.
func (t Type) Name() string { return t.name }

// Dimensions returns the array rank, or 0 for non-array types.
func (t Type) Dimensions() int { return int(t.dimensions) }

// Element returns the innermost element type of an array, or t itself.
func (t Type) Element() Type {
	if t.kind == KindArray {
		return *t.elem
	}
	return t
}

// IsPrimitive reports whether t is void or one of the eight value primitives.
func (t Type) IsPrimitive() bool { return t.kind <= KindDouble }

// IsReference reports whether t is a reference or array type.
func (t Type) IsReference() bool { return t.kind == KindReference || t.kind == KindArray }

// IsWide reports whether values of t occupy two registers.
func (t Type) IsWide() bool { return t.kind == KindLong || t.kind == KindDouble }

// Equal reports whether t and o describe the same type.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind || t.name != o.name || t.dimensions != o.dimensions {
		return false
	}
	if t.kind == KindArray {
		return t.elem.Equal(*o.elem)
	}
	return true
}

// String renders primitives as keywords, references by name and arrays as
// "<element>[<dimensions>]".
func (t Type) String() string {
	switch t.kind {
	case KindReference:
		return t.name
	case KindArray:
		return t.elem.String() + "[" + strconv.Itoa(int(t.dimensions)) + "]"
	default:
		return t.kind.String()
	}
}

// Descriptor renders t back to descriptor form.
func (t Type) Descriptor() string {
	switch t.kind {
	case KindReference:
		return "L" + t.name
	case KindArray:
		return strings.Repeat("[", int(t.dimensions)) + t.elem.Descriptor()
	default:
		if t.kind <= KindDouble {
			return string(kindTags[t.kind])
		}
		return ""
	}
}
