package dex

import (
	"strings"

	"github.com/wippyai/dexmodel/errors"
)

// ShortyType is the category tag used in shorty descriptors. Every reference
// and array type collapses to ShortyReference.
type ShortyType byte

const (
	ShortyVoid      ShortyType = 'V'
	ShortyBoolean   ShortyType = 'Z'
	ShortyByte      ShortyType = 'B'
	ShortyShort     ShortyType = 'S'
	ShortyChar      ShortyType = 'C'
	ShortyInt       ShortyType = 'I'
	ShortyLong      ShortyType = 'J'
	ShortyFloat     ShortyType = 'F'
	ShortyDouble    ShortyType = 'D'
	ShortyReference ShortyType = 'L'
)

func (s ShortyType) String() string {
	return string(rune(s))
}

// shortyParam maps a parameter tag character to its category.
func shortyParam(c rune) (ShortyType, error) {
	switch c {
	case 'Z', 'B', 'S', 'C', 'I', 'J', 'F', 'D', 'L':
		return ShortyType(c), nil
	default:
		return 0, errors.InvalidShortyType(c)
	}
}

// shortyReturn maps a return tag character to its category.
func shortyReturn(c rune) (ShortyType, error) {
	if c == 'V' {
		return ShortyVoid, nil
	}
	return shortyParam(c)
}

// ShortyOf collapses a full type to its shorty category.
func ShortyOf(t Type) ShortyType {
	switch t.kind {
	case KindReference, KindArray:
		return ShortyReference
	default:
		return ShortyType(kindTags[t.kind])
	}
}

// ShortyDescriptor is the compact form of a method signature: a return
// category followed by one category per parameter.
type ShortyDescriptor struct {
	params []ShortyType
	ret    ShortyType
}

// ParseShorty parses a shorty descriptor string.
func ParseShorty(s string) (ShortyDescriptor, error) {
	if s == "" {
		return ShortyDescriptor{}, errors.InvalidShortyDescriptor(s)
	}
	var d ShortyDescriptor
	for i, c := range s {
		if i == 0 {
			ret, err := shortyReturn(c)
			if err != nil {
				return ShortyDescriptor{}, err
			}
			d.ret = ret
			d.params = make([]ShortyType, 0, len(s)-1)
			continue
		}
		p, err := shortyParam(c)
		if err != nil {
			return ShortyDescriptor{}, err
		}
		d.params = append(d.params, p)
	}
	return d, nil
}

// NewShortyDescriptor builds a shorty from categories. It does not check
// that params excludes ShortyVoid.
func NewShortyDescriptor(ret ShortyType, params ...ShortyType) ShortyDescriptor {
	return ShortyDescriptor{ret: ret, params: params}
}

// Return returns the return category.
func (d ShortyDescriptor) Return() ShortyType { return d.ret }

// Params returns the parameter categories in declaration order.
func (d ShortyDescriptor) Params() []ShortyType { return d.params }

// String renders the descriptor back to shorty form.
func (d ShortyDescriptor) String() string {
	var b strings.Builder
	b.Grow(len(d.params) + 1)
	b.WriteByte(byte(d.ret))
	for _, p := range d.params {
		b.WriteByte(byte(p))
	}
	return b.String()
}
