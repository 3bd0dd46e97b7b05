package dex

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/wippyai/dexmodel/errors"
)

// Prototype pairs a shorty descriptor with the full return and parameter types.
type Prototype struct {
	shorty     ShortyDescriptor
	returnType Type
	params     []Type
	hasParams  bool
}

// NewPrototype aggregates a prototype without checking that the shorty agrees
// with the full types; call Validate for that. A nil params slice means the
// prototype has no parameter list.
func NewPrototype(shorty ShortyDescriptor, returnType Type, params []Type) *Prototype {
	return &Prototype{
		shorty:     shorty,
		returnType: returnType,
		params:     params,
		hasParams:  params != nil,
	}
}

// ParsePrototype parses the shorty and every type descriptor and builds a
// prototype. When opts.VerifyPrototypes is set the result is validated.
func ParsePrototype(opts Options, shorty, returnType string, params ...string) (*Prototype, error) {
	sd, err := ParseShorty(shorty)
	if err != nil {
		return nil, err
	}
	ret, err := ParseType(returnType)
	if err != nil {
		return nil, err
	}
	var types []Type
	if len(params) > 0 {
		types = make([]Type, len(params))
		for i, p := range params {
			t, err := ParseType(p)
			if err != nil {
				if e, ok := err.(*errors.Error); ok {
					e.Path = []string{"params", strconv.Itoa(i)}
				}
				return nil, err
			}
			types[i] = t
		}
	}
	p := NewPrototype(sd, ret, types)
	if opts.VerifyPrototypes {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Shorty returns the shorty descriptor.
func (p *Prototype) Shorty() ShortyDescriptor { return p.shorty }

// ReturnType returns the full return type.
func (p *Prototype) ReturnType() Type { return p.returnType }

// Parameters returns the full parameter types and whether a parameter list is present.
func (p *Prototype) Parameters() ([]Type, bool) { return p.params, p.hasParams }

// Validate checks that the shorty and the full types agree position by
// position under the reference collapse rule.
func (p *Prototype) Validate() error {
	if got := ShortyOf(p.returnType); got != p.shorty.ret {
		return errors.PrototypeMismatch([]string{"return"},
			fmt.Sprintf("shorty %s, type %s", p.shorty.ret, p.returnType))
	}
	want := p.shorty.params
	if len(want) != len(p.params) {
		return errors.PrototypeMismatch([]string{"params"},
			fmt.Sprintf("shorty has %d parameters, types have %d", len(want), len(p.params)))
	}
	if slices.EqualFunc(p.params, want, matchesShorty) {
		return nil
	}
	for i, t := range p.params {
		if !matchesShorty(t, want[i]) {
			return errors.PrototypeMismatch([]string{"params", strconv.Itoa(i)},
				fmt.Sprintf("shorty %s, type %s", want[i], p.params[i]))
		}
	}
	return nil
}

func matchesShorty(t Type, s ShortyType) bool {
	return ShortyOf(t) == s
}

// String renders the prototype as "(params)return" using type keywords.
func (p *Prototype) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, t := range p.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	b.WriteString(p.returnType.String())
	return b.String()
}
