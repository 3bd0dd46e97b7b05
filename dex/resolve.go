package dex

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/wippyai/dexmodel/errors"
)

// DefaultTypeCacheSize is the number of parsed types a Resolver keeps by default.
const DefaultTypeCacheSize = 4096

// Tables gives access to the shared tables a container owns.
type Tables interface {
	// String returns the string_ids entry at idx.
	String(idx uint32) (string, error)
	// TypeDescriptor returns the descriptor of the type_ids entry at idx.
	TypeDescriptor(idx uint32) (string, error)
}

// SliceTables is a Tables backed by decoded slices.
type SliceTables struct {
	Strings []string
	// Types holds the string_ids index of each type descriptor.
	Types []uint32
}

// String implements Tables.
func (t *SliceTables) String(idx uint32) (string, error) {
	if uint64(idx) >= uint64(len(t.Strings)) {
		return "", errors.OutOfBounds(errors.PhaseResolve, []string{"string_ids"}, int(idx), len(t.Strings))
	}
	return t.Strings[idx], nil
}

// TypeDescriptor implements Tables.
func (t *SliceTables) TypeDescriptor(idx uint32) (string, error) {
	if uint64(idx) >= uint64(len(t.Types)) {
		return "", errors.OutOfBounds(errors.PhaseResolve, []string{"type_ids"}, int(idx), len(t.Types))
	}
	return t.String(t.Types[idx])
}

// Resolver turns indices held by model values into names and types using
// the container's tables. Parsed types are cached. Safe for concurrent use.
type Resolver struct {
	tables Tables
	types  *lru.Cache
}

// NewResolver creates a resolver over tables.
func NewResolver(tables Tables, opts Options) (*Resolver, error) {
	cache, err := lru.New(opts.typeCacheSize())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseResolve, errors.KindInvalidInput, err, "create type cache")
	}
	return &Resolver{tables: tables, types: cache}, nil
}

// String resolves a string_ids index.
func (r *Resolver) String(idx uint32) (string, error) {
	return r.tables.String(idx)
}

// Type resolves and parses a type_ids index.
func (r *Resolver) Type(idx uint32) (Type, error) {
	if cached, ok := r.types.Get(idx); ok {
		return cached.(Type), nil
	}
	desc, err := r.tables.TypeDescriptor(idx)
	if err != nil {
		return Type{}, err
	}
	t, err := ParseType(desc)
	if err != nil {
		return Type{}, err
	}
	r.types.Add(idx, t)
	return t, nil
}

// ClassType resolves the type of a class.
func (r *Resolver) ClassType(c *Class) (Type, error) {
	return r.Type(c.classIndex)
}

// Superclass resolves a class's superclass. ok is false for the root class.
func (r *Resolver) Superclass(c *Class) (t Type, ok bool, err error) {
	idx, ok := c.SuperclassIndex()
	if !ok {
		return Type{}, false, nil
	}
	t, err = r.Type(idx)
	return t, err == nil, err
}

// SourceFile resolves a class's source file name. ok is false when unknown.
func (r *Resolver) SourceFile(c *Class) (name string, ok bool, err error) {
	idx, ok := c.SourceFileIndex()
	if !ok {
		return "", false, nil
	}
	name, err = r.String(idx)
	return name, err == nil, err
}

// AnnotationType resolves the type of an annotation.
func (r *Resolver) AnnotationType(a *EncodedAnnotation) (Type, error) {
	return r.Type(a.typeIndex)
}

// ElementName resolves the name of an annotation element.
func (r *Resolver) ElementName(e AnnotationElement) (string, error) {
	return r.String(e.name)
}

// Cached returns the number of parsed types held in the cache.
func (r *Resolver) Cached() int {
	return r.types.Len()
}
