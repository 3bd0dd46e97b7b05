package dex

import (
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/wippyai/dexmodel/errors"
)

// FieldAnnotations are the annotations of one field.
type FieldAnnotations struct {
	annotations []Annotation
	fieldIndex  uint32
}

// NewFieldAnnotations returns the annotations of the field at fieldIndex.
func NewFieldAnnotations(fieldIndex uint32, annotations []Annotation) FieldAnnotations {
	return FieldAnnotations{fieldIndex: fieldIndex, annotations: annotations}
}

// FieldIndex returns the field_ids index of the annotated field.
func (f FieldAnnotations) FieldIndex() uint32 { return f.fieldIndex }

// Annotations returns the field's annotations.
func (f FieldAnnotations) Annotations() []Annotation { return f.annotations }

// MethodAnnotations are the annotations of one method.
type MethodAnnotations struct {
	annotations []Annotation
	methodIndex uint32
}

// NewMethodAnnotations returns the annotations of the method at methodIndex.
func NewMethodAnnotations(methodIndex uint32, annotations []Annotation) MethodAnnotations {
	return MethodAnnotations{methodIndex: methodIndex, annotations: annotations}
}

// MethodIndex returns the method_ids index of the annotated method.
func (m MethodAnnotations) MethodIndex() uint32 { return m.methodIndex }

// Annotations returns the method's annotations.
func (m MethodAnnotations) Annotations() []Annotation { return m.annotations }

// ParameterAnnotations are the annotations on the parameters of one method,
// held as a single set for the method rather than per parameter position.
type ParameterAnnotations struct {
	annotations []Annotation
	methodIndex uint32
}

// NewParameterAnnotations returns the parameter annotations of the method at methodIndex.
func NewParameterAnnotations(methodIndex uint32, annotations []Annotation) ParameterAnnotations {
	return ParameterAnnotations{methodIndex: methodIndex, annotations: annotations}
}

// MethodIndex returns the method_ids index of the method.
func (p ParameterAnnotations) MethodIndex() uint32 { return p.methodIndex }

// Annotations returns the parameter annotations.
func (p ParameterAnnotations) Annotations() []Annotation { return p.annotations }

// AnnotationsDirectory holds a class's annotations: on the class itself, and
// on its fields, methods and method parameters keyed by item index.
//
// The three keyed lists are stored ascending by index with no duplicates in
// the container. NewAnnotationsDirectory keeps them as given; Validate checks
// the ordering and the lookups rely on it.
type AnnotationsDirectory struct {
	class      []Annotation
	fields     []FieldAnnotations
	methods    []MethodAnnotations
	parameters []ParameterAnnotations
}

// NewAnnotationsDirectory aggregates the four annotation lists without
// sorting or de-duplicating them.
func NewAnnotationsDirectory(
	class []Annotation,
	fields []FieldAnnotations,
	methods []MethodAnnotations,
	parameters []ParameterAnnotations,
) *AnnotationsDirectory {
	return &AnnotationsDirectory{
		class:      class,
		fields:     fields,
		methods:    methods,
		parameters: parameters,
	}
}

// ClassAnnotations returns the annotations on the class.
func (d *AnnotationsDirectory) ClassAnnotations() []Annotation { return d.class }

// FieldAnnotations returns the per-field annotations.
func (d *AnnotationsDirectory) FieldAnnotations() []FieldAnnotations { return d.fields }

// MethodAnnotations returns the per-method annotations.
func (d *AnnotationsDirectory) MethodAnnotations() []MethodAnnotations { return d.methods }

// ParameterAnnotations returns the per-method parameter annotations.
func (d *AnnotationsDirectory) ParameterAnnotations() []ParameterAnnotations { return d.parameters }

// ForField returns the annotations of the field at fieldIndex.
func (d *AnnotationsDirectory) ForField(fieldIndex uint32) ([]Annotation, bool) {
	i, ok := slices.BinarySearchFunc(d.fields, fieldIndex, func(e FieldAnnotations, idx uint32) int {
		return compareIndex(e.fieldIndex, idx)
	})
	if !ok {
		return nil, false
	}
	return d.fields[i].annotations, true
}

// ForMethod returns the annotations of the method at methodIndex.
func (d *AnnotationsDirectory) ForMethod(methodIndex uint32) ([]Annotation, bool) {
	i, ok := slices.BinarySearchFunc(d.methods, methodIndex, func(e MethodAnnotations, idx uint32) int {
		return compareIndex(e.methodIndex, idx)
	})
	if !ok {
		return nil, false
	}
	return d.methods[i].annotations, true
}

// ForParameters returns the parameter annotations of the method at methodIndex.
func (d *AnnotationsDirectory) ForParameters(methodIndex uint32) ([]Annotation, bool) {
	i, ok := slices.BinarySearchFunc(d.parameters, methodIndex, func(e ParameterAnnotations, idx uint32) int {
		return compareIndex(e.methodIndex, idx)
	})
	if !ok {
		return nil, false
	}
	return d.parameters[i].annotations, true
}

// Validate checks that the field, method and parameter lists are strictly
// ascending by index, and that every annotation's elements are strictly
// ascending by name.
func (d *AnnotationsDirectory) Validate() error {
	if err := checkAscending("fields", len(d.fields), func(i int) uint32 { return d.fields[i].fieldIndex }); err != nil {
		return err
	}
	if err := checkAscending("methods", len(d.methods), func(i int) uint32 { return d.methods[i].methodIndex }); err != nil {
		return err
	}
	if err := checkAscending("parameters", len(d.parameters), func(i int) uint32 { return d.parameters[i].methodIndex }); err != nil {
		return err
	}
	if err := validateSet("class", d.class); err != nil {
		return err
	}
	for _, f := range d.fields {
		if err := validateSet("field "+strconv.FormatUint(uint64(f.fieldIndex), 10), f.annotations); err != nil {
			return err
		}
	}
	for _, m := range d.methods {
		if err := validateSet("method "+strconv.FormatUint(uint64(m.methodIndex), 10), m.annotations); err != nil {
			return err
		}
	}
	for _, p := range d.parameters {
		if err := validateSet("parameters "+strconv.FormatUint(uint64(p.methodIndex), 10), p.annotations); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the elements are strictly ascending by name index.
// Nested annotations are not visited.
func (a *EncodedAnnotation) Validate() error {
	return checkAscending("elements", len(a.elements), func(i int) uint32 { return a.elements[i].name })
}

func validateSet(what string, set []Annotation) error {
	for i, a := range set {
		if a.EncodedAnnotation == nil {
			continue
		}
		if err := a.Validate(); err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = append([]string{what, strconv.Itoa(i)}, e.Path...)
			}
			return err
		}
	}
	return nil
}

func checkAscending(what string, n int, key func(int) uint32) error {
	for i := 1; i < n; i++ {
		prev, next := key(i-1), key(i)
		switch {
		case next == prev:
			return errors.Duplicate([]string{what, strconv.Itoa(i)}, next)
		case next < prev:
			return errors.Unsorted([]string{what, strconv.Itoa(i)}, prev, next)
		}
	}
	return nil
}
