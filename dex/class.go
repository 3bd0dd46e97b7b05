package dex

import (
	"fmt"

	dexmodel "github.com/wippyai/dexmodel"
	"github.com/wippyai/dexmodel/errors"
)

// NoIndex marks an absent index, as in class_def_item.
const NoIndex uint32 = 0xffffffff

// Class is an assembled class definition.
//
// Every cross-reference is an index into a table owned by the container;
// nothing here resolves them.
type Class struct {
	annotations     *AnnotationsDirectory
	data            dexmodel.ClassBody
	staticValues    *Array
	interfaces      []Type
	classIndex      uint32
	accessFlags     AccessFlags
	superclassIndex uint32
	sourceFileIndex uint32
}

// NewClass assembles a class. superclassIndex and sourceFileIndex may be
// NoIndex; annotations, data and staticValues may be nil. Nothing is
// validated; see CheckStaticValues.
func NewClass(
	classIndex uint32,
	accessFlags AccessFlags,
	superclassIndex uint32,
	interfaces []Type,
	sourceFileIndex uint32,
	annotations *AnnotationsDirectory,
	data dexmodel.ClassBody,
	staticValues *Array,
) *Class {
	return &Class{
		classIndex:      classIndex,
		accessFlags:     accessFlags,
		superclassIndex: superclassIndex,
		interfaces:      interfaces,
		sourceFileIndex: sourceFileIndex,
		annotations:     annotations,
		data:            data,
		staticValues:    staticValues,
	}
}

// ClassIndex returns the type_ids index of this class.
func (c *Class) ClassIndex() uint32 { return c.classIndex }

// AccessFlags returns the class's access flags.
func (c *Class) AccessFlags() AccessFlags { return c.accessFlags }

// SuperclassIndex returns the type_ids index of the superclass. It is absent
// only for the root of the hierarchy.
func (c *Class) SuperclassIndex() (uint32, bool) {
	return c.superclassIndex, c.superclassIndex != NoIndex
}

// Interfaces returns the implemented interfaces in declaration order.
func (c *Class) Interfaces() []Type { return c.interfaces }

// SourceFileIndex returns the string_ids index of the source file name, if known.
func (c *Class) SourceFileIndex() (uint32, bool) {
	return c.sourceFileIndex, c.sourceFileIndex != NoIndex
}

// Annotations returns the class's annotations directory, or nil.
func (c *Class) Annotations() *AnnotationsDirectory { return c.annotations }

// Data returns the class body produced by the class-body decoder, or nil.
func (c *Class) Data() dexmodel.ClassBody { return c.data }

// StaticValues returns the initial values of the static fields, or nil.
//
// The values are in the order of the static fields in the class body. The
// array may be shorter than the field list: the remaining fields take their
// type's zero value.
func (c *Class) StaticValues() *Array { return c.staticValues }

// StaticValue returns the initial value of the i-th static field, whose type
// is fieldType.
func (c *Class) StaticValue(i int, fieldType Type) Value {
	if i >= 0 && i < c.staticValues.Len() {
		return c.staticValues.At(i)
	}
	return ZeroValue(fieldType)
}

// CheckStaticValues reports whether the static values fit a class body with
// staticFields static fields.
func (c *Class) CheckStaticValues(staticFields int) error {
	if n := c.staticValues.Len(); n > staticFields {
		return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
			Path("static_values").
			Value(n).
			Detail("%d static values for %d static fields", n, staticFields).
			Build()
	}
	return nil
}

// String renders the class identity for logs.
func (c *Class) String() string {
	return fmt.Sprintf("class_def{type=%d flags=%q}", c.classIndex, c.accessFlags.Format(OwnerClass))
}
