package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // descriptor and shorty parsing
	PhaseDecode   Phase = "decode"   // bytes to model
	PhaseValidate Phase = "validate" // structural invariant checks
	PhaseResolve  Phase = "resolve"  // shared-table lookups
	PhaseAssemble Phase = "assemble" // class assembly
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidTypeDescriptor   Kind = "invalid_type_descriptor"
	KindInvalidShortyDescriptor Kind = "invalid_shorty_descriptor"
	KindInvalidShortyType       Kind = "invalid_shorty_type"
	KindPrototypeMismatch       Kind = "prototype_mismatch"
	KindUnsorted                Kind = "unsorted"
	KindDuplicate               Kind = "duplicate"
	KindDepthExceeded           Kind = "depth_exceeded"
	KindOutOfBounds             Kind = "out_of_bounds"
	KindInvalidData             Kind = "invalid_data"
	KindInvalidEnum             Kind = "invalid_enum"
	KindUnexpectedEOF           Kind = "unexpected_eof"
	KindInvalidInput            Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Descriptor string
	Detail     string
	Path       []string
}

// Error renders "dex <phase>: <kind> at <path> (descriptor "<d>"): <detail>: <cause>",
// leaving out the parts that are empty.
func (e *Error) Error() string {
	head := "dex " + string(e.Phase) + ": " + string(e.Kind)
	if len(e.Path) > 0 {
		head += " at " + strings.Join(e.Path, ".")
	}
	if e.Descriptor != "" {
		head += fmt.Sprintf(" (descriptor %q)", e.Descriptor)
	}

	parts := []string{head}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the structure path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Descriptor sets the descriptor string involved
func (b *Builder) Descriptor(d string) *Builder {
	b.err.Descriptor = d
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidTypeDescriptor creates an error for a malformed or truncated type descriptor
func InvalidTypeDescriptor(descriptor string) *Error {
	return &Error{
		Phase:      PhaseParse,
		Kind:       KindInvalidTypeDescriptor,
		Descriptor: descriptor,
		Value:      descriptor,
	}
}

// InvalidShortyDescriptor creates an error for an empty shorty descriptor
func InvalidShortyDescriptor(descriptor string) *Error {
	return &Error{
		Phase:      PhaseParse,
		Kind:       KindInvalidShortyDescriptor,
		Descriptor: descriptor,
		Detail:     "shorty descriptor must name a return type",
		Value:      descriptor,
	}
}

// InvalidShortyType creates an error for an unrecognized shorty tag character
func InvalidShortyType(c rune) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidShortyType,
		Detail: fmt.Sprintf("unknown shorty type %q", c),
		Value:  c,
	}
}

// PrototypeMismatch creates an error for a shorty that disagrees with the full signature
func PrototypeMismatch(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindPrototypeMismatch,
		Path:   path,
		Detail: detail,
	}
}

// Unsorted creates an error for an index-keyed collection out of ascending order
func Unsorted(path []string, prev, next uint32) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUnsorted,
		Path:   path,
		Detail: fmt.Sprintf("index %d follows %d", next, prev),
		Value:  next,
	}
}

// Duplicate creates an error for a repeated key in an index-keyed collection
func Duplicate(path []string, index uint32) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindDuplicate,
		Path:   path,
		Detail: fmt.Sprintf("index %d appears more than once", index),
		Value:  index,
	}
}

// DepthExceeded creates an error for nesting deeper than the configured bound
func DepthExceeded(phase Phase, path []string, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("nesting exceeds %d levels", limit),
		Value:  limit,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Path:   path,
		Detail: fmt.Sprintf("invalid %s value %v", enumType, value),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// UnexpectedEOF creates an error for input that ends inside an item
func UnexpectedEOF(phase Phase, path []string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnexpectedEOF,
		Path:   path,
		Detail: "input ends inside item",
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ClassError attaches the class index to a failure raised while assembling one class.
type ClassError struct {
	Err        error
	ClassIndex int
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("class_def %d: %v", e.ClassIndex, e.Err)
}

func (e *ClassError) Unwrap() error {
	return e.Err
}
