// Package errors provides structured error types for the dexmodel library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries context: a path into the structure being built,
// the descriptor or offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidData).
//		Path("annotation", "elements", "3").
//		Value(0x1c).
//		Detail("value_arg %d out of range", 5).
//		Build()
//
// Or use convenience constructors for the parse failures of the core:
//
//	err := errors.InvalidTypeDescriptor("[[")
//	err := errors.InvalidShortyType('X')
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
