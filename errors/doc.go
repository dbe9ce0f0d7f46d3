// Package errors provides structured error types for the beam-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: operand path, expected kind, the offending
// value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("call", "label").
//		Expected("label").
//		Value(actual).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseDecode, "label", actual)
//	err := errors.UnknownOpcode(errors.PhaseDecode, 0xFE)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
