package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // bytecode to terms/operations
	PhaseEncode Phase = "encode" // terms/operations to bytecode
	PhaseParse  Phase = "parse"  // container chunk parsing
	PhaseLoad   Phase = "load"   // file loading
	PhaseConfig Phase = "config" // tool configuration
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownTag         Kind = "unknown_tag"
	KindUnknownOpcode      Kind = "unknown_opcode"
	KindTypeMismatch       Kind = "type_mismatch"
	KindOverflow           Kind = "overflow"
	KindTruncated          Kind = "truncated"
	KindUnsupported        Kind = "unsupported"
	KindUnsupportedVersion Kind = "unsupported_version"
	KindInvalidData        Kind = "invalid_data"
	KindNotFound           Kind = "not_found"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Expected string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Expected != "" {
		b.WriteString(": expected ")
		b.WriteString(e.Expected)
		b.WriteString(", got ")
		fmt.Fprintf(&b, "%v", e.Value)
	}

	if e.Detail != "" {
		if e.Expected != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
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

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// HasKind reports whether any *Error in err's chain has the given kind,
// regardless of phase.
func HasKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		err = stderrors.Unwrap(err)
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Expected sets the name of the expected kind
func (b *Builder) Expected(what string) *Builder {
	b.err.Expected = what
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

// WithPath returns a copy of err with path prepended when err is an *Error.
// Other errors are returned unchanged.
func WithPath(err error, path ...string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = append(append([]string(nil), path...), e.Path...)
	return &cp
}

// Convenience constructors for common error patterns

// UnknownTag creates an error for a tag byte with no defined meaning
func UnknownTag(phase Phase, tag byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownTag,
		Detail: fmt.Sprintf("unknown term tag 0x%02x", tag),
		Value:  tag,
	}
}

// UnknownOpcode creates an error for an opcode absent from the catalog
func UnknownOpcode(phase Phase, code byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownOpcode,
		Detail: fmt.Sprintf("unsupported opcode %d", code),
		Value:  code,
	}
}

// TypeMismatch creates an operand type mismatch error
func TypeMismatch(phase Phase, expected string, actual any) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Expected: expected,
		Value:    actual,
	}
}

// TooLarge creates an error for an integer wider than its target type
func TooLarge(phase Phase, byteSize uint64, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("%d-byte value overflows %s", byteSize, targetType),
		Value:  byteSize,
	}
}

// Truncated creates an unexpected end of input error
func Truncated(phase Phase, offset, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("need %d bytes at offset %d, have %d", need, offset, have),
	}
}

// Unsupported creates an unsupported feature error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// UnsupportedVersion creates an instruction set version mismatch error
func UnsupportedVersion(supported, got uint32) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnsupportedVersion,
		Detail: fmt.Sprintf("supported instruction set version is %d, but got %d", supported, got),
		Value:  got,
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

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
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

// Load creates a file loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
