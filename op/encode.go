package op

import (
	"bytes"
	stderrors "errors"
	"fmt"

	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/term"
)

// EncodeTo writes o to e. The operands must match the catalog shape of o's
// opcode. Shape errors are detected before anything is written; a nested
// term failure can leave a partial instruction in e.
func EncodeTo(e *term.Encoder, o Operation) error {
	if o == nil {
		return errors.InvalidData(errors.PhaseEncode, nil, "nil operation")
	}
	info, ok := Lookup(o.Opcode())
	if !ok {
		return errors.UnknownOpcode(errors.PhaseEncode, byte(o.Opcode()))
	}
	ts := o.Operands()
	if len(ts) != info.Arity() {
		return errors.InvalidData(errors.PhaseEncode, []string{info.Name},
			fmt.Sprintf("%T has %d operands, %s takes %d", o, len(ts), info.Name, info.Arity()))
	}
	for i, operand := range info.Operands {
		if err := operand.Kind.check(ts[i]); err != nil {
			return errors.WithPath(asEncode(err), info.Name, operand.Name)
		}
	}

	e.Byte(byte(info.Code))
	for i, operand := range info.Operands {
		if err := e.Encode(ts[i]); err != nil {
			return errors.WithPath(err, info.Name, operand.Name)
		}
	}
	return nil
}

// Encode returns the bytes of a single instruction.
func Encode(o Operation) ([]byte, error) {
	e := term.NewEncoder()
	if err := EncodeTo(e, o); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// AppendEncode appends the encoding of o to dst.
func AppendEncode(dst []byte, o Operation) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := EncodeTo(term.NewEncoderTo(buf), o); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}

// EncodeStream concatenates the encodings of ops. Failures are reported as
// a *StreamError whose Offset is the output length at the failing
// instruction.
func EncodeStream(ops []Operation) ([]byte, error) {
	e := term.NewEncoder()
	for i, o := range ops {
		offset := e.Len()
		if err := EncodeTo(e, o); err != nil {
			return nil, &StreamError{Err: err, Index: i, Offset: offset}
		}
	}
	return e.Bytes(), nil
}

// asEncode re-tags operand check failures, which term reports in the
// decode phase.
func asEncode(err error) error {
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Phase == errors.PhaseEncode {
		return err
	}
	cp := *e
	cp.Phase = errors.PhaseEncode
	return &cp
}
