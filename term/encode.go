package term

import (
	"bytes"
	"fmt"

	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/internal/compact"
)

// Encoder writes compact terms to a buffer.
type Encoder struct {
	w *compact.Writer
}

// NewEncoder creates an Encoder with an empty buffer.
func NewEncoder() *Encoder {
	return &Encoder{w: compact.NewWriter()}
}

// NewEncoderTo creates an Encoder appending to buf.
func NewEncoderTo(buf *bytes.Buffer) *Encoder {
	return &Encoder{w: compact.NewWriterTo(buf)}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.w.Bytes()
}

// Len returns the number of bytes written.
func (e *Encoder) Len() int {
	return e.w.Len()
}

// Byte writes one raw byte.
func (e *Encoder) Byte(b byte) {
	e.w.Byte(b)
}

// Encode writes t.
func (e *Encoder) Encode(t Term) error {
	switch v := t.(type) {
	case Literal:
		e.Unsigned(TagLiteral, v.Value)
	case Integer:
		e.Signed(TagInteger, v.Value)
	case Atom:
		e.Unsigned(TagAtom, v.Value)
	case XRegister:
		e.register(TagXRegister, v.Value, v.TypeHint, v.HasTypeHint)
	case YRegister:
		e.register(TagYRegister, v.Value, v.TypeHint, v.HasTypeHint)
	case Label:
		e.Unsigned(TagLabel, v.Value)
	case List:
		e.w.Byte(extendedTag(ExtList))
		e.Unsigned(TagLiteral, uint64(len(v.Elements)))
		for i, el := range v.Elements {
			if err := e.Encode(el); err != nil {
				return errors.WithPath(err, fmt.Sprintf("[%d]", i))
			}
		}
	case ExtendedLiteral:
		e.w.Byte(extendedTag(ExtLiteral))
		e.Unsigned(TagLiteral, v.Value)
	case nil:
		return errors.InvalidData(errors.PhaseEncode, nil, "nil term")
	default:
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Value(t).
			Detail("unknown term type %T", t).
			Build()
	}
	return nil
}

func (e *Encoder) register(tag Tag, v, hint uint64, typed bool) {
	if typed {
		e.w.Byte(extendedTag(ExtTypedRegister))
	}
	e.Unsigned(tag, v)
	if typed {
		e.Unsigned(TagLiteral, hint)
	}
}

// Encode returns the compact encoding of t.
func Encode(t Term) ([]byte, error) {
	e := NewEncoder()
	if err := e.Encode(t); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// MustEncode is like Encode but panics on error. Intended for tests and
// static tables.
func MustEncode(t Term) []byte {
	b, err := Encode(t)
	if err != nil {
		panic(err)
	}
	return b
}
