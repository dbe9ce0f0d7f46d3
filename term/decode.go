package term

import (
	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/internal/compact"
)

// Decoder reads compact terms sequentially from a byte buffer.
type Decoder struct {
	r *compact.Reader
}

// NewDecoder creates a Decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{r: compact.NewReader(data)}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.r.Position()
}

// Len returns the number of unread bytes.
func (d *Decoder) Len() int {
	return d.r.Len()
}

// ReadByte reads one raw byte.
func (d *Decoder) ReadByte() (byte, error) {
	return d.r.ReadByte()
}

// Decode reads one term.
func (d *Decoder) Decode() (Term, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	return d.DecodeTagged(tag)
}

// DecodeTagged decodes the term introduced by tag, which the caller has
// already consumed.
func (d *Decoder) DecodeTagged(tag byte) (Term, error) {
	switch Tag(tag & tagMask) {
	case TagLiteral:
		v, err := d.Unsigned(tag)
		if err != nil {
			return nil, err
		}
		return Literal{Value: v}, nil

	case TagInteger:
		v, err := d.Signed(tag)
		if err != nil {
			return nil, err
		}
		return Integer{Value: v}, nil

	case TagAtom:
		v, err := d.Unsigned(tag)
		if err != nil {
			return nil, err
		}
		return Atom{Value: v}, nil

	case TagXRegister, TagYRegister:
		return d.register(tag)

	case TagLabel:
		v, err := d.Unsigned(tag)
		if err != nil {
			return nil, err
		}
		return Label{Value: v}, nil

	case TagCharacter:
		return nil, errors.Unsupported(errors.PhaseDecode, "character term")

	default:
		return d.decodeExtended(tag)
	}
}

func (d *Decoder) decodeExtended(tag byte) (Term, error) {
	switch ExtTag(tag >> 4) {
	case ExtList:
		n, err := d.literal()
		if err != nil {
			return nil, err
		}
		// every element takes at least one byte
		if n > uint64(d.r.Len()) {
			return nil, errors.Truncated(errors.PhaseDecode, d.r.Position(), int(min(n, 1<<31)), d.r.Len())
		}
		elements := make([]Term, 0, n)
		for i := uint64(0); i < n; i++ {
			t, err := d.Decode()
			if err != nil {
				return nil, err
			}
			elements = append(elements, t)
		}
		return List{Elements: elements}, nil

	case ExtFloatRegister:
		return nil, errors.Unsupported(errors.PhaseDecode, "floating-point register")

	case ExtAllocList:
		return nil, errors.Unsupported(errors.PhaseDecode, "allocation list")

	case ExtLiteral:
		v, err := d.literal()
		if err != nil {
			return nil, err
		}
		return ExtendedLiteral{Value: v}, nil

	case ExtTypedRegister:
		inner, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch Tag(inner & tagMask) {
		case TagXRegister, TagYRegister:
		default:
			return nil, errors.UnknownTag(errors.PhaseDecode, inner)
		}
		reg, err := d.register(inner)
		if err != nil {
			return nil, err
		}
		hint, err := d.literal()
		if err != nil {
			return nil, err
		}
		if x, ok := reg.(XRegister); ok {
			return x.WithTypeHint(hint), nil
		}
		return reg.(YRegister).WithTypeHint(hint), nil

	default:
		return nil, errors.UnknownTag(errors.PhaseDecode, tag)
	}
}

func (d *Decoder) register(tag byte) (Register, error) {
	v, err := d.Unsigned(tag)
	if err != nil {
		return nil, err
	}
	if Tag(tag&tagMask) == TagXRegister {
		return XRegister{Value: v}, nil
	}
	return YRegister{Value: v}, nil
}

// literal reads a nested unsigned literal, including its own tag byte.
func (d *Decoder) literal() (uint64, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if Tag(tag&tagMask) != TagLiteral {
		return 0, errors.UnknownTag(errors.PhaseDecode, tag)
	}
	return d.Unsigned(tag)
}

// Decode decodes exactly one term from data. Trailing bytes are an error.
func Decode(data []byte) (Term, error) {
	d := NewDecoder(data)
	t, err := d.Decode()
	if err != nil {
		return nil, err
	}
	if d.Len() != 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "trailing bytes after term")
	}
	return t, nil
}
