package term

import (
	"math/big"

	"github.com/wippyai/beam-runtime/errors"
)

// Unsigned decodes an unsigned word whose tag byte has already been read.
// Values needing the nested-length tier are at least 9 bytes wide and are
// always rejected with an overflow error carrying that width.
func (d *Decoder) Unsigned(tag byte) (uint64, error) {
	switch {
	case tag&fitsNibble == 0:
		return uint64(tag >> 4), nil

	case tag&fitsElevenBt == 0:
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		return uint64(tag&highBits)<<3 | uint64(b), nil

	case tag>>sizeShift != extendedSize:
		// 2..8 bytes, always within a word
		return d.r.ReadUintBE(int(tag>>sizeShift) + 2)

	default:
		n, err := d.extendedSize()
		if err != nil {
			return 0, err
		}
		return 0, errors.TooLarge(errors.PhaseDecode, n, "uint64")
	}
}

// Signed decodes an arbitrary precision integer whose tag byte has already
// been read. Multi-byte payloads are big-endian two's complement.
func (d *Decoder) Signed(tag byte) (*big.Int, error) {
	switch {
	case tag&fitsNibble == 0, tag&fitsElevenBt == 0:
		v, err := d.Unsigned(tag)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(v), nil

	case tag>>sizeShift != extendedSize:
		b, err := d.r.ReadBytes(uint64(tag>>sizeShift) + 2)
		if err != nil {
			return nil, err
		}
		return fromTwosComplement(b), nil

	default:
		n, err := d.extendedSize()
		if err != nil {
			return nil, err
		}
		b, err := d.r.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		return fromTwosComplement(b), nil
	}
}

// extendedSize reads the nested literal of the nested-length tier and
// returns the payload byte count it denotes.
func (d *Decoder) extendedSize() (uint64, error) {
	excess, err := d.literal()
	if err != nil {
		return 0, err
	}
	if excess > ^uint64(0)-minExtendedBytes {
		return ^uint64(0), nil
	}
	return excess + minExtendedBytes, nil
}

// Unsigned writes v under tag using the shortest tier that holds it.
func (e *Encoder) Unsigned(tag Tag, v uint64) {
	switch {
	case v < 0x10:
		e.w.Byte(byte(v<<4) | byte(tag))
	case v < 0x800:
		e.w.Byte(byte(v>>3)&highBits | fitsNibble | byte(tag))
		e.w.Byte(byte(v))
	default:
		b := minimalUnsigned(v)
		// Keep the payload non-negative when read as two's complement,
		// except at full word width where the unsigned path reads it raw.
		if b[0]&0x80 != 0 && len(b) < wordBytes {
			b = append([]byte{0}, b...)
		}
		e.sized(tag, b)
	}
}

// Signed writes v under tag using the shortest tier that holds it.
// A nil v encodes as zero.
func (e *Encoder) Signed(tag Tag, v *big.Int) {
	if v == nil {
		e.Unsigned(tag, 0)
		return
	}

	switch {
	case v.Sign() >= 0 && v.IsUint64() && v.Uint64() < 0x800:
		e.Unsigned(tag, v.Uint64())

	case v.Sign() >= 0:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		e.sized(tag, b)

	case v.IsInt64() && v.Int64() >= -0x8000:
		x := uint16(int16(v.Int64()))
		e.sized(tag, []byte{byte(x >> 8), byte(x)})

	default:
		e.sized(tag, toTwosComplement(v))
	}
}

// sized writes a byte-run payload of at least 2 bytes.
func (e *Encoder) sized(tag Tag, b []byte) {
	if len(b) <= wordBytes {
		e.w.Byte(byte(len(b)-2)<<sizeShift | fitsElevenBt | fitsNibble | byte(tag))
		e.w.WriteBytes(b)
		return
	}
	e.w.Byte(extendedSize<<sizeShift | fitsElevenBt | fitsNibble | byte(tag))
	e.Unsigned(TagLiteral, uint64(len(b)-minExtendedBytes))
	e.w.WriteBytes(b)
}

func minimalUnsigned(v uint64) []byte {
	n := 1
	for x := v >> 8; x != 0; x >>= 8 {
		n++
	}
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func fromTwosComplement(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}
	return v
}

// toTwosComplement returns the minimal big-endian two's complement form of
// a negative v.
func toTwosComplement(v *big.Int) []byte {
	m := new(big.Int).Not(v) // -v-1, non-negative
	n := m.BitLen()/8 + 1
	t := new(big.Int).Lsh(big.NewInt(1), uint(n)*8)
	t.Add(t, v)
	return t.FillBytes(make([]byte, n))
}
