package term

// Tag is the primary type tag held in the low 3 bits of a compact term's
// first byte (beam_opcodes.hrl).
type Tag byte

const (
	TagLiteral   Tag = 0 // u
	TagInteger   Tag = 1 // i
	TagAtom      Tag = 2 // a
	TagXRegister Tag = 3 // x
	TagYRegister Tag = 4 // y
	TagLabel     Tag = 5 // f
	TagCharacter Tag = 6 // h
	TagExtended  Tag = 7 // z
)

// ExtTag selects an extended term; it occupies the top 4 bits of a byte
// whose primary tag is TagExtended.
type ExtTag byte

const (
	ExtList          ExtTag = 1
	ExtFloatRegister ExtTag = 2
	ExtAllocList     ExtTag = 3
	ExtLiteral       ExtTag = 4
	ExtTypedRegister ExtTag = 5
)

// Tag byte layout
const (
	tagMask      = 0x07 // primary tag
	fitsNibble   = 0x08 // clear: value is the top 4 bits
	fitsElevenBt = 0x10 // clear: 3 high bits in tag + 1 following byte
	sizeShift    = 5    // byte-count field (bits 5..7)
	extendedSize = 0x07 // byte-count field value that signals a nested length
	highBits     = 0xE0

	// minExtendedBytes is the smallest payload carried by the nested-length
	// tier; the nested literal stores the byte count minus this value.
	minExtendedBytes = 9

	// wordBytes is the width of an unsigned machine word.
	wordBytes = 8
)

func (t Tag) String() string {
	switch t {
	case TagLiteral:
		return "u"
	case TagInteger:
		return "i"
	case TagAtom:
		return "a"
	case TagXRegister:
		return "x"
	case TagYRegister:
		return "y"
	case TagLabel:
		return "f"
	case TagCharacter:
		return "h"
	case TagExtended:
		return "z"
	}
	return "?"
}

func extendedTag(sub ExtTag) byte {
	return byte(sub)<<4 | byte(TagExtended)
}
