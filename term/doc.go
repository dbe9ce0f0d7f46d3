// Package term implements the compact term encoding used for instruction
// operands in BEAM bytecode.
//
// # Tag Byte
//
// The low 3 bits of the first byte select the term kind:
//
//	0 u  Literal          4 y  YRegister
//	1 i  Integer          5 f  Label
//	2 a  Atom             6 h  Character (unsupported)
//	3 x  XRegister        7 z  Extended, sub-tag in the top 4 bits
//
// The remaining bits size the value:
//
//	xxxx0ttt            value 0..15 in the top nibble
//	xxx01ttt yyyyyyyy   11-bit value
//	nnn11ttt <n+2 B>    2..8 big-endian bytes, nnn != 7
//	11111ttt <u> <B..>  nested literal u holds the byte count minus 9
//
// Integers are two's complement in the byte-run tiers; every other kind is
// an unsigned 64-bit word and rejects the nested-length tier as too large.
//
// Extended sub-tags: 1 list, 2 floating-point register (unsupported),
// 3 allocation list (unsupported), 4 extended literal, 5 typed register.
//
// # Decoding
//
//	d := term.NewDecoder(code)
//	t, err := d.Decode()
//
// Operand positions narrow generic terms with the As* functions, which
// return a type_mismatch error naming the expected kind:
//
//	lbl, err := term.AsLabel(t)
//
// # Encoding
//
//	b, err := term.Encode(term.List{Elements: []term.Term{term.Literal{Value: 1}}})
//
// Encode always picks the shortest tier, so decode(encode(t)) equals t.
package term
