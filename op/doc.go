// Package op holds the BEAM instruction catalog and the decoder and encoder
// for instruction streams.
//
// Every supported opcode has a catalog entry naming its operands and the
// term kind each accepts. Decoding reads the opcode byte, looks it up, then
// reads and checks one compact term per operand:
//
//	ops, err := op.DecodeStream(code.Bytecode)
//	var serr *op.StreamError
//	if errors.As(err, &serr) {
//		// serr.Index instructions decoded, failure at serr.Offset
//	}
//
// Opcodes outside the catalog fail with errors.KindUnknownOpcode. Operand
// errors carry "<instruction>.<operand>" as their path:
//
//	[decode] type_mismatch at call.label: expected label, got atom(1)
//
// Instructions sharing an operand shape share a record type with a Code
// field (CompareOp covers is_lt, is_eq_exact and the rest), in the same way
// that the catalog reuses operand lists.
package op
