// Package beamruntime decodes and encodes compiled BEAM bytecode.
//
// # Architecture Overview
//
//	beamruntime/         Root package with module loading helpers
//	├── term/            Compact term codec and operand coercion
//	├── op/              Instruction catalog, decoder and encoder
//	├── beamfile/        FOR1/BEAM container and chunk tables
//	├── errors/          Structured error types for debugging
//	├── internal/compact Byte cursor shared by the codecs
//	└── cmd/beamdump/    Listing tool with an interactive browser
//
// # Quick Start
//
//	mod, err := beamruntime.LoadModule(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, fn := range mod.Functions {
//	    name, _ := mod.Atoms.Name(fn.Name.Value)
//	    fmt.Printf("%s/%d: %d instructions\n", name, fn.Arity.Value, len(fn.Ops))
//	}
//
// Raw instruction streams go through DecodeCode and EncodeCode, which are
// exact inverses for every supported instruction:
//
//	ops, err := beamruntime.DecodeCode(code.Bytecode)
//	out, err := beamruntime.EncodeCode(ops)
//
// # Errors
//
// All packages return *errors.Error values carrying a phase, a kind and,
// for operands, a path such as "call.label". Stream failures wrap them in
// *op.StreamError with the instruction index and byte offset.
//
// # Logging
//
// The op and beamfile packages log through zap. Loggers default to no-op;
// install one with op.SetLogger and beamfile.SetLogger.
package beamruntime
