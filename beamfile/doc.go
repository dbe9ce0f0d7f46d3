// Package beamfile reads the IFF container of compiled BEAM modules.
//
// A file is a FOR1 form of type BEAM holding 4-byte aligned chunks. Parse
// only splits chunks; accessors decode on demand:
//
//	f, err := beamfile.Load("lists.beam")
//	code, err := f.Code()        // header plus raw bytecode
//	ops, err := f.Program()      // decoded instructions
//	atoms, err := f.Atoms()
//
// The literal table and other compressed chunks are exposed only as raw
// bytes through Chunk.
package beamfile
