package beamfile

import (
	"fmt"

	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/internal/compact"
	"github.com/wippyai/beam-runtime/op"
	"github.com/wippyai/beam-runtime/term"
)

// CodeChunk is the decoded header of the Code chunk.
type CodeChunk struct {
	Bytecode      []byte
	InfoSize      uint32
	Version       uint32
	OpcodeMax     uint32
	LabelCount    uint32
	FunctionCount uint32
}

// fixed header fields after InfoSize
const codeHeaderSize = 16

// Code decodes the Code chunk header. Instruction set versions other than
// op.InstructionSetVersion are rejected.
func (f *File) Code() (*CodeChunk, error) {
	data, err := f.require(ChunkCode)
	if err != nil {
		return nil, err
	}
	r := compact.NewReaderIn(errors.PhaseParse, data)
	c := &CodeChunk{}
	for _, field := range []*uint32{&c.InfoSize, &c.Version, &c.OpcodeMax, &c.LabelCount, &c.FunctionCount} {
		if *field, err = r.ReadU32BE(); err != nil {
			return nil, errors.WithPath(err, ChunkCode)
		}
	}
	if c.Version != op.InstructionSetVersion {
		return nil, errors.UnsupportedVersion(op.InstructionSetVersion, c.Version)
	}
	if c.InfoSize < codeHeaderSize {
		return nil, errors.InvalidData(errors.PhaseParse, []string{ChunkCode},
			fmt.Sprintf("info size %d shorter than header", c.InfoSize))
	}
	start := 4 + uint64(c.InfoSize)
	if start > uint64(len(data)) {
		return nil, errors.Truncated(errors.PhaseParse, len(data), int(start), len(data))
	}
	c.Bytecode = data[start:]
	return c, nil
}

// Program decodes the whole instruction stream of the Code chunk.
func (f *File) Program() ([]op.Operation, error) {
	c, err := f.Code()
	if err != nil {
		return nil, err
	}
	return op.DecodeStream(c.Bytecode)
}

// AtomTable maps atom indices to names. Index 1 is the module name; atom
// index 0 in code is the empty list.
type AtomTable []string

// Name returns the name of atom index i.
func (t AtomTable) Name(i uint64) (string, bool) {
	if i == 0 || i > uint64(len(t)) {
		return "", false
	}
	return t[i-1], true
}

// Atoms decodes the AtU8 chunk, or the older latin1 Atom chunk.
func (f *File) Atoms() (AtomTable, error) {
	c, ok := f.Chunk(ChunkAtomsUTF8)
	if !ok {
		if c, ok = f.Chunk(ChunkAtomsLatin); !ok {
			return nil, errors.NotFound(errors.PhaseParse, "chunk", ChunkAtomsUTF8)
		}
	}
	table, err := parseAtoms(c.Data)
	if err != nil {
		return nil, errors.WithPath(err, c.ID)
	}
	return table, nil
}

func parseAtoms(data []byte) (AtomTable, error) {
	r := compact.NewReaderIn(errors.PhaseParse, data)
	raw, err := r.ReadU32BE()
	if err != nil {
		return nil, err
	}
	count := int64(int32(raw))
	compactLengths := count < 0
	if compactLengths {
		count = -count
	}
	// every atom needs at least its length byte
	if count > int64(r.Len()) {
		return nil, errors.Truncated(errors.PhaseParse, r.Position(), int(count), r.Len())
	}

	table := make(AtomTable, 0, count)
	for i := int64(0); i < count; i++ {
		var n uint64
		if compactLengths {
			d := term.NewDecoder(data[r.Position():])
			t, err := d.Decode()
			if err != nil {
				return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
			}
			lit, err := term.AsLiteral(t)
			if err != nil {
				return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
			}
			if _, err := r.ReadBytes(uint64(d.Offset())); err != nil {
				return nil, err
			}
			n = lit.Value
		} else {
			b, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			n = uint64(b)
		}
		name, err := r.ReadBytes(n)
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
		table = append(table, string(name))
	}
	return table, nil
}

// Import is one ImpT entry. Module and Function are atom indices.
type Import struct {
	Module   uint32
	Function uint32
	Arity    uint32
}

// Export is one ExpT or LocT entry.
type Export struct {
	Function uint32
	Arity    uint32
	Label    uint32
}

// Imports decodes the import table. call_ext destinations index it.
func (f *File) Imports() ([]Import, error) {
	data, err := f.require(ChunkImports)
	if err != nil {
		return nil, err
	}
	rows, err := parseTriples(data)
	if err != nil {
		return nil, errors.WithPath(err, ChunkImports)
	}
	out := make([]Import, len(rows))
	for i, row := range rows {
		out[i] = Import{Module: row[0], Function: row[1], Arity: row[2]}
	}
	return out, nil
}

// Exports decodes the export table.
func (f *File) Exports() ([]Export, error) {
	return f.exports(ChunkExports)
}

// Locals decodes the local function table.
func (f *File) Locals() ([]Export, error) {
	return f.exports(ChunkLocals)
}

func (f *File) exports(id string) ([]Export, error) {
	data, err := f.require(id)
	if err != nil {
		return nil, err
	}
	rows, err := parseTriples(data)
	if err != nil {
		return nil, errors.WithPath(err, id)
	}
	out := make([]Export, len(rows))
	for i, row := range rows {
		out[i] = Export{Function: row[0], Arity: row[1], Label: row[2]}
	}
	return out, nil
}

func parseTriples(data []byte) ([][3]uint32, error) {
	r := compact.NewReaderIn(errors.PhaseParse, data)
	count, err := r.ReadU32BE()
	if err != nil {
		return nil, err
	}
	if uint64(count)*12 > uint64(r.Len()) {
		return nil, errors.Truncated(errors.PhaseParse, r.Position(), int(min(uint64(count)*12, 1<<31)), r.Len())
	}
	rows := make([][3]uint32, count)
	for i := range rows {
		for j := range rows[i] {
			if rows[i][j], err = r.ReadU32BE(); err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}
