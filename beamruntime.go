package beamruntime

import (
	"github.com/wippyai/beam-runtime/beamfile"
	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/op"
)

// Module is a parsed BEAM file with its code decoded.
type Module struct {
	File      *beamfile.File
	Code      *beamfile.CodeChunk
	Atoms     beamfile.AtomTable
	Imports   []beamfile.Import
	Exports   []beamfile.Export
	Ops       []op.Operation
	Functions []op.Function
}

// LoadModule parses a BEAM container and decodes its Code chunk. The atom
// table and Code chunk are required; import and export tables are
// optional.
func LoadModule(data []byte) (*Module, error) {
	f, err := beamfile.Parse(data)
	if err != nil {
		return nil, err
	}
	m := &Module{File: f}
	if m.Code, err = f.Code(); err != nil {
		return nil, err
	}
	if m.Atoms, err = f.Atoms(); err != nil {
		return nil, err
	}
	if m.Imports, err = f.Imports(); err != nil && !errors.HasKind(err, errors.KindNotFound) {
		return nil, err
	}
	if m.Exports, err = f.Exports(); err != nil && !errors.HasKind(err, errors.KindNotFound) {
		return nil, err
	}
	if m.Ops, err = op.DecodeStream(m.Code.Bytecode); err != nil {
		return nil, err
	}
	_, m.Functions = op.SplitFunctions(m.Ops)
	return m, nil
}

// Name returns the module name, atom 1.
func (m *Module) Name() string {
	name, _ := m.Atoms.Name(1)
	return name
}

// Function finds a function by name and arity.
func (m *Module) Function(name string, arity uint64) (op.Function, bool) {
	for _, fn := range m.Functions {
		if n, ok := m.Atoms.Name(fn.Name.Value); ok && n == name && fn.Arity.Value == arity {
			return fn, true
		}
	}
	return op.Function{}, false
}

// DecodeCode decodes a complete instruction stream.
func DecodeCode(bytecode []byte) ([]op.Operation, error) {
	return op.DecodeStream(bytecode)
}

// EncodeCode encodes ops back into an instruction stream.
func EncodeCode(ops []op.Operation) ([]byte, error) {
	return op.EncodeStream(ops)
}
