package op

import (
	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/term"
)

// OperandKind is the term variant an operand slot accepts.
type OperandKind uint8

const (
	OperandTerm OperandKind = iota
	OperandLiteral
	OperandLabel
	OperandAtom
	OperandRegister
	OperandXRegister
	OperandYRegister
	OperandList
	OperandYRegisterList
)

var operandKindNames = [...]string{
	OperandTerm:          "term",
	OperandLiteral:       "literal",
	OperandLabel:         "label",
	OperandAtom:          "atom",
	OperandRegister:      "register",
	OperandXRegister:     "x_register",
	OperandYRegister:     "y_register",
	OperandList:          "list",
	OperandYRegisterList: "y_register_list",
}

func (k OperandKind) String() string {
	if int(k) < len(operandKindNames) {
		return operandKindNames[k]
	}
	return "unknown"
}

// Operand describes one operand slot of an instruction.
type Operand struct {
	Name string
	Kind OperandKind
}

// check reports whether t is acceptable for the slot. A nil term is never
// acceptable.
func (k OperandKind) check(t term.Term) error {
	var err error
	switch k {
	case OperandTerm:
		if t == nil {
			err = errors.TypeMismatch(errors.PhaseDecode, "term", nil)
		}
	case OperandLiteral:
		_, err = term.AsLiteral(t)
	case OperandLabel:
		_, err = term.AsLabel(t)
	case OperandAtom:
		_, err = term.AsAtom(t)
	case OperandRegister:
		_, err = term.AsRegister(t)
	case OperandXRegister:
		_, err = term.AsXRegister(t)
	case OperandYRegister:
		_, err = term.AsYRegister(t)
	case OperandList:
		_, err = term.AsList(t)
	case OperandYRegisterList:
		_, err = term.AsYRegisters(t)
	default:
		err = errors.Unsupported(errors.PhaseDecode, "operand kind "+k.String())
	}
	return err
}

// args holds operands that already passed check, so the accessors below
// only assert types.
type args []term.Term

func (a args) term(i int) term.Term         { return a[i] }
func (a args) literal(i int) term.Literal   { return a[i].(term.Literal) }
func (a args) label(i int) term.Label       { return a[i].(term.Label) }
func (a args) atom(i int) term.Atom         { return a[i].(term.Atom) }
func (a args) register(i int) term.Register { return a[i].(term.Register) }
func (a args) x(i int) term.XRegister       { return a[i].(term.XRegister) }
func (a args) y(i int) term.YRegister       { return a[i].(term.YRegister) }
func (a args) list(i int) term.List         { return a[i].(term.List) }
func (a args) yregs(i int) []term.YRegister {
	regs, _ := term.AsYRegisters(a[i])
	return regs
}
