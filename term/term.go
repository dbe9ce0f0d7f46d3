package term

import (
	"math/big"
	"strconv"
	"strings"
)

// Kind names a Term variant. The names are used in operand mismatch errors.
type Kind string

const (
	KindLiteral         Kind = "literal"
	KindInteger         Kind = "integer"
	KindAtom            Kind = "atom"
	KindXRegister       Kind = "x_register"
	KindYRegister       Kind = "y_register"
	KindRegister        Kind = "register"
	KindLabel           Kind = "label"
	KindList            Kind = "list"
	KindExtendedLiteral Kind = "extended_literal"
)

// Term is one decoded compact term. The set of implementations is closed:
// Literal, Integer, Atom, XRegister, YRegister, Label, List and
// ExtendedLiteral.
type Term interface {
	Kind() Kind
	String() string
	isTerm()
}

// Register is an XRegister or a YRegister.
type Register interface {
	Term
	Index() uint64
	isRegister()
}

// Literal is a small unsigned index or count.
type Literal struct {
	Value uint64
}

// Integer is an integer constant of unbounded magnitude.
type Integer struct {
	Value *big.Int
}

// NewInteger returns an Integer holding v.
func NewInteger(v int64) Integer {
	return Integer{Value: big.NewInt(v)}
}

// Atom is an index into the atom table.
type Atom struct {
	Value uint64
}

// XRegister is a machine register slot. TypeHint is only meaningful when
// HasTypeHint is set, which happens when the register was read through the
// typed-register extended encoding.
type XRegister struct {
	Value       uint64
	TypeHint    uint64
	HasTypeHint bool
}

// YRegister is a stack frame slot; see XRegister for the type hint.
type YRegister struct {
	Value       uint64
	TypeHint    uint64
	HasTypeHint bool
}

// Label is a jump target.
type Label struct {
	Value uint64
}

// List is a size-prefixed sequence of terms.
type List struct {
	Elements []Term
}

// ExtendedLiteral indexes the literal table, as opposed to Literal which is
// a plain number.
type ExtendedLiteral struct {
	Value uint64
}

func (Literal) Kind() Kind         { return KindLiteral }
func (Integer) Kind() Kind         { return KindInteger }
func (Atom) Kind() Kind            { return KindAtom }
func (XRegister) Kind() Kind       { return KindXRegister }
func (YRegister) Kind() Kind       { return KindYRegister }
func (Label) Kind() Kind           { return KindLabel }
func (List) Kind() Kind            { return KindList }
func (ExtendedLiteral) Kind() Kind { return KindExtendedLiteral }

func (Literal) isTerm()         {}
func (Integer) isTerm()         {}
func (Atom) isTerm()            {}
func (XRegister) isTerm()       {}
func (YRegister) isTerm()       {}
func (Label) isTerm()           {}
func (List) isTerm()            {}
func (ExtendedLiteral) isTerm() {}

func (XRegister) isRegister() {}
func (YRegister) isRegister() {}

func (r XRegister) Index() uint64 { return r.Value }
func (r YRegister) Index() uint64 { return r.Value }

// WithTypeHint returns r annotated with hint.
func (r XRegister) WithTypeHint(hint uint64) XRegister {
	r.TypeHint, r.HasTypeHint = hint, true
	return r
}

// WithTypeHint returns r annotated with hint.
func (r YRegister) WithTypeHint(hint uint64) YRegister {
	r.TypeHint, r.HasTypeHint = hint, true
	return r
}

func (t Literal) String() string { return "lit(" + strconv.FormatUint(t.Value, 10) + ")" }
func (t Atom) String() string    { return "atom(" + strconv.FormatUint(t.Value, 10) + ")" }
func (t Label) String() string   { return "f(" + strconv.FormatUint(t.Value, 10) + ")" }

func (t ExtendedLiteral) String() string {
	return "extlit(" + strconv.FormatUint(t.Value, 10) + ")"
}

func (t Integer) String() string {
	if t.Value == nil {
		return "int(0)"
	}
	return "int(" + t.Value.String() + ")"
}

func (t XRegister) String() string {
	return registerString("x", t.Value, t.TypeHint, t.HasTypeHint)
}

func (t YRegister) String() string {
	return registerString("y", t.Value, t.TypeHint, t.HasTypeHint)
}

func registerString(prefix string, v, hint uint64, typed bool) string {
	s := prefix + "(" + strconv.FormatUint(v, 10) + ")"
	if typed {
		s += "/t" + strconv.FormatUint(hint, 10)
	}
	return s
}

func (t List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range t.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		if e == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)
		return ok && intValue(av).Cmp(intValue(bv)) == 0
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

var zero = new(big.Int)

func intValue(t Integer) *big.Int {
	if t.Value == nil {
		return zero
	}
	return t.Value
}
