package term

import (
	"fmt"

	"github.com/wippyai/beam-runtime/errors"
)

func mismatch(expected Kind, actual Term) error {
	return errors.TypeMismatch(errors.PhaseDecode, string(expected), actual)
}

// AsLiteral narrows t to a Literal.
func AsLiteral(t Term) (Literal, error) {
	if v, ok := t.(Literal); ok {
		return v, nil
	}
	return Literal{}, mismatch(KindLiteral, t)
}

// AsInteger narrows t to an Integer.
func AsInteger(t Term) (Integer, error) {
	if v, ok := t.(Integer); ok {
		return v, nil
	}
	return Integer{}, mismatch(KindInteger, t)
}

// AsAtom narrows t to an Atom.
func AsAtom(t Term) (Atom, error) {
	if v, ok := t.(Atom); ok {
		return v, nil
	}
	return Atom{}, mismatch(KindAtom, t)
}

// AsXRegister narrows t to an XRegister.
func AsXRegister(t Term) (XRegister, error) {
	if v, ok := t.(XRegister); ok {
		return v, nil
	}
	return XRegister{}, mismatch(KindXRegister, t)
}

// AsYRegister narrows t to a YRegister.
func AsYRegister(t Term) (YRegister, error) {
	if v, ok := t.(YRegister); ok {
		return v, nil
	}
	return YRegister{}, mismatch(KindYRegister, t)
}

// AsRegister narrows t to either register kind.
func AsRegister(t Term) (Register, error) {
	if v, ok := t.(Register); ok {
		return v, nil
	}
	return nil, mismatch(KindRegister, t)
}

// AsLabel narrows t to a Label.
func AsLabel(t Term) (Label, error) {
	if v, ok := t.(Label); ok {
		return v, nil
	}
	return Label{}, mismatch(KindLabel, t)
}

// AsList narrows t to a List.
func AsList(t Term) (List, error) {
	if v, ok := t.(List); ok {
		return v, nil
	}
	return List{}, mismatch(KindList, t)
}

// AsExtendedLiteral narrows t to an ExtendedLiteral.
func AsExtendedLiteral(t Term) (ExtendedLiteral, error) {
	if v, ok := t.(ExtendedLiteral); ok {
		return v, nil
	}
	return ExtendedLiteral{}, mismatch(KindExtendedLiteral, t)
}

// AsYRegisters narrows t to a List whose elements are all YRegisters.
func AsYRegisters(t Term) ([]YRegister, error) {
	list, err := AsList(t)
	if err != nil {
		return nil, err
	}
	regs := make([]YRegister, len(list.Elements))
	for i, el := range list.Elements {
		y, err := AsYRegister(el)
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
		regs[i] = y
	}
	return regs, nil
}

// YRegisters wraps regs in a List.
func YRegisters(regs []YRegister) List {
	elements := make([]Term, len(regs))
	for i, r := range regs {
		elements[i] = r
	}
	return List{Elements: elements}
}
