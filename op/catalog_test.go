package op

import (
	"testing"

	"github.com/wippyai/beam-runtime/term"
)

func sampleOperand(k OperandKind) term.Term {
	switch k {
	case OperandLiteral:
		return term.Literal{Value: 1}
	case OperandLabel:
		return term.Label{Value: 2}
	case OperandAtom:
		return term.Atom{Value: 3}
	case OperandRegister, OperandXRegister:
		return term.XRegister{Value: 4}
	case OperandYRegister:
		return term.YRegister{Value: 5}
	case OperandList:
		return term.List{Elements: []term.Term{term.Literal{Value: 6}, term.Label{Value: 7}}}
	case OperandYRegisterList:
		return term.YRegisters([]term.YRegister{{Value: 0}, {Value: 1}})
	default:
		return term.NewInteger(-1)
	}
}

func sampleArgs(info *Info) args {
	a := make(args, len(info.Operands))
	for i, operand := range info.Operands {
		a[i] = sampleOperand(operand.Kind)
	}
	return a
}

func TestCatalogBuild(t *testing.T) {
	for _, info := range Catalog() {
		t.Run(info.Name, func(t *testing.T) {
			o := info.build(info.Code, sampleArgs(info))
			if o.Opcode() != info.Code {
				t.Fatalf("Opcode() = %d, want %d", o.Opcode(), info.Code)
			}
			got := o.Operands()
			if len(got) != info.Arity() {
				t.Fatalf("len(Operands()) = %d, want %d", len(got), info.Arity())
			}
			want := sampleArgs(info)
			for i := range got {
				if !term.Equal(got[i], want[i]) {
					t.Errorf("operand %s = %v, want %v", info.Operands[i].Name, got[i], want[i])
				}
			}
		})
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	for _, info := range Catalog() {
		t.Run(info.Name, func(t *testing.T) {
			o := info.build(info.Code, sampleArgs(info))
			data, err := Encode(o)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if data[0] != byte(info.Code) {
				t.Fatalf("first byte = %d, want %d", data[0], info.Code)
			}
			back, err := DecodeBytes(data)
			if err != nil {
				t.Fatalf("DecodeBytes(% x): %v", data, err)
			}
			if back.Opcode() != o.Opcode() {
				t.Fatalf("opcode = %s, want %s", back.Opcode(), o.Opcode())
			}
			got, want := back.Operands(), o.Operands()
			for i := range want {
				if !term.Equal(got[i], want[i]) {
					t.Errorf("operand %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestCatalogNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, info := range Catalog() {
		if seen[info.Name] {
			t.Errorf("duplicate name %s", info.Name)
		}
		seen[info.Name] = true
		if info.build == nil {
			t.Errorf("%s has no builder", info.Name)
		}
		for _, operand := range info.Operands {
			if operand.Name == "" {
				t.Errorf("%s has an unnamed operand", info.Name)
			}
		}
	}
}

func TestOperandKindString(t *testing.T) {
	tests := []struct {
		kind OperandKind
		want string
	}{
		{OperandTerm, "term"},
		{OperandLabel, "label"},
		{OperandYRegisterList, "y_register_list"},
		{OperandKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OperandKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
