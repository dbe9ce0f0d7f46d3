package op_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"slices"
	"testing"

	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/op"
	"github.com/wippyai/beam-runtime/term"
)

func lit(v uint64) term.Literal { return term.Literal{Value: v} }
func atom(v uint64) term.Atom   { return term.Atom{Value: v} }
func label(v uint64) term.Label { return term.Label{Value: v} }
func x(v uint64) term.XRegister { return term.XRegister{Value: v} }
func y(v uint64) term.YRegister { return term.YRegister{Value: v} }

// function: label 1; line 0; func_info atom(1) atom(2) 0; label 2; move x1 x0; return
var sampleFunction = []byte{
	1, 0x10,
	153, 0x00,
	2, 0x12, 0x22, 0x00,
	1, 0x20,
	64, 0x13, 0x03,
	19,
}

func TestDecodeKnownEncodings(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  op.Operation
	}{
		{"label", []byte{1, 0x10}, op.LabelOp{Number: lit(1)}},
		{"func_info", []byte{2, 0x12, 0x22, 0x00}, op.FuncInfoOp{Module: atom(1), Function: atom(2), Arity: lit(0)}},
		{"int_code_end", []byte{3}, op.SimpleOp{Code: op.OpIntCodeEnd}},
		{"return", []byte{19}, op.SimpleOp{Code: op.OpReturn}},
		{"move", []byte{64, 0x13, 0x03}, op.MoveOp{Source: x(1), Destination: x(0)}},
		{"move to y", []byte{64, 0x21, 0x14}, op.MoveOp{Source: term.NewInteger(2), Destination: y(1)}},
		{"call_ext", []byte{7, 0x10, 0x00}, op.CallExtOp{Code: op.OpCallExt, Arity: lit(1), Destination: lit(0)}},
		{"call", []byte{4, 0x20, 0x35}, op.CallOp{Code: op.OpCall, Arity: lit(2), Label: label(3)}},
		{"is_tagged_tuple", []byte{159, 0x55, 0x03, 0x20, 0x32},
			op.IsTaggedTupleOp{Fail: label(5), Register: x(0), Arity: lit(2), Tag: atom(3)}},
		{"is_eq_exact", []byte{43, 0x45, 0x03, 0x12},
			op.CompareOp{Code: op.OpIsEqExact, Fail: label(4), Arg1: x(0), Arg2: atom(1)}},
		{"try", []byte{104, 0x04, 0x75}, op.TryOp{Register: y(0), Label: label(7)}},
		{"init_yregs", []byte{172, 0x17, 0x20, 0x04, 0x14},
			op.InitYregsOp{Registers: []term.YRegister{y(0), y(1)}}},
		{"typed move", []byte{64, 0x57, 0x13, 0x20, 0x03},
			op.MoveOp{Source: x(1).WithTypeHint(2), Destination: x(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := op.DecodeBytes(tt.input)
			if err != nil {
				t.Fatalf("DecodeBytes: %v", err)
			}
			if got.Opcode() != tt.want.Opcode() {
				t.Fatalf("opcode = %s, want %s", got.Opcode(), tt.want.Opcode())
			}
			gotOps, wantOps := got.Operands(), tt.want.Operands()
			if len(gotOps) != len(wantOps) {
				t.Fatalf("got %d operands, want %d", len(gotOps), len(wantOps))
			}
			for i := range wantOps {
				if !term.Equal(gotOps[i], wantOps[i]) {
					t.Errorf("operand %d = %v, want %v", i, gotOps[i], wantOps[i])
				}
			}

			encoded, err := op.Encode(got)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(encoded, tt.input) {
				t.Errorf("Encode = % x, want % x", encoded, tt.input)
			}
		})
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	for _, code := range []byte{0, 26, 200, 255} {
		d := term.NewDecoder([]byte{code, 0x10, 0x20})
		_, err := op.Decode(d)
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindUnknownOpcode {
			t.Fatalf("opcode %d: err = %v, want unknown_opcode", code, err)
		}
		if e.Value != code {
			t.Errorf("opcode %d: Value = %v", code, e.Value)
		}
		if d.Offset() != 1 {
			t.Errorf("opcode %d: consumed %d bytes, want 1", code, d.Offset())
		}
	}
}

func TestDecodeOperandMismatch(t *testing.T) {
	// call with an atom where the label belongs
	_, err := op.DecodeBytes([]byte{4, 0x20, 0x12})
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %v, want *errors.Error", err)
	}
	if e.Kind != errors.KindTypeMismatch || e.Expected != "label" {
		t.Errorf("got kind %s expected %q", e.Kind, e.Expected)
	}
	if !slices.Equal(e.Path, []string{"call", "label"}) {
		t.Errorf("Path = %v", e.Path)
	}
	want := "[decode] type_mismatch at call.label: expected label, got atom(1)"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		kind  errors.Kind
		path  []string
	}{
		{"empty", nil, errors.KindTruncated, nil},
		{"missing operand", []byte{64, 0x03}, errors.KindTruncated, []string{"move", "destination"}},
		{"literal destination", []byte{64, 0x03, 0x10}, errors.KindTypeMismatch, []string{"move", "destination"}},
		{"y list with x", []byte{172, 0x17, 0x10, 0x03}, errors.KindTypeMismatch, []string{"init_yregs", "registers", "[0]"}},
		{"unknown tag operand", []byte{72, 0x07}, errors.KindUnknownTag, []string{"badmatch", "arg"}},
		{"character operand", []byte{72, 0x06}, errors.KindUnsupported, []string{"badmatch", "arg"}},
		{"trailing bytes", []byte{19, 19}, errors.KindInvalidData, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := op.DecodeBytes(tt.input)
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("err = %v, want *errors.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", e.Kind, tt.kind)
			}
			if tt.path != nil && !slices.Equal(e.Path, tt.path) {
				t.Errorf("Path = %v, want %v", e.Path, tt.path)
			}
		})
	}
}

func TestDecodeStream(t *testing.T) {
	data := append(slices.Clone(sampleFunction), 3)
	ops, err := op.DecodeStream(data)
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}
	wantCodes := []op.Opcode{op.OpLabel, op.OpLine, op.OpFuncInfo, op.OpLabel, op.OpMove, op.OpReturn, op.OpIntCodeEnd}
	if len(ops) != len(wantCodes) {
		t.Fatalf("decoded %d instructions, want %d", len(ops), len(wantCodes))
	}
	for i, o := range ops {
		if o.Opcode() != wantCodes[i] {
			t.Errorf("ops[%d] = %s, want %s", i, o.Opcode(), wantCodes[i])
		}
	}

	empty, err := op.DecodeStream(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("DecodeStream(nil) = %v, %v", empty, err)
	}
}

func TestDecodeStreamTrailingByte(t *testing.T) {
	data := append(slices.Clone(sampleFunction), 0xFF)
	_, err := op.DecodeStream(data)

	var serr *op.StreamError
	if !stderrors.As(err, &serr) {
		t.Fatalf("err = %v, want *op.StreamError", err)
	}
	if serr.Index != 6 || serr.Offset != len(sampleFunction) {
		t.Errorf("Index, Offset = %d, %d; want 6, %d", serr.Index, serr.Offset, len(sampleFunction))
	}
	if !errors.HasKind(err, errors.KindUnknownOpcode) {
		t.Errorf("err = %v, want unknown_opcode", err)
	}
}

func TestDecodeStreamTruncated(t *testing.T) {
	data := slices.Clone(sampleFunction)
	data = append(data, 64, 0x13)
	_, err := op.DecodeStream(data)
	var serr *op.StreamError
	if !stderrors.As(err, &serr) {
		t.Fatalf("err = %v, want *op.StreamError", err)
	}
	if serr.Index != 6 {
		t.Errorf("Index = %d, want 6", serr.Index)
	}
	if !errors.HasKind(err, errors.KindTruncated) {
		t.Errorf("err = %v, want truncated", err)
	}
}

func TestEncodeStream(t *testing.T) {
	ops := []op.Operation{
		op.LabelOp{Number: lit(1)},
		op.LineOp{Index: lit(0)},
		op.FuncInfoOp{Module: atom(1), Function: atom(2), Arity: lit(0)},
		op.LabelOp{Number: lit(2)},
		op.MoveOp{Source: x(1), Destination: x(0)},
		op.SimpleOp{Code: op.OpReturn},
	}
	got, err := op.EncodeStream(ops)
	if err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}
	if !bytes.Equal(got, sampleFunction) {
		t.Errorf("EncodeStream = % x, want % x", got, sampleFunction)
	}
}

func TestEncodeStreamError(t *testing.T) {
	ops := []op.Operation{
		op.SimpleOp{Code: op.OpReturn},
		op.MoveOp{Source: x(1)},
	}
	_, err := op.EncodeStream(ops)
	var serr *op.StreamError
	if !stderrors.As(err, &serr) {
		t.Fatalf("err = %v, want *op.StreamError", err)
	}
	if serr.Index != 1 || serr.Offset != 1 {
		t.Errorf("Index, Offset = %d, %d; want 1, 1", serr.Index, serr.Offset)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		op   op.Operation
		kind errors.Kind
		path []string
	}{
		{"nil", nil, errors.KindInvalidData, nil},
		{"unknown opcode", op.SimpleOp{Code: 200}, errors.KindUnknownOpcode, nil},
		{"shape mismatch", op.CompareOp{Code: op.OpMove, Fail: label(1), Arg1: x(0), Arg2: x(1)},
			errors.KindInvalidData, []string{"move"}},
		{"nil register", op.MoveOp{Source: x(1)}, errors.KindTypeMismatch, []string{"move", "destination"}},
		{"nil list element", op.PutTuple2Op{Destination: x(0), Elements: term.List{Elements: []term.Term{nil}}},
			errors.KindInvalidData, []string{"put_tuple2", "elements", "[0]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := op.Encode(tt.op)
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("err = %v, want *errors.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", e.Kind, tt.kind)
			}
			if e.Phase != errors.PhaseEncode {
				t.Errorf("Phase = %s, want encode", e.Phase)
			}
			if tt.path != nil && !slices.Equal(e.Path, tt.path) {
				t.Errorf("Path = %v, want %v", e.Path, tt.path)
			}
		})
	}
}

func TestAppendEncode(t *testing.T) {
	dst := []byte{0xAA}
	got, err := op.AppendEncode(dst, op.SimpleOp{Code: op.OpReturn})
	if err != nil {
		t.Fatalf("AppendEncode: %v", err)
	}
	if !bytes.Equal(got, []byte{0xAA, 19}) {
		t.Errorf("AppendEncode = % x", got)
	}

	if _, err := op.AppendEncode(dst, op.SimpleOp{Code: 0}); err == nil {
		t.Error("expected error for opcode 0")
	}
}

func TestDecodeAll(t *testing.T) {
	streams := [][]byte{
		sampleFunction,
		{19, 3},
		{},
		{1, 0x30, 19},
	}
	results, err := op.DecodeAll(context.Background(), streams, 2)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	wantLens := []int{6, 2, 0, 2}
	for i, ops := range results {
		if len(ops) != wantLens[i] {
			t.Errorf("stream %d: %d instructions, want %d", i, len(ops), wantLens[i])
		}
	}
}

func TestDecodeAllError(t *testing.T) {
	streams := [][]byte{sampleFunction, {19, 0xFF}}
	_, err := op.DecodeAll(context.Background(), streams, 0)
	var serr *op.StreamError
	if !stderrors.As(err, &serr) {
		t.Fatalf("err = %v, want *op.StreamError", err)
	}
	if serr.Index != 1 || serr.Offset != 1 {
		t.Errorf("Index, Offset = %d, %d; want 1, 1", serr.Index, serr.Offset)
	}
}

func TestDecodeAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := op.DecodeAll(ctx, [][]byte{sampleFunction}, 1)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSplitFunctions(t *testing.T) {
	second := []byte{
		1, 0x30,
		2, 0x12, 0x32, 0x10,
		1, 0x40,
		19,
	}
	data := append(append(append([]byte{153, 0x10}, sampleFunction...), second...), 3)
	ops, err := op.DecodeStream(data)
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}

	prelude, funcs := op.SplitFunctions(ops)
	if len(prelude) != 0 {
		t.Errorf("prelude = %v, want empty", prelude)
	}
	if len(funcs) != 2 {
		t.Fatalf("got %d functions, want 2", len(funcs))
	}

	f := funcs[0]
	if f.Name != atom(2) || f.Module != atom(1) || f.Arity != lit(0) {
		t.Errorf("funcs[0] = %v/%v/%v", f.Module, f.Name, f.Arity)
	}
	// the leading line belongs to the first function too
	if len(f.Ops) != 7 {
		t.Errorf("funcs[0] has %d instructions, want 7", len(f.Ops))
	}
	if entry, ok := f.Entry(); !ok || entry != 2 {
		t.Errorf("funcs[0].Entry() = %d, %v", entry, ok)
	}

	g := funcs[1]
	if g.Name != atom(3) || g.Arity != lit(1) {
		t.Errorf("funcs[1] = %v/%v", g.Name, g.Arity)
	}
	if len(g.Ops) != 4 {
		t.Errorf("funcs[1] has %d instructions, want 4", len(g.Ops))
	}
	if last := g.Ops[len(g.Ops)-1]; last.Opcode() != op.OpReturn {
		t.Errorf("funcs[1] ends with %s", last.Opcode())
	}
}

func TestSplitFunctionsPrelude(t *testing.T) {
	ops := []op.Operation{
		op.SimpleOp{Code: op.OpReturn},
		op.SimpleOp{Code: op.OpIntCodeEnd},
	}
	prelude, funcs := op.SplitFunctions(ops)
	if len(funcs) != 0 || len(prelude) != 1 {
		t.Errorf("prelude %d, funcs %d; want 1, 0", len(prelude), len(funcs))
	}
}

func TestCheckEnd(t *testing.T) {
	if err := op.CheckEnd([]op.Operation{op.SimpleOp{Code: op.OpIntCodeEnd}}); err != nil {
		t.Errorf("CheckEnd: %v", err)
	}
	if err := op.CheckEnd(nil); !errors.HasKind(err, errors.KindInvalidData) {
		t.Errorf("CheckEnd(nil) = %v", err)
	}
	if err := op.CheckEnd([]op.Operation{op.SimpleOp{Code: op.OpReturn}}); err == nil {
		t.Error("expected error without int_code_end")
	}
}

func TestLookup(t *testing.T) {
	info, ok := op.Lookup(op.OpBsGetInteger2)
	if !ok || info.Name != "bs_get_integer2" || info.Arity() != 7 {
		t.Fatalf("Lookup(117) = %+v, %v", info, ok)
	}
	if _, ok := op.Lookup(0); ok {
		t.Error("Lookup(0) should fail")
	}
	byName, ok := op.LookupName("move")
	if !ok || byName.Code != op.OpMove {
		t.Errorf("LookupName(move) = %+v, %v", byName, ok)
	}
	if _, ok := op.LookupName("bogus"); ok {
		t.Error("LookupName(bogus) should fail")
	}

	all := op.Catalog()
	for i := 1; i < len(all); i++ {
		if all[i-1].Code >= all[i].Code {
			t.Fatalf("Catalog not sorted at %d", i)
		}
	}
	if op.MaxOpcode() != all[len(all)-1].Code {
		t.Errorf("MaxOpcode = %d", op.MaxOpcode())
	}
}

func TestNameAndArity(t *testing.T) {
	o := op.CompareOp{Code: op.OpIsLt}
	if op.Name(o) != "is_lt" || op.Arity(o) != 3 {
		t.Errorf("Name, Arity = %s, %d", op.Name(o), op.Arity(o))
	}
	unknown := op.SimpleOp{Code: 250}
	if op.Name(unknown) != "opcode(250)" || op.Arity(unknown) != -1 {
		t.Errorf("Name, Arity = %s, %d", op.Name(unknown), op.Arity(unknown))
	}
}

func TestSplitFunctionsEmptyBody(t *testing.T) {
	ops := []op.Operation{
		op.LabelOp{Number: lit(1)},
		op.FuncInfoOp{Module: atom(1), Function: atom(2), Arity: lit(0)},
		op.LabelOp{Number: lit(2)},
		op.LabelOp{Number: lit(3)},
		op.LineOp{Index: lit(1)},
		op.FuncInfoOp{Module: atom(1), Function: atom(3), Arity: lit(0)},
		op.LabelOp{Number: lit(4)},
		op.SimpleOp{Code: op.OpReturn},
		op.SimpleOp{Code: op.OpIntCodeEnd},
	}

	_, funcs := op.SplitFunctions(ops)
	if len(funcs) != 2 {
		t.Fatalf("got %d functions, want 2", len(funcs))
	}
	if len(funcs[0].Ops) != 3 {
		t.Errorf("funcs[0] has %d instructions, want 3", len(funcs[0].Ops))
	}
	if entry, ok := funcs[0].Entry(); !ok || entry != 2 {
		t.Errorf("funcs[0].Entry() = %d, %v; want 2, true", entry, ok)
	}
	if len(funcs[1].Ops) != 5 {
		t.Errorf("funcs[1] has %d instructions, want 5", len(funcs[1].Ops))
	}
	if first, ok := funcs[1].Ops[0].(op.LabelOp); !ok || first.Number != lit(3) {
		t.Errorf("funcs[1] starts with %v", funcs[1].Ops[0])
	}
	if entry, ok := funcs[1].Entry(); !ok || entry != 4 {
		t.Errorf("funcs[1].Entry() = %d, %v; want 4, true", entry, ok)
	}
}
