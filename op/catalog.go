package op

import "sort"

// Info describes one catalog entry.
type Info struct {
	Name     string
	Operands []Operand
	Code     Opcode
	build    func(Opcode, args) Operation
}

// Arity is the number of operands.
func (i *Info) Arity() int {
	return len(i.Operands)
}

func lit(name string) Operand   { return Operand{name, OperandLiteral} }
func lbl(name string) Operand   { return Operand{name, OperandLabel} }
func atom(name string) Operand  { return Operand{name, OperandAtom} }
func reg(name string) Operand   { return Operand{name, OperandRegister} }
func anyT(name string) Operand  { return Operand{name, OperandTerm} }
func list(name string) Operand  { return Operand{name, OperandList} }
func xreg(name string) Operand  { return Operand{name, OperandXRegister} }
func yreg(name string) Operand  { return Operand{name, OperandYRegister} }
func yregs(name string) Operand { return Operand{name, OperandYRegisterList} }

func operands(ops ...Operand) []Operand { return ops }

// Shapes shared by several opcodes.
var (
	noOperands       = operands()
	callOperands     = operands(lit("arity"), lbl("label"))
	callExtOperands  = operands(lit("arity"), lit("destination"))
	allocOperands    = operands(lit("stack_need"), lit("live"))
	allocHeapOps     = operands(lit("stack_need"), lit("heap_need"), lit("live"))
	jumpOperands     = operands(lbl("label"))
	compareOperands  = operands(lbl("fail"), anyT("arg1"), anyT("arg2"))
	typeTestOperands = operands(lbl("fail"), anyT("arg1"))
	selectOperands   = operands(anyT("arg"), lbl("fail"), list("destinations"))
	argOperands      = operands(anyT("arg"))
	tryRegOperands   = operands(yreg("register"))
	bsGetOperands    = operands(anyT("fail"), anyT("context"), anyT("live"), anyT("size"),
		anyT("unit"), anyT("flags"), anyT("destination"))
	bsTestOperands    = operands(anyT("fail"), anyT("context"), anyT("value"))
	bsContextOperands = operands(anyT("context"), reg("destination"), lit("live"))
	listElemOperands  = operands(reg("source"), reg("destination"))
)

func buildSimple(c Opcode, _ args) Operation { return SimpleOp{Code: c} }
func buildCall(c Opcode, a args) Operation {
	return CallOp{Code: c, Arity: a.literal(0), Label: a.label(1)}
}
func buildCallExt(c Opcode, a args) Operation {
	return CallExtOp{Code: c, Arity: a.literal(0), Destination: a.literal(1)}
}
func buildAlloc(c Opcode, a args) Operation {
	return AllocateOp{Code: c, StackNeed: a.literal(0), Live: a.literal(1)}
}
func buildAllocHeap(c Opcode, a args) Operation {
	return AllocateHeapOp{Code: c, StackNeed: a.literal(0), HeapNeed: a.literal(1), Live: a.literal(2)}
}
func buildJump(c Opcode, a args) Operation { return JumpOp{Code: c, Label: a.label(0)} }
func buildCompare(c Opcode, a args) Operation {
	return CompareOp{Code: c, Fail: a.label(0), Arg1: a.term(1), Arg2: a.term(2)}
}
func buildTypeTest(c Opcode, a args) Operation {
	return TypeTestOp{Code: c, Fail: a.label(0), Arg: a.term(1)}
}
func buildSelect(c Opcode, a args) Operation {
	return SelectOp{Code: c, Arg: a.term(0), Fail: a.label(1), Destinations: a.list(2)}
}
func buildArg(c Opcode, a args) Operation    { return ArgOp{Code: c, Arg: a.term(0)} }
func buildTryReg(c Opcode, a args) Operation { return TryRegOp{Code: c, Register: a.y(0)} }
func buildBsGet(c Opcode, a args) Operation {
	return BsGetOp{Code: c, Fail: a.term(0), Context: a.term(1), Live: a.term(2), Size: a.term(3),
		Unit: a.term(4), Flags: a.term(5), Destination: a.term(6)}
}
func buildBsTest(c Opcode, a args) Operation {
	return BsTestOp{Code: c, Fail: a.term(0), Context: a.term(1), Value: a.term(2)}
}
func buildBsContext(c Opcode, a args) Operation {
	return BsContextOp{Code: c, Context: a.term(0), Destination: a.register(1), Live: a.literal(2)}
}
func buildListElem(c Opcode, a args) Operation {
	return GetListElementOp{Code: c, Source: a.register(0), Destination: a.register(1)}
}

var catalog = []Info{
	{Code: OpLabel, Name: "label", Operands: operands(lit("literal")),
		build: func(_ Opcode, a args) Operation { return LabelOp{Number: a.literal(0)} }},
	{Code: OpFuncInfo, Name: "func_info", Operands: operands(atom("module"), atom("function"), lit("arity")),
		build: func(_ Opcode, a args) Operation {
			return FuncInfoOp{Module: a.atom(0), Function: a.atom(1), Arity: a.literal(2)}
		}},
	{Code: OpIntCodeEnd, Name: "int_code_end", Operands: noOperands, build: buildSimple},
	{Code: OpCall, Name: "call", Operands: callOperands, build: buildCall},
	{Code: OpCallLast, Name: "call_last", Operands: operands(lit("arity"), lbl("label"), lit("deallocate")),
		build: func(_ Opcode, a args) Operation {
			return CallLastOp{Arity: a.literal(0), Label: a.label(1), Deallocate: a.literal(2)}
		}},
	{Code: OpCallOnly, Name: "call_only", Operands: callOperands, build: buildCall},
	{Code: OpCallExt, Name: "call_ext", Operands: callExtOperands, build: buildCallExt},
	{Code: OpCallExtLast, Name: "call_ext_last", Operands: operands(lit("arity"), lit("destination"), lit("deallocate")),
		build: func(_ Opcode, a args) Operation {
			return CallExtLastOp{Arity: a.literal(0), Destination: a.literal(1), Deallocate: a.literal(2)}
		}},
	{Code: OpBif0, Name: "bif0", Operands: operands(lit("bif"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return Bif0Op{Bif: a.literal(0), Destination: a.register(1)}
		}},
	{Code: OpBif1, Name: "bif1", Operands: operands(lbl("fail"), lit("bif"), anyT("arg"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return Bif1Op{Fail: a.label(0), Bif: a.literal(1), Arg: a.term(2), Destination: a.register(3)}
		}},
	{Code: OpBif2, Name: "bif2", Operands: operands(lbl("fail"), lit("bif"), anyT("arg1"), anyT("arg2"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return Bif2Op{Fail: a.label(0), Bif: a.literal(1), Arg1: a.term(2), Arg2: a.term(3), Destination: a.register(4)}
		}},
	{Code: OpAllocate, Name: "allocate", Operands: allocOperands, build: buildAlloc},
	{Code: OpAllocateHeap, Name: "allocate_heap", Operands: allocHeapOps, build: buildAllocHeap},
	{Code: OpAllocateZero, Name: "allocate_zero", Operands: allocOperands, build: buildAlloc},
	{Code: OpAllocateHeapZero, Name: "allocate_heap_zero", Operands: allocHeapOps, build: buildAllocHeap},
	{Code: OpTestHeap, Name: "test_heap", Operands: operands(lit("heap_need"), lit("live")),
		build: func(_ Opcode, a args) Operation {
			return TestHeapOp{HeapNeed: a.literal(0), Live: a.literal(1)}
		}},
	{Code: OpInit, Name: "init", Operands: operands(reg("destination")),
		build: func(_ Opcode, a args) Operation { return InitOp{Destination: a.register(0)} }},
	{Code: OpDeallocate, Name: "deallocate", Operands: operands(lit("n")),
		build: func(_ Opcode, a args) Operation { return DeallocateOp{N: a.literal(0)} }},
	{Code: OpReturn, Name: "return", Operands: noOperands, build: buildSimple},
	{Code: OpSend, Name: "send", Operands: noOperands, build: buildSimple},
	{Code: OpRemoveMessage, Name: "remove_message", Operands: noOperands, build: buildSimple},
	{Code: OpTimeout, Name: "timeout", Operands: noOperands, build: buildSimple},
	{Code: OpLoopRec, Name: "loop_rec", Operands: operands(lbl("fail"), reg("source")),
		build: func(_ Opcode, a args) Operation {
			return LoopRecOp{Fail: a.label(0), Source: a.register(1)}
		}},
	{Code: OpLoopRecEnd, Name: "loop_rec_end", Operands: jumpOperands, build: buildJump},
	{Code: OpWait, Name: "wait", Operands: jumpOperands, build: buildJump},
	{Code: OpIsLt, Name: "is_lt", Operands: compareOperands, build: buildCompare},
	{Code: OpIsGe, Name: "is_ge", Operands: compareOperands, build: buildCompare},
	{Code: OpIsEq, Name: "is_eq", Operands: compareOperands, build: buildCompare},
	{Code: OpIsNe, Name: "is_ne", Operands: compareOperands, build: buildCompare},
	{Code: OpIsEqExact, Name: "is_eq_exact", Operands: compareOperands, build: buildCompare},
	{Code: OpIsNeExact, Name: "is_ne_exact", Operands: compareOperands, build: buildCompare},
	{Code: OpIsInteger, Name: "is_integer", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsFloat, Name: "is_float", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsNumber, Name: "is_number", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsAtom, Name: "is_atom", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsNil, Name: "is_nil", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsBinary, Name: "is_binary", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsList, Name: "is_list", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsNonemptyList, Name: "is_nonempty_list", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpIsTuple, Name: "is_tuple", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpTestArity, Name: "test_arity", Operands: operands(lbl("fail"), anyT("arg1"), lit("arity")),
		build: func(_ Opcode, a args) Operation {
			return TestArityOp{Fail: a.label(0), Arg: a.term(1), Arity: a.literal(2)}
		}},
	{Code: OpSelectVal, Name: "select_val", Operands: selectOperands, build: buildSelect},
	{Code: OpSelectTupleArity, Name: "select_tuple_arity", Operands: selectOperands, build: buildSelect},
	{Code: OpJump, Name: "jump", Operands: jumpOperands, build: buildJump},
	{Code: OpMove, Name: "move", Operands: operands(anyT("source"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return MoveOp{Source: a.term(0), Destination: a.register(1)}
		}},
	{Code: OpGetList, Name: "get_list", Operands: operands(anyT("source"), reg("head"), reg("tail")),
		build: func(_ Opcode, a args) Operation {
			return GetListOp{Source: a.term(0), Head: a.register(1), Tail: a.register(2)}
		}},
	{Code: OpGetTupleElement, Name: "get_tuple_element", Operands: operands(reg("source"), lit("element"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return GetTupleElementOp{Source: a.register(0), Element: a.literal(1), Destination: a.register(2)}
		}},
	{Code: OpPutList, Name: "put_list", Operands: operands(anyT("head"), anyT("tail"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return PutListOp{Head: a.term(0), Tail: a.term(1), Destination: a.register(2)}
		}},
	{Code: OpBadmatch, Name: "badmatch", Operands: argOperands, build: buildArg},
	{Code: OpIfEnd, Name: "if_end", Operands: noOperands, build: buildSimple},
	{Code: OpCaseEnd, Name: "case_end", Operands: argOperands, build: buildArg},
	{Code: OpCallFun, Name: "call_fun", Operands: operands(lit("arity")),
		build: func(_ Opcode, a args) Operation { return CallFunOp{Arity: a.literal(0)} }},
	{Code: OpIsFunction, Name: "is_function", Operands: typeTestOperands, build: buildTypeTest},
	{Code: OpCallExtOnly, Name: "call_ext_only", Operands: callExtOperands, build: buildCallExt},
	{Code: OpTry, Name: "try", Operands: operands(yreg("register"), lbl("label")),
		build: func(_ Opcode, a args) Operation { return TryOp{Register: a.y(0), Label: a.label(1)} }},
	{Code: OpTryEnd, Name: "try_end", Operands: tryRegOperands, build: buildTryReg},
	{Code: OpTryCase, Name: "try_case", Operands: tryRegOperands, build: buildTryReg},
	{Code: OpTryCaseEnd, Name: "try_case_end", Operands: argOperands, build: buildArg},
	{Code: OpRaise, Name: "raise", Operands: operands(anyT("stacktrace"), anyT("exc_value")),
		build: func(_ Opcode, a args) Operation { return RaiseOp{Stacktrace: a.term(0), Value: a.term(1)} }},
	{Code: OpBsGetInteger2, Name: "bs_get_integer2", Operands: bsGetOperands, build: buildBsGet},
	{Code: OpBsGetBinary2, Name: "bs_get_binary2", Operands: bsGetOperands, build: buildBsGet},
	{Code: OpBsTestTail2, Name: "bs_test_tail2", Operands: bsTestOperands, build: buildBsTest},
	{Code: OpGcBif1, Name: "gc_bif1", Operands: operands(lbl("fail"), lit("live"), lit("bif"), anyT("arg"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return GcBif1Op{Fail: a.label(0), Live: a.literal(1), Bif: a.literal(2), Arg: a.term(3), Destination: a.register(4)}
		}},
	{Code: OpGcBif2, Name: "gc_bif2", Operands: operands(lbl("fail"), lit("live"), lit("bif"), anyT("arg1"), anyT("arg2"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return GcBif2Op{Fail: a.label(0), Live: a.literal(1), Bif: a.literal(2), Arg1: a.term(3), Arg2: a.term(4), Destination: a.register(5)}
		}},
	{Code: OpBsTestUnit, Name: "bs_test_unit", Operands: bsTestOperands, build: buildBsTest},
	{Code: OpTrim, Name: "trim", Operands: operands(lit("n"), lit("remaining")),
		build: func(_ Opcode, a args) Operation { return TrimOp{N: a.literal(0), Remaining: a.literal(1)} }},
	{Code: OpLine, Name: "line", Operands: operands(lit("literal")),
		build: func(_ Opcode, a args) Operation { return LineOp{Index: a.literal(0)} }},
	{Code: OpIsTaggedTuple, Name: "is_tagged_tuple", Operands: operands(lbl("fail"), xreg("register"), lit("arity"), atom("tag")),
		build: func(_ Opcode, a args) Operation {
			return IsTaggedTupleOp{Fail: a.label(0), Register: a.x(1), Arity: a.literal(2), Tag: a.atom(3)}
		}},
	{Code: OpBuildStacktrace, Name: "build_stacktrace", Operands: noOperands, build: buildSimple},
	{Code: OpGetHd, Name: "get_hd", Operands: listElemOperands, build: buildListElem},
	{Code: OpGetTl, Name: "get_tl", Operands: listElemOperands, build: buildListElem},
	{Code: OpPutTuple2, Name: "put_tuple2", Operands: operands(reg("destination"), list("elements")),
		build: func(_ Opcode, a args) Operation {
			return PutTuple2Op{Destination: a.register(0), Elements: a.list(1)}
		}},
	{Code: OpBsGetTail, Name: "bs_get_tail", Operands: bsContextOperands, build: buildBsContext},
	{Code: OpBsStartMatch3, Name: "bs_start_match3", Operands: operands(lbl("fail"), anyT("bin"), lit("live"), reg("destination")),
		build: func(_ Opcode, a args) Operation {
			return BsStartMatch3Op{Fail: a.label(0), Bin: a.term(1), Live: a.literal(2), Destination: a.register(3)}
		}},
	{Code: OpBsGetPosition, Name: "bs_get_position", Operands: bsContextOperands, build: buildBsContext},
	{Code: OpBsSetPosition, Name: "bs_set_position", Operands: operands(anyT("context"), anyT("position")),
		build: func(_ Opcode, a args) Operation {
			return BsSetPositionOp{Context: a.term(0), Position: a.term(1)}
		}},
	{Code: OpSwap, Name: "swap", Operands: operands(reg("register1"), reg("register2")),
		build: func(_ Opcode, a args) Operation {
			return SwapOp{Register1: a.register(0), Register2: a.register(1)}
		}},
	{Code: OpMakeFun3, Name: "make_fun3", Operands: operands(lit("fun"), reg("destination"), list("environment")),
		build: func(_ Opcode, a args) Operation {
			return MakeFun3Op{Fun: a.literal(0), Destination: a.register(1), Environment: a.list(2)}
		}},
	{Code: OpInitYregs, Name: "init_yregs", Operands: operands(yregs("registers")),
		build: func(_ Opcode, a args) Operation { return InitYregsOp{Registers: a.yregs(0)} }},
	{Code: OpCallFun2, Name: "call_fun2", Operands: operands(anyT("tag"), lit("arity"), anyT("func")),
		build: func(_ Opcode, a args) Operation {
			return CallFun2Op{Tag: a.term(0), Arity: a.literal(1), Func: a.term(2)}
		}},
	{Code: OpBadrecord, Name: "badrecord", Operands: argOperands, build: buildArg},
}

var (
	table  [256]*Info
	byName = make(map[string]*Info, len(catalog))
)

func init() {
	for i := range catalog {
		info := &catalog[i]
		if table[info.Code] != nil {
			panic("op: duplicate opcode " + info.Name)
		}
		table[info.Code] = info
		byName[info.Name] = info
	}
}

// Lookup returns the catalog entry for code.
func Lookup(code Opcode) (*Info, bool) {
	info := table[code]
	return info, info != nil
}

// LookupName returns the catalog entry with the given genop name.
func LookupName(name string) (*Info, bool) {
	info, ok := byName[name]
	return info, ok
}

// Catalog returns every supported instruction ordered by opcode.
func Catalog() []*Info {
	out := make([]*Info, 0, len(catalog))
	for i := range catalog {
		out = append(out, &catalog[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// MaxOpcode is the highest supported opcode.
func MaxOpcode() Opcode {
	var highest Opcode
	for i := range catalog {
		if catalog[i].Code > highest {
			highest = catalog[i].Code
		}
	}
	return highest
}

// Name returns the genop name of o.
func Name(o Operation) string {
	return o.Opcode().String()
}

// Arity returns the operand count of o's opcode, or -1 when the opcode is
// not in the catalog.
func Arity(o Operation) int {
	if info, ok := Lookup(o.Opcode()); ok {
		return info.Arity()
	}
	return -1
}
