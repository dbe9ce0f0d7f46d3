package op

import "github.com/wippyai/beam-runtime/term"

// Operation is one decoded instruction. Operands returns the operand terms
// in catalog order, which is also their encoding order.
//
// Instructions with the same operand shape share a record type that carries
// its Code, mirroring how the catalog groups them.
type Operation interface {
	Opcode() Opcode
	Operands() []term.Term
}

// SimpleOp is an instruction without operands: int_code_end, return, send,
// remove_message, timeout, if_end and build_stacktrace.
type SimpleOp struct {
	Code Opcode
}

// LabelOp defines label Number.
type LabelOp struct {
	Number term.Literal
}

// FuncInfoOp starts a function and raises function_clause when reached.
type FuncInfoOp struct {
	Module   term.Atom
	Function term.Atom
	Arity    term.Literal
}

// LineOp refers to an entry of the Line chunk.
type LineOp struct {
	Index term.Literal
}

// CallOp is call or call_only.
type CallOp struct {
	Code  Opcode
	Arity term.Literal
	Label term.Label
}

// CallLastOp calls a local function after dropping Deallocate stack words.
type CallLastOp struct {
	Arity      term.Literal
	Label      term.Label
	Deallocate term.Literal
}

// CallExtOp is call_ext or call_ext_only. Destination indexes the import
// table.
type CallExtOp struct {
	Code        Opcode
	Arity       term.Literal
	Destination term.Literal
}

// CallExtLastOp calls an import after dropping Deallocate stack words.
type CallExtLastOp struct {
	Arity       term.Literal
	Destination term.Literal
	Deallocate  term.Literal
}

// CallFunOp calls the fun in x(Arity).
type CallFunOp struct {
	Arity term.Literal
}

// CallFun2Op calls Func with a safety Tag.
type CallFun2Op struct {
	Tag   term.Term
	Arity term.Literal
	Func  term.Term
}

// Bif0Op calls a guard BIF without arguments.
type Bif0Op struct {
	Bif         term.Literal
	Destination term.Register
}

// Bif1Op calls a one-argument BIF, jumping to Fail on error.
type Bif1Op struct {
	Fail        term.Label
	Bif         term.Literal
	Arg         term.Term
	Destination term.Register
}

// Bif2Op calls a two-argument BIF, jumping to Fail on error.
type Bif2Op struct {
	Fail        term.Label
	Bif         term.Literal
	Arg1        term.Term
	Arg2        term.Term
	Destination term.Register
}

// GcBif1Op is a one-argument BIF that may trigger garbage collection.
type GcBif1Op struct {
	Fail        term.Label
	Live        term.Literal
	Bif         term.Literal
	Arg         term.Term
	Destination term.Register
}

// GcBif2Op is a two-argument BIF that may trigger garbage collection.
type GcBif2Op struct {
	Fail        term.Label
	Live        term.Literal
	Bif         term.Literal
	Arg1        term.Term
	Arg2        term.Term
	Destination term.Register
}

// AllocateOp is allocate or allocate_zero.
type AllocateOp struct {
	Code      Opcode
	StackNeed term.Literal
	Live      term.Literal
}

// AllocateHeapOp is allocate_heap or allocate_heap_zero.
type AllocateHeapOp struct {
	Code      Opcode
	StackNeed term.Literal
	HeapNeed  term.Literal
	Live      term.Literal
}

// TestHeapOp ensures HeapNeed free heap words.
type TestHeapOp struct {
	HeapNeed term.Literal
	Live     term.Literal
}

// InitOp clears one stack slot.
type InitOp struct {
	Destination term.Register
}

// InitYregsOp clears the listed stack slots.
type InitYregsOp struct {
	Registers []term.YRegister
}

// DeallocateOp drops N stack words.
type DeallocateOp struct {
	N term.Literal
}

// TrimOp drops N stack words keeping Remaining.
type TrimOp struct {
	N         term.Literal
	Remaining term.Literal
}

// JumpOp is jump, loop_rec_end or wait.
type JumpOp struct {
	Code  Opcode
	Label term.Label
}

// LoopRecOp fetches the next message into Source or jumps to Fail.
type LoopRecOp struct {
	Fail   term.Label
	Source term.Register
}

// CompareOp is one of the two-argument comparison tests.
type CompareOp struct {
	Code Opcode
	Fail term.Label
	Arg1 term.Term
	Arg2 term.Term
}

// TypeTestOp is one of the single-argument type tests.
type TypeTestOp struct {
	Code Opcode
	Fail term.Label
	Arg  term.Term
}

// TestArityOp checks the size of a tuple.
type TestArityOp struct {
	Fail  term.Label
	Arg   term.Term
	Arity term.Literal
}

// IsTaggedTupleOp checks for a tuple of Arity whose first element is Tag.
type IsTaggedTupleOp struct {
	Fail     term.Label
	Register term.XRegister
	Arity    term.Literal
	Tag      term.Atom
}

// SelectOp is select_val or select_tuple_arity. Destinations alternates
// values and labels.
type SelectOp struct {
	Code         Opcode
	Arg          term.Term
	Fail         term.Label
	Destinations term.List
}

// MoveOp copies Source into Destination.
type MoveOp struct {
	Source      term.Term
	Destination term.Register
}

// SwapOp exchanges two registers.
type SwapOp struct {
	Register1 term.Register
	Register2 term.Register
}

// GetListOp splits a cons cell.
type GetListOp struct {
	Source term.Term
	Head   term.Register
	Tail   term.Register
}

// GetListElementOp is get_hd or get_tl.
type GetListElementOp struct {
	Code        Opcode
	Source      term.Register
	Destination term.Register
}

// GetTupleElementOp reads element Element of a tuple.
type GetTupleElementOp struct {
	Source      term.Register
	Element     term.Literal
	Destination term.Register
}

// PutListOp builds a cons cell.
type PutListOp struct {
	Head        term.Term
	Tail        term.Term
	Destination term.Register
}

// PutTuple2Op builds a tuple from Elements.
type PutTuple2Op struct {
	Destination term.Register
	Elements    term.List
}

// MakeFun3Op builds a closure over Environment.
type MakeFun3Op struct {
	Fun         term.Literal
	Destination term.Register
	Environment term.List
}

// ArgOp is badmatch, case_end, try_case_end or badrecord.
type ArgOp struct {
	Code Opcode
	Arg  term.Term
}

// TryOp opens a try block whose handler is Label.
type TryOp struct {
	Register term.YRegister
	Label    term.Label
}

// TryRegOp is try_end or try_case.
type TryRegOp struct {
	Code     Opcode
	Register term.YRegister
}

// RaiseOp rethrows an exception.
type RaiseOp struct {
	Stacktrace term.Term
	Value      term.Term
}

// BsGetOp is bs_get_integer2 or bs_get_binary2.
type BsGetOp struct {
	Code        Opcode
	Fail        term.Term
	Context     term.Term
	Live        term.Term
	Size        term.Term
	Unit        term.Term
	Flags       term.Term
	Destination term.Term
}

// BsTestOp is bs_test_tail2 or bs_test_unit.
type BsTestOp struct {
	Code    Opcode
	Fail    term.Term
	Context term.Term
	Value   term.Term
}

// BsContextOp is bs_get_tail or bs_get_position.
type BsContextOp struct {
	Code        Opcode
	Context     term.Term
	Destination term.Register
	Live        term.Literal
}

// BsStartMatch3Op starts matching Bin.
type BsStartMatch3Op struct {
	Fail        term.Label
	Bin         term.Term
	Live        term.Literal
	Destination term.Register
}

// BsSetPositionOp restores a saved match position.
type BsSetPositionOp struct {
	Context  term.Term
	Position term.Term
}

func (o SimpleOp) Opcode() Opcode         { return o.Code }
func (LabelOp) Opcode() Opcode            { return OpLabel }
func (FuncInfoOp) Opcode() Opcode         { return OpFuncInfo }
func (LineOp) Opcode() Opcode             { return OpLine }
func (o CallOp) Opcode() Opcode           { return o.Code }
func (CallLastOp) Opcode() Opcode         { return OpCallLast }
func (o CallExtOp) Opcode() Opcode        { return o.Code }
func (CallExtLastOp) Opcode() Opcode      { return OpCallExtLast }
func (CallFunOp) Opcode() Opcode          { return OpCallFun }
func (CallFun2Op) Opcode() Opcode         { return OpCallFun2 }
func (Bif0Op) Opcode() Opcode             { return OpBif0 }
func (Bif1Op) Opcode() Opcode             { return OpBif1 }
func (Bif2Op) Opcode() Opcode             { return OpBif2 }
func (GcBif1Op) Opcode() Opcode           { return OpGcBif1 }
func (GcBif2Op) Opcode() Opcode           { return OpGcBif2 }
func (o AllocateOp) Opcode() Opcode       { return o.Code }
func (o AllocateHeapOp) Opcode() Opcode   { return o.Code }
func (TestHeapOp) Opcode() Opcode         { return OpTestHeap }
func (InitOp) Opcode() Opcode             { return OpInit }
func (InitYregsOp) Opcode() Opcode        { return OpInitYregs }
func (DeallocateOp) Opcode() Opcode       { return OpDeallocate }
func (TrimOp) Opcode() Opcode             { return OpTrim }
func (o JumpOp) Opcode() Opcode           { return o.Code }
func (LoopRecOp) Opcode() Opcode          { return OpLoopRec }
func (o CompareOp) Opcode() Opcode        { return o.Code }
func (o TypeTestOp) Opcode() Opcode       { return o.Code }
func (TestArityOp) Opcode() Opcode        { return OpTestArity }
func (IsTaggedTupleOp) Opcode() Opcode    { return OpIsTaggedTuple }
func (o SelectOp) Opcode() Opcode         { return o.Code }
func (MoveOp) Opcode() Opcode             { return OpMove }
func (SwapOp) Opcode() Opcode             { return OpSwap }
func (GetListOp) Opcode() Opcode          { return OpGetList }
func (o GetListElementOp) Opcode() Opcode { return o.Code }
func (GetTupleElementOp) Opcode() Opcode  { return OpGetTupleElement }
func (PutListOp) Opcode() Opcode          { return OpPutList }
func (PutTuple2Op) Opcode() Opcode        { return OpPutTuple2 }
func (MakeFun3Op) Opcode() Opcode         { return OpMakeFun3 }
func (o ArgOp) Opcode() Opcode            { return o.Code }
func (TryOp) Opcode() Opcode              { return OpTry }
func (o TryRegOp) Opcode() Opcode         { return o.Code }
func (RaiseOp) Opcode() Opcode            { return OpRaise }
func (o BsGetOp) Opcode() Opcode          { return o.Code }
func (o BsTestOp) Opcode() Opcode         { return o.Code }
func (o BsContextOp) Opcode() Opcode      { return o.Code }
func (BsStartMatch3Op) Opcode() Opcode    { return OpBsStartMatch3 }
func (BsSetPositionOp) Opcode() Opcode    { return OpBsSetPosition }

func terms(ts ...term.Term) []term.Term { return ts }

func (SimpleOp) Operands() []term.Term     { return nil }
func (o LabelOp) Operands() []term.Term    { return terms(o.Number) }
func (o FuncInfoOp) Operands() []term.Term { return terms(o.Module, o.Function, o.Arity) }
func (o LineOp) Operands() []term.Term     { return terms(o.Index) }
func (o CallOp) Operands() []term.Term     { return terms(o.Arity, o.Label) }
func (o CallLastOp) Operands() []term.Term { return terms(o.Arity, o.Label, o.Deallocate) }
func (o CallExtOp) Operands() []term.Term  { return terms(o.Arity, o.Destination) }
func (o CallExtLastOp) Operands() []term.Term {
	return terms(o.Arity, o.Destination, o.Deallocate)
}
func (o CallFunOp) Operands() []term.Term  { return terms(o.Arity) }
func (o CallFun2Op) Operands() []term.Term { return terms(o.Tag, o.Arity, o.Func) }
func (o Bif0Op) Operands() []term.Term     { return terms(o.Bif, o.Destination) }
func (o Bif1Op) Operands() []term.Term     { return terms(o.Fail, o.Bif, o.Arg, o.Destination) }
func (o Bif2Op) Operands() []term.Term {
	return terms(o.Fail, o.Bif, o.Arg1, o.Arg2, o.Destination)
}
func (o GcBif1Op) Operands() []term.Term {
	return terms(o.Fail, o.Live, o.Bif, o.Arg, o.Destination)
}
func (o GcBif2Op) Operands() []term.Term {
	return terms(o.Fail, o.Live, o.Bif, o.Arg1, o.Arg2, o.Destination)
}
func (o AllocateOp) Operands() []term.Term { return terms(o.StackNeed, o.Live) }
func (o AllocateHeapOp) Operands() []term.Term {
	return terms(o.StackNeed, o.HeapNeed, o.Live)
}
func (o TestHeapOp) Operands() []term.Term   { return terms(o.HeapNeed, o.Live) }
func (o InitOp) Operands() []term.Term       { return terms(o.Destination) }
func (o InitYregsOp) Operands() []term.Term  { return terms(term.YRegisters(o.Registers)) }
func (o DeallocateOp) Operands() []term.Term { return terms(o.N) }
func (o TrimOp) Operands() []term.Term       { return terms(o.N, o.Remaining) }
func (o JumpOp) Operands() []term.Term       { return terms(o.Label) }
func (o LoopRecOp) Operands() []term.Term    { return terms(o.Fail, o.Source) }
func (o CompareOp) Operands() []term.Term    { return terms(o.Fail, o.Arg1, o.Arg2) }
func (o TypeTestOp) Operands() []term.Term   { return terms(o.Fail, o.Arg) }
func (o TestArityOp) Operands() []term.Term  { return terms(o.Fail, o.Arg, o.Arity) }
func (o IsTaggedTupleOp) Operands() []term.Term {
	return terms(o.Fail, o.Register, o.Arity, o.Tag)
}
func (o SelectOp) Operands() []term.Term  { return terms(o.Arg, o.Fail, o.Destinations) }
func (o MoveOp) Operands() []term.Term    { return terms(o.Source, o.Destination) }
func (o SwapOp) Operands() []term.Term    { return terms(o.Register1, o.Register2) }
func (o GetListOp) Operands() []term.Term { return terms(o.Source, o.Head, o.Tail) }
func (o GetListElementOp) Operands() []term.Term {
	return terms(o.Source, o.Destination)
}
func (o GetTupleElementOp) Operands() []term.Term {
	return terms(o.Source, o.Element, o.Destination)
}
func (o PutListOp) Operands() []term.Term   { return terms(o.Head, o.Tail, o.Destination) }
func (o PutTuple2Op) Operands() []term.Term { return terms(o.Destination, o.Elements) }
func (o MakeFun3Op) Operands() []term.Term {
	return terms(o.Fun, o.Destination, o.Environment)
}
func (o ArgOp) Operands() []term.Term    { return terms(o.Arg) }
func (o TryOp) Operands() []term.Term    { return terms(o.Register, o.Label) }
func (o TryRegOp) Operands() []term.Term { return terms(o.Register) }
func (o RaiseOp) Operands() []term.Term  { return terms(o.Stacktrace, o.Value) }
func (o BsGetOp) Operands() []term.Term {
	return terms(o.Fail, o.Context, o.Live, o.Size, o.Unit, o.Flags, o.Destination)
}
func (o BsTestOp) Operands() []term.Term    { return terms(o.Fail, o.Context, o.Value) }
func (o BsContextOp) Operands() []term.Term { return terms(o.Context, o.Destination, o.Live) }
func (o BsStartMatch3Op) Operands() []term.Term {
	return terms(o.Fail, o.Bin, o.Live, o.Destination)
}
func (o BsSetPositionOp) Operands() []term.Term { return terms(o.Context, o.Position) }
