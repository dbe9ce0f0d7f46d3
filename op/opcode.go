package op

import "strconv"

// InstructionSetVersion is the only Code chunk instruction set version
// this package decodes.
const InstructionSetVersion = 0

// Opcode identifies an instruction (genop.tab numbering).
type Opcode byte

// Control flow
const (
	OpLabel       Opcode = 1
	OpFuncInfo    Opcode = 2
	OpIntCodeEnd  Opcode = 3
	OpCall        Opcode = 4
	OpCallLast    Opcode = 5
	OpCallOnly    Opcode = 6
	OpCallExt     Opcode = 7
	OpCallExtLast Opcode = 8
	OpBif0        Opcode = 9
	OpBif1        Opcode = 10
	OpBif2        Opcode = 11
	OpReturn      Opcode = 19
	OpJump        Opcode = 61
	OpCallFun     Opcode = 75
	OpCallExtOnly Opcode = 78
	OpGcBif1      Opcode = 124
	OpGcBif2      Opcode = 125
	OpLine        Opcode = 153
	OpCallFun2    Opcode = 178
)

// Stack and heap
const (
	OpAllocate         Opcode = 12
	OpAllocateHeap     Opcode = 13
	OpAllocateZero     Opcode = 14
	OpAllocateHeapZero Opcode = 15
	OpTestHeap         Opcode = 16
	OpInit             Opcode = 17
	OpDeallocate       Opcode = 18
	OpTrim             Opcode = 136
	OpInitYregs        Opcode = 172
)

// Messages
const (
	OpSend          Opcode = 20
	OpRemoveMessage Opcode = 21
	OpTimeout       Opcode = 22
	OpLoopRec       Opcode = 23
	OpLoopRecEnd    Opcode = 24
	OpWait          Opcode = 25
)

// Comparisons and type tests
const (
	OpIsLt           Opcode = 39
	OpIsGe           Opcode = 40
	OpIsEq           Opcode = 41
	OpIsNe           Opcode = 42
	OpIsEqExact      Opcode = 43
	OpIsNeExact      Opcode = 44
	OpIsInteger      Opcode = 45
	OpIsFloat        Opcode = 46
	OpIsNumber       Opcode = 47
	OpIsAtom         Opcode = 48
	OpIsNil          Opcode = 52
	OpIsBinary       Opcode = 53
	OpIsList         Opcode = 55
	OpIsNonemptyList Opcode = 56
	OpIsTuple        Opcode = 57
	OpTestArity      Opcode = 58
	OpIsFunction     Opcode = 77
	OpIsTaggedTuple  Opcode = 159
)

// Term construction and inspection
const (
	OpSelectVal        Opcode = 59
	OpSelectTupleArity Opcode = 60
	OpMove             Opcode = 64
	OpGetList          Opcode = 65
	OpGetTupleElement  Opcode = 66
	OpPutList          Opcode = 69
	OpGetHd            Opcode = 162
	OpGetTl            Opcode = 163
	OpPutTuple2        Opcode = 164
	OpSwap             Opcode = 169
	OpMakeFun3         Opcode = 171
)

// Exceptions
const (
	OpBadmatch        Opcode = 72
	OpIfEnd           Opcode = 73
	OpCaseEnd         Opcode = 74
	OpTry             Opcode = 104
	OpTryEnd          Opcode = 105
	OpTryCase         Opcode = 106
	OpTryCaseEnd      Opcode = 107
	OpRaise           Opcode = 108
	OpBuildStacktrace Opcode = 160
	OpBadrecord       Opcode = 180
)

// Binary matching
const (
	OpBsGetInteger2 Opcode = 117
	OpBsGetBinary2  Opcode = 119
	OpBsTestTail2   Opcode = 121
	OpBsTestUnit    Opcode = 131
	OpBsGetTail     Opcode = 165
	OpBsStartMatch3 Opcode = 166
	OpBsGetPosition Opcode = 167
	OpBsSetPosition Opcode = 168
)

// String returns the catalog name, or the number for unknown opcodes.
func (o Opcode) String() string {
	if info := table[o]; info != nil {
		return info.Name
	}
	return "opcode(" + strconv.Itoa(int(o)) + ")"
}
