package op

import (
	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/term"
)

// Function is the instruction range of one function, starting at the
// labels and line entries that precede its func_info.
type Function struct {
	Module term.Atom
	Name   term.Atom
	Arity  term.Literal
	Ops    []Operation
}

// Entry returns the first label defined after func_info.
func (f *Function) Entry() (uint64, bool) {
	seen := false
	for _, o := range f.Ops {
		switch v := o.(type) {
		case FuncInfoOp:
			seen = true
		case LabelOp:
			if seen {
				return v.Number.Value, true
			}
		}
	}
	return 0, false
}

func isLeader(o Operation) bool {
	switch o.(type) {
	case LabelOp, LineOp:
		return true
	}
	return false
}

// SplitFunctions groups a decoded Code chunk stream by function.
// Instructions ahead of the first function are returned as prelude, and a
// final int_code_end belongs to no function.
func SplitFunctions(ops []Operation) (prelude []Operation, funcs []Function) {
	end := len(ops)
	if end > 0 {
		if s, ok := ops[end-1].(SimpleOp); ok && s.Code == OpIntCodeEnd {
			end--
		}
	}

	var starts []int
	floor := 0
	for i := 0; i < end; i++ {
		if _, ok := ops[i].(FuncInfoOp); !ok {
			continue
		}
		s := i
		for s > floor && isLeader(ops[s-1]) {
			s--
		}
		starts = append(starts, s)
		// the entry label stays with this function even when its body
		// is empty
		floor = i + 1
		if floor < end {
			if _, ok := ops[floor].(LabelOp); ok {
				floor++
			}
		}
	}

	if len(starts) == 0 {
		return ops[:end], nil
	}
	prelude = ops[:starts[0]]
	funcs = make([]Function, len(starts))
	for k, s := range starts {
		stop := end
		if k+1 < len(starts) {
			stop = starts[k+1]
		}
		f := Function{Ops: ops[s:stop]}
		for _, o := range f.Ops {
			if fi, ok := o.(FuncInfoOp); ok {
				f.Module, f.Name, f.Arity = fi.Module, fi.Function, fi.Arity
				break
			}
		}
		funcs[k] = f
	}
	return prelude, funcs
}

// CheckEnd reports an error unless ops ends with int_code_end.
func CheckEnd(ops []Operation) error {
	if n := len(ops); n > 0 {
		if s, ok := ops[n-1].(SimpleOp); ok && s.Code == OpIntCodeEnd {
			return nil
		}
	}
	return errors.InvalidData(errors.PhaseDecode, nil, "code does not end with int_code_end")
}
