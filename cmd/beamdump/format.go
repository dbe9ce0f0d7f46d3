package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/beam-runtime/beamfile"
	"github.com/wippyai/beam-runtime/op"
	"github.com/wippyai/beam-runtime/term"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	operandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// formatter renders instructions, optionally naming atoms and imports.
type formatter struct {
	atoms   beamfile.AtomTable
	imports []beamfile.Import
	color   bool
}

func (f *formatter) style(s lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return s.Render(text)
}

func (f *formatter) atom(i uint64) string {
	if name, ok := f.atoms.Name(i); ok {
		return strconv.Quote(name)
	}
	if i == 0 {
		return "nil"
	}
	return term.Atom{Value: i}.String()
}

func (f *formatter) operand(t term.Term) string {
	switch v := t.(type) {
	case term.Atom:
		if f.atoms != nil {
			return f.atom(v.Value)
		}
	case term.List:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = f.operand(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return t.String()
}

// comment names the callee of call_ext style instructions.
func (f *formatter) comment(o op.Operation) string {
	var dest uint64
	switch v := o.(type) {
	case op.CallExtOp:
		dest = v.Destination.Value
	case op.CallExtLastOp:
		dest = v.Destination.Value
	case op.FuncInfoOp:
		if f.atoms == nil {
			return ""
		}
		return fmt.Sprintf("%s:%s/%d", f.atom(v.Module.Value), f.atom(v.Function.Value), v.Arity.Value)
	default:
		return ""
	}
	if dest >= uint64(len(f.imports)) {
		return ""
	}
	imp := f.imports[dest]
	return fmt.Sprintf("%s:%s/%d", f.atom(uint64(imp.Module)), f.atom(uint64(imp.Function)), imp.Arity)
}

func (f *formatter) line(index int, o op.Operation) string {
	operands := o.Operands()
	parts := make([]string, len(operands))
	for i, t := range operands {
		parts[i] = f.operand(t)
	}
	s := fmt.Sprintf("%5d  %s", index, f.style(opStyle, fmt.Sprintf("%-20s", op.Name(o))))
	if len(parts) > 0 {
		s += " " + f.style(operandStyle, strings.Join(parts, ", "))
	}
	if c := f.comment(o); c != "" {
		s += "  " + f.style(commentStyle, "% "+c)
	}
	return s
}

func (f *formatter) listing(w io.Writer, ops []op.Operation) {
	for i, o := range ops {
		fmt.Fprintln(w, f.line(i, o))
	}
}

func (f *formatter) functions(w io.Writer, ops []op.Operation) {
	prelude, funcs := op.SplitFunctions(ops)
	if len(prelude) > 0 {
		f.listing(w, prelude)
	}
	index := len(prelude)
	for _, fn := range funcs {
		fmt.Fprintln(w)
		fmt.Fprintln(w, f.style(headerStyle, f.signature(fn)))
		for _, o := range fn.Ops {
			fmt.Fprintln(w, f.line(index, o))
			index++
		}
	}
}

func (f *formatter) signature(fn op.Function) string {
	s := fmt.Sprintf("%s/%d", f.atom(fn.Name.Value), fn.Arity.Value)
	if entry, ok := fn.Entry(); ok {
		s += " entry " + term.Label{Value: entry}.String()
	}
	return s
}

func catalogListing(w io.Writer) {
	for _, info := range op.Catalog() {
		names := make([]string, len(info.Operands))
		for i, operand := range info.Operands {
			names[i] = operand.Name + ":" + operand.Kind.String()
		}
		fmt.Fprintf(w, "%3d  %-20s %s\n", info.Code, info.Name, strings.Join(names, " "))
	}
}
