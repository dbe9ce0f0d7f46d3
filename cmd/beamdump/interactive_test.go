package main

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/beam-runtime/beamfile"
	"github.com/wippyai/beam-runtime/op"
	"github.com/wippyai/beam-runtime/term"
)

func browserFunction(name, arity, entry uint64) op.Function {
	return op.Function{
		Module: term.Atom{Value: 1},
		Name:   term.Atom{Value: name},
		Arity:  term.Literal{Value: arity},
		Ops: []op.Operation{
			op.LabelOp{Number: term.Literal{Value: entry - 1}},
			op.FuncInfoOp{Module: term.Atom{Value: 1}, Function: term.Atom{Value: name}, Arity: term.Literal{Value: arity}},
			op.LabelOp{Number: term.Literal{Value: entry}},
			op.SimpleOp{Code: op.OpReturn},
		},
	}
}

func loadedBrowser(t *testing.T) *interactiveModel {
	t.Helper()
	m := newInteractiveModel("shapes.beam", plainConfig())
	assert.Contains(t, m.View(), "Loading module")

	m.Update(loadedMsg{
		format: &formatter{atoms: beamfile.AtomTable{"shapes", "area", "perimeter", "zero"}},
		funcs: []op.Function{
			browserFunction(2, 1, 2),
			browserFunction(3, 1, 4),
			browserFunction(4, 0, 6),
		},
	})
	require.True(t, m.loaded)
	require.NoError(t, m.err)
	return m
}

func typeText(m *interactiveModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestBrowserLists(t *testing.T) {
	m := loadedBrowser(t)
	assert.Equal(t, []int{0, 1, 2}, m.visible)

	view := m.View()
	assert.Contains(t, view, `"area"/1 entry f(2)`)
	assert.Contains(t, view, `"zero"/0 entry f(6)`)
	assert.Contains(t, view, "3/3 functions")
}

func TestBrowserFilter(t *testing.T) {
	m := loadedBrowser(t)

	typeText(m, "er")
	assert.Equal(t, "er", m.filter.Value())
	assert.Equal(t, []int{1, 2}, m.visible)
	assert.Contains(t, m.View(), "2/3 functions")

	// q is filter text while selecting
	typeText(m, "q")
	assert.Empty(t, m.visible)
	_, ok := m.current()
	assert.False(t, ok)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateSelectFunc, m.state)
}

func TestBrowserSelection(t *testing.T) {
	m := loadedBrowser(t)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selected)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selected)

	// narrowing the filter clamps the selection
	typeText(m, "area")
	assert.Equal(t, []int{0}, m.visible)
	assert.Equal(t, 0, m.selected)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateShowCode, m.state)
	view := m.View()
	assert.Contains(t, view, `"area"/1 entry f(2)`)
	assert.Contains(t, view, "func_info")
	assert.Contains(t, view, "return")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateSelectFunc, m.state)
	assert.Equal(t, "area", m.filter.Value())
}

func TestBrowserQuit(t *testing.T) {
	m := loadedBrowser(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateShowCode, m.state)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowserLoadError(t *testing.T) {
	m := newInteractiveModel("broken.beam", plainConfig())
	m.Update(loadedMsg{err: fmt.Errorf("bad magic")})
	assert.Contains(t, m.View(), "Error: bad magic")
}
