package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/beam-runtime/op"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// pageSize is the number of instruction lines shown at once.
const pageSize = 20

type modelState int

const (
	stateSelectFunc modelState = iota
	stateShowCode
)

type interactiveModel struct {
	err      error
	format   *formatter
	filename string
	funcs    []op.Function
	visible  []int // indices into funcs matching the filter
	filter   textinput.Model
	selected int
	scroll   int
	state    modelState
	cfg      Config
	loaded   bool
}

type loadedMsg struct {
	err    error
	format *formatter
	funcs  []op.Function
}

func newInteractiveModel(filename string, cfg Config) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter functions"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{
		filename: filename,
		filter:   ti,
		cfg:      cfg,
		state:    stateSelectFunc,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.loadModule, textinput.Blink)
}

func (m *interactiveModel) loadModule() tea.Msg {
	src, err := containerSource(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	ops, err := op.DecodeStream(src.bytecode)
	if err != nil {
		return loadedMsg{err: err}
	}
	if m.cfg.Decode.StrictEnd {
		if err := op.CheckEnd(ops); err != nil {
			return loadedMsg{err: err}
		}
	}
	_, funcs := op.SplitFunctions(ops)

	f := &formatter{imports: src.imports, color: true}
	if m.cfg.Output.ResolveAtoms {
		f.atoms = src.atoms
	}
	return loadedMsg{format: f, funcs: funcs}
}

func (m *interactiveModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, fn := range m.funcs {
		if needle == "" || strings.Contains(strings.ToLower(m.format.signature(fn)), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) current() (op.Function, bool) {
	if m.selected < len(m.visible) {
		return m.funcs[m.visible[m.selected]], true
	}
	return op.Function{}, false
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowCode || m.err != nil {
				return m, tea.Quit
			}

		case "up":
			switch m.state {
			case stateSelectFunc:
				if m.selected > 0 {
					m.selected--
				}
			case stateShowCode:
				if m.scroll > 0 {
					m.scroll--
				}
			}
			return m, nil

		case "down":
			switch m.state {
			case stateSelectFunc:
				if m.selected < len(m.visible)-1 {
					m.selected++
				}
			case stateShowCode:
				if fn, ok := m.current(); ok && m.scroll < len(fn.Ops)-pageSize {
					m.scroll++
				}
			}
			return m, nil

		case "enter":
			if m.state == stateSelectFunc {
				if _, ok := m.current(); ok {
					m.state = stateShowCode
					m.scroll = 0
				}
			}
			return m, nil

		case "esc":
			if m.state == stateShowCode {
				m.state = stateSelectFunc
				return m, nil
			}
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.format = msg.format
		m.funcs = msg.funcs
		m.applyFilter()
		return m, nil
	}

	if m.state == stateSelectFunc && m.loaded && m.err == nil {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading module..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("BEAM Dump"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		start := max(m.selected-pageSize+1, 0)
		end := min(start+pageSize, len(m.visible))
		for i := start; i < end; i++ {
			fn := m.funcs[m.visible[i]]
			line := fmt.Sprintf("%s  (%d instructions)", m.format.signature(fn), len(fn.Ops))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d functions • ↑/↓ select • enter show • ctrl+c quit",
			len(m.visible), len(m.funcs))))

	case stateShowCode:
		fn, _ := m.current()
		b.WriteString(headerStyle.Render(m.format.signature(fn)))
		b.WriteString("\n\n")
		end := min(m.scroll+pageSize, len(fn.Ops))
		for i := m.scroll; i < end; i++ {
			b.WriteString(m.format.line(i, fn.Ops[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, cfg Config) error {
	p := tea.NewProgram(newInteractiveModel(filename, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
