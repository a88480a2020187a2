package main

import (
	"strconv"
	"strings"

	"github.com/bjaus/cfmt"
	"github.com/bjaus/cfmt/internal/report"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	inputFormat = iota
	inputArgs
)

// previewSize bounds the rendered output; longer results are cut.
const previewSize = 4096

// playground re-renders a format string on every keystroke.
type playground struct {
	inputs []textinput.Model
	focus  int

	preview   [previewSize]byte
	output    string
	length    int
	truncated bool
	table     string
	err       error
}

func newPlayground(args []string) *playground {
	m := &playground{inputs: make([]textinput.Model, 2)}
	for i, prompt := range []string{"format: ", "args:   "} {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Width = 60
		m.inputs[i] = ti
	}
	m.inputs[inputFormat].Placeholder = `%-8s|%08.3f\n`
	m.inputs[inputArgs].Placeholder = "space-separated values"
	if len(args) > 0 {
		m.inputs[inputFormat].SetValue(args[0])
		m.inputs[inputArgs].SetValue(strings.Join(args[1:], " "))
	}
	m.inputs[inputFormat].Focus()
	m.refresh()
	return m
}

func (m *playground) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playground) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			return m, m.inputs[m.focus].Focus()
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	m.refresh()
	return m, tea.Batch(cmds...)
}

// refresh formats the current inputs and describes their directives.
func (m *playground) refresh() {
	m.output, m.length, m.truncated, m.table, m.err = "", 0, false, "", nil

	format := unescape(m.inputs[inputFormat].Value())
	args, err := convertArgs(format, strings.Fields(m.inputs[inputArgs].Value()), zap.NewNop())
	if err != nil {
		m.err = err
		return
	}
	m.length = cfmt.Vsnprintf(m.preview[:], format, args)
	n := min(m.length, previewSize-1)
	m.truncated = n < m.length
	if m.truncated && cfmt.Features().SafeEmpty {
		n = 0
	}
	m.output = string(m.preview[:n])

	var rows []report.DirectiveRow
	for row, err := range report.ExplainWith(format, report.Layout{}) {
		if err != nil {
			m.err = err
			break
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		table, _ := report.Marshal(report.Table, rows...)
		m.table = string(table)
	}
}

func (m *playground) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("cfmt playground"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("output "))
	b.WriteString(resultStyle.Render(strconv.Quote(m.output)))
	b.WriteString(labelStyle.Render(" length "))
	b.WriteString(strconv.Itoa(m.length))
	if m.truncated {
		b.WriteString(helpStyle.Render(cfmt.Sprintf(" (first %d shown)", previewSize-1)))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.table != "" {
		b.WriteString("\n")
		b.WriteString(m.table)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch field • esc quit"))
	return b.String()
}

func runInteractive(args []string) error {
	_, err := tea.NewProgram(newPlayground(args)).Run()
	return err
}
