package repl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/brace/lang"
)

// submit records the input line in history and runs it in the current mode.
// The saved input of both modes is discarded.
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.saved = [2]buffer{}
	m = m.setInput(buffer{})

	if err := m.history.Add(line, m.mode); err != nil {
		m.logger.DebugContext(m.ctx(), "history write failed",
			slog.Any("error", err),
		)
	}

	m.pos = m.history.Len()

	m.logger.TraceContext(m.ctx(), "repl submit",
		slog.String("line", line),
		slog.Bool("command", m.mode == modeCtrl),
	)

	if m.mode == modeCtrl {
		return m.executeCommand(line)
	}

	return m, tea.Sequence(
		tea.Println(echo(modeEval, line)),
		tea.Println(m.render(line)),
	)
}

func (m model) executeCommand(line string) (model, tea.Cmd) {
	name, args, _ := strings.Cut(line, " ")
	if name == "" {
		return m, nil
	}

	reply := func(s string) tea.Cmd {
		return tea.Sequence(tea.Println(echo(modeCtrl, line)), tea.Println(s))
	}

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(tea.Println(echo(modeCtrl, line)), tea.Quit)

	case "h", "help":
		return m, reply(helpText)

	case "p", "paths":
		return m, reply(m.listPaths(strings.Fields(args)...))

	case "m", "macros":
		return m, reply(m.listMacros())

	case "c", "clear":
		return m, tea.ClearScreen
	}

	return m, tea.Println(
		errorStyle.Render("unknown command: " + name + " (try 'help')"),
	)
}

// listPaths lists the data paths with a preview of each value. Arguments
// filter the list by fuzzy match.
func (m model) listPaths(filter ...string) string {
	paths := m.paths

	if len(filter) > 0 {
		paths = nil

		for _, match := range fuzzy.Find(strings.Join(filter, ""), m.paths) {
			paths = append(paths, match.Str)
		}
	}

	var b strings.Builder

	for _, path := range paths {
		v, _ := lang.Resolve(m.data, path)
		fmt.Fprintf(&b, "  %s %s\n", path, hintStyle.Render(formatPreview(v)))
	}

	return b.String()
}

func (m model) listMacros() string {
	var b strings.Builder

	for _, name := range m.macros {
		b.WriteString("  " + renderSynopsis(name) + "\n")
	}

	return b.String()
}
