package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// inputMode selects how a submitted line is handled.
type inputMode int

const (
	modeEval inputMode = iota // render the line as a template
	modeCtrl                  // run the line as a REPL command
)

var prompt = [...]string{
	modeEval: "➜ ",
	modeCtrl: " :",
}

const (
	defaultWidth = 80
	charLimit    = 1024
)

var (
	evalPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

func promptFor(mode inputMode) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(prompt[modeCtrl])
	}

	return evalPromptStyle.Render(prompt[modeEval])
}

// echo formats a submitted line the way it appeared at the prompt.
func echo(mode inputMode, line string) string {
	return promptFor(mode) + inputStyle.Render(line)
}

const helpText = `
Commands (Esc switches between template and command input):

  help    (h)  show this message
  paths   (p)  list data paths, optionally fuzzy-filtered: paths NAME
  macros  (m)  list built-in macros
  clear   (c)  clear the screen
  quit    (q)  leave the REPL

Templates are rendered against the loaded data as soon as Enter is pressed.

Keys:
  Tab, Shift-Tab        cycle completions (macro names after '{', data paths
                        or function names in a macro argument)
  Space                 accept the selected completion
  Up, Down              browse history, switching mode to match each entry
  Shift-Up, Shift-Down  browse history of the current mode only
  Alt-Up, Alt-Down      browse command history from either mode
  Ctrl-C, Ctrl-D        exit on an empty line
`

// formatError renders a template error, adding macro suggestions if any.
func formatError(err error) string {
	msg := "error: " + err.Error()

	var me *lang.MacroError
	if errors.As(err, &me) && len(me.Suggest) > 0 {
		msg += "\n  did you mean: " + strings.Join(me.Suggest, ", ") + "?"
	}

	return errorStyle.Render(msg)
}

// buffer is the text and cursor of the input line.
type buffer struct {
	text   string
	cursor int
}

// altNav is the state saved when Alt-Up/Down starts browsing command history.
type altNav struct {
	active bool
	mode   inputMode
	before buffer
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx     func() context.Context
	logger  log.Logger
	history *History

	data any
	opts []lang.Option

	macros []string // completions after '{'
	paths  []string // completions for path arguments
	funcs  []string // completions for the fn argument

	input textinput.Model
	mode  inputMode
	saved [2]buffer // input of each mode while the other is shown
	pos   int       // history position, history.Len() when not browsing
	alt   altNav
	comp  completion

	width    int
	quitting bool
}

// Run starts the REPL, rendering each entered template against data with the
// given host functions.
//
// History is kept in cacheDir; an empty cacheDir keeps it in memory only.
func Run(
	ctx context.Context,
	data any,
	funcs lang.Funcs,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var path string
	if cacheDir != "" {
		path = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("history", path),
		slog.Int("entries", history.Len()),
		slog.Int("funcs", len(funcs)),
	)

	_, err = tea.NewProgram(
		newModel(ctx, data, funcs, history, logger),
		tea.WithContext(ctx),
	).Run()

	return err
}

func newModel(
	ctx context.Context,
	data any,
	funcs lang.Funcs,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptFor(modeEval)
	ti.CharLimit = charLimit
	ti.Width = defaultWidth
	ti.Focus()

	return model{
		ctx:     func() context.Context { return ctx },
		logger:  logger,
		history: history,
		data:    data,
		// REPL input is compiled uncached.
		opts: []lang.Option{
			lang.WithFuncs(funcs),
			lang.WithLogger(logger),
			lang.WithCache(false),
		},
		macros: lang.Builtins().Names(),
		paths:  dataPaths(data),
		funcs:  slices.Sorted(maps.Keys(funcs)),
		input:  ti,
		mode:   modeEval,
		pos:    history.Len(),
		comp:   completion{index: -1},
		width:  defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt[modeEval]) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hint() + "\n"
}

// hint returns the line shown below the input.
func (m model) hint() string {
	line := m.input.Value()

	switch {
	case m.browsing():
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.pos+1)),
			m.history.Len()))

	case strings.TrimSpace(line) == "" && m.mode == modeCtrl:
		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") +
			" (press Esc to return)")

	case strings.TrimSpace(line) == "":
		return hintStyle.Render("Type a template or press Esc for commands")

	case len(m.comp.matches) > 0:
		return renderCandidateBar(m.comp.matches, m.comp.index, m.comp.cycling, m.width)

	case m.mode == modeEval:
		return renderSynopsis(macroAt(line, m.input.Position()))
	}

	return ""
}

// render renders line against the REPL data and styles the result.
func (m model) render(line string) string {
	out, err := lang.Render(m.ctx(), line, m.data, m.opts...)
	if err != nil {
		m.logger.TraceContext(m.ctx(), "repl render failed",
			slog.Any("error", err),
		)

		return formatError(err)
	}

	if out == "" {
		return hintStyle.Render("(no output)")
	}

	return resultStyle.Render(out)
}
