package repl

import (
	"log/slog"

	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"
)

// completion is the state of fuzzy completion for the word at the cursor.
type completion struct {
	matches    fuzzy.Matches // ranked best-first
	candidates []string
	start, end int    // byte offsets of the word being completed
	index      int    // selected match while cycling, else -1
	cycling    bool   // Tab has been pressed since the last edit
	before     buffer // input before cycling began
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctx(), "repl key",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			return m.quit()
		}

		m.comp.cycling = false
		m.alt.active = false
		m = m.setInput(buffer{})

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			return m.quit()
		}

		return m, nil

	case tea.KeyEnter:
		m.alt.active = false

		if m.comp.cycling && len(m.comp.matches) > 0 {
			// Keep the selected candidate without submitting.
			m.comp.cycling = false
			m.complete(true)

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp, tea.KeyDown:
		step := 1
		if msg.Type == tea.KeyUp {
			step = -1
		}

		if msg.Alt {
			return m.historyCtrl(step), nil
		}

		return m.historyStep(step), nil

	case tea.KeyShiftUp:
		return m.historyInMode(-1), nil

	case tea.KeyShiftDown:
		return m.historyInMode(1), nil

	case tea.KeyEsc:
		if m.comp.cycling {
			m.comp.cycling = false
			m = m.setInput(m.comp.before)

			return m, nil
		}

		m.alt.active = false

		return m.toggleMode(), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space accepts the selected candidate.
		if msg.Type == tea.KeySpace || msg.String() == " " {
			m.comp.cycling = false
		}

		return m.edit(msg, true)
	}

	m.comp.cycling = false
	m.alt.active = false

	return m.edit(msg, false)
}

// edit passes msg to the line editor and recomputes completions.
func (m model) edit(msg tea.Msg, confirm bool) (model, tea.Cmd) {
	var cmd tea.Cmd

	m.pos = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.complete(confirm)

	return m, cmd
}

func (m model) quit() (model, tea.Cmd) {
	m.quitting = true

	return m, tea.Quit
}

// cycle moves the selected candidate by step (1 for Tab, -1 for Shift-Tab).
// A lone candidate is accepted at once.
func (m model) cycle(step int) model {
	n := len(m.comp.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.comp.matches[0].Str)
		m.comp.accept()

		return m

	case m.comp.cycling:
		m.comp.index = (m.comp.index + step + n) % n

	default:
		m.comp.cycling = true
		m.comp.before = buffer{m.input.Value(), m.input.Position()}

		m.comp.index = 0
		if step < 0 {
			m.comp.index = n - 1
		}
	}

	m.replaceWord(m.comp.matches[m.comp.index].Str)

	return m
}

// accept ends completion of the current word.
func (c *completion) accept() {
	c.cycling = false
	c.index = -1
	c.matches = nil
}

// replaceWord replaces the word being completed with s and moves the cursor
// after it.
func (m *model) replaceWord(s string) {
	line := m.input.Value()
	end := m.comp.start + len(s)

	m.input.SetValue(line[:m.comp.start] + s + line[m.comp.end:])
	m.input.SetCursor(end)

	m.comp.end = end
}

// complete recomputes the completions for the word at the cursor.
//
// With confirm set, a word that already equals its only candidate is
// accepted. Deletions and cursor movement pass false so editing never
// completes unexpectedly.
func (m *model) complete(confirm bool) {
	m.comp.matches, m.comp.candidates, m.comp.start, m.comp.end = m.computeMatches()

	if !m.comp.cycling {
		m.comp.index = -1
	}

	if !confirm || len(m.comp.matches) != 1 {
		return
	}

	if only := m.comp.matches[0].Str; m.input.Value()[m.comp.start:m.comp.end] == only {
		m.replaceWord(only)
		m.comp.accept()
	}
}
