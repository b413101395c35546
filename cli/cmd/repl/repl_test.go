package repl

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/brace/lang"
)

func TestModel_Render(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		input string
		want  string
	}{
		{"{. title}", "Home"},
		{"{each items {. name}}", "ab"},
		{"{has missing x}", "(no output)"},
		{"{eah items}", `did you mean: each?`},
		{"{. title", "unmatched brace"},
	}

	for _, tt := range tests {
		if got := m.render(tt.input); !strings.Contains(got, tt.want) {
			t.Errorf("render(%q) = %q, want it to contain %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatError(t *testing.T) {
	err := lang.ErrUnknownMacro.Wrap(&lang.MacroError{Name: "x", Suggest: []string{"a", "b"}})

	if got := formatError(err); !strings.Contains(got, "did you mean: a, b?") {
		t.Errorf("expected suggestions, got %q", got)
	}

	if got := formatError(errors.New("plain")); got != errorStyle.Render("error: plain") {
		t.Errorf("unexpected plain error %q", got)
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("{. ti")

	m = m.toggleMode()
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("expected empty command mode, got %v %q", m.mode, m.input.Value())
	}

	m.input.SetValue("he")

	m = m.toggleMode()
	if m.mode != modeEval || m.input.Value() != "{. ti" {
		t.Errorf("expected eval input restored, got %v %q", m.mode, m.input.Value())
	}

	m = m.toggleMode()
	if m.input.Value() != "he" {
		t.Errorf("expected command input restored, got %q", m.input.Value())
	}
}

func TestModel_TabCycle(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("{")
	m.input.SetCursor(1)
	m.complete(false)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	first := m.input.Value()

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	second := m.input.Value()

	if first == second || !strings.HasPrefix(first, "{") || !strings.HasPrefix(second, "{") {
		t.Errorf("expected distinct candidates, got %q and %q", first, second)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.input.Value() != "{" || m.mode != modeEval {
		t.Errorf("expected Esc to restore input, got %q", m.input.Value())
	}
}

func TestModel_History(t *testing.T) {
	m := testModel(t)

	for _, e := range []HistoryEntry{{"{. a}", modeEval}, {"paths", modeCtrl}, {"{. b}", modeEval}} {
		if err := m.history.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	m.pos = m.history.Len()

	m = m.historyStep(-1)
	if m.input.Value() != "{. b}" || m.mode != modeEval {
		t.Errorf("expected newest entry, got %q", m.input.Value())
	}

	m = m.historyStep(-1)
	if m.input.Value() != "paths" || m.mode != modeCtrl {
		t.Errorf("expected command entry with mode switch, got %q (%v)", m.input.Value(), m.mode)
	}

	m = m.switchToMode(modeEval)
	m.pos = m.history.Len()

	m = m.historyInMode(-1)
	m = m.historyInMode(-1)
	if m.input.Value() != "{. a}" {
		t.Errorf("expected mode-filtered entry, got %q", m.input.Value())
	}

	m = m.historyInMode(1)
	m = m.historyInMode(1)
	if m.input.Value() != "" || m.pos != m.history.Len() {
		t.Errorf("expected cleared input at end of history, got %q", m.input.Value())
	}
}

func TestModel_Commands(t *testing.T) {
	m := testModel(t)

	if out := m.listPaths(); !strings.Contains(out, "items.0.name") || !strings.Contains(out, "title") {
		t.Errorf("unexpected paths listing %q", out)
	}

	if out := m.listPaths("tit"); strings.Contains(out, "items") {
		t.Errorf("expected filtered listing, got %q", out)
	}

	if out := m.listMacros(); !strings.Contains(out, "{each PATH BODY}") {
		t.Errorf("unexpected macro listing %q", out)
	}

	m.mode = modeCtrl

	m, cmd := m.executeCommand("quit")
	if !m.quitting || cmd == nil {
		t.Error("expected quit to stop the program")
	}
}
