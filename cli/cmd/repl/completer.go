package repl

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/brace/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "paths", "macros", "clear", "quit"}

// Limits on the data paths offered for completion.
const (
	maxPaths     = 4096
	maxPathDepth = 8
)

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace and braces. Dots are not boundaries because they are
// part of data paths.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '{', '}':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// right after a brace, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// enclosing returns the offset of the innermost unclosed '{' before pos.
func enclosing(input string, pos int) (open int, ok bool) {
	var stack []int

	for i := range min(pos, len(input)) {
		switch input[i] {
		case '{':
			stack = append(stack, i)

		case '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return 0, false
	}

	return stack[len(stack)-1], true
}

// macroAt returns the name of the macro invoked by the innermost group open
// at pos, or "" if pos is outside every group.
func macroAt(input string, pos int) string {
	open, ok := enclosing(input, pos)
	if !ok {
		return ""
	}

	head := input[open+1:]
	if i := strings.IndexAny(head, "{}"); i >= 0 {
		head = head[:i]
	}

	if f := strings.Fields(head); len(f) > 0 {
		return f[0]
	}

	return ""
}

// wordRole is the part a word plays in its group.
type wordRole int

const (
	roleText  wordRole = iota // literal text or a macro body
	roleMacro                 // the macro name right after '{'
	roleArg                   // the macro argument
)

// classify reports the role of the word beginning at wordStart, and for an
// argument the macro it belongs to.
func classify(input string, wordStart int) (wordRole, string) {
	open, ok := enclosing(input, wordStart)
	if !ok {
		return roleText, ""
	}

	head := input[open+1 : wordStart]
	if strings.ContainsAny(head, "{}") {
		return roleText, ""
	}

	switch f := strings.Fields(head); len(f) {
	case 0:
		return roleMacro, ""

	case 1:
		return roleArg, f[0]

	default:
		return roleText, ""
	}
}

// dataPaths lists the dotted paths reachable in data, breadth first, limited
// to maxPaths entries and maxPathDepth segments.
func dataPaths(data any) []string {
	type node struct {
		path  string
		value any
		depth int
	}

	var paths []string

	queue := []node{{value: data}}

	for len(queue) > 0 && len(paths) < maxPaths {
		n := queue[0]
		queue = queue[1:]

		if n.depth >= maxPathDepth {
			continue
		}

		for key, value := range lang.Entries(n.value) {
			path := lang.AddToPath(n.path, key)
			paths = append(paths, path)

			if len(paths) >= maxPaths {
				break
			}

			queue = append(queue, node{path, value, n.depth + 1})
		}
	}

	return paths
}

// argCandidates returns the completions for the argument of macro.
func (m model) argCandidates(macro string) []string {
	switch macro {
	case lang.MacroValue, lang.MacroWith, lang.MacroHas, lang.MacroEach:
		return m.paths

	case lang.MacroFn:
		return m.funcs

	default:
		return nil
	}
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word lists every candidate, except in literal text
// where nothing is completed.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		switch role, macro := classify(input, wordStart); role {
		case roleMacro:
			candidates = m.macros

		case roleArg:
			candidates = m.argCandidates(macro)
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	if word == "" {
		if m.mode == modeCtrl {
			return nil, nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	cycling bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, cycling && i == selected)
		entryWidth := lipgloss.Width(rendered)

		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}

// renderSynopsis returns the usage hint for macro, or "" if it is not a
// built-in.
func renderSynopsis(macro string) string {
	usage, summary := lang.Synopsis(macro)
	if usage == "" {
		return ""
	}

	return suggestionStyle.Render(usage) + "  " + hintStyle.Render(summary)
}

// formatPreview generates a short preview of a data value.
func formatPreview(v any) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"

	case lang.Object:
		return fmt.Sprintf("{ %d keys }", len(v.Keys()))
	}

	n := 0
	for range lang.Entries(v) {
		n++
	}

	if n > 0 {
		return fmt.Sprintf("{ %d items }", n)
	}

	s := lang.Stringify(v)
	if len(s) > 40 {
		return s[:37] + "..."
	}

	return s
}
