package lang

// Parse converts template source into a tree of groups.
//
// The returned root group holds the whole template. Each '{' opens a nested
// group and each '}' closes the innermost open group. All other characters,
// including whitespace and newlines, are kept as literal text. There is no
// escape syntax.
//
// If a '}' has no open group, or the source ends while a group is still
// open, Parse returns a [*ParseError] locating the offending brace. The
// error unwraps to [ErrUnmatchedBrace].
func Parse(source string) (*Group, error) {
	var (
		root    = NewGroup()
		current = root
		stack   []*Group
		opened  []int // byte offsets of the braces that opened stack entries
		start   int   // byte offset of the pending text run
	)

	flush := func(end int) {
		if end > start {
			current.Children[len(current.Children)-1].(*Text).Value += source[start:end]
		}
	}

	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '{':
			flush(i)

			stack = append(stack, current)
			opened = append(opened, i)
			current = NewGroup()
			start = i + 1

		case '}':
			flush(i)

			if len(stack) == 0 {
				return nil, newParseError(source, i)
			}

			parent := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			opened = opened[:len(opened)-1]

			parent.Children = append(parent.Children, current, &Text{})
			current = parent
			start = i + 1
		}
	}

	if len(stack) > 0 {
		return nil, newParseError(source, opened[len(opened)-1])
	}

	flush(len(source))

	return root, nil
}
