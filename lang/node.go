package lang

import (
	"strings"
	"unicode"
)

// Node is an element of a parsed template: either a run of literal [Text]
// or a brace-delimited [Group].
type Node interface {
	String() string
	node()
}

// Text is a run of literal template text.
type Text struct {
	Value string
}

// Group is one matched {...} span of a template.
//
// Children always begins with a *Text holding the leading text of the
// span, which may be empty. Text and Group children alternate, and a
// Group is always followed by a (possibly empty) *Text.
type Group struct {
	Children []Node
}

func (*Text) node()  {}
func (*Group) node() {}

// String returns the text verbatim.
func (t *Text) String() string { return t.Value }

// NewGroup returns a group containing the given children.
// If the first child is not a *Text, an empty one is prepended.
func NewGroup(children ...Node) *Group {
	if len(children) > 0 {
		if _, ok := children[0].(*Text); ok {
			return &Group{Children: children}
		}
	}

	return &Group{Children: append([]Node{&Text{}}, children...)}
}

// String reconstructs the source of the group's contents, without the outer
// braces. Nested groups are wrapped in braces.
//
// Parsing a source and calling String on the result returns the source.
func (g *Group) String() string {
	var buf strings.Builder

	g.write(&buf)

	return buf.String()
}

func (g *Group) write(buf *strings.Builder) {
	for _, child := range g.Children {
		switch c := child.(type) {
		case *Text:
			buf.WriteString(c.Value)

		case *Group:
			buf.WriteByte('{')
			c.write(buf)
			buf.WriteByte('}')
		}
	}
}

// Head returns the leading text of the group, or nil if the group has none.
func (g *Group) Head() *Text {
	if len(g.Children) == 0 {
		return nil
	}

	head, _ := g.Children[0].(*Text)

	return head
}

// ParseArg consumes the macro invocation at the start of the group.
//
// The maximal run of non-whitespace characters at the start of the leading
// text is removed and returned, then any whitespace that follows is removed
// too. The rest of the group (the body) is left in place.
//
// ParseArg modifies g. Calling it twice consumes two words.
func (g *Group) ParseArg() string {
	head := g.Head()
	if head == nil {
		return ""
	}

	end := strings.IndexFunc(head.Value, unicode.IsSpace)
	if end < 0 {
		end = len(head.Value)
	}

	arg := head.Value[:end]
	head.Value = strings.TrimLeftFunc(head.Value[end:], unicode.IsSpace)

	return arg
}
