package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToNative converts a parsed tree into plain Go values.
//
// Text becomes a string and a Group becomes a []any of its converted
// children, so {a {b} c} becomes []any{"a ", []any{"b"}, " c"}.
func ToNative(n Node) any {
	switch n := n.(type) {
	case *Text:
		return n.Value

	case *Group:
		children := make([]any, len(n.Children))
		for i, child := range n.Children {
			children[i] = ToNative(child)
		}

		return children

	default:
		return nil
	}
}

// ToNative converts the program's instructions into plain Go values.
//
// Each instruction becomes a map with an "op" key naming it, plus the keys
// "text", "path", "name" and "body" as the instruction has them. A Seq
// becomes a []any.
func (p *Program) ToNative() any {
	return opNative(p.root)
}

func opNative(op Op) any {
	switch op := op.(type) {
	case Seq:
		items := make([]any, len(op))
		for i, o := range op {
			items[i] = opNative(o)
		}

		return items

	case Literal:
		return map[string]any{"op": opName(op), "text": string(op)}

	case Verbatim:
		return map[string]any{"op": opName(op), "text": string(op)}

	case Value:
		return map[string]any{"op": opName(op), "path": op.Path}

	case PathOf:
		return map[string]any{"op": opName(op), "path": op.Path}

	case With:
		return map[string]any{"op": opName(op), "path": op.Path, "body": opNative(op.Body)}

	case If:
		return map[string]any{"op": opName(op), "path": op.Path, "body": opNative(op.Body)}

	case Each:
		return map[string]any{"op": opName(op), "path": op.Path, "body": opNative(op.Body)}

	case Call:
		return map[string]any{"op": opName(op), "name": op.Name}

	default:
		return nil
	}
}

func opName(op Op) string {
	switch op.(type) {
	case Seq:
		return "seq"
	case Literal:
		return "literal"
	case Verbatim:
		return "verbatim"
	case Value:
		return "value"
	case PathOf:
		return "path"
	case With:
		return "with"
	case If:
		return "if"
	case Each:
		return "each"
	case Call:
		return "call"
	default:
		return fmt.Sprintf("%T", op)
	}
}

// Print writes an indented dump of the tree to w, one node per line.
func (g *Group) Print(w io.Writer) error {
	return printNode(w, g, 0)
}

func printNode(w io.Writer, n Node, depth int) error {
	pad := strings.Repeat("  ", depth)

	switch n := n.(type) {
	case *Text:
		_, err := fmt.Fprintln(w, pad+"text", strconv.Quote(n.Value))

		return err

	case *Group:
		if _, err := fmt.Fprintln(w, pad+"group"); err != nil {
			return err
		}

		for _, child := range n.Children {
			if err := printNode(w, child, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// Print writes an indented dump of the program to w, one instruction per
// line.
func (p *Program) Print(w io.Writer) error {
	return printOp(w, p.root, 0)
}

func printOp(w io.Writer, op Op, depth int) error {
	pad := strings.Repeat("  ", depth) + opName(op)

	var (
		err  error
		body Op
	)

	switch op := op.(type) {
	case Seq:
		if _, err = fmt.Fprintln(w, pad); err != nil {
			return err
		}

		for _, o := range op {
			if err = printOp(w, o, depth+1); err != nil {
				return err
			}
		}

		return nil

	case Literal:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(string(op)))

	case Verbatim:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(string(op)))

	case Value:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(op.Path))

	case PathOf:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(op.Path))

	case Call:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(op.Name))

	case With:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(op.Path))
		body = op.Body

	case If:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(op.Path))
		body = op.Body

	case Each:
		_, err = fmt.Fprintln(w, pad, strconv.Quote(op.Path))
		body = op.Body

	default:
		_, err = fmt.Fprintln(w, pad)
	}

	if err != nil || body == nil {
		return err
	}

	return printOp(w, body, depth+1)
}

// FormatJSON writes v as JSON to w. A positive indent pretty-prints with
// that many spaces per level.
func FormatJSON(w io.Writer, v any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return ErrUnsupportedType.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes v as YAML to w. A positive indent uses block style with
// that many spaces per level; otherwise flow style is used.
func FormatYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return ErrUnsupportedType.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
