package lang

import (
	"maps"
	"slices"
)

// Recurse compiles a nested group, dispatching on its macro name.
// Macros receive one so they can compile the groups in their bodies.
type Recurse func(g *Group) (Op, error)

// Children compiles every child of g in order. Text children become
// [Literal] instructions (empty text is dropped) and Group children are
// compiled with r.
func (r Recurse) Children(g *Group) (Op, error) {
	seq := make(Seq, 0, len(g.Children))

	for _, child := range g.Children {
		switch c := child.(type) {
		case *Text:
			if c.Value != "" {
				seq = append(seq, Literal(c.Value))
			}

		case *Group:
			op, err := r(c)
			if err != nil {
				return nil, err
			}

			seq = append(seq, op)
		}
	}

	return seq, nil
}

// Macro compiles a group whose invocation named it.
//
// When Compile is called, the macro name has already been consumed from the
// head of g. The macro may call [Group.ParseArg] to consume its argument.
type Macro interface {
	Compile(g *Group, recurse Recurse) (Op, error)
}

// MacroFunc adapts an ordinary function to the [Macro] interface.
type MacroFunc func(g *Group, recurse Recurse) (Op, error)

// Compile calls f(g, recurse).
func (f MacroFunc) Compile(g *Group, recurse Recurse) (Op, error) {
	return f(g, recurse)
}

// Macros maps macro names to their implementations.
type Macros map[string]Macro

// Names returns the macro names in sorted order.
func (m Macros) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Names of the built-in macros.
const (
	MacroValue   = "."
	MacroWith    = "->"
	MacroHas     = "has"
	MacroEach    = "each"
	MacroPath    = "path"
	MacroOut     = "out"
	MacroLiteral = "literal"
	MacroFn      = "fn"
)

var builtins = Macros{
	MacroValue:   valueMacro{},
	MacroWith:    withMacro{},
	MacroHas:     hasMacro{},
	MacroEach:    eachMacro{},
	MacroPath:    pathMacro{},
	MacroOut:     outMacro{},
	MacroLiteral: literalMacro{},
	MacroFn:      fnMacro{},
}

// Builtins returns a copy of the built-in macro registry.
func Builtins() Macros { return maps.Clone(builtins) }

var synopsis = map[string][2]string{
	MacroValue:   {"{. PATH}", "value at PATH"},
	MacroWith:    {"{-> PATH BODY}", "BODY with PATH as the current path"},
	MacroHas:     {"{has PATH BODY}", "BODY if PATH is defined and truthy"},
	MacroEach:    {"{each PATH BODY}", "BODY once per entry of PATH"},
	MacroPath:    {"{path SEGMENT}", "the current path extended by SEGMENT"},
	MacroOut:     {"{out BODY}", "BODY"},
	MacroLiteral: {"{literal TEXT}", "TEXT verbatim, braces included"},
	MacroFn:      {"{fn NAME}", "output of host function NAME"},
}

// Synopsis returns the usage form and a one-line summary of a built-in
// macro, or two empty strings if name is not built in.
func Synopsis(name string) (usage, summary string) {
	s := synopsis[name]

	return s[0], s[1]
}

// {. path} emits the value at path. The rest of the group is ignored.
type valueMacro struct{}

func (valueMacro) Compile(g *Group, _ Recurse) (Op, error) {
	return Value{Path: g.ParseArg()}, nil
}

// {-> path body} runs body relative to path.
type withMacro struct{}

func (withMacro) Compile(g *Group, recurse Recurse) (Op, error) {
	path := g.ParseArg()

	body, err := recurse.Children(g)
	if err != nil {
		return nil, err
	}

	return With{Path: path, Body: body}, nil
}

// {has path body} runs body if path is defined.
type hasMacro struct{}

func (hasMacro) Compile(g *Group, recurse Recurse) (Op, error) {
	path := g.ParseArg()

	body, err := recurse.Children(g)
	if err != nil {
		return nil, err
	}

	return If{Path: path, Body: body}, nil
}

// {each path body} runs body once per member of path.
type eachMacro struct{}

func (eachMacro) Compile(g *Group, recurse Recurse) (Op, error) {
	path := g.ParseArg()

	body, err := recurse.Children(g)
	if err != nil {
		return nil, err
	}

	return Each{Path: path, Body: body}, nil
}

// {path segment} emits the current path extended by segment.
type pathMacro struct{}

func (pathMacro) Compile(g *Group, _ Recurse) (Op, error) {
	return PathOf{Path: g.ParseArg()}, nil
}

// {out body} compiles body as ordinary template text.
type outMacro struct{}

func (outMacro) Compile(g *Group, recurse Recurse) (Op, error) {
	return recurse.Children(g)
}

// {literal body} emits body verbatim, braces included.
type literalMacro struct{}

func (literalMacro) Compile(g *Group, _ Recurse) (Op, error) {
	return Verbatim(g.String()), nil
}

// {fn name} emits the result of a host function.
type fnMacro struct{}

func (fnMacro) Compile(g *Group, _ Recurse) (Op, error) {
	return Call{Name: g.ParseArg()}, nil
}

// registry resolves macro names, preferring caller-supplied macros over the
// built-ins.
type registry struct {
	user Macros
}

func (r registry) lookup(name string) (Macro, bool) {
	if m, ok := r.user[name]; ok && m != nil {
		return m, true
	}

	m, ok := builtins[name]

	return m, ok
}

func (r registry) names() []string {
	all := maps.Clone(builtins)
	maps.Copy(all, r.user)

	return all.Names()
}
