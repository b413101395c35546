package lang

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"github.com/zeebo/xxh3"
)

// maxSuggestions bounds the names offered for an unknown macro.
const maxSuggestions = 3

// Compile parses template source and compiles it into a [Program].
//
// The whole template is compiled as the body of the out macro, so whitespace
// leading it is dropped as it is after any macro name. Every nested
// group is compiled by the macro its invocation names: the first word of
// the group's leading text. Groups naming no registered macro fail with
// [ErrUnknownMacro]; the error wraps a [*MacroError] carrying the name.
// Unbalanced braces fail with a [*ParseError].
//
// Compiled programs are cached by source unless caller-supplied macros are
// in effect or [WithCache](false) is given.
func Compile(ctx context.Context, source string, opts ...Option) (*Program, error) {
	cfg := makeConfig(opts...)

	if !cfg.cacheable() {
		cfg.logger.TraceContext(
			ctx,
			"cache bypass",
			slog.Int("user_macros", len(cfg.macros)),
			slog.Bool("cache_disabled", cfg.nocache),
		)

		return compile(ctx, source, cfg)
	}

	return compileCached(ctx, source, cfg)
}

// MustCompile is like [Compile] but panics if the source cannot be compiled.
func MustCompile(ctx context.Context, source string, opts ...Option) *Program {
	p, err := Compile(ctx, source, opts...)
	if err != nil {
		panic(err)
	}

	return p
}

// compile is the uncached compilation path.
func compile(ctx context.Context, source string, cfg config) (*Program, error) {
	cfg.logger.TraceContext(
		ctx,
		"compile start",
		slog.Int("source_length", len(source)),
	)

	root, err := Parse(source)
	if err != nil {
		return nil, err
	}

	c := compiler{ctx: ctx, reg: registry{user: cfg.macros}, cfg: cfg}

	out, ok := c.reg.lookup(MacroOut)
	if !ok {
		return nil, c.unknown(MacroOut)
	}

	// The root is the body of an implicit out invocation, so whitespace
	// leading the template is consumed like any macro's argument separator.
	if head := root.Head(); head != nil {
		head.Value = strings.TrimLeftFunc(head.Value, unicode.IsSpace)
	}

	op, err := out.Compile(root, c.transform)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "compile complete", slog.Int("groups", c.groups))

	return &Program{root: op, source: source, hash: xxh3.HashString(source)}, nil
}

type compiler struct {
	ctx    context.Context
	reg    registry
	cfg    config
	groups int
}

// transform compiles one group by the macro its invocation names.
func (c *compiler) transform(g *Group) (Op, error) {
	c.groups++

	name := g.ParseArg()

	m, ok := c.reg.lookup(name)
	if !ok {
		return nil, c.unknown(name)
	}

	return m.Compile(g, c.transform)
}

func (c *compiler) unknown(name string) error {
	var suggest []string

	if name != "" {
		for _, match := range fuzzy.Find(name, c.reg.names()) {
			if len(suggest) == maxSuggestions {
				break
			}

			suggest = append(suggest, match.Str)
		}
	}

	c.cfg.logger.DebugContext(
		c.ctx,
		"unknown macro",
		slog.String("macro", name),
		slog.Any("suggest", suggest),
	)

	return ErrUnknownMacro.
		With(slog.String("macro", name)).
		Wrap(&MacroError{Name: name, Suggest: suggest})
}
