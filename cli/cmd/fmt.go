package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// Fmt prints the intermediate forms of a template.
type Fmt struct {
	Tree    FmtTree    `cmd:"" default:"withargs" help:"Print the parsed brace tree (default)."`
	Program FmtProgram `cmd:""                    help:"Print the compiled program."`
}

// FmtFlags are the flags shared by the fmt subcommands.
type FmtFlags struct {
	Format string `default:"native" enum:"native,json,yaml" help:"Output format (${enum})."                   short:"f"`
	Indent int    `default:"2"                              help:"Indent width for JSON and YAML (0: compact)." short:"i"`

	Template string `arg:"" default:"-" help:"Template file, name on the search path, or '-' for stdin." name:"template"`
}

// read returns the template source.
func (f *FmtFlags) read(ctx context.Context) (string, error) {
	rc, _, err := inputFrom(ctx).openTemplate(ctx, f.Template)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", lang.ErrReadInput.With(slog.String("source", f.Template)).Wrap(err)
	}

	return string(b), nil
}

// write prints in the selected format. Native output uses dump, the others
// encode the value returned by native.
func (f *FmtFlags) write(
	ctx context.Context,
	dump func(io.Writer) error,
	native func() any,
) error {
	switch f.Format {
	case "json":
		return lang.FormatJSON(stdout, native(), f.Indent)

	case "yaml":
		return lang.FormatYAML(ctx, stdout, native(), f.Indent)

	default:
		return dump(stdout)
	}
}

// FmtTree prints the parsed tree of a template.
type FmtTree struct {
	FmtFlags `embed:""`
}

// Run executes the fmt tree command.
func (t *FmtTree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	source, err := t.read(ctx)
	if err != nil {
		return err
	}

	tree, err := lang.Parse(source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", t.Format))
	}

	return t.write(ctx, tree.Print, func() any { return lang.ToNative(tree) })
}

// FmtProgram prints the compiled program of a template.
type FmtProgram struct {
	FmtFlags `embed:""`
}

// Run executes the fmt program command.
func (p *FmtProgram) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	source, err := p.read(ctx)
	if err != nil {
		return err
	}

	program, err := lang.Compile(ctx, source, lang.WithLogger(log.Default()))
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", p.Format))
	}

	return p.write(ctx, program.Print, program.ToNative)
}
