package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// stdout is where commands write their results.
var stdout io.Writer = os.Stdout

// Render compiles a template and renders it against the input data.
type Render struct {
	Template string `arg:"" help:"Template file, name on the search path, or '-' for stdin" name:"template" optional:""`
	Expr     string `       help:"Render SOURCE instead of a template file"                  placeholder:"SOURCE" short:"e"`
	Output   string `       help:"Write output to FILE (replaced atomically)"                placeholder:"FILE"   short:"o" type:"path"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in := inputFrom(ctx)

	env, err := in.Load(ctx)
	if err != nil {
		return err
	}

	opts := env.Options(log.Default())

	program, name, err := r.compile(ctx, in, opts)
	if err != nil {
		return lang.WrapError(err).With(
			slog.String("command", "render"),
			slog.String("template", name),
		)
	}

	out := program.Execute(ctx, env.Data, opts...)

	log.DebugContext(ctx, "rendered",
		slog.String("template", name),
		slog.Int("bytes", len(out)),
	)

	return r.write(out)
}

func (r *Render) compile(
	ctx context.Context,
	in *Input,
	opts []lang.Option,
) (*lang.Program, string, error) {
	if r.Expr != "" {
		p, err := lang.Compile(ctx, r.Expr, opts...)

		return p, "-e", err
	}

	if r.Template == "" {
		return nil, "", ErrNoTemplate
	}

	rc, path, err := in.openTemplate(ctx, r.Template)
	if err != nil {
		return nil, r.Template, err
	}
	defer rc.Close()

	p, err := lang.CompileReader(ctx, rc, opts...)

	return p, path, err
}

func (r *Render) write(out string) error {
	if r.Output == "" {
		_, err := fmt.Fprint(stdout, out)

		return err
	}

	err := atomic.WriteFile(r.Output, strings.NewReader(out))
	if err != nil {
		return ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
	}

	return nil
}
