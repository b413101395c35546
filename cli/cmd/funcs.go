package cmd

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// funcEnv is the environment visible to a --func expression.
type funcEnv struct {
	// Path is the template's current dotted path.
	Path string `expr:"path"`
	// Data is the root template data.
	Data any `expr:"data"`
	// Value is the data resolved at Path, or nil if undefined.
	Value any `expr:"value"`
	// Resolve looks up an arbitrary dotted path in the root data.
	Resolve func(path string) any `expr:"resolve"`
}

func makeFuncEnv(path string, data any) funcEnv {
	value, _ := lang.Resolve(data, path)

	return funcEnv{
		Path:  path,
		Data:  native(data),
		Value: native(value),
		Resolve: func(p string) any {
			v, _ := lang.Resolve(data, p)

			return native(v)
		},
	}
}

// compileFuncs compiles NAME=EXPR definitions into host functions for the fn
// macro. Each result is converted to text with [lang.Stringify]; an
// expression that fails at run time produces no output.
func compileFuncs(ctx context.Context, defs []string) (lang.Funcs, error) {
	if len(defs) == 0 {
		return nil, nil
	}

	funcs := make(lang.Funcs, len(defs))

	for _, def := range defs {
		name, source, err := parseAssign(def)
		if err != nil {
			return nil, ErrCompileFunc.Wrap(err)
		}

		program, err := expr.Compile(source, expr.Env(funcEnv{}))
		if err != nil {
			return nil, ErrCompileFunc.
				With(slog.String("func", name)).
				Wrap(err)
		}

		funcs[name] = makeFunc(ctx, name, program)

		log.TraceContext(ctx, "func compiled",
			slog.String("func", name),
			slog.String("expr", source),
		)
	}

	return funcs, nil
}

func makeFunc(ctx context.Context, name string, program *vm.Program) lang.Func {
	return func(path string, data any) string {
		out, err := expr.Run(program, makeFuncEnv(path, data))
		if err != nil {
			log.DebugContext(ctx, "func failed",
				slog.String("func", name),
				slog.String("path", path),
				slog.Any("error", err),
			)

			return ""
		}

		return lang.Stringify(out)
	}
}
