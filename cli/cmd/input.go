package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// Input holds the global flags describing template data, user functions, and
// the template search path.
type Input struct {
	Data  []string `help:"YAML or JSON data file(s) or '-' for stdin"            placeholder:"FILE"      short:"d"`
	Set   []string `help:"Set a top-level data key to a string"                  placeholder:"KEY=VALUE" sep:"none" short:"s"`
	Func  []string `help:"Define a template function as an expr-lang expression" placeholder:"NAME=EXPR" sep:"none"`
	DB    string   `help:"SQLite database file"                                  placeholder:"FILE"                 type:"existingfile"`
	Query string   `help:"SQL query whose rows become template data"             placeholder:"SQL"`
	Rows  string   `help:"Data key holding the query rows"                       default:"rows"`
	Path  []string `help:"Template search directory (searched before BRACE_PATH)" placeholder:"DIR"  type:"path"`
}

// Env is the data and functions every command renders with.
type Env struct {
	Data  any
	Funcs lang.Funcs
}

// Options returns the lang options for rendering with e.
func (e Env) Options(logger log.Logger) []lang.Option {
	return []lang.Option{lang.WithFuncs(e.Funcs), lang.WithLogger(logger)}
}

// Load reads every configured data source and compiles the user functions.
//
// Data files are merged left to right, then the query rows are stored under
// the Rows key, and finally each Set assignment is applied.
func (in *Input) Load(ctx context.Context) (env Env, err error) {
	var docs []any

	files, err := openDataFiles(in.Data)
	if err != nil {
		return env, err
	}
	defer closeDataFiles(files)

	for _, f := range files {
		vs, err := decodeData(ctx, f.name, f)
		if err != nil {
			return env, err
		}

		docs = append(docs, vs...)
	}

	if in.Query != "" {
		rows, err := queryRows(ctx, in.DB, in.Query)
		if err != nil {
			return env, err
		}

		d := newDocument()
		d.set(in.Rows, rows)
		docs = append(docs, d)
	}

	if len(in.Set) > 0 {
		d := newDocument()

		for _, kv := range in.Set {
			k, v, err := parseAssign(kv)
			if err != nil {
				return env, err
			}

			d.set(k, v)
		}

		docs = append(docs, d)
	}

	if env.Data, err = mergeData(docs...); err != nil {
		return env, err
	}

	if env.Funcs, err = compileFuncs(ctx, in.Func); err != nil {
		return env, err
	}

	log.DebugContext(ctx, "input loaded",
		slog.Int("files", len(files)),
		slog.Int("documents", len(docs)),
		slog.Int("funcs", len(env.Funcs)),
	)

	return env, nil
}

// openTemplate opens the template named by name, which is either "-" for
// stdin or a file located with [findTemplate]. It also returns the path that
// was opened.
func (in *Input) openTemplate(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if name == stdinSource {
		return io.NopCloser(os.Stdin), name, nil
	}

	path, err := findTemplate(ctx, name, in.Path...)
	if err != nil {
		return nil, name, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, lang.ErrReadInput.With(slog.String("source", path)).Wrap(err)
	}

	return f, path, nil
}
