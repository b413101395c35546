package lang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/brace/log"
)

// Execute runs the program against data and returns the output text.
//
// Paths are resolved against data (see [Resolve]); data that is not
// [Truthy], including a typed nil pointer, is treated as an empty map. Execution never fails: undefined values, empty iterations,
// and missing host functions all produce no output.
//
// Only [WithFuncs], [WithFunc] and [WithLogger] affect execution.
func (p *Program) Execute(ctx context.Context, data any, opts ...Option) string {
	if p == nil {
		return ""
	}

	cfg := makeConfig(opts...)

	if !Truthy(data) {
		data = map[string]any{}
	}

	x := executor{
		ctx:    ctx,
		data:   data,
		funcs:  cfg.funcs,
		logger: cfg.logger,
	}

	x.run(p.root)

	return x.out.String()
}

// executor holds the mutable state of one execution.
type executor struct {
	ctx    context.Context
	data   any
	path   string
	out    strings.Builder
	funcs  Funcs
	logger log.Logger
}

func (x *executor) run(op Op) {
	switch op := op.(type) {
	case nil:

	case Seq:
		for _, o := range op {
			x.run(o)
		}

	case Literal:
		x.out.WriteString(string(op))

	case Verbatim:
		x.out.WriteString(string(op))

	case Value:
		v, _ := Resolve(x.data, AddToPath(x.path, op.Path))
		x.out.WriteString(Stringify(v))

	case PathOf:
		x.out.WriteString(AddToPath(x.path, op.Path))

	case With:
		x.scope(AddToPath(x.path, op.Path), func() { x.run(op.Body) })

	case If:
		if _, ok := Resolve(x.data, AddToPath(x.path, op.Path)); ok {
			x.run(op.Body)
		}

	case Each:
		base := AddToPath(x.path, op.Path)

		x.scope(base, func() {
			v, ok := Resolve(x.data, base)
			if !ok {
				return
			}

			for key := range Entries(v) {
				x.scope(AddToPath(base, key), func() { x.run(op.Body) })
			}
		})

	case Call:
		fn, ok := x.funcs[op.Name]
		if !ok || fn == nil {
			x.logger.TraceContext(
				x.ctx,
				"function not found",
				slog.String("function", op.Name),
				slog.String("path", x.path),
			)

			return
		}

		x.out.WriteString(fn(x.path, x.data))

	default:
		x.logger.TraceContext(x.ctx, "unknown instruction", slog.Any("op", op))
	}
}

// scope runs body with the current path set to path, then restores it.
func (x *executor) scope(path string, body func()) {
	saved := x.path
	x.path = path

	defer func() { x.path = saved }()

	body()
}
