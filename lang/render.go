package lang

import "context"

// Render compiles source and executes it against data in one step.
func Render(ctx context.Context, source string, data any, opts ...Option) (string, error) {
	p, err := Compile(ctx, source, opts...)
	if err != nil {
		return "", err
	}

	return p.Execute(ctx, data, opts...), nil
}
