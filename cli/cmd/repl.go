package cmd

import (
	"context"

	"github.com/ardnew/brace/cli/cmd/repl"
	"github.com/ardnew/brace/log"
)

// Repl starts an interactive template preview over the input data.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := inputFrom(ctx).Load(ctx)
	if err != nil {
		return err
	}

	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoHistory {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, env.Data, env.Funcs, cacheDir, log.Default())
}
