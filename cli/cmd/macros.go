package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ardnew/brace/lang"
)

// Macros lists the built-in macros.
type Macros struct {
	Names bool `help:"Print names only." short:"n"`
}

// Run executes the macros command.
func (m *Macros) Run(context.Context) error {
	names := lang.Builtins().Names()

	if m.Names {
		for _, name := range names {
			if _, err := fmt.Fprintln(stdout, name); err != nil {
				return err
			}
		}

		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)

	for _, name := range names {
		usage, summary := lang.Synopsis(name)
		fmt.Fprintf(w, "%s\t%s\n", usage, summary)
	}

	return w.Flush()
}
