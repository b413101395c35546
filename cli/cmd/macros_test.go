package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/ardnew/brace/lang"
)

func TestMacrosRun(t *testing.T) {
	t.Run("names", func(t *testing.T) {
		buf := captureStdout(t)

		if err := (&Macros{Names: true}).Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		want := strings.Join(lang.Builtins().Names(), "\n") + "\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})

	t.Run("table", func(t *testing.T) {
		buf := captureStdout(t)

		if err := (&Macros{}).Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		if len(lines) != len(lang.Builtins().Names()) {
			t.Fatalf("expected %d lines, got %d", len(lang.Builtins().Names()), len(lines))
		}

		for _, want := range []string{"{each PATH BODY}", "BODY once per entry of PATH"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, buf.String())
			}
		}
	})
}
