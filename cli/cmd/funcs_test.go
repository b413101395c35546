package cmd

import (
	"context"
	"errors"
	"testing"
)

func TestCompileFuncs(t *testing.T) {
	funcs, err := compileFuncs(context.Background(), []string{
		`upper=upper(value)`,
		`where=path`,
		`count=len(resolve("list"))`,
		`title=data.title + "!"`,
		`broken=int(value)`,
	})
	if err != nil {
		t.Fatalf("compileFuncs failed: %v", err)
	}

	d := newDocument()
	d.set("name", "ada")
	d.set("title", "Home")
	d.set("list", []any{1, 2, 3})

	tests := []struct {
		fn, path, want string
	}{
		{"upper", "name", "ADA"},
		{"where", "list.0", "list.0"},
		{"count", ".", "3"},
		{"title", ".", "Home!"},
		{"broken", "name", ""},
	}

	for _, tt := range tests {
		if got := funcs[tt.fn](tt.path, d); got != tt.want {
			t.Errorf("%s(%q): expected %q, got %q", tt.fn, tt.path, tt.want, got)
		}
	}
}

func TestCompileFuncs_Errors(t *testing.T) {
	for _, defs := range [][]string{
		{"noequals"},
		{"bad=1 +"},
		{"unknown=nosuchvar"},
	} {
		if _, err := compileFuncs(context.Background(), defs); !errors.Is(err, ErrCompileFunc) {
			t.Errorf("%v: expected ErrCompileFunc, got %v", defs, err)
		}
	}

	if funcs, err := compileFuncs(context.Background(), nil); funcs != nil || err != nil {
		t.Errorf("expected nil result, got %v (%v)", funcs, err)
	}
}
