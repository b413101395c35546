package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/ardnew/brace/lang"
)

func TestInput_Load(t *testing.T) {
	dir := t.TempDir()

	in := &Input{
		Data: []string{
			writeFile(t, dir, "site.yaml", "title: Site\nauthor: Bob\n"),
			writeFile(t, dir, "page.json", `{"title": "Page"}`),
		},
		Set:   []string{"author=Ada", "draft="},
		Func:  []string{"shout=upper(value) + \"!\""},
		DB:    createDB(t),
		Query: `SELECT slug FROM pages ORDER BY rowid`,
		Rows:  "pages",
	}

	env, err := in.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	d, ok := env.Data.(*document)
	if !ok {
		t.Fatalf("expected *document, got %T", env.Data)
	}

	want := []string{"title", "author", "pages", "draft"}
	if got := d.Keys(); len(got) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}

	for i, k := range want {
		if d.Keys()[i] != k {
			t.Errorf("key %d: expected %q, got %q", i, k, d.Keys()[i])
		}
	}

	out, err := lang.Render(context.Background(),
		`{. title} by {. author}:{each pages {. slug},}{has draft !}{-> title {fn shout}}`,
		env.Data, lang.WithFuncs(env.Funcs))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if want := "Page by Ada:home,about,PAGE!"; out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestInput_LoadEmpty(t *testing.T) {
	env, err := new(Input).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if d, ok := env.Data.(*document); !ok || len(d.Keys()) != 0 {
		t.Errorf("expected empty document, got %#v", env.Data)
	}

	if env.Funcs != nil {
		t.Errorf("expected no funcs, got %v", env.Funcs)
	}
}

func TestInput_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "list.yaml", "- a\n- b\n")
	bad := writeFile(t, dir, "bad.yaml", "a: [1\n")

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"missing", Input{Data: []string{"no-such-file.yaml"}}, ErrOpenData},
		{"decode", Input{Data: []string{bad}}, ErrDecodeData},
		{"merge", Input{Data: []string{list}, Set: []string{"a=b"}}, ErrMergeData},
		{"assign", Input{Set: []string{"novalue"}}, ErrAssign},
		{"func", Input{Func: []string{"f=)"}}, ErrCompileFunc},
		{"query", Input{DB: createDB(t), Query: "SELECT nope FROM pages"}, ErrQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Load(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
