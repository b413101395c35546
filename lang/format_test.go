package lang

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestProgram_Print(t *testing.T) {
	p, err := Compile(context.Background(), "a{has x {-> x {path}}}{literal {y}}{fn f}", WithCache(false))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	var buf strings.Builder
	if err := p.Print(&buf); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	want := `seq
  literal "a"
  if "x"
    seq
      with "x"
        seq
          path ""
  verbatim "{y}"
  call "f"
`
	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestProgram_ToNative(t *testing.T) {
	p, err := Compile(context.Background(), "{each l {. v}}", WithCache(false))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	want := []any{
		map[string]any{
			"op":   "each",
			"path": "l",
			"body": []any{map[string]any{"op": "value", "path": "v"}},
		},
	}

	if got := p.ToNative(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestFormatJSON(t *testing.T) {
	root, err := Parse("a{b}c")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		indent int
		want   string
	}{
		{0, `["a",["b"],"c"]` + "\n"},
		{2, "[\n  \"a\",\n  [\n    \"b\"\n  ],\n  \"c\"\n]\n"},
	}

	for _, tt := range tests {
		var buf strings.Builder
		if err := FormatJSON(&buf, ToNative(root), tt.indent); err != nil {
			t.Fatalf("FormatJSON failed: %v", err)
		}

		if buf.String() != tt.want {
			t.Errorf("indent %d: expected %q, got %q", tt.indent, tt.want, buf.String())
		}
	}
}

func TestFormatYAML(t *testing.T) {
	p, err := Compile(context.Background(), "{. v}", WithCache(false))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	var buf strings.Builder
	if err := FormatYAML(context.Background(), &buf, p.ToNative(), 2); err != nil {
		t.Fatalf("FormatYAML failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"op: value", "path: v"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()

	if err := FormatYAML(context.Background(), &buf, []any{"a"}, 0); err != nil {
		t.Fatalf("FormatYAML failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "[") {
		t.Errorf("expected flow style, got %q", buf.String())
	}
}

func TestFormatJSON_Unsupported(t *testing.T) {
	var buf strings.Builder

	err := FormatJSON(&buf, map[string]any{"f": func() {}}, 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
