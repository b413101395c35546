package cmd

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/brace/lang"
)

func TestDecodeData_KeepsOrder(t *testing.T) {
	docs, err := decodeData(context.Background(), "test",
		strings.NewReader(`{"zeta": 1, "alpha": {"y": 2, "x": [3, "four"]}}`))
	if err != nil {
		t.Fatalf("decodeData failed: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	d, ok := docs[0].(*document)
	if !ok {
		t.Fatalf("expected *document, got %T", docs[0])
	}

	if !slices.Equal(d.Keys(), []string{"zeta", "alpha"}) {
		t.Errorf("unexpected key order %v", d.Keys())
	}

	var keys []string
	for k := range lang.Entries(mustResolve(t, d, "alpha")) {
		keys = append(keys, k)
	}

	if !slices.Equal(keys, []string{"y", "x"}) {
		t.Errorf("unexpected nested key order %v", keys)
	}

	if s := lang.Stringify(mustResolve(t, d, "alpha.x")); s != "3,four" {
		t.Errorf("expected %q, got %q", "3,four", s)
	}
}

func TestDecodeData_MultiDocument(t *testing.T) {
	docs, err := decodeData(context.Background(), "test",
		strings.NewReader("a: 1\n---\n---\nb: 2\n"))
	if err != nil {
		t.Fatalf("decodeData failed: %v", err)
	}

	if len(docs) != 2 {
		t.Errorf("expected 2 documents, got %d", len(docs))
	}
}

func TestDecodeData_Invalid(t *testing.T) {
	_, err := decodeData(context.Background(), "bad.yaml", strings.NewReader("a: [1, 2\n"))
	if !errors.Is(err, ErrDecodeData) {
		t.Errorf("expected ErrDecodeData, got %v", err)
	}
}

func TestMergeData(t *testing.T) {
	a, b := newDocument(), newDocument()
	a.set("x", "1")
	a.set("y", "2")
	b.set("z", "3")
	b.set("x", "4")

	merged, err := mergeData(a, b)
	if err != nil {
		t.Fatalf("mergeData failed: %v", err)
	}

	d := merged.(*document)
	if !slices.Equal(d.Keys(), []string{"x", "y", "z"}) {
		t.Errorf("unexpected keys %v", d.Keys())
	}

	if v, _ := d.Lookup("x"); v != "4" {
		t.Errorf("expected later value to win, got %v", v)
	}

	if v, err := mergeData([]any{1}); err != nil || !reflect.DeepEqual(v, []any{1}) {
		t.Errorf("expected single value unchanged, got %v (%v)", v, err)
	}

	if _, err := mergeData(a, []any{1}); !errors.Is(err, ErrMergeData) {
		t.Errorf("expected ErrMergeData, got %v", err)
	}

	if v, err := mergeData(); err != nil || len(v.(*document).Keys()) != 0 {
		t.Errorf("expected empty document, got %v (%v)", v, err)
	}
}

func TestNative(t *testing.T) {
	d := newDocument()
	inner := newDocument()
	inner.set("b", 1)
	d.set("a", []any{inner})

	want := map[string]any{"a": []any{map[string]any{"b": 1}}}
	if got := native(d); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDocument_MarshalYAML(t *testing.T) {
	d := newDocument()
	d.set("z", 1)
	d.set("a", 2)

	b, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if string(b) != "z: 1\na: 2\n" {
		t.Errorf("unexpected YAML %q", b)
	}
}

func TestParseAssign(t *testing.T) {
	tests := []struct {
		in, name, value string
		ok              bool
	}{
		{"a=b", "a", "b", true},
		{" a =b=c", "a", "b=c", true},
		{"a=", "a", "", true},
		{"=b", "", "", false},
		{"ab", "", "", false},
	}

	for _, tt := range tests {
		name, value, err := parseAssign(tt.in)
		if (err == nil) != tt.ok || name != tt.name || value != tt.value {
			t.Errorf("parseAssign(%q) = (%q, %q, %v)", tt.in, name, value, err)
		}

		if err != nil && !errors.Is(err, ErrAssign) {
			t.Errorf("expected ErrAssign, got %v", err)
		}
	}
}

func mustResolve(t *testing.T, data any, path string) any {
	t.Helper()

	v, ok := lang.Resolve(data, path)
	if !ok {
		t.Fatalf("path %q is undefined", path)
	}

	return v
}
