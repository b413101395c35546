package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/brace/lang"
	"github.com/ardnew/brace/log"
)

// document is an ordered mapping used as template data.
//
// YAML and JSON mappings and SQL rows decode into documents so that
// {each ...} visits keys in document or column order.
type document struct {
	keys   []string
	values map[string]any
}

func newDocument() *document {
	return &document{values: make(map[string]any)}
}

// Keys implements [lang.Object]. The returned slice must not be modified.
func (d *document) Keys() []string { return d.keys }

// Lookup implements [lang.Object].
func (d *document) Lookup(key string) (any, bool) {
	v, ok := d.values[key]

	return v, ok
}

// set assigns key, appending it to the key order if it is new.
func (d *document) set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}

	d.values[key] = value
}

// MarshalYAML lets goccy/go-yaml encode documents with their key order.
func (d *document) MarshalYAML() (any, error) {
	s := make(yaml.MapSlice, 0, len(d.keys))

	for _, k := range d.keys {
		s = append(s, yaml.MapItem{Key: k, Value: d.values[k]})
	}

	return s, nil
}

// fromYAML converts a value decoded with [yaml.UseOrderedMap] into template
// data, turning every mapping into a *document.
func fromYAML(v any) any {
	switch v := v.(type) {
	case yaml.MapSlice:
		d := newDocument()

		for _, item := range v {
			d.set(lang.Stringify(item.Key), fromYAML(item.Value))
		}

		return d

	case map[string]any:
		d := newDocument()

		for _, k := range slices.Sorted(maps.Keys(v)) {
			d.set(k, fromYAML(v[k]))
		}

		return d

	case []any:
		s := make([]any, len(v))

		for i, e := range v {
			s[i] = fromYAML(e)
		}

		return s

	default:
		return v
	}
}

// native converts documents back into plain maps, for consumers such as
// expr-lang that only understand built-in Go types.
func native(v any) any {
	switch v := v.(type) {
	case *document:
		m := make(map[string]any, len(v.keys))

		for _, k := range v.keys {
			m[k] = native(v.values[k])
		}

		return m

	case []any:
		s := make([]any, len(v))

		for i, e := range v {
			s[i] = native(e)
		}

		return s

	default:
		return v
	}
}

// decodeData decodes every YAML (or JSON) document in r.
// Empty documents are skipped.
func decodeData(ctx context.Context, name string, r io.Reader) ([]any, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())

	var docs []any

	for {
		var v any

		err := dec.DecodeContext(ctx, &v)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, ErrDecodeData.With(slog.String("file", name)).Wrap(err)
		}

		if v != nil {
			docs = append(docs, fromYAML(v))
		}
	}

	log.TraceContext(ctx, "data decoded",
		slog.String("file", name),
		slog.Int("documents", len(docs)),
	)

	return docs, nil
}

// mergeData merges documents left to right at the top level.
//
// A single value of any kind is returned unchanged. Otherwise every value
// must be a mapping, and later keys replace earlier ones in place.
func mergeData(docs ...any) (any, error) {
	switch len(docs) {
	case 0:
		return newDocument(), nil

	case 1:
		return docs[0], nil
	}

	merged := newDocument()

	for i, v := range docs {
		d, ok := v.(*document)
		if !ok {
			return nil, ErrMergeData.With(slog.Int("index", i))
		}

		for _, k := range d.keys {
			merged.set(k, d.values[k])
		}
	}

	return merged, nil
}

// parseAssign splits a NAME=VALUE argument.
func parseAssign(arg string) (name, value string, err error) {
	name, value, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)

	if !ok || name == "" {
		return "", "", ErrAssign.With(slog.String("arg", strconv.Quote(arg)))
	}

	return name, value, nil
}
