package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/brace/lang"
)

// loadYAML is a [kong.ConfigurationLoader] that reads a YAML mapping of flag
// names to values, such as the file written by "brace init":
//
//	log-level: debug
//	data:
//	  - site.yaml
//	func:
//	  - slug=lower(value)
//
// Keys may use hyphens or underscores. Scalars are passed to kong as text
// and sequences as lists of text. An empty file configures nothing.
// Command-line flags override config file values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	err := yaml.NewDecoder(r).Decode(&raw)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, lang.ErrReadInput.Wrap(err)
	}

	conf := make(config, len(raw))

	for k, v := range raw {
		conf[strings.ReplaceAll(k, "_", "-")] = configValue(v)
	}

	return conf, nil
}

// config implements [kong.Resolver] over a decoded YAML mapping.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[strings.ReplaceAll(flag.Name, "_", "-")]; ok {
		return value, nil
	}

	return nil, nil
}

// configValue converts a decoded YAML value into a form kong can map onto a
// flag. Kong requires numbers as strings for parsing.
func configValue(v any) any {
	switch v := v.(type) {
	case nil, bool, string:
		return v

	case int:
		return strconv.Itoa(v)

	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		list := make([]any, len(v))

		for i, e := range v {
			list[i] = lang.Stringify(e)
		}

		return list

	default:
		return lang.Stringify(v)
	}
}
