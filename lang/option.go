package lang

import (
	"maps"

	"github.com/ardnew/brace/log"
)

// Func is a host function invoked by the fn macro.
// It receives the current path and the root data, and returns output text.
type Func func(path string, data any) string

// Funcs maps function names to host functions.
type Funcs map[string]Func

// config holds the settings shared by compilation and execution.
type config struct {
	macros  Macros
	funcs   Funcs
	nocache bool
	logger  log.Logger // structured logger (doesn't affect cache)
}

// Option configures compilation or execution behavior.
type Option func(*config)

// WithMacros adds macros to the registry used during compilation.
// A macro with the same name as a built-in replaces it.
func WithMacros(macros Macros) Option {
	return func(c *config) {
		if c.macros == nil {
			c.macros = make(Macros, len(macros))
		}

		maps.Copy(c.macros, macros)
	}
}

// WithMacro adds a single named macro to the registry.
func WithMacro(name string, macro Macro) Option {
	return WithMacros(Macros{name: macro})
}

// WithFuncs adds host functions for the fn macro.
func WithFuncs(funcs Funcs) Option {
	return func(c *config) {
		if c.funcs == nil {
			c.funcs = make(Funcs, len(funcs))
		}

		maps.Copy(c.funcs, funcs)
	}
}

// WithFunc adds a single named host function.
func WithFunc(name string, fn Func) Option {
	return WithFuncs(Funcs{name: fn})
}

// WithCache enables or disables the compiled program cache.
// The cache is enabled by default.
func WithCache(enable bool) Option {
	return func(c *config) {
		c.nocache = !enable
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// cacheable reports whether programs compiled under c may be shared.
// Caller-supplied macros are opaque, so they disable the cache.
func (c config) cacheable() bool {
	return !c.nocache && len(c.macros) == 0
}
