// Package cmd implements the brace subcommands: render, fmt, macros, init,
// and repl.
//
// Every command reads its template data from the global [Input] flags, which
// the cli package stores in the command context with [WithInput]. Data may
// come from YAML or JSON files, KEY=VALUE assignments, and SQLite queries;
// user functions for the fn macro are defined as expr-lang expressions.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)

// PathVar is the environment variable holding the template search path.
const PathVar = "BRACE_PATH"
