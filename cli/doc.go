// Package cli contains the command line interface for brace.
//
// # Usage
//
//	brace [flags] [render] TEMPLATE        render a template file or name
//	brace -e SOURCE                        render SOURCE given inline
//	brace fmt [tree|program] [-f FORMAT]   print the tree or compiled program
//	brace macros                           list built-in macros
//	brace init [--force]                   write the configuration file
//	brace repl                             interactive preview
//
// # Template data
//
//   - --data FILE: YAML or JSON document(s), merged left to right ('-' for stdin)
//   - --set KEY=VALUE: top-level string override
//   - --db FILE --query SQL [--rows KEY]: SQLite rows stored under KEY
//   - --func NAME=EXPR: host function for {fn NAME}, written in expr-lang
//   - --path DIR: template search directory, searched before $BRACE_PATH
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory (e.g. ~/.config/brace). The YAML file maps flag
// names to values, as written by "brace init":
//
//	log-level: debug
//	data:
//	  - site.yaml
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o brace .
//
// which adds --pprof-mode (cpu, heap, allocs, ...) and --pprof-dir
// (default ~/.cache/brace/pprof).
package cli
