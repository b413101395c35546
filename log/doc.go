// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("template rendered", slog.Int("bytes", n))
//	logger.Error("compile failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger from an existing one, and [Config]
// reconfigures the package-level default logger used by [Info], [Error]
// and friends.
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("template", name))
//	logger.Info("rendering") // includes template=<name>
//
// # Context-Aware Logging
//
// Each level has a context-aware variant (e.g. [Logger.DebugContext]) whose
// context is passed to the handler. The plain variants use
// [context.Background].
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the configured
// level are discarded. The zero [Logger] discards everything, which lets
// libraries accept a Logger without forcing callers to configure one.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. With [WithPretty] (the default), both are rendered with
// lipgloss styles, which degrade to plain text when the output is not a
// terminal.
package log
