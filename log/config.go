package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Level is the severity of a log message. It extends [slog.Level] with
// [LevelTrace], used by the template engine for per-compile events.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// Format is the encoding of log messages.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatJSON

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

const (
	DefaultCaller = false // DefaultCaller omits source locations.
	DefaultPretty = true  // DefaultPretty styles output.
)

// names yields the String form of each value in order.
func names[T fmt.Stringer](values ...T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range values {
			if !yield(v.String()) {
				return
			}
		}
	}
}

// Levels yields the names of the log levels from most to least verbose.
func Levels() iter.Seq[string] {
	return names(LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError)
}

// Formats yields the names of the log formats, default first.
func Formats() iter.Seq[string] {
	return names(FormatJSON, FormatText)
}

// ParseLevel parses a level name, case-insensitively, with an optional
// "+N" or "-N" offset as accepted by [slog.Level.UnmarshalText]. "trace" is
// also recognized. Anything else yields [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if l.UnmarshalText([]byte(s)) != nil {
		return DefaultLevel
	}

	return Level(l)
}

// ParseFormat parses "json" or "text", case-insensitively. Anything else
// yields [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.TrimSpace(s)

	for _, f := range []Format{FormatJSON, FormatText} {
		if strings.EqualFold(s, f.String()) {
			return f
		}
	}

	return DefaultFormat
}

// FormatTime formats a timestamp. An empty result omits the timestamp.
type FormatTime func(time.Time) string

// config is the immutable configuration of a Logger.
type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// makeConfig returns the default config writing to w, modified by opts.
func makeConfig(w io.Writer, opts ...Option) config {
	return config{}.with(append([]Option{WithDefaults(w)}, opts...)...)
}

// handler returns the slog.Handler for c.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch c.format {
	case FormatJSON:
		if c.pretty {
			return newPrettyJSONHandler(c.output, opts)
		}

		return slog.NewJSONHandler(c.output, opts)

	case FormatText:
		if c.pretty {
			return newPrettyTextHandler(c.output, opts)
		}

		return slog.NewTextHandler(c.output, opts)
	}

	return slog.DiscardHandler
}

// replaceAttr applies the time layout to top-level timestamps (dropping them
// for an empty layout) and prints levels by name, so trace messages read
// "TRACE" instead of "DEBUG-4".
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch v := a.Value.Any().(type) {
	case time.Time:
		if a.Key != slog.TimeKey {
			break
		}

		s := c.formatTime(v)
		if s == "" {
			return slog.Attr{}
		}

		a.Value = slog.StringValue(s)

	case slog.Level:
		if a.Key == slog.LevelKey {
			a.Value = slog.StringValue(strings.ToUpper(Level(v).String()))
		}
	}

	return a
}

// layoutAliases lists the names accepted for each standard time layout. Names
// are compared after lowercasing and removing everything but letters and
// digits, so "RFC-3339" matches "rfc3339".
var layoutAliases = map[string][]string{
	"":                {"none"},
	time.ANSIC:        {"ansic"},
	time.DateTime:     {"datetime"},
	time.Kitchen:      {"kitchen"},
	time.RFC3339:      {"rfc3339"},
	time.RFC3339Nano:  {"rfc3339nano"},
	time.RFC822:       {"rfc822"},
	time.RFC822Z:      {"rfc822z"},
	time.RFC850:       {"rfc850"},
	time.RubyDate:     {"rubydate"},
	time.Stamp:        {"stamp"},
	time.StampMicro:   {"stampmicro", "micro", "us"},
	time.StampMilli:   {"stampmilli", "milli", "ms"},
	time.StampNano:    {"stampnano", "nano", "ns"},
	time.TimeOnly:     {"timeonly"},
	time.UnixDate:     {"unixdate"},
}

var namedLayouts = sync.OnceValue(func() map[string]string {
	m := make(map[string]string)

	for layout, aliases := range layoutAliases {
		for _, name := range aliases {
			m[name] = layout
		}
	}

	return m
})

// TimeLayouts yields the recognized layout names in sorted order.
func TimeLayouts() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(namedLayouts())))
}

func layoutKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}

		return -1
	}, s)
}

// makeFormatTimeFunc returns a FormatTime for a named or custom layout.
func makeFormatTimeFunc(layout string) FormatTime {
	key := layoutKey(layout)
	if std, ok := namedLayouts()[key]; ok {
		layout = std
	}

	if key == "" || layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
