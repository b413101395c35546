package log

import "io"

// Option modifies a Logger configuration. Options are applied to a copy, so
// deriving one Logger from another never affects the original.
type Option func(*config)

// with returns a copy of c modified by opts. Nil options are skipped.
func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}

// WithDefaults resets every setting to its default and sets the output to w
// (or [io.Discard] if w is nil).
func WithDefaults(w io.Writer) Option {
	return func(c *config) {
		*c = config{
			output:     orDiscard(w),
			formatTime: makeFormatTimeFunc(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}
	}
}

// WithOutput sets the writer log messages are written to. A nil writer
// discards all output.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = orDiscard(w) }
}

// WithLevel sets the minimum level written.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the timestamp layout. Named layouts from the [time]
// package (such as "RFC3339" or "Kitchen") are matched case-insensitively;
// anything else is passed to [time.Time.Format] verbatim. An empty layout or
// "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c *config) { c.formatTime = makeFormatTimeFunc(layout) }
}

// WithCaller includes the source location of each log call.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty enables styled output: unquoted text with colored keys, or
// indented multi-line JSON. Styles degrade to plain text when the output is
// not a terminal.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}
