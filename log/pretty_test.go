package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// The pretty handlers render without color when writing to a buffer, so
// their output can be compared as plain text.

func TestPrettyText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithTimeLayout("none"),
		WithLevel(LevelTrace),
	)

	logger.With(slog.String("component", "lang")).Trace("cache lookup",
		slog.Bool("cache_hit", true),
		slog.Int("n", 3),
		slog.Group("src", slog.String("name", "t.tmpl")),
		slog.Duration("took", time.Millisecond),
	)

	want := "level=TRACE msg=cache lookup component=lang cache_hit=true n=3 src.name=t.tmpl took=1ms\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestPrettyText_Group(t *testing.T) {
	var buf bytes.Buffer

	h := newPrettyTextHandler(&buf, &slog.HandlerOptions{})
	logger := slog.New(h).WithGroup("req").With(slog.String("id", "7"))

	logger.Info("x", slog.Int("status", 200))

	out := buf.String()
	for _, want := range []string{"req.id=7", "req.status=200", "msg=x"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestPrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Error("failed", slog.Any("error", errors.New("boom")), slog.Any("nothing", nil))

	want := "{\n  level: ERROR,\n  msg: failed,\n  error: boom,\n  nothing: null\n}\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("a", "1"), slog.String("b", "2"))
}

func TestPretty_LogValuer(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))
	logger.Info("v", slog.Any("err", valuer{}))

	if !strings.Contains(buf.String(), "err.a=1 err.b=2") {
		t.Errorf("expected resolved group, got %q", buf.String())
	}
}

func TestPretty_Filters(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelWarn))
	logger.Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
