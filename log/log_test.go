package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.Level())
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected default format JSON, got %v", logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if !logger.pretty {
		t.Error("expected pretty enabled by default")
	}
}

func TestLogger_Zero_IsNoop(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Trace("trace")
	logger.InfoContext(context.Background(), "info", slog.Int("n", 1))
	logger = logger.With(slog.String("k", "v"))

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("expected zero logger to be disabled")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelDebug), WithPretty(false))

	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()

	logger = Make(&buf, WithLevel(LevelError), WithPretty(false))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false))
	logger.Trace("deep detail")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}

	if record["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", record["level"])
	}
}

func TestLogger_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		hasTime bool
	}{
		{"named", "RFC3339", true},
		{"kitchen", "Kitchen", true},
		{"none", "none", false},
		{"empty", "", false},
		{"custom", "2006", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithTimeLayout(tt.layout), WithPretty(false))
			logger.Info("test")

			var record map[string]any
			if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
				t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
			}

			if _, ok := record["time"]; ok != tt.hasTime {
				t.Errorf("expected time present=%v, got: %s", tt.hasTime, buf.String())
			}
		})
	}
}

func TestLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithFormat(FormatText), WithPretty(false))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller to name this file, got: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithPretty(false))
	logger := base.With(slog.String("component", "render"))

	logger.Info("with attrs")

	if !strings.Contains(buf.String(), `"component":"render"`) {
		t.Errorf("expected attribute in output, got: %s", buf.String())
	}

	buf.Reset()
	base.Info("without attrs")

	if strings.Contains(buf.String(), "component") {
		t.Errorf("expected base logger unchanged, got: %s", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var a, b bytes.Buffer

	base := Make(&a, WithPretty(false))
	wrapped := base.Wrap(WithOutput(&b), WithFormat(FormatText))

	wrapped.Info("to b")
	base.Info("to a")

	if !strings.Contains(b.String(), "msg=\"to b\"") {
		t.Errorf("expected text output in b, got: %s", b.String())
	}

	if !strings.Contains(a.String(), `"msg":"to a"`) {
		t.Errorf("expected JSON output in a, got: %s", a.String())
	}

	var zero Logger

	var c bytes.Buffer

	zero.Wrap(WithOutput(&c), WithPretty(false)).Info("from zero")

	if !strings.Contains(c.String(), "from zero") {
		t.Errorf("expected wrapped zero logger to write, got: %s", c.String())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	logger := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}), WithPretty(false))

	for i := range 10 {
		wg.Go(func() {
			logger.With(slog.Int("worker", i)).Info("hello")
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 10 {
		t.Errorf("expected 10 lines, got %d", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
