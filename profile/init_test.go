package profile

import "testing"

func TestConfig_Options(t *testing.T) {
	c := New(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))

	mode, path, quiet := c()
	if mode != "cpu" || path != "/tmp/p" || !quiet {
		t.Errorf("unexpected config: %q %q %v", mode, path, quiet)
	}

	// Later options override earlier ones without touching other fields.
	mode, path, quiet = WithMode("heap")(c)()
	if mode != "heap" || path != "/tmp/p" || !quiet {
		t.Errorf("unexpected config: %q %q %v", mode, path, quiet)
	}
}

func TestConfig_StartDisabled(t *testing.T) {
	var nilConfig Config

	for _, c := range []Config{nilConfig, New(), New(WithPath("/tmp/p"))} {
		s := c.Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("expected no-op stopper, got %T", s)
		}

		s.Stop()
	}
}
