package lang

import (
	"errors"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	cause := errors.New("cause")

	derived := ErrReadInput.With(slog.String("k", "v")).Wrap(cause)

	if !errors.Is(derived, ErrReadInput) {
		t.Error("expected derived error to match its sentinel")
	}

	if errors.Is(derived, ErrUnknownMacro) {
		t.Error("expected derived error not to match another sentinel")
	}

	if !errors.Is(derived, cause) {
		t.Error("expected derived error to wrap its cause")
	}

	if got, want := derived.Error(), "failed to read input: cause"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestError_With(t *testing.T) {
	base := NewError("base")
	a := base.With(slog.Int("a", 1))
	b := a.With(slog.Int("b", 2))

	if len(base.Attrs()) != 0 {
		t.Errorf("expected base to stay immutable, got %v", base.Attrs())
	}

	if len(a.Attrs()) != 1 || len(b.Attrs()) != 2 {
		t.Errorf("expected 1 and 2 attrs, got %d and %d", len(a.Attrs()), len(b.Attrs()))
	}
}

func TestWrapError(t *testing.T) {
	plain := errors.New("plain")

	wrapped := WrapError(plain)
	if wrapped.Error() != "plain" {
		t.Errorf("expected %q, got %q", "plain", wrapped.Error())
	}

	if !errors.Is(wrapped, plain) {
		t.Error("expected wrapped error to match its cause")
	}

	if again := WrapError(wrapped); again != wrapped {
		t.Error("expected WrapError to return an existing *Error")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrUnknownMacro.With(slog.String("macro", "x")).Wrap(&MacroError{Name: "x"})

	attrs := err.LogValue().Group()
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %v", attrs)
	}

	if attrs[0].Key != "error" || attrs[1].Key != "cause" || attrs[2].Key != "macro" {
		t.Errorf("unexpected attrs %v", attrs)
	}
}
