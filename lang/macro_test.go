package lang

import "testing"

func TestSynopsis(t *testing.T) {
	for _, name := range Builtins().Names() {
		usage, summary := Synopsis(name)
		if usage == "" || summary == "" {
			t.Errorf("built-in macro %q has no synopsis", name)
		}
	}

	if usage, summary := Synopsis("bogus"); usage != "" || summary != "" {
		t.Errorf("expected empty synopsis, got %q %q", usage, summary)
	}
}

func TestBuiltins_IsCopy(t *testing.T) {
	m := Builtins()
	delete(m, MacroEach)

	if _, ok := Builtins()[MacroEach]; !ok {
		t.Error("expected Builtins to return an independent copy")
	}
}
