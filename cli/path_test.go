package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ardnew/brace/pkg"
)

func TestUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := userDir(func() (string, error) { return "/etc/xdg", nil }, ".config")
	if want := filepath.Join("/etc/xdg", pkg.Name); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = userDir(func() (string, error) { return "", errors.New("unset") }, ".cache")
	if want := filepath.Join(home, ".cache", pkg.Name); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConfigPath(t *testing.T) {
	if got, want := configPath(), configDir(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got := configPath(baseConfig + ".yaml")
	if filepath.Base(got) != "config.yaml" || filepath.Dir(got) != configDir() {
		t.Errorf("unexpected config path %q", got)
	}
}
