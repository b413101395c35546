package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	return path
}

func TestOpenDataFiles_Empty(t *testing.T) {
	files, err := openDataFiles(nil)
	if err != nil || files != nil {
		t.Errorf("expected no files, got %v (%v)", files, err)
	}
}

func TestOpenDataFiles_Dedup(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "a: 1\n")
	b := writeFile(t, dir, "b.yaml", "b: 2\n")

	link := filepath.Join(dir, "link.yaml")
	if err := os.Symlink(a, link); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	rel, err := filepath.Rel(mustGetwd(t), a)
	if err != nil {
		t.Fatalf("Rel failed: %v", err)
	}

	files, err := openDataFiles([]string{a, b, link, rel, a})
	if err != nil {
		t.Fatalf("openDataFiles failed: %v", err)
	}
	defer closeDataFiles(files)

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	for i, want := range []string{"a: 1\n", "b: 2\n"} {
		got, err := io.ReadAll(files[i])
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}

		if string(got) != want {
			t.Errorf("file %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestOpenDataFiles_StdinLast(t *testing.T) {
	a := writeFile(t, t.TempDir(), "a.yaml", "a: 1\n")

	files, err := openDataFiles([]string{"-", a, "-"})
	if err != nil {
		t.Fatalf("openDataFiles failed: %v", err)
	}
	defer closeDataFiles(files)

	if len(files) != 2 || files[0].name != a || files[1].name != stdinSource {
		t.Errorf("expected [%s -], got %v", a, files)
	}
}

func TestOpenDataFiles_Missing(t *testing.T) {
	_, err := openDataFiles([]string{filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInputFrom_Default(t *testing.T) {
	in := inputFrom(context.Background())
	if in == nil || len(in.Data) != 0 {
		t.Errorf("expected empty input, got %+v", in)
	}

	want := &Input{Rows: "r"}
	if got := inputFrom(WithInput(context.Background(), want)); got != want {
		t.Errorf("expected stored input, got %+v", got)
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	return wd
}
