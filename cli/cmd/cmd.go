package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type inputKey struct{}

// WithInput returns a new context.Context containing the global data flags
// shared by all commands.
func WithInput(ctx context.Context, in *Input) context.Context {
	return context.WithValue(ctx, inputKey{}, in)
}

// inputFrom retrieves the Input stored in ctx by WithInput.
// Returns an empty Input if none was stored.
func inputFrom(ctx context.Context) *Input {
	if in, ok := ctx.Value(inputKey{}).(*Input); ok && in != nil {
		return in
	}

	return new(Input)
}

// dataFile is one opened data source.
type dataFile struct {
	name string
	io.ReadCloser
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openDataFiles opens each of the given data sources once.
//
// Duplicates are detected by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader, which
// is placed last so it reads after all regular files. The caller must close
// every returned file.
func openDataFiles(sources []string) ([]dataFile, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	files := make([]dataFile, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, ok, err := openUniqueFile(src, seen)
		if err != nil {
			closeDataFiles(files)

			return nil, ErrOpenData.With(slog.String("file", src)).Wrap(err)
		}

		if ok {
			files = append(files, dataFile{name: src, ReadCloser: file})
		}
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		files = append(files, dataFile{name: stdinSource, ReadCloser: io.NopCloser(os.Stdin)})
	}

	return files, nil
}

func closeDataFiles(files []dataFile) {
	for _, f := range files {
		_ = f.Close()
	}
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// A duplicate returns ok false with no error.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (file *os.File, ok bool, err error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err = os.Open(resolved)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
