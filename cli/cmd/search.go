package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/brace/log"
)

// searchPath returns the directories searched for templates: the given dirs
// first, followed by the entries of $BRACE_PATH. Entries that are not
// directories are dropped.
func searchPath(dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathVar)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	return filepath.SplitList(list)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// findTemplate returns the path of the named template.
//
// A name that refers to an existing file is returned as is. Otherwise, a
// relative name is joined to each directory of the search path in turn and
// the first regular file found wins.
func findTemplate(ctx context.Context, name string, dirs ...string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}

	if !filepath.IsAbs(name) {
		for _, dir := range searchPath(dirs...) {
			path := filepath.Join(dir, name)

			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				log.TraceContext(ctx, "template found",
					slog.String("name", name),
					slog.String("path", path),
				)

				return path, nil
			}
		}
	}

	return "", ErrTemplateNotFound.With(slog.String("name", name))
}
