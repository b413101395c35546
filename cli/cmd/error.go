package cmd

import "github.com/ardnew/brace/lang"

// Sentinel errors returned by the commands. Each may be refined with
// [lang.Error.With] and [lang.Error.Wrap] without losing its identity.
var (
	ErrWriteConfig      = lang.NewError("write configuration file")
	ErrFileExists       = lang.NewError("file exists (use --force to overwrite)")
	ErrWriteOutput      = lang.NewError("write output")
	ErrNoTemplate       = lang.NewError("no template given")
	ErrTemplateNotFound = lang.NewError("template not found")
	ErrOpenData         = lang.NewError("open data file")
	ErrDecodeData       = lang.NewError("decode data")
	ErrMergeData        = lang.NewError("top-level data must be a mapping")
	ErrAssign           = lang.NewError("expected NAME=VALUE")
	ErrCompileFunc      = lang.NewError("compile function")
	ErrQuery            = lang.NewError("query database")
)
