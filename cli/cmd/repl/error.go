package repl

import "github.com/ardnew/brace/lang"

// Sentinel errors.
var ErrOutOfBounds = lang.NewError("history index out of range")
