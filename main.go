// Command brace renders brace-delimited templates against YAML, JSON, or
// SQLite data.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/brace/cli"
	"github.com/ardnew/brace/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		log.Error("brace failed", slog.Any("error", err))
		os.Exit(1)
	}
}
