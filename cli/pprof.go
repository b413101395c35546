//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/brace/log"
	"github.com/ardnew/brace/profile"
)

// pprofConfig holds the profiling flags, present only in pprof builds.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModes}" help:"Profile mode (${enum})." placeholder:"MODE" short:"p"`
	Dir  string `default:"${pprofDir}"                       help:"Profile output directory." type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModes": strings.Join(profile.Modes(), ","),
		"pprofDir":   filepath.Join(cacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling options"}
}

// start begins the configured profile and returns the function that ends it.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	session := profile.New(
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(true),
	).Start()

	if f.Mode != "" {
		log.DebugContext(ctx, "profiling started", attrs...)
	}

	return func() {
		session.Stop()

		if f.Mode != "" {
			log.DebugContext(ctx, "profiling stopped", attrs...)
		}
	}
}
