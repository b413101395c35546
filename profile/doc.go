// Package profile provides optional runtime profiling for the brace command.
//
// Profiling integrates [github.com/pkg/profile] and must be enabled at build
// time with the "pprof" build tag:
//
//	go build -tags pprof ./...
//
// Without the tag, [Modes] is empty and [Config.Start] always returns a
// no-op stopper, so callers never need their own build constraints.
//
// # Usage
//
//	stop := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/brace-pprof"),
//	).Start()
//	defer stop.Stop()
//
// Supported modes (pprof builds only): allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, trace. Profile files are written to the
// configured directory and analyzed with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
