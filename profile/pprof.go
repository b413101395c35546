//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"
)

// modes maps each --pprof-mode name to its github.com/pkg/profile option.
var modes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the sorted names of the supported profiling modes.
var Modes = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(modes))
})

// session collects the options passed to [profile.Start].
type session []func(*profile.Profile)

func (s session) with(ok bool, opt func(*profile.Profile)) session {
	if ok {
		return append(s, opt)
	}

	return s
}

// start begins a profile of the named mode. An unknown mode profiles nothing.
func start(mode, path string, quiet bool) Stopper {
	fn, ok := modes[mode]
	if !ok {
		return ignore{}
	}

	s := session{fn}.
		with(path != "", profile.ProfilePath(path)).
		with(quiet, profile.Quiet)

	return profile.Start(s...)
}
