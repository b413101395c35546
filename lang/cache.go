package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// programCache stores compiled programs keyed by the hash of their source.
var programCache sync.Map

// entry tracks the compilation state of one cached source.
type entry struct {
	once    sync.Once
	program *Program
	err     error
}

// CompileReader reads template source from r and compiles it.
// Programs are cached by source as with [Compile].
func CompileReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return Compile(ctx, string(data), opts...)
}

// compileCached compiles source at most once per distinct source text.
func compileCached(
	ctx context.Context,
	source string,
	cfg config,
) (*Program, error) {
	hash := xxh3.HashString(source)
	key := strconv.FormatUint(hash, 36)

	value, cacheHit := programCache.LoadOrStore(key, new(entry))

	cached, ok := value.(*entry)
	if !ok {
		return nil, ErrInvalidProgram.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	cached.once.Do(func() {
		cached.program, cached.err = compile(ctx, source, cfg)
	})

	if cached.err != nil {
		return nil, cached.err
	}

	// Distinct sources with colliding hashes are compiled without the cache.
	if cached.program.source != source {
		cfg.logger.TraceContext(
			ctx,
			"cache collision",
			slog.String("source_hash", strconv.FormatUint(hash, 16)),
		)

		return compile(ctx, source, cfg)
	}

	return cached.program, nil
}

// ClearCache removes all cached programs.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	programCache.Clear()
}
