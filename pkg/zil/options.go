package zil

import (
	"io"
	"log/slog"

	"github.com/keithmackay/zork1-sub000/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteTranscript records commands to a SQLite transcript at the
// given path.
func WithSQLiteTranscript(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err == nil {
			r.transcript = s
		}
	}
}

// WithMemoryTranscript records commands to an in-memory transcript
// (for testing).
func WithMemoryTranscript() Option {
	return func(r *Runtime) {
		r.transcript = store.NewMemory()
	}
}

// WithOutput sets the io.Writer game text is printed to.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runtime) {
		r.log = log
	}
}

// WithRandomSeed seeds the RANDOM source for deterministic replay.
func WithRandomSeed(seed int64) Option {
	return func(r *Runtime) {
		r.seed = seed
		r.seedSet = true
	}
}

// Store is the transcript persistence interface.
type Store = store.Store

// Entry is one recorded command.
type Entry = store.Entry
