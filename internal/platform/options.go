package platform

import (
	"log/slog"
	"time"

	"github.com/imran-moonward/mynote/pkg/codec"
	"github.com/imran-moonward/mynote/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// options holds the internal configuration for opening a note app.
type options struct {
	storage      core.Storage
	adapter      string
	codec        codec.Codec
	logger       *slog.Logger
	readOnly     bool
	mustExist    bool
	forceTemp    bool
	devSafety    bool
	snackTimeout time.Duration
	eventBuffer  int
	watchErrors  func(error)
}

// Option defines a functional option for configuring the app.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		codec:     codec.Default,
		devSafety: true,
	}
}

// WithStorage injects a custom storage backend (e.g. a mock). The adapter
// option and the uri are ignored when set.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default),
// "sqlite" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithCodec sets the format of the stored record. Defaults to JSON.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger sets the logger for the stores and the storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReadOnly opens the storage read-only. Persisting fails with
// core.ErrReadOnly, nothing is created on disk and the dev sandbox is
// bypassed (the real path is used).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist fails the open when the storage directory is missing.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the store into the temporary dev directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
// By default (true) file-backed stores are re-rooted into a temporary
// directory so a development run never touches real notes.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithSnackTimeout sets how long snacks stay visible.
func WithSnackTimeout(d time.Duration) Option {
	return func(o *options) {
		o.snackTimeout = d
	}
}

// WithEventBuffer sets the per-subscriber buffer of Watch channels.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler receives runtime errors of the fs watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watchErrors = fn
	}
}
