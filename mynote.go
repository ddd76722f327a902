package mynote

import (
	"log/slog"
	"time"

	"github.com/imran-moonward/mynote/internal/platform"
	"github.com/imran-moonward/mynote/pkg/app"
	"github.com/imran-moonward/mynote/pkg/codec"
	"github.com/imran-moonward/mynote/pkg/core"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// --- Types ---

type (
	// App is an opened note store with its snackbar.
	App = app.App
	// Draft is the editor content submitted to App.Submit.
	Draft = app.Draft
	// Note is a user-authored record linking a client, a category and text.
	Note = core.Note
	// Client is the person a note is written about.
	Client = core.Client
	// CategoryType classifies a note.
	CategoryType = core.CategoryType
	// Snack is a transient notification.
	Snack = core.Snack
	// Severity tells the UI how to present a snack.
	Severity = core.Severity
	// Event is a change notification from a store or the storage watcher.
	Event = core.Event
)

const (
	CategoryActiveDuty          = core.CategoryActiveDuty
	CategoryGoalEvidence        = core.CategoryGoalEvidence
	CategorySupportCoordination = core.CategorySupportCoordination

	SeverityError   = core.SeverityError
	SeveritySuccess = core.SeveritySuccess
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
)

// --- Configuration ---

// Option defines a functional option for Open.
type Option = platform.Option

// WithAdapter selects the storage adapter: "fs" (default), "sqlite" or "memory".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithCodec sets the stored format (codec.JSON or codec.YAML).
func WithCodec(c codec.Codec) Option {
	return platform.WithCodec(c)
}

// WithLogger sets the logger for the stores and the storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage injects a custom storage backend.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithReadOnly opens the storage read-only.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist fails when the storage directory is missing.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the temp-dir sandbox used under `go run`/`go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithSnackTimeout sets how long snacks stay visible.
func WithSnackTimeout(d time.Duration) Option {
	return platform.WithSnackTimeout(d)
}

// WithEventBuffer sets the buffer of Watch channels.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler receives runtime errors of the fs watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open creates the storage at path and the stores on top of it.
func Open(path string, opts ...Option) (*App, error) {
	return platform.Open(path, opts...)
}

// OpenStorage creates and initializes only the storage backend.
func OpenStorage(path string, opts ...Option) (core.Storage, error) {
	return platform.OpenStorage(path, opts...)
}

// --- Safety & Utils ---

// ResolveStorePath determines where the store lives given the dev safety rules.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// SystemDir is the directory holding a store, by default under the root.
const SystemDir = platform.SystemDir

// DefaultDir returns SystemDir under the nearest root, or under startDir.
func DefaultDir(startDir string) string {
	return platform.DefaultDir(startDir)
}

// FindRoot looks upwards for a directory containing .mynote.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
