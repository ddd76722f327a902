// Package fs implements core.Storage on top of the local filesystem, keeping
// one file per key.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/imran-moonward/mynote/pkg/core"
)

// DefaultExt is the file extension used when Config.Ext is empty.
const DefaultExt = ".blob"

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	// Ext is the file extension (e.g. ".json"); the codec decides what goes inside.
	Ext    string
	Logger *slog.Logger
	// ErrorHandler receives watcher failures that would otherwise only be logged.
	ErrorHandler func(error)
}

// Storage implements core.Storage using plain files written atomically.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	lastWritten   map[string]string
	watcherActive bool
	lastWrite     *time.Time
}

// NewStorage creates a filesystem-backed storage. No I/O happens until
// Initialize or the first Get/Set.
func NewStorage(config Config) *Storage {
	if config.Ext == "" {
		config.Ext = DefaultExt
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		Path:        config.Path,
		config:      config,
		lastWritten: make(map[string]string),
	}
}

// Initialize makes sure the storage directory is usable.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")

// FileFor returns the file that holds key.
func (s *Storage) FileFor(key string) string {
	return filepath.Join(s.Path, keyReplacer.Replace(key)+s.config.Ext)
}

// Get reads the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(s.FileFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set replaces the value stored under key atomically.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := s.FileFor(key)
	if err := writeFileAtomic(filename, []byte(value), 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastWritten[key] = value
	now := time.Now()
	s.lastWrite = &now
	s.mu.Unlock()

	s.config.Logger.Debug("stored value", "key", key, "file", filename, "bytes", len(value))
	return nil
}

// wroteLast reports whether value is exactly what this process wrote last
// under key.
func (s *Storage) wroteLast(key, value string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.lastWritten[key]
	return ok && v == value
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
