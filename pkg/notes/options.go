package notes

import (
	"log/slog"
	"slices"

	"github.com/imran-moonward/mynote/pkg/codec"
	"github.com/imran-moonward/mynote/pkg/core"
)

// options holds the configuration for a Store.
type options struct {
	storage     core.Storage
	codec       codec.Codec
	key         string
	logger      *slog.Logger
	onError     func(error)
	categories  []core.CategoryType
	clients     []core.Client
	eventBuffer int
}

// Option configures a Store.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		codec:      codec.Default,
		key:        core.StorageKey,
		categories: core.DefaultCategories(),
		clients:    core.DefaultClients(),
	}
}

// WithStorage sets the backend used by Load and Persist.
// Defaults to an in-memory storage.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithCodec sets the on-storage format. Defaults to JSON.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithKey overrides the storage key (core.StorageKey).
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithErrorHandler registers a callback for background write failures.
// Persist cannot return them to its caller synchronously, so they are
// logged and handed to fn.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithSeed replaces the initial categories and clients (the built-in lists
// by default). Nil leaves the corresponding default in place.
func WithSeed(categories []core.CategoryType, clients []core.Client) Option {
	return func(o *options) {
		if categories != nil {
			o.categories = slices.Clone(categories)
		}
		if clients != nil {
			o.clients = slices.Clone(clients)
		}
	}
}

// WithEventBuffer sets the per-subscriber buffer of Watch.
// Zero means core.DefaultEventBuffer.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}
