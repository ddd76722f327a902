package snackbar

import (
	"log/slog"
	"time"
)

type options struct {
	timeout     time.Duration
	logger      *slog.Logger
	eventBuffer int
}

// Option configures a Store.
type Option func(*options)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventBuffer sets the per-subscriber buffer of Watch.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}
