package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/journal/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// options holds the internal configuration for the journal service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	adapter      string
	format       string
	seed         bool
	themeHint    core.ThemeHint
	clock        func() time.Time
	eventBuffer  int
	mustExist    bool
	errorHandler func(error)
}

// Option defines a functional option for configuring the journal.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
		seed:    true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock, remote API).
// If provided, the adapter named by WithAdapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "sqlite" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithFormat selects the collection encoding of the fs adapter ("json" or "yaml").
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithSeeding enables or disables the example notes created on first run.
// By default, seeding is enabled.
func WithSeeding(enabled bool) Option {
	return func(o *options) {
		o.seed = enabled
	}
}

// WithThemeHint sets the ambient preference consulted when no theme is stored.
func WithThemeHint(hint core.ThemeHint) Option {
	return func(o *options) {
		o.themeHint = hint
	}
}

// WithClock overrides the wall clock (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithEventBuffer allows specifying the size of the watch event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithMustExist makes initialization fail when the data directory is missing
// instead of creating it.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during the Watch loop.
// They are only logged otherwise.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
