package journal

import (
	"log/slog"
	"time"

	"github.com/aretw0/journal/internal/platform"
	"github.com/aretw0/journal/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// Draft is a public alias for the fields of a new note.
type Draft = core.Draft

// Patch is a public alias for a partial note update.
type Patch = core.Patch

// Theme is a public alias for the display preference.
type Theme = core.Theme

// Service is a public alias for the application service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring the journal.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects the collection encoding ("json" or "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithSeeding enables or disables the example notes created on first run.
func WithSeeding(enabled bool) Option {
	return platform.WithSeeding(enabled)
}

// WithThemeHint sets the ambient preference used when no theme is stored.
func WithThemeHint(hint core.ThemeHint) Option {
	return platform.WithThemeHint(hint)
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithEventBuffer allows specifying the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithWatcherErrorHandler receives errors from the storage watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates and opens a journal Service.
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}

// Init initializes a storage adapter explicitly.
func Init(uri string, opts ...Option) (core.Repository, error) {
	return platform.Init(uri, opts...)
}

// --- Search ---

// Filter returns the notes matching query (case-insensitive substring on
// title, content and tags), keeping their order.
func Filter(notes []core.Note, query string) []core.Note {
	return core.Filter(notes, query)
}

// --- Utils ---

// FindRoot recursively looks upwards for a directory holding a journal.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ResolveDataDir picks the data directory for a command run from startDir.
func ResolveDataDir(explicit, startDir string) (string, error) {
	return platform.ResolveDataDir(explicit, startDir)
}
