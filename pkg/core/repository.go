package core

import "context"

// Storage keys shared by every adapter. The version lives in the key name,
// the payload itself carries no version field.
const (
	CollectionKey = "notes.v1"
	ThemeKey      = "theme.v1"
)

// Repository defines the contract for durable storage of the note collection
// and the theme preference. It is an opaque boundary: no business rules live
// behind it, and adapters (filesystem, SQLite, memory) are interchangeable.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g., create directories, schema migration).
	Initialize(ctx context.Context) error

	// LoadCollection returns the stored notes.
	// found is false when nothing was ever stored; a stored empty collection
	// returns found=true with no notes.
	LoadCollection(ctx context.Context) (notes []Note, found bool, err error)

	// SaveCollection replaces the stored collection (last write wins).
	SaveCollection(ctx context.Context, notes []Note) error

	// LoadTheme returns the stored theme, found=false when absent.
	LoadTheme(ctx context.Context) (theme Theme, found bool, err error)

	// SaveTheme replaces the stored theme.
	SaveTheme(ctx context.Context, theme Theme) error
}

// Watchable defines an interface for repositories that can report changes
// made to the storage by another process.
type Watchable interface {
	// Watch emits an EventReload whenever the stored collection changes externally.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Closer is implemented by repositories holding resources (e.g., a database handle).
type Closer interface {
	Close() error
}
