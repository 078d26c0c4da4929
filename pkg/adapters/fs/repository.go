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

	"github.com/aretw0/journal/pkg/codec"
	"github.com/aretw0/journal/pkg/core"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 50 * time.Millisecond

// Repository implements core.Repository on a directory holding one file per
// storage key: the collection ("notes.v1.json") and the theme ("theme.v1").
type Repository struct {
	Path       string
	config     Config
	serializer codec.Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	lastChange    *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	MustExist    bool
	Serializer   codec.Serializer // defaults to JSON
	Logger       *slog.Logger
	Debounce     time.Duration
	ErrorHandler func(error) // receives watcher failures; they are logged otherwise
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Serializer == nil {
		config.Serializer = codec.NewJSON()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Repository{
		Path:       config.Path,
		config:     config,
		serializer: config.Serializer,
	}
}

// Initialize ensures the data directory exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// CollectionFile returns the absolute path of the collection file.
func (r *Repository) CollectionFile() string {
	return filepath.Join(r.Path, core.CollectionKey+r.serializer.Ext())
}

// ThemeFile returns the absolute path of the theme file.
func (r *Repository) ThemeFile() string {
	return filepath.Join(r.Path, core.ThemeKey)
}

// LoadCollection reads the collection file. A missing file means absent.
func (r *Repository) LoadCollection(ctx context.Context) ([]core.Note, bool, error) {
	data, err := os.ReadFile(r.CollectionFile())
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &core.PersistenceError{Op: "load", Key: core.CollectionKey, Err: err}
	}

	notes, err := r.serializer.UnmarshalNotes(data)
	if err != nil {
		return nil, false, &core.PersistenceError{Op: "load", Key: core.CollectionKey, Err: err}
	}
	return notes, true, nil
}

// SaveCollection serializes notes and replaces the collection file atomically.
func (r *Repository) SaveCollection(ctx context.Context, notes []core.Note) error {
	data, err := r.serializer.MarshalNotes(notes)
	if err != nil {
		return &core.PersistenceError{Op: "save", Key: core.CollectionKey, Err: err}
	}
	if err := writeFileAtomic(r.CollectionFile(), data, 0644); err != nil {
		return &core.PersistenceError{Op: "save", Key: core.CollectionKey, Err: err}
	}
	r.recordWrite()
	r.config.Logger.Debug("collection saved", "path", r.CollectionFile(), "notes", len(notes))
	return nil
}

// LoadTheme reads the theme file. The raw value is returned as stored;
// validating it is up to the caller.
func (r *Repository) LoadTheme(ctx context.Context) (core.Theme, bool, error) {
	data, err := os.ReadFile(r.ThemeFile())
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &core.PersistenceError{Op: "load", Key: core.ThemeKey, Err: err}
	}
	return core.Theme(strings.TrimSpace(string(data))), true, nil
}

// SaveTheme replaces the theme file atomically.
func (r *Repository) SaveTheme(ctx context.Context, theme core.Theme) error {
	if err := writeFileAtomic(r.ThemeFile(), []byte(string(theme)+"\n"), 0644); err != nil {
		return &core.PersistenceError{Op: "save", Key: core.ThemeKey, Err: err}
	}
	return nil
}

// Watch observes the data directory and emits an EventReload each time the
// collection file settles after a change (including our own writes; reloading
// those is harmless).
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	events := make(chan core.Event)
	w := newWatchWorker(r, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *Repository) recordWrite() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastWrite = &now
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
