// Package sqlite provides a core.Repository backed by a SQLite key/value table.
//
// The layout mirrors browser local storage: one row per storage key
// (core.CollectionKey, core.ThemeKey) holding a text value. The collection is
// stored with the JSON serializer, so a payload can be moved between the
// filesystem and SQLite adapters verbatim.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/journal/pkg/codec"
	"github.com/aretw0/journal/pkg/core"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repository implements core.Repository on SQLite.
type Repository struct {
	path       string
	db         *sql.DB
	serializer codec.Serializer
	logger     *slog.Logger
	mu         sync.RWMutex // Protects db lifecycle
}

// Open creates the database at path (or in memory for MemoryPath) and its table.
func Open(path string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so keep exactly one.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != MemoryPath {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	r := &Repository{
		path:       path,
		db:         db,
		serializer: codec.NewJSON(),
		logger:     logger,
	}
	if err := r.Initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("database opened", "path", path)
	return r, nil
}

// Initialize creates the key/value table if needed.
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Close releases the database.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Close()
}

func (r *Repository) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Repository) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

func (r *Repository) LoadCollection(ctx context.Context) ([]core.Note, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, found, err := r.get(ctx, core.CollectionKey)
	if err != nil {
		return nil, false, &core.PersistenceError{Op: "load", Key: core.CollectionKey, Err: err}
	}
	if !found {
		return nil, false, nil
	}
	notes, err := r.serializer.UnmarshalNotes([]byte(raw))
	if err != nil {
		return nil, false, &core.PersistenceError{Op: "load", Key: core.CollectionKey, Err: err}
	}
	return notes, true, nil
}

func (r *Repository) SaveCollection(ctx context.Context, notes []core.Note) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := r.serializer.MarshalNotes(notes)
	if err != nil {
		return &core.PersistenceError{Op: "save", Key: core.CollectionKey, Err: err}
	}
	if err := r.put(ctx, core.CollectionKey, string(data)); err != nil {
		return &core.PersistenceError{Op: "save", Key: core.CollectionKey, Err: err}
	}
	return nil
}

func (r *Repository) LoadTheme(ctx context.Context) (core.Theme, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, found, err := r.get(ctx, core.ThemeKey)
	if err != nil {
		return "", false, &core.PersistenceError{Op: "load", Key: core.ThemeKey, Err: err}
	}
	return core.Theme(strings.TrimSpace(raw)), found, nil
}

func (r *Repository) SaveTheme(ctx context.Context, theme core.Theme) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.put(ctx, core.ThemeKey, string(theme)); err != nil {
		return &core.PersistenceError{Op: "save", Key: core.ThemeKey, Err: err}
	}
	return nil
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	stats := r.db.Stats()
	return map[string]any{
		"path":             r.path,
		"open_connections": stats.OpenConnections,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var _ core.Repository = (*Repository)(nil)
var _ core.Closer = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
