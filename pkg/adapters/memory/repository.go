// Package memory provides an in-process core.Repository, used for tests and
// ephemeral sessions. Stored values are deep-copied in both directions.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/journal/pkg/core"
)

// Repository implements core.Repository in memory.
type Repository struct {
	mu       sync.RWMutex
	notes    []core.Note
	hasNotes bool
	theme    core.Theme
	hasTheme bool
	saveErr  error
	loadErr  error
	saves    int
}

// New returns an empty repository (nothing stored).
func New() *Repository {
	return &Repository{}
}

// NewWithNotes returns a repository that already holds notes, as if they had
// been saved by a previous session. A nil slice still counts as stored.
func NewWithNotes(notes []core.Note) *Repository {
	r := New()
	r.notes = copyNotes(notes)
	r.hasNotes = true
	return r
}

// FailSaves makes every subsequent save return err (nil restores normal behaviour).
func (r *Repository) FailSaves(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErr = err
}

// FailLoads makes every subsequent load return err (nil restores normal behaviour).
func (r *Repository) FailLoads(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadErr = err
}

// Saves returns how many collection saves succeeded.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func (r *Repository) Initialize(ctx context.Context) error { return nil }

func (r *Repository) LoadCollection(ctx context.Context) ([]core.Note, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.loadErr != nil {
		return nil, false, &core.PersistenceError{Op: "load", Key: core.CollectionKey, Err: r.loadErr}
	}
	if !r.hasNotes {
		return nil, false, nil
	}
	return copyNotes(r.notes), true, nil
}

func (r *Repository) SaveCollection(ctx context.Context, notes []core.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return &core.PersistenceError{Op: "save", Key: core.CollectionKey, Err: r.saveErr}
	}
	r.notes = copyNotes(notes)
	r.hasNotes = true
	r.saves++
	return nil
}

func (r *Repository) LoadTheme(ctx context.Context) (core.Theme, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.loadErr != nil {
		return "", false, &core.PersistenceError{Op: "load", Key: core.ThemeKey, Err: r.loadErr}
	}
	return r.theme, r.hasTheme, nil
}

func (r *Repository) SaveTheme(ctx context.Context, theme core.Theme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return &core.PersistenceError{Op: "save", Key: core.ThemeKey, Err: r.saveErr}
	}
	r.theme = theme
	r.hasTheme = true
	return nil
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return map[string]any{
		"notes":     len(r.notes),
		"has_notes": r.hasNotes,
		"has_theme": r.hasTheme,
		"saves":     r.saves,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

func copyNotes(in []core.Note) []core.Note {
	out := make([]core.Note, len(in))
	for i, n := range in {
		out[i] = n.Clone()
	}
	return out
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
