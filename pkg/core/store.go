package core

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Store is the sole authority over the note collection.
//
// Every mutation validates first, then commits to the in-memory collection,
// then persists the whole collection through the Repository. Persistence
// failures are logged and remembered but never undo a mutation: the
// in-memory collection stays authoritative for the session.
//
// All operations are serialized by an internal lock and safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	repo        Repository
	logger      *slog.Logger
	now         func() time.Time
	ids         *IDGenerator
	seed        bool
	notes       []Note
	seeded      bool
	lastCreated int64
	lastErr     error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for persistence warnings.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the wall clock (used for CreatedAt and seeding).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(g *IDGenerator) StoreOption {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithSeeding controls whether example notes are created on first run.
// Enabled by default.
func WithSeeding(enabled bool) StoreOption {
	return func(s *Store) {
		s.seed = enabled
	}
}

// NewStore creates a Store over repo. Call Open before use.
func NewStore(repo Repository, opts ...StoreOption) *Store {
	s := &Store{
		repo:   repo,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		ids:    NewIDGenerator(),
		seed:   true,
		notes:  []Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the persisted collection. When nothing was ever persisted (or the
// stored payload cannot be read) the seed policy runs; a stored empty
// collection is kept empty.
func (s *Store) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, found, err := s.repo.LoadCollection(ctx)
	if err != nil {
		s.logger.Warn("failed to load notes, treating storage as empty", "error", err)
		s.lastErr = err
		notes, found = nil, false
	}

	if found {
		var repaired bool
		s.notes, repaired = s.repairLocked(notes)
		s.logger.Debug("notes loaded", "count", len(s.notes))
		if repaired {
			s.persistLocked(ctx)
		}
		return nil
	}

	s.notes = []Note{}
	if !s.seed {
		return nil
	}

	used := make(map[string]struct{})
	s.notes = SeedNotes(s.now(), func() string {
		for {
			id := s.ids.NewID()
			if _, dup := used[id]; !dup {
				used[id] = struct{}{}
				return id
			}
		}
	})
	s.seeded = true
	for _, n := range s.notes {
		s.lastCreated = max(s.lastCreated, n.CreatedAt)
	}
	s.logger.Info("seeded example notes", "count", len(s.notes))
	s.persistLocked(ctx)
	return nil
}

// repairLocked enforces the collection invariants on data read from storage,
// which may have been edited by hand. It reports whether anything changed, in
// which case the caller persists the result so reassigned IDs stay stable.
func (s *Store) repairLocked(in []Note) ([]Note, bool) {
	out := make([]Note, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	changed := false
	for _, n := range in {
		title, content := strings.TrimSpace(n.Title), strings.TrimSpace(n.Content)
		if title != n.Title || content != n.Content {
			changed = true
		}
		n.Title, n.Content = title, content
		if err := validateFields(n.Title, n.Content); err != nil {
			s.logger.Warn("dropping stored note without title or content", "id", n.ID)
			changed = true
			continue
		}
		tags := NormalizeTags(n.Tags)
		if !slices.Equal(tags, n.Tags) {
			changed = true
		}
		n.Tags = tags
		if _, dup := seen[n.ID]; dup || n.ID == "" {
			changed = true
			old := n.ID
			n.ID = s.ids.NewID()
			s.logger.Warn("stored note had a missing or duplicate id, reassigned", "old", old, "new", n.ID)
		}
		seen[n.ID] = struct{}{}
		s.lastCreated = max(s.lastCreated, n.CreatedAt)
		out = append(out, n)
	}
	return out, changed
}

// Create validates d, assigns a fresh ID and CreatedAt, inserts the note at
// the front of the collection and persists.
func (s *Store) Create(ctx context.Context, d Draft) (Note, error) {
	title := strings.TrimSpace(d.Title)
	content := strings.TrimSpace(d.Content)
	if err := validateFields(title, content); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Note{
		ID:        s.newIDLocked(),
		Title:     title,
		Content:   content,
		Tags:      NormalizeTags(d.Tags),
		CreatedAt: s.stampLocked(),
	}
	s.notes = slices.Insert(s.notes, 0, n)
	s.persistLocked(ctx)

	s.logger.Debug("note created", "id", n.ID)
	return n.Clone(), nil
}

// Update applies p to the note with the given id. The note keeps its ID,
// CreatedAt and position in the collection.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}

	next := s.notes[i].Clone()
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		next.Content = strings.TrimSpace(*p.Content)
	}
	if p.Tags != nil {
		next.Tags = NormalizeTags(*p.Tags)
	}
	if err := validateFields(next.Title, next.Content); err != nil {
		return Note{}, err
	}

	s.notes[i] = next
	s.persistLocked(ctx)

	s.logger.Debug("note updated", "id", id)
	return next.Clone(), nil
}

// Delete removes the note with the given id. Deleting an unknown id is a no-op.
// Callers are expected to have confirmed intent beforehand.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.logger.Debug("delete of unknown note ignored", "id", id)
		return nil
	}

	s.notes = slices.Delete(s.notes, i, i+1)
	s.persistLocked(ctx)

	s.logger.Debug("note deleted", "id", id)
	return nil
}

// Get returns a copy of the note with the given id.
func (s *Store) Get(ctx context.Context, id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}
	return s.notes[i].Clone(), nil
}

// List returns a copy of the whole collection, most recently created first
// (updates do not move notes).
func (s *Store) List(ctx context.Context) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Reload replaces the in-memory collection with the stored one, e.g. after
// another process changed it. On read failure the current collection is kept.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, found, err := s.repo.LoadCollection(ctx)
	if err != nil {
		s.lastErr = err
		return err
	}
	if !found {
		notes = nil
	}
	var repaired bool
	s.notes, repaired = s.repairLocked(notes)
	s.logger.Debug("notes reloaded", "count", len(s.notes))
	if repaired {
		s.persistLocked(ctx)
	}
	return nil
}

// Seeded reports whether Open populated the store with example notes.
func (s *Store) Seeded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeded
}

// LastPersistError returns the error of the most recent storage access,
// or nil if it succeeded.
func (s *Store) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

// newIDLocked re-rolls until the ID is unused.
func (s *Store) newIDLocked() string {
	for {
		id := s.ids.NewID()
		if s.indexLocked(id) < 0 {
			return id
		}
		s.logger.Warn("generated id collided, retrying", "id", id)
	}
}

// stampLocked returns the current time in ms, never earlier than the
// previous creation.
func (s *Store) stampLocked() int64 {
	ts := max(s.now().UnixMilli(), s.lastCreated)
	s.lastCreated = ts
	return ts
}

func (s *Store) persistLocked(ctx context.Context) {
	if err := s.repo.SaveCollection(ctx, cloneNotes(s.notes)); err != nil {
		s.logger.Error("failed to persist notes", "error", err)
		s.lastErr = err
		return
	}
	s.lastErr = nil
}
