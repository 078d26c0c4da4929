package core

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// DefaultEventBuffer is the capacity of the channel returned by Service.Watch.
const DefaultEventBuffer = 100

// ErrWatchUnsupported is returned by Watch when the repository cannot report external changes.
var ErrWatchUnsupported = errors.New("repository does not support watching")

// ServiceConfig holds the collaborators of a Service.
type ServiceConfig struct {
	Logger       *slog.Logger
	ThemeHint    ThemeHint
	EventBuffer  int
	StoreOptions []StoreOption
}

// Submission is what a create/edit form hands over: ID is empty for new notes.
type Submission struct {
	ID      string
	Title   string
	Content string
	Tags    []string
}

// Service is the application entry point: one Store and one ThemePreference
// over a single Repository. It is constructed once at startup and passed to
// whatever presents the notes.
type Service struct {
	mu              sync.RWMutex
	repo            Repository
	store           *Store
	theme           *ThemePreference
	logger          *slog.Logger
	eventBufferSize int
	watching        bool
}

// NewService wires a Service. Call Open before use.
func NewService(repo Repository, cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	buf := cfg.EventBuffer
	if buf <= 0 {
		buf = DefaultEventBuffer
	}

	storeOpts := append([]StoreOption{WithStoreLogger(logger)}, cfg.StoreOptions...)

	return &Service{
		repo:            repo,
		store:           NewStore(repo, storeOpts...),
		theme:           NewThemePreference(repo, cfg.ThemeHint, logger),
		logger:          logger,
		eventBufferSize: buf,
	}
}

// Open loads (or seeds) the notes and initializes the theme.
func (s *Service) Open(ctx context.Context) error {
	if err := s.store.Open(ctx); err != nil {
		return err
	}
	s.theme.Load(ctx)
	return nil
}

// Close releases the repository, if it holds resources.
func (s *Service) Close() error {
	if c, ok := s.repo.(Closer); ok {
		return c.Close()
	}
	return nil
}

// Repository exposes the storage adapter, e.g. for introspection.
func (s *Service) Repository() Repository { return s.repo }

// Store exposes the underlying note store.
func (s *Service) Store() *Store { return s.store }

// Preference exposes the underlying theme preference.
func (s *Service) Preference() *ThemePreference { return s.theme }

// CreateNote adds a new note.
func (s *Service) CreateNote(ctx context.Context, d Draft) (Note, error) {
	return s.store.Create(ctx, d)
}

// UpdateNote patches an existing note.
func (s *Service) UpdateNote(ctx context.Context, id string, p Patch) (Note, error) {
	if id == "" {
		return Note{}, &NotFoundError{ID: id}
	}
	return s.store.Update(ctx, id, p)
}

// Save handles a form submission: update when ID is set, create otherwise.
func (s *Service) Save(ctx context.Context, sub Submission) (Note, error) {
	if sub.ID == "" {
		return s.store.Create(ctx, Draft{Title: sub.Title, Content: sub.Content, Tags: sub.Tags})
	}
	return s.store.Update(ctx, sub.ID, Patch{
		Title:   &sub.Title,
		Content: &sub.Content,
		Tags:    Tags(sub.Tags...),
	})
}

// DeleteNote removes a note. Unknown IDs are ignored.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// GetNote retrieves a note.
func (s *Service) GetNote(ctx context.Context, id string) (Note, error) {
	return s.store.Get(ctx, id)
}

// ListNotes returns every note, most recent first.
func (s *Service) ListNotes(ctx context.Context) []Note {
	return s.store.List(ctx)
}

// Search returns the notes matching query (see Filter).
func (s *Service) Search(ctx context.Context, query string) []Note {
	return Filter(s.store.List(ctx), query)
}

// Theme returns the current display mode.
func (s *Service) Theme() Theme { return s.theme.Get() }

// ToggleTheme flips the display mode and returns the new value.
func (s *Service) ToggleTheme(ctx context.Context) Theme { return s.theme.Toggle(ctx) }

// SetTheme stores an explicit display mode.
func (s *Service) SetTheme(ctx context.Context, t Theme) error { return s.theme.Set(ctx, t) }

// Watch observes external changes to the storage. Each change reloads the
// store before the event is delivered, so readers always see fresh notes.
// A RELOAD event is followed by one CREATE, MODIFY or DELETE event per note
// that differs from the previous collection.
// Events are buffered; when the buffer is full new events are dropped.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}

	upstream, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	s.setWatching(true)
	out := make(chan Event, s.eventBufferSize)
	go func() {
		defer close(out)
		defer s.setWatching(false)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				batch := []Event{e}
				if e.Type == EventReload {
					before := s.store.List(ctx)
					if err := s.store.Reload(ctx); err != nil {
						s.logger.Warn("reload after external change failed", "error", err)
						continue
					}
					batch = append(batch, diffNotes(before, s.store.List(ctx), e.Timestamp)...)
				}
				for _, ev := range batch {
					select {
					case out <- ev:
					default:
						s.logger.Warn("event buffer full, dropping event", "event", ev.String())
					}
				}
			}
		}
	}()
	return out, nil
}

func (s *Service) setWatching(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watching = v
}

// diffNotes reports per-note changes between two collections, in the order of
// after (creates and modifications) then before (deletions).
func diffNotes(before, after []Note, ts int64) []Event {
	old := make(map[string]Note, len(before))
	for _, n := range before {
		old[n.ID] = n
	}

	var events []Event
	for _, n := range after {
		prev, ok := old[n.ID]
		delete(old, n.ID)
		switch {
		case !ok:
			events = append(events, Event{Type: EventCreate, ID: n.ID, Timestamp: ts})
		case !sameNote(prev, n):
			events = append(events, Event{Type: EventModify, ID: n.ID, Timestamp: ts})
		}
	}
	for _, n := range before {
		if _, gone := old[n.ID]; gone {
			events = append(events, Event{Type: EventDelete, ID: n.ID, Timestamp: ts})
		}
	}
	return events
}

func sameNote(a, b Note) bool {
	return a.Title == b.Title && a.Content == b.Content &&
		a.CreatedAt == b.CreatedAt && slices.Equal(a.Tags, b.Tags)
}
