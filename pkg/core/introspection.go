package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes            int    `json:"notes"`
	Seeded           bool   `json:"seeded"`
	LastPersistError string `json:"last_persist_error,omitempty"`
}

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Store           StoreState `json:"store"`
	Theme           Theme      `json:"theme"`
	ThemeSource     string     `json:"theme_source"`
	EventBufferSize int        `json:"event_buffer_size"`
	Watching        bool       `json:"watching"`
	RepositoryType  string     `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := StoreState{Notes: len(s.notes), Seeded: s.seeded}
	if s.lastErr != nil {
		st.LastPersistError = s.lastErr.Error()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		// Try to get component type if repository implements introspection.Component
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	s.theme.mu.RLock()
	theme, source := s.theme.current, s.theme.source
	s.theme.mu.RUnlock()

	return ServiceState{
		Store:           s.store.State().(StoreState),
		Theme:           theme,
		ThemeSource:     source,
		EventBufferSize: s.eventBufferSize,
		Watching:        s.watching,
		RepositoryType:  repoType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
