package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path           string     `json:"path"`
	CollectionFile string     `json:"collection_file"`
	Format         string     `json:"format"`
	WatcherActive  bool       `json:"watcher_active"`
	LastWrite      *time.Time `json:"last_write,omitempty"`
	LastChange     *time.Time `json:"last_change,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:           r.Path,
		CollectionFile: r.CollectionFile(),
		Format:         r.serializer.Name(),
		WatcherActive:  r.watcherActive,
		LastWrite:      r.lastWrite,
		LastChange:     r.lastChange,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordChange() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastChange = &now
}
