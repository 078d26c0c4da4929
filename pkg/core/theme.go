package core

import (
	"context"
	"log/slog"
	"sync"
)

// ThemeHint reports the ambient (system) preference, ok=false when unknown.
type ThemeHint func() (Theme, bool)

// ThemePreference tracks the process-wide display mode.
type ThemePreference struct {
	mu          sync.RWMutex
	repo        Repository
	hint        ThemeHint
	logger      *slog.Logger
	current     Theme
	source      string
	subscribers []func(Theme)
}

// NewThemePreference creates a preference starting at DefaultTheme.
// Call Load to apply the stored value or the hint.
func NewThemePreference(repo Repository, hint ThemeHint, logger *slog.Logger) *ThemePreference {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ThemePreference{
		repo:    repo,
		hint:    hint,
		logger:  logger,
		current: DefaultTheme,
		source:  "default",
	}
}

// Load initializes the value: stored (if valid) > hint > DefaultTheme.
// Storage failures are logged and treated as absent.
func (p *ThemePreference) Load(ctx context.Context) Theme {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored, found, err := p.repo.LoadTheme(ctx)
	if err != nil {
		p.logger.Warn("failed to load theme", "error", err)
	}
	switch {
	case err == nil && found && stored.Valid():
		p.current, p.source = stored, "stored"
	case p.hint != nil:
		if t, ok := p.hint(); ok && t.Valid() {
			p.current, p.source = t, "hint"
			break
		}
		fallthrough
	default:
		p.current, p.source = DefaultTheme, "default"
	}

	p.logger.Debug("theme loaded", "theme", p.current, "source", p.source)
	return p.current
}

// Get returns the current theme.
func (p *ThemePreference) Get() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Toggle flips the theme, persists it and notifies subscribers.
// It returns the new value so the caller can apply it.
func (p *ThemePreference) Toggle(ctx context.Context) Theme {
	p.mu.Lock()
	next := p.current.Opposite()
	subs := p.commitLocked(ctx, next)
	p.mu.Unlock()

	notify(subs, next)
	return next
}

// Set stores an explicit value. Only the two valid literals are accepted.
func (p *ThemePreference) Set(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return ErrInvalidTheme
	}

	p.mu.Lock()
	subs := p.commitLocked(ctx, t)
	p.mu.Unlock()

	notify(subs, t)
	return nil
}

// Subscribe registers fn to be called with every new value.
func (p *ThemePreference) Subscribe(fn func(Theme)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

func (p *ThemePreference) commitLocked(ctx context.Context, t Theme) []func(Theme) {
	p.current, p.source = t, "user"
	if err := p.repo.SaveTheme(ctx, t); err != nil {
		p.logger.Error("failed to persist theme", "theme", t, "error", err)
	}
	return append([]func(Theme){}, p.subscribers...)
}

// notify runs outside the lock so subscribers may read the preference.
func notify(subs []func(Theme), t Theme) {
	for _, fn := range subs {
		fn(t)
	}
}
