package core

import (
	"fmt"
	"strings"
)

// Theme is the two-valued display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when neither a stored value nor a system hint exists.
const DefaultTheme = ThemeLight

// Valid reports whether t is one of the two known literals.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme. Invalid values flip to dark, as if they were light.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme accepts "light" or "dark", ignoring case and surrounding space.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return t, nil
}

// EventType represents the type of change in the journal.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	EventReload EventType = "RELOAD"
)

// Event represents a change in the journal.
// ID is the note ID, or the storage key for RELOAD events.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix milliseconds
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
