// Package codec encodes the persisted note collection.
//
// Adapters store the collection as one opaque blob; the Serializer decides
// its textual form. JSON is the default and matches the layout used by the
// browser version of the journal (an array of note objects).
package codec

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/journal/pkg/core"
)

// ErrCorrupt is returned when a stored payload cannot be decoded.
var ErrCorrupt = errors.New("corrupt payload")

// Serializer defines how to read and write the note collection.
type Serializer interface {
	// Name is the format name used in configuration ("json", "yaml").
	Name() string
	// Ext is the file extension, including the dot.
	Ext() string
	// MarshalNotes converts the collection to bytes.
	MarshalNotes(notes []core.Note) ([]byte, error)
	// UnmarshalNotes parses bytes produced by MarshalNotes (or edited by hand).
	UnmarshalNotes(data []byte) ([]core.Note, error)
}

// Default is the serializer used when none is configured.
const Default = "json"

var registry = map[string]func() Serializer{
	"json": func() Serializer { return NewJSON() },
	"yaml": func() Serializer { return NewYAML() },
	"yml":  func() Serializer { return NewYAML() },
}

// ForName returns the serializer registered under name ("" means Default).
func ForName(name string) (Serializer, error) {
	if name == "" {
		name = Default
	}
	mk, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists the registered format names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// normalize makes sure tags encode as an empty list rather than null.
func normalize(notes []core.Note) []core.Note {
	out := make([]core.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
