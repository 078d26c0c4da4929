package core

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter returns the notes whose title, content or any tag contains query,
// compared case-insensitively. Matches keep their relative order.
// A blank query returns notes unchanged. notes is never modified.
func Filter(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if matches(n, q) {
			out = append(out, n)
		}
	}
	return out
}

// matches expects q to be lower-cased already.
func matches(n Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// FilterTags keeps the notes carrying at least one tag that matches the glob
// pattern (e.g. "work*", "{work,ideas}"). An empty pattern keeps everything.
func FilterTags(notes []Note, pattern string) ([]Note, error) {
	if pattern == "" {
		return notes, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("tag pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		for _, t := range n.Tags {
			if ok, _ := doublestar.Match(pattern, t); ok {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}
