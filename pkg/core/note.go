package core

import (
	"slices"
	"strings"
	"time"
)

// UntitledLabel is what renderers show in place of an empty title.
const UntitledLabel = "Untitled"

// Note is the central entity of the domain.
// It represents a single journal entry identified by an ID.
// It is agnostic to storage format (JSON, YAML, SQL).
type Note struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Content   string   `json:"content" yaml:"content"`
	Tags      []string `json:"tags" yaml:"tags"`
	CreatedAt int64    `json:"createdAt" yaml:"createdAt"` // Unix milliseconds
}

// Draft carries the user-supplied fields of a note that does not exist yet.
type Draft struct {
	Title   string
	Content string
	Tags    []string
}

// Patch describes a partial update. Nil fields are left unchanged.
type Patch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// String returns a pointer to s, for building a Patch.
func String(s string) *string { return &s }

// Tags returns a pointer to a tag list, for building a Patch.
// Tags() with no arguments clears the tags of a note.
func Tags(tags ...string) *[]string {
	if tags == nil {
		tags = []string{}
	}
	return &tags
}

// Created returns the creation time of the note.
func (n Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// DisplayTitle returns the title, or UntitledLabel when it is empty.
// Empty titles are valid; substituting a label is a rendering concern.
func (n Note) DisplayTitle() string {
	if strings.TrimSpace(n.Title) == "" {
		return UntitledLabel
	}
	return n.Title
}

// Excerpt returns at most max runes of the content, suffixed with "…" when truncated.
func (n Note) Excerpt(max int) string {
	r := []rune(n.Content)
	if max <= 0 || len(r) <= max {
		return n.Content
	}
	return string(r[:max]) + "…"
}

// HasTag reports whether the note carries tag (exact match).
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Clone returns a deep copy so callers never alias the store's tag slices.
func (n Note) Clone() Note {
	c := n
	c.Tags = slices.Clone(n.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

// NormalizeTags trims every tag, drops empty results and removes duplicates
// (case-sensitive) while keeping the first-seen order.
// The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// validateFields checks the title/content invariant on already trimmed values.
func validateFields(title, content string) error {
	if title == "" && content == "" {
		return &ValidationError{Field: "title,content", Reason: "a note needs a title or content"}
	}
	return nil
}
