package core_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/core"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"Nil", nil, []string{}},
		{"Trim And Dedupe", []string{" a", "a", "", "b"}, []string{"a", "b"}},
		{"Case Sensitive", []string{"Work", "work"}, []string{"Work", "work"}},
		{"Keeps First Seen Order", []string{"z", "a", "z "}, []string{"z", "a"}},
		{"Only Blanks", []string{" ", "\t"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.NormalizeTags(tt.in))
		})
	}
}

func TestNote_Rendering(t *testing.T) {
	n := core.Note{Content: strings.Repeat("é", 10), CreatedAt: 1700000000000}

	assert.Equal(t, core.UntitledLabel, n.DisplayTitle())
	assert.Equal(t, strings.Repeat("é", 4)+"…", n.Excerpt(4))
	assert.Equal(t, n.Content, n.Excerpt(10))
	assert.Equal(t, n.Content, n.Excerpt(0))
	assert.Equal(t, int64(1700000000000), n.Created().UnixMilli())

	n.Title = "Named"
	assert.Equal(t, "Named", n.DisplayTitle())
}

func TestNote_HasTag(t *testing.T) {
	n := core.Note{Tags: []string{"work"}}
	assert.True(t, n.HasTag("work"))
	assert.False(t, n.HasTag("Work"))
}

func TestIDGenerator(t *testing.T) {
	t.Run("Uses Random Source", func(t *testing.T) {
		id := core.NewIDGenerator().NewID()
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("Falls Back To Timestamp", func(t *testing.T) {
		at := time.UnixMilli(1712345678901)
		g := &core.IDGenerator{
			Random: func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") },
			Now:    func() time.Time { return at },
		}
		id := g.NewID()
		assert.Regexp(t, regexp.MustCompile(`^1712345678901-[0-9a-z]{6}$`), id)
	})

	t.Run("Nil Random Source", func(t *testing.T) {
		g := &core.IDGenerator{}
		assert.Regexp(t, `^\d+-[0-9a-z]{6}$`, g.NewID())
	})
}

func TestErrors(t *testing.T) {
	perr := &core.PersistenceError{Op: "save", Key: core.CollectionKey, Err: errors.New("boom")}
	assert.ErrorIs(t, perr, core.ErrPersistence)
	assert.Contains(t, perr.Error(), "notes.v1")
	assert.Equal(t, "boom", errors.Unwrap(perr).Error())

	assert.ErrorIs(t, &core.NotFoundError{ID: "x"}, core.ErrNotFound)
	assert.NotErrorIs(t, &core.NotFoundError{ID: "x"}, core.ErrValidation)
	assert.ErrorIs(t, &core.ValidationError{Reason: "r"}, core.ErrValidation)
}

func TestSeedNotes(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	i := 0
	notes := core.SeedNotes(now, func() string {
		i++
		return string(rune('a' + i))
	})

	require.Len(t, notes, 5)
	titles := make([]string, len(notes))
	for i, n := range notes {
		titles[i] = n.Title
		assert.LessOrEqual(t, n.CreatedAt, now.UnixMilli())
		assert.NotEmpty(t, n.Content)
		assert.NotEmpty(t, n.Tags)
		if i > 0 {
			assert.Less(t, n.CreatedAt, notes[i-1].CreatedAt)
		}
	}
	assert.Equal(t, []string{
		"Workout log",
		"Project X brainstorming",
		"Morning standup notes",
		"Grocery list",
		"Book highlights: Atomic Habits",
	}, titles)
	assert.Equal(t, now.Add(-30*time.Minute).UnixMilli(), notes[0].CreatedAt)
}
