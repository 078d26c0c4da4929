package core

import (
	"sort"
	"time"
)

type sample struct {
	title   string
	content string
	tags    []string
	age     time.Duration
}

// samples are shown to first-time users. Content is fixed; timestamps are
// computed relative to the moment of seeding.
var samples = []sample{
	{
		title:   "Morning standup notes",
		content: "Discussed sprint progress: API integration in progress, blockers on auth flow. Follow up with backend team by EOD.",
		tags:    []string{"work", "standup"},
		age:     24 * time.Hour,
	},
	{
		title:   "Grocery list",
		content: "- Oat milk\n- Eggs\n- Spinach\n- Coffee beans\n- Dark chocolate",
		tags:    []string{"personal", "shopping"},
		age:     2 * 24 * time.Hour,
	},
	{
		title:   "Book highlights: Atomic Habits",
		content: "Small consistent improvements compound. Design environment for success. Cue -> Craving -> Response -> Reward.",
		tags:    []string{"reading", "personal-growth"},
		age:     7 * 24 * time.Hour,
	},
	{
		title:   "Project X brainstorming",
		content: "Ideas: offline-first approach, optimistic updates, tagging system for quick filtering, keyboard shortcuts.",
		tags:    []string{"work", "ideas"},
		age:     6 * time.Hour,
	},
	{
		title:   "Workout log",
		content: "5km run at easy pace. Mobility routine for hips and shoulders. Felt energized.",
		tags:    []string{"health", "fitness"},
		age:     30 * time.Minute,
	},
}

// SeedNotes builds the example collection, most recent first.
func SeedNotes(now time.Time, newID func() string) []Note {
	notes := make([]Note, 0, len(samples))
	for _, s := range samples {
		notes = append(notes, Note{
			ID:        newID(),
			Title:     s.title,
			Content:   s.content,
			Tags:      NormalizeTags(s.tags),
			CreatedAt: now.Add(-s.age).UnixMilli(),
		})
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
	return notes
}
