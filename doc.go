// Package journal is the Composition Root for the journal application.
//
// It connects the note store (Domain Layer) with the storage adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Features:
//
//   - **Note Store**: create, update, delete and list notes with enforced invariants
//     (unique IDs, title or content required, normalized tags, immutable creation time).
//   - **Search**: case-insensitive substring filtering over title, content and tags.
//   - **First-run Seeding**: example notes when nothing was ever stored; an emptied
//     journal stays empty.
//   - **Theme Preference**: light/dark mode, stored independently of the notes.
//   - **Swappable Storage**: directory of files (JSON or YAML), SQLite, or memory via
//     `core.Repository`.
//
// Usage:
//
//	svc, err := journal.New("./.journal",
//		journal.WithLogger(logger),
//	)
//
//	note, err := svc.CreateNote(ctx, journal.Draft{Title: "Groceries", Tags: []string{"personal"}})
//	hits := svc.Search(ctx, "personal")
package journal
