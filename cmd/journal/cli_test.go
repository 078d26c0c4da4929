package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/core"
)

// resetFlags restores every flag to its default so executions don't leak
// state through the package-level variables.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command against dataDir and returns stdout.
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--data", dataDir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func listJSONNotes(t *testing.T, dataDir string, args ...string) []core.Note {
	t.Helper()
	out, err := runCLI(t, dataDir, append([]string{"list", "--json"}, args...)...)
	require.NoError(t, err)

	var notes []core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes), out)
	return notes
}

func TestCLI_NewListEditDelete(t *testing.T) {
	dataDir := t.TempDir()

	_, err := runCLI(t, dataDir, "--no-seed", "new", "--title", "Groceries", "--tag", "personal")
	require.NoError(t, err)
	_, err = runCLI(t, dataDir, "new", "--title", "Standup", "--content", "Q4 goals", "--tag", " work,work")
	require.NoError(t, err)

	notes := listJSONNotes(t, dataDir)
	require.Len(t, notes, 2)
	assert.Equal(t, "Standup", notes[0].Title)
	assert.Equal(t, []string{"work"}, notes[0].Tags)
	assert.Equal(t, "Groceries", notes[1].Title)

	t.Run("Search", func(t *testing.T) {
		found := listJSONNotes(t, dataDir, "--query", "PERSONAL")
		require.Len(t, found, 1)
		assert.Equal(t, "Groceries", found[0].Title)

		found = listJSONNotes(t, dataDir, "--tag", "wo*")
		require.Len(t, found, 1)
		assert.Equal(t, "Standup", found[0].Title)
	})

	t.Run("Empty Search Hint", func(t *testing.T) {
		out, err := runCLI(t, dataDir, "list", "-q", "nothing-like-this")
		require.NoError(t, err)
		assert.Contains(t, out, emptyHint)
	})

	t.Run("Edit Keeps Untouched Fields", func(t *testing.T) {
		id := notes[0].ID
		_, err := runCLI(t, dataDir, "edit", id, "--title", "Daily standup")
		require.NoError(t, err)

		out, err := runCLI(t, dataDir, "show", id, "--json")
		require.NoError(t, err)
		var n core.Note
		require.NoError(t, json.Unmarshal([]byte(out), &n))
		assert.Equal(t, "Daily standup", n.Title)
		assert.Equal(t, "Q4 goals", n.Content)
		assert.Equal(t, []string{"work"}, n.Tags)
		assert.Equal(t, notes[0].CreatedAt, n.CreatedAt)

		_, err = runCLI(t, dataDir, "edit", id, "--clear-tags")
		require.NoError(t, err)
		out, err = runCLI(t, dataDir, "show", id, "--json")
		require.NoError(t, err)
		assert.Contains(t, out, `"tags": []`)
	})

	t.Run("Edit Without Changes", func(t *testing.T) {
		_, err := runCLI(t, dataDir, "edit", notes[0].ID)
		assert.Error(t, err)
	})

	t.Run("Edit Unknown", func(t *testing.T) {
		_, err := runCLI(t, dataDir, "edit", "missing", "--title", "x")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		_, err := runCLI(t, dataDir, "delete", "--yes", notes[1].ID)
		require.NoError(t, err)
		assert.Len(t, listJSONNotes(t, dataDir), 1)

		// Unknown ids are not an error.
		_, err = runCLI(t, dataDir, "delete", "-y", "missing")
		assert.NoError(t, err)
	})
}

func TestCLI_NewRejectsEmptyNote(t *testing.T) {
	dataDir := t.TempDir()
	_, err := runCLI(t, dataDir, "--no-seed", "new", "--title", "  ")
	require.Error(t, err)
	assert.Equal(t, emptyNoteMessage, err.Error())
}

func TestCLI_FirstRunSeeds(t *testing.T) {
	dataDir := t.TempDir()
	out, err := runCLI(t, dataDir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Workout log")
	assert.FileExists(t, filepath.Join(dataDir, "notes.v1.json"))
}

func TestCLI_Theme(t *testing.T) {
	dataDir := t.TempDir()

	out, err := runCLI(t, dataDir, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(out))

	out, err = runCLI(t, dataDir, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(out))

	out, err = runCLI(t, dataDir, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(out), "theme must persist")

	_, err = runCLI(t, dataDir, "theme", "LIGHT")
	require.NoError(t, err)
	raw, err := os.ReadFile(filepath.Join(dataDir, core.ThemeKey))
	require.NoError(t, err)
	assert.Equal(t, "light\n", string(raw))

	_, err = runCLI(t, dataDir, "theme", "sepia")
	assert.ErrorIs(t, err, core.ErrInvalidTheme)
}

func TestCLI_InitWritesConfig(t *testing.T) {
	root := t.TempDir()
	out, err := runCLI(t, root, "--adapter", "sqlite", "--no-seed", "init", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized journal")

	dataDir := filepath.Join(root, ".journal")
	cfg, err := os.ReadFile(filepath.Join(dataDir, "journal.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "adapter: sqlite")
	assert.Contains(t, string(cfg), "seed: false")

	// Later runs pick the adapter up from the config file.
	_, err = runCLI(t, dataDir, "new", "--content", "stored in sqlite")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dataDir, "journal.db"))
	assert.NoFileExists(t, filepath.Join(dataDir, "notes.v1.json"))

	out, err = runCLI(t, dataDir, "status")
	require.NoError(t, err)
	var report struct {
		Service core.ServiceState `json:"service"`
		Storage map[string]any   `json:"storage"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "sqlite", report.Service.RepositoryType)
	assert.Equal(t, 1, report.Service.Store.Notes)
	assert.Contains(t, report.Storage, "path")
}

func TestCLI_Version(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "journal version "), out)
}

func TestCLI_DeleteNeedsConfirmation(t *testing.T) {
	// Test stdin is not a terminal, so the prompt refuses without --yes.
	_, err := runCLI(t, t.TempDir(), "delete", "some-id")
	assert.ErrorIs(t, err, errNotInteractive)
}
