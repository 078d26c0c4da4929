package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/codec"
	"github.com/aretw0/journal/pkg/core"
)

func newTestRepo(t *testing.T, s codec.Serializer) *Repository {
	t.Helper()
	repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "data"), Serializer: s})
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func TestRepository_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b")
		repo := NewRepository(Config{Path: path})
		require.NoError(t, repo.Initialize(ctx))
		assert.DirExists(t, path)
	})

	t.Run("MustExist Missing", func(t *testing.T) {
		repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "nope"), MustExist: true})
		assert.Error(t, repo.Initialize(ctx))
	})

	t.Run("MustExist Not A Directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		repo := NewRepository(Config{Path: file, MustExist: true})
		assert.Error(t, repo.Initialize(ctx))
	})
}

func TestRepository_Collection(t *testing.T) {
	ctx := context.Background()
	notes := []core.Note{
		{ID: "2", Title: "Standup", Tags: []string{"work"}, CreatedAt: 20},
		{ID: "1", Content: "Groceries", Tags: []string{}, CreatedAt: 10},
	}

	for _, s := range []codec.Serializer{codec.NewJSON(), codec.NewYAML()} {
		t.Run(s.Name(), func(t *testing.T) {
			repo := newTestRepo(t, s)

			_, found, err := repo.LoadCollection(ctx)
			require.NoError(t, err)
			assert.False(t, found, "fresh directory must report absent")

			require.NoError(t, repo.SaveCollection(ctx, notes))
			assert.FileExists(t, filepath.Join(repo.Path, "notes.v1"+s.Ext()))

			got, found, err := repo.LoadCollection(ctx)
			require.NoError(t, err)
			require.True(t, found)
			if diff := cmp.Diff(notes, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			require.NoError(t, repo.SaveCollection(ctx, []core.Note{}))
			got, found, err = repo.LoadCollection(ctx)
			require.NoError(t, err)
			assert.True(t, found, "stored empty collection is not absent")
			assert.Empty(t, got)
		})
	}
}

func TestRepository_CorruptCollection(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, nil)
	require.NoError(t, os.WriteFile(repo.CollectionFile(), []byte("not json at all"), 0644))

	_, found, err := repo.LoadCollection(ctx)
	assert.False(t, found)
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.ErrorIs(t, err, codec.ErrCorrupt)
}

func TestRepository_SaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, nil)
	require.NoError(t, os.RemoveAll(repo.Path))

	err := repo.SaveCollection(ctx, []core.Note{{ID: "1", Title: "t", CreatedAt: 1}})
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.ErrorIs(t, repo.SaveTheme(ctx, core.ThemeDark), core.ErrPersistence)
}

func TestRepository_Theme(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, nil)

	_, found, err := repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SaveTheme(ctx, core.ThemeDark))
	got, found, err := repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, core.ThemeDark, got)

	raw, err := os.ReadFile(repo.ThemeFile())
	require.NoError(t, err)
	assert.Equal(t, "dark\n", string(raw))

	// Hand-edited garbage is returned as-is; the caller validates it.
	require.NoError(t, os.WriteFile(repo.ThemeFile(), []byte("  neon \n"), 0644))
	got, _, err = repo.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Theme("neon"), got)
}

func TestRepository_State(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, codec.NewYAML())

	st := repo.State().(RepositoryState)
	assert.Equal(t, "yaml", st.Format)
	assert.Nil(t, st.LastWrite)
	assert.False(t, st.WatcherActive)

	require.NoError(t, repo.SaveCollection(ctx, nil))
	st = repo.State().(RepositoryState)
	assert.NotNil(t, st.LastWrite)
	assert.Equal(t, "fs", repo.ComponentType())
}
