package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/internal/platform"
	"github.com/aretw0/journal/pkg/adapters/fs"
	"github.com/aretw0/journal/pkg/adapters/memory"
	"github.com/aretw0/journal/pkg/adapters/sqlite"
	"github.com/aretw0/journal/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("FS Creates Directory", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "data")

		repo, err := platform.Init(dataDir)
		require.NoError(t, err)

		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository, got %T", repo)
		assert.Equal(t, dataDir, fsRepo.Path)
		assert.DirExists(t, dataDir)
		assert.Equal(t, "notes.v1.json", filepath.Base(fsRepo.CollectionFile()))
	})

	t.Run("FS MustExist Fails if Directory Missing", func(t *testing.T) {
		_, err := platform.Init(filepath.Join(t.TempDir(), "missing"), platform.WithMustExist(true))
		assert.Error(t, err)
	})

	t.Run("FS YAML Format", func(t *testing.T) {
		repo, err := platform.Init(t.TempDir(), platform.WithFormat("yaml"))
		require.NoError(t, err)
		assert.Equal(t, "notes.v1.yaml", filepath.Base(repo.(*fs.Repository).CollectionFile()))
	})

	t.Run("FS Unknown Format", func(t *testing.T) {
		_, err := platform.Init(t.TempDir(), platform.WithFormat("toml"))
		assert.Error(t, err)
	})

	t.Run("SQLite In Directory", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "nested", "data")
		repo, err := platform.Init(dataDir, platform.WithAdapter(platform.AdapterSQLite))
		require.NoError(t, err)
		defer repo.(core.Closer).Close()

		assert.IsType(t, &sqlite.Repository{}, repo)
		assert.FileExists(t, filepath.Join(dataDir, platform.DatabaseFile))
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		repo, err := platform.Init("", platform.WithAdapter(platform.AdapterSQLite))
		require.NoError(t, err)
		defer repo.(core.Closer).Close()

		require.NoError(t, repo.SaveTheme(context.Background(), core.ThemeDark))
	})

	t.Run("Memory", func(t *testing.T) {
		repo, err := platform.Init("ignored", platform.WithAdapter(platform.AdapterMemory))
		require.NoError(t, err)
		assert.IsType(t, &memory.Repository{}, repo)
		_, err = os.Stat("ignored")
		assert.True(t, os.IsNotExist(err), "memory adapter must not touch the filesystem")
	})

	t.Run("Injected Repository Wins", func(t *testing.T) {
		injected := memory.New()
		repo, err := platform.Init("", platform.WithAdapter("bogus"), platform.WithRepository(injected))
		require.NoError(t, err)
		assert.Same(t, injected, repo)
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := platform.Init(t.TempDir(), platform.WithAdapter("postgres"))
		assert.ErrorContains(t, err, "unknown adapter")
	})
}
