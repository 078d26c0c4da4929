package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/journal/pkg/adapters/fs"
	"github.com/aretw0/journal/pkg/adapters/memory"
	"github.com/aretw0/journal/pkg/adapters/sqlite"
	"github.com/aretw0/journal/pkg/codec"
	"github.com/aretw0/journal/pkg/core"
)

// DatabaseFile is the SQLite file name used when the sqlite adapter is given a directory.
const DatabaseFile = "journal.db"

// Init prepares the storage adapter selected by the options.
// The 'uri' argument is adapter-specific: a data directory for 'fs', a
// database file (or directory, or ":memory:") for 'sqlite', ignored for 'memory'.
//
// It returns the configured core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	return initRepository(uri, applyOptions(opts))
}

func initRepository(uri string, o *options) (core.Repository, error) {
	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on Adapter
	var repo core.Repository
	var err error

	switch o.adapter {
	case AdapterFS:
		repo, err = initFS(uri, o)
	case AdapterSQLite:
		repo, err = initSQLite(uri, o)
	case AdapterMemory:
		repo = memory.New()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		if c, ok := repo.(core.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}

	o.logger.Debug("storage ready", "adapter", o.adapter, "uri", uri)
	return repo, nil
}

// initFS handles the initialization logic for the Filesystem adapter
func initFS(path string, o *options) (core.Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("fs adapter needs a data directory")
	}

	serializer, err := codec.ForName(o.format)
	if err != nil {
		return nil, err
	}

	return fs.NewRepository(fs.Config{
		Path:         path,
		MustExist:    o.mustExist,
		Serializer:   serializer,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	}), nil
}

func initSQLite(uri string, o *options) (core.Repository, error) {
	if uri == "" {
		uri = sqlite.MemoryPath
	}
	if uri != sqlite.MemoryPath && filepath.Ext(uri) == "" {
		uri = filepath.Join(uri, DatabaseFile)
	}
	if uri != sqlite.MemoryPath && !o.mustExist {
		if err := os.MkdirAll(filepath.Dir(uri), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	if o.format != "" && o.format != codec.Default {
		o.logger.Warn("sqlite adapter always stores json, ignoring format", "format", o.format)
	}
	return sqlite.Open(uri, o.logger)
}
