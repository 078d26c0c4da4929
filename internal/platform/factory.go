package platform

import (
	"context"

	"github.com/aretw0/journal/pkg/core"
)

// New builds and opens the journal service.
//
//	svc, err := journal.New("./.journal", journal.WithAdapter("sqlite"))
//
// The URI argument is adapter-specific (see Init).
func New(uri string, opts ...Option) (*core.Service, error) {
	o := applyOptions(opts)

	// 1. Initialize storage
	repo, err := initRepository(uri, o)
	if err != nil {
		return nil, err
	}

	// 2. Wire the domain service
	storeOpts := []core.StoreOption{core.WithSeeding(o.seed)}
	if o.clock != nil {
		storeOpts = append(storeOpts, core.WithClock(o.clock))
	}

	service := core.NewService(repo, core.ServiceConfig{
		Logger:       o.logger,
		ThemeHint:    o.themeHint,
		EventBuffer:  o.eventBuffer,
		StoreOptions: storeOpts,
	})

	// 3. Load (or seed) the collection and the theme
	if err := service.Open(context.Background()); err != nil {
		_ = service.Close()
		return nil, err
	}

	return service, nil
}
