package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shoptagapp/shoptag-server/internal/config"
	"github.com/shoptagapp/shoptag-server/internal/logger"
	"github.com/shoptagapp/shoptag-server/internal/service"
	"github.com/shoptagapp/shoptag-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := cfg.Storage.DBPath()
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// Bootstrap holds the result of registry seeding at startup.
type Bootstrap struct {
	TagCount int
}

// ProvideBootstrap seeds the default tag set into an empty registry and
// backfills expected types on registries created before types existed.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	log := do.MustInvoke[*logger.Logger](i)
	registry := do.MustInvoke[*service.RegistryService](i)

	ctx := context.Background()
	if err := registry.Seed(ctx); err != nil {
		return nil, err
	}

	tags, err := registry.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("Tag registry ready", "tags", len(tags))

	return &Bootstrap{TagCount: len(tags)}, nil
}
