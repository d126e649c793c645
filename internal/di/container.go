// Package di provides dependency injection configuration for the ShopTag server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shoptagapp/shoptag-server/internal/config"
	"github.com/shoptagapp/shoptag-server/internal/di/providers"
	"github.com/shoptagapp/shoptag-server/internal/logger"
	"github.com/shoptagapp/shoptag-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Database and storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideAttachmentStorage)
	do.Provide(injector, providers.ProvideAttachmentManager)
	do.Provide(injector, providers.ProvideStorefrontClient)

	// Localization
	do.Provide(injector, providers.ProvideI18nResolver)
	do.Provide(injector, providers.ProvideRegistrar)

	// Business services
	do.Provide(injector, providers.ProvideRegistryService)
	do.Provide(injector, providers.ProvideMediaService)
	do.Provide(injector, providers.ProvideTextService)
	do.Provide(injector, providers.ProvideResolver)
	do.Provide(injector, providers.ProvideBootstrap)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Registry seeding must finish before the server accepts requests.
	_ = do.MustInvoke[*service.RegistryService](injector)
	_ = do.MustInvoke[*providers.Bootstrap](injector)

	_ = do.MustInvoke[*service.MediaService](injector)
	_ = do.MustInvoke[*service.TextService](injector)
	_ = do.MustInvoke[*service.Resolver](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
