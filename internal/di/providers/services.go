package providers

import (
	"github.com/samber/do/v2"

	"github.com/shoptagapp/shoptag-server/internal/config"
	"github.com/shoptagapp/shoptag-server/internal/i18n"
	"github.com/shoptagapp/shoptag-server/internal/logger"
	"github.com/shoptagapp/shoptag-server/internal/media/attachments"
	"github.com/shoptagapp/shoptag-server/internal/service"
	"github.com/shoptagapp/shoptag-server/internal/storefront"
)

// ProvideI18nResolver provides the language fallback resolver.
func ProvideI18nResolver(i do.Injector) (*i18n.Resolver, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return i18n.NewResolver(cfg.I18n.DefaultLanguage), nil
}

// ProvideRegistrar provides the translation registrar. There is no external
// translation pipeline to notify yet, so registrations are a no-op.
func ProvideRegistrar(i do.Injector) (i18n.Registrar, error) {
	return i18n.NoopRegistrar{}, nil
}

// ProvideRegistryService provides the tag registry service.
func ProvideRegistryService(i do.Injector) (*service.RegistryService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewRegistryService(storeHandle.Store, log.Logger), nil
}

// ProvideMediaService provides the media assignment resolver.
func ProvideMediaService(i do.Injector) (*service.MediaService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	registry := do.MustInvoke[*service.RegistryService](i)
	manager := do.MustInvoke[*attachments.Manager](i)
	images := do.MustInvoke[*storefront.Client](i)

	return service.NewMediaService(storeHandle.Store, registry, manager, images, log.Logger), nil
}

// ProvideTextService provides the localized text service.
func ProvideTextService(i do.Injector) (*service.TextService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	resolver := do.MustInvoke[*i18n.Resolver](i)
	registrar := do.MustInvoke[i18n.Registrar](i)

	return service.NewTextService(storeHandle.Store, resolver, registrar, log.Logger), nil
}

// ProvideResolver provides the resolution facade.
func ProvideResolver(i do.Injector) (*service.Resolver, error) {
	log := do.MustInvoke[*logger.Logger](i)
	registry := do.MustInvoke[*service.RegistryService](i)
	media := do.MustInvoke[*service.MediaService](i)
	text := do.MustInvoke[*service.TextService](i)
	images := do.MustInvoke[*storefront.Client](i)

	return service.NewResolver(registry, media, text, images, log.Logger), nil
}
