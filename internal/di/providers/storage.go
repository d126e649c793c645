package providers

import (
	"github.com/samber/do/v2"

	"github.com/shoptagapp/shoptag-server/internal/config"
	"github.com/shoptagapp/shoptag-server/internal/logger"
	"github.com/shoptagapp/shoptag-server/internal/media/attachments"
	"github.com/shoptagapp/shoptag-server/internal/storefront"
)

// ProvideAttachmentStorage provides the on-disk attachment blob storage.
func ProvideAttachmentStorage(i do.Injector) (*attachments.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := attachments.NewStorage(cfg.Storage.MediaPath())
	if err != nil {
		return nil, err
	}

	log.Info("Attachment storage initialized", "path", cfg.Storage.MediaPath())

	return storage, nil
}

// ProvideAttachmentManager provides the upload pipeline.
func ProvideAttachmentManager(i do.Injector) (*attachments.Manager, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storage := do.MustInvoke[*attachments.Storage](i)

	return attachments.NewManager(storeHandle.Store, storage, cfg.Server.PublicURL, log.Logger), nil
}

// ProvideStorefrontClient provides the platform API client that serves
// product image lists.
func ProvideStorefrontClient(i do.Injector) (*storefront.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := storefront.New(storefront.Config{
		BaseURL:  cfg.Storefront.BaseURL,
		StoreID:  cfg.Storefront.StoreID,
		Token:    cfg.Storefront.Token,
		Timeout:  cfg.Storefront.Timeout,
		CacheTTL: cfg.Storefront.CacheTTL,
	}, log.Logger)

	log.Info("Storefront client ready",
		"base_url", cfg.Storefront.BaseURL,
		"store_id", cfg.Storefront.StoreID,
	)

	return client, nil
}
