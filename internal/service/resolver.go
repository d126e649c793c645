package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/errors"
)

// maxConcurrentResolutions bounds the fan-out of a bulk resolve so one
// request cannot monopolize the platform rate limit.
const maxConcurrentResolutions = 4

// Resolver is the facade all callers resolve through. It composes the
// registry, media, and text services and is read-only with respect to
// persisted state apart from the best-effort translation registration.
type Resolver struct {
	registry *RegistryService
	media    *MediaService
	text     *TextService
	images   ImageProvider
	logger   *slog.Logger
}

// NewResolver creates the resolution facade.
func NewResolver(registry *RegistryService, media *MediaService, text *TextService, images ImageProvider, logger *slog.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		media:    media,
		text:     text,
		images:   images,
		logger:   logger,
	}
}

// ResolveMedia resolves one product/tag pair to a media descriptor.
func (r *Resolver) ResolveMedia(ctx context.Context, ref domain.ProductRef, tagKey string) (*domain.MediaDescriptor, error) {
	return r.media.ResolveMedia(ctx, ref, tagKey)
}

// ResolveText resolves a localized product text field.
func (r *Resolver) ResolveText(ctx context.Context, productID int64, field, lang string) (*domain.ResolvedText, error) {
	return r.text.ResolveText(ctx, productID, field, lang)
}

// ResolveAllMedia resolves every registered tag for one product. Tags that
// resolve to not-found are skipped; any other failure aborts the whole call.
func (r *Resolver) ResolveAllMedia(ctx context.Context, ref domain.ProductRef) (map[string]*domain.MediaDescriptor, error) {
	tags, err := r.registry.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make(map[string]*domain.MediaDescriptor)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentResolutions)

	for _, tag := range tags {
		key := tag.Key
		g.Go(func() error {
			desc, err := r.media.ResolveMedia(gctx, ref, key)
			if errors.Is(err, errors.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			results[key] = desc
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ClearCache drops cached platform data for one product. Called by the
// admin-save path after mutating assignments outside this facade.
func (r *Resolver) ClearCache(ref domain.ProductRef) {
	r.images.ClearCache(ref.ID)
}
