// Package service provides the business logic layer: the tag registry, media
// and text resolution, and the facade the API composes them through.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/errors"
	"github.com/shoptagapp/shoptag-server/internal/store"
	"github.com/shoptagapp/shoptag-server/internal/util"
)

// defaultTags is the seed set for an empty registry. These tags are protected
// from deletion but stay editable.
var defaultTags = []domain.Tag{
	{Key: domain.TagHeroImage, Label: "Hero image", Description: "Primary product image shown on listing and detail pages", Category: domain.CategoryPrimary, ExpectedType: domain.MediaImage, Default: true},
	{Key: "packshot", Label: "Packshot", Description: "Studio shot of the product packaging", Category: domain.CategoryPrimary, ExpectedType: domain.MediaImage, Default: true},
	{Key: "size_chart", Label: "Size chart", Description: "Sizing reference image", Category: domain.CategoryReference, ExpectedType: domain.MediaImage, Default: true},
	{Key: "product_video", Label: "Product video", Description: "Promotional or demonstration video", Category: domain.CategoryMedia, ExpectedType: domain.MediaVideo, Default: true},
	{Key: "audio_sample", Label: "Audio sample", Description: "Audio excerpt or sound sample", Category: domain.CategoryMedia, ExpectedType: domain.MediaAudio, Default: true},
	{Key: "user_manual", Label: "User manual", Description: "Downloadable manual or instruction document", Category: domain.CategoryReference, ExpectedType: domain.MediaDocument, Default: true},
}

// RegistryService owns the catalog of content tags.
type RegistryService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewRegistryService creates a new registry service.
func NewRegistryService(store *store.Store, logger *slog.Logger) *RegistryService {
	return &RegistryService{
		store:  store,
		logger: logger,
	}
}

// ListTags returns all tags in insertion order.
func (s *RegistryService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// ListByCategory returns the tags in one category, insertion order preserved.
func (s *RegistryService) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Tag, 0, len(tags))
	for _, t := range tags {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetTag retrieves a tag by key.
func (s *RegistryService) GetTag(ctx context.Context, key string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, key)
	if errors.Is(err, store.ErrTagNotFound) {
		return nil, errors.NotFoundf("tag %q not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// TagExists reports whether a tag is registered.
func (s *RegistryService) TagExists(ctx context.Context, key string) (bool, error) {
	return s.store.TagExists(ctx, key)
}

// AddTag registers a new tag. The key is identity and must already be in
// canonical form; it never changes after creation.
func (s *RegistryService) AddTag(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if !util.ValidTagKey(tag.Key) {
		return nil, errors.Validationf("invalid tag key %q: must match [a-z0-9_]+", tag.Key)
	}
	if !tag.ExpectedType.Valid() {
		return nil, errors.Validationf("invalid expected media type %q", tag.ExpectedType)
	}
	if tag.Category == "" {
		tag.Category = domain.CategoryOther
	}
	if !tag.Category.Valid() {
		return nil, errors.Validationf("invalid category %q", tag.Category)
	}

	tag.Default = false
	tag.CreatedAt = time.Now()
	tag.Touch()

	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrTagExists) {
			return nil, errors.AlreadyExistsf("tag %q already exists", tag.Key)
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Info("tag created",
		"key", tag.Key,
		"category", tag.Category,
		"expected_type", tag.ExpectedType,
	)
	return tag, nil
}

// UpdateTag edits a tag's display fields, category, and expected type.
// Nil fields are left unchanged. The key itself is never mutated.
func (s *RegistryService) UpdateTag(ctx context.Context, key string, label, description *string, category *domain.Category, expectedType *domain.MediaType) (*domain.Tag, error) {
	tag, err := s.GetTag(ctx, key)
	if err != nil {
		return nil, err
	}

	if expectedType != nil {
		if !expectedType.Valid() {
			return nil, errors.Validationf("invalid expected media type %q", *expectedType)
		}
		tag.ExpectedType = *expectedType
	}
	if category != nil {
		if !category.Valid() {
			return nil, errors.Validationf("invalid category %q", *category)
		}
		tag.Category = *category
	}
	if label != nil {
		tag.Label = *label
	}
	if description != nil {
		tag.Description = *description
	}

	tag.Touch()
	if err := s.store.SaveTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("save tag: %w", err)
	}

	s.logger.Info("tag updated", "key", key)
	return tag, nil
}

// DeleteTag removes a tag. Default tags are protected. Assignments that
// reference the deleted tag are left in place and resolve to not-found.
func (s *RegistryService) DeleteTag(ctx context.Context, key string) error {
	tag, err := s.GetTag(ctx, key)
	if err != nil {
		return err
	}
	if tag.Default {
		return errors.Protected(fmt.Sprintf("tag %q is a default tag and cannot be deleted", key))
	}

	if err := s.store.DeleteTag(ctx, key); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	s.logger.Info("tag deleted", "key", key)
	return nil
}

// Seed populates an empty registry with the default tag set, and back-fills
// the expected media type on legacy tags that predate it. Idempotent: a
// seeded registry is left alone, and a present expected type is never
// overwritten.
func (s *RegistryService) Seed(ctx context.Context) error {
	count, err := s.store.CountTags(ctx)
	if err != nil {
		return fmt.Errorf("count tags: %w", err)
	}

	if count == 0 {
		for i := range defaultTags {
			tag := defaultTags[i]
			tag.CreatedAt = time.Now()
			tag.Touch()
			if err := s.store.CreateTag(ctx, &tag); err != nil {
				return fmt.Errorf("seed tag %q: %w", tag.Key, err)
			}
		}
		s.logger.Info("seeded default tags", "count", len(defaultTags))
		return nil
	}

	return s.backfillExpectedTypes(ctx)
}

// backfillExpectedTypes is a one-time migration for tags created before the
// expected media type existed. It infers the type from the tag's own text
// and persists it, leaving already-typed tags untouched.
func (s *RegistryService) backfillExpectedTypes(ctx context.Context) error {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}

	backfilled := 0
	for _, tag := range tags {
		if tag.ExpectedType != "" {
			continue
		}
		tag.ExpectedType = InferMediaType(tag.Key, tag.Label, tag.Description)
		tag.Touch()
		if err := s.store.SaveTag(ctx, tag); err != nil {
			return fmt.Errorf("backfill tag %q: %w", tag.Key, err)
		}
		backfilled++
	}

	if backfilled > 0 {
		s.logger.Info("backfilled expected media types", "count", backfilled)
	}
	return nil
}

// InferMediaType guesses a tag's expected media type from its key, label,
// and description. Heuristic, used only for legacy back-fill.
func InferMediaType(texts ...string) domain.MediaType {
	haystack := strings.ToLower(strings.Join(texts, " "))

	switch {
	case strings.Contains(haystack, "video"):
		return domain.MediaVideo
	case strings.Contains(haystack, "audio"), strings.Contains(haystack, "sound"):
		return domain.MediaAudio
	case strings.Contains(haystack, "manual"), strings.Contains(haystack, "document"), strings.Contains(haystack, "pdf"):
		return domain.MediaDocument
	default:
		return domain.MediaImage
	}
}
