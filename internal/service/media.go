package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/errors"
	"github.com/shoptagapp/shoptag-server/internal/mediatype"
	"github.com/shoptagapp/shoptag-server/internal/store"
	"github.com/shoptagapp/shoptag-server/internal/storefront"
)

// AttachmentResolver resolves uploaded attachment IDs to their metadata.
// Satisfied by attachments.Manager.
type AttachmentResolver interface {
	Resolve(ctx context.Context, id string) (*domain.Attachment, error)
}

// ImageProvider supplies the product's platform-hosted image list.
// Satisfied by storefront.Client.
type ImageProvider interface {
	ImageAt(ctx context.Context, productID int64, position int) (domain.ProductImage, error)
	PrimaryImage(ctx context.Context, productID int64) (domain.ProductImage, error)
	ClearCache(productID int64)
}

// MediaService resolves tag assignments to concrete media descriptors and
// owns the assignment write path.
type MediaService struct {
	store       *store.Store
	registry    *RegistryService
	attachments AttachmentResolver
	images      ImageProvider
	logger      *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(st *store.Store, registry *RegistryService, attachments AttachmentResolver, images ImageProvider, logger *slog.Logger) *MediaService {
	return &MediaService{
		store:       st,
		registry:    registry,
		attachments: attachments,
		images:      images,
		logger:      logger,
	}
}

// ResolveMedia produces the media descriptor for a product/tag pair.
//
// Resolution order: explicit assignment, then the platform primary image as
// an implicit fallback for the hero image tag, then not-found. A resolved
// descriptor always carries a validation verdict against the tag's expected
// type; a mismatch is a warning on a successful result, never a failure.
func (s *MediaService) ResolveMedia(ctx context.Context, ref domain.ProductRef, tagKey string) (*domain.MediaDescriptor, error) {
	tag, err := s.registry.GetTag(ctx, tagKey)
	if err != nil {
		return nil, err
	}

	assignment, err := s.store.GetAssignment(ctx, ref.ID, tagKey)
	if errors.Is(err, store.ErrAssignmentNotFound) {
		return s.resolveFallback(ctx, ref, tag)
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	desc, err := s.resolveSource(ctx, ref, assignment.Source)
	if err != nil {
		return nil, err
	}

	desc.Validation = mediatype.Validate(desc.URL, desc.MimeType, tag.ExpectedType)
	desc.CoarseType = mediatype.Classify(desc.URL, desc.MimeType)
	if !desc.Validation.OK {
		s.logger.Warn("media type mismatch",
			"product", ref.String(),
			"tag", tagKey,
			"expected", tag.ExpectedType,
			"actual", desc.CoarseType,
		)
	}
	return desc, nil
}

// resolveFallback handles the no-assignment case. Only the hero image tag
// has an implicit source: the product's platform primary image. Fallback
// results skip type validation; the platform image is always acceptable.
func (s *MediaService) resolveFallback(ctx context.Context, ref domain.ProductRef, tag *domain.Tag) (*domain.MediaDescriptor, error) {
	if tag.Key != domain.TagHeroImage {
		return nil, errors.NotFoundf("no media assigned to tag %q for product %s", tag.Key, ref)
	}

	img, err := s.images.PrimaryImage(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, storefront.ErrOutOfRange) || errors.Is(err, storefront.ErrProductNotFound) {
			return nil, errors.NotFoundf("no media assigned to tag %q for product %s", tag.Key, ref)
		}
		return nil, errors.Wrapf(err, errors.CodeUnavailable, "platform image lookup failed for product %s", ref)
	}

	return &domain.MediaDescriptor{
		URL:        img.URL,
		Title:      baseFilename(img.URL),
		CoarseType: domain.MediaImage,
		Sizes:      map[string]domain.ImageSize{"full": {URL: img.URL, Width: img.Width, Height: img.Height}},
		SourceKind: domain.SourceFallbackPlatform,
		Validation: domain.Validation{OK: true},
	}, nil
}

// resolveSource dispatches on the assignment's source kind.
func (s *MediaService) resolveSource(ctx context.Context, ref domain.ProductRef, source domain.MediaSource) (*domain.MediaDescriptor, error) {
	switch src := source.(type) {
	case domain.UploadSource:
		return s.resolveUpload(ctx, src)
	case domain.URLSource:
		return resolveURL(src), nil
	case domain.PlatformImageSource:
		return s.resolvePlatformImage(ctx, ref, src)
	default:
		return nil, errors.Internal(fmt.Sprintf("unknown media source kind %q", source.Kind()))
	}
}

func (s *MediaService) resolveUpload(ctx context.Context, src domain.UploadSource) (*domain.MediaDescriptor, error) {
	att, err := s.attachments.Resolve(ctx, src.AttachmentID)
	if errors.Is(err, store.ErrAttachmentNotFound) {
		// The upload was deleted after assignment. Expected steady-state
		// condition, not a server fault.
		return nil, errors.NotFoundf("attachment %q no longer exists", src.AttachmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve attachment: %w", err)
	}

	full, ok := att.FullSize()
	if !ok {
		// A record without a full size cannot be served; treat it like a
		// deleted upload.
		return nil, errors.NotFoundf("attachment %q has no full-size file", src.AttachmentID)
	}
	return &domain.MediaDescriptor{
		URL:        full.URL,
		Title:      att.Title,
		Alt:        att.Alt,
		MimeType:   att.MimeType,
		Sizes:      att.Sizes,
		SourceKind: domain.SourceUpload,
		BlurHash:   att.BlurHash,
	}, nil
}

func resolveURL(src domain.URLSource) *domain.MediaDescriptor {
	return &domain.MediaDescriptor{
		URL:        src.URL,
		Title:      baseFilename(src.URL),
		Sizes:      map[string]domain.ImageSize{"full": {URL: src.URL}},
		SourceKind: domain.SourceURL,
	}
}

func (s *MediaService) resolvePlatformImage(ctx context.Context, ref domain.ProductRef, src domain.PlatformImageSource) (*domain.MediaDescriptor, error) {
	img, err := s.images.ImageAt(ctx, ref.ID, src.Position)
	if err != nil {
		if errors.Is(err, storefront.ErrOutOfRange) || errors.Is(err, storefront.ErrProductNotFound) {
			return nil, errors.NotFoundf("product %s has no platform image at position %d", ref, src.Position)
		}
		return nil, errors.Wrapf(err, errors.CodeUnavailable, "platform image lookup failed for product %s", ref)
	}

	return &domain.MediaDescriptor{
		URL:        img.URL,
		Title:      baseFilename(img.URL),
		Sizes:      map[string]domain.ImageSize{"full": {URL: img.URL, Width: img.Width, Height: img.Height}},
		SourceKind: domain.SourcePlatformImage,
	}, nil
}

// SaveAssignment stores the media source for a product/tag pair,
// last-write-wins, and invalidates the cached platform data for the product.
func (s *MediaService) SaveAssignment(ctx context.Context, ref domain.ProductRef, tagKey string, source domain.MediaSource) (*domain.MediaAssignment, error) {
	if _, err := s.registry.GetTag(ctx, tagKey); err != nil {
		return nil, err
	}

	assignment := &domain.MediaAssignment{
		ProductID: ref.ID,
		TagKey:    tagKey,
		Source:    source,
		UpdatedAt: time.Now(),
	}
	if err := s.store.PutAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("put assignment: %w", err)
	}

	s.images.ClearCache(ref.ID)
	s.logger.Info("media assignment saved",
		"product", ref.String(),
		"tag", tagKey,
		"kind", source.Kind(),
	)
	return assignment, nil
}

// ClearAssignment removes the media source for a product/tag pair.
func (s *MediaService) ClearAssignment(ctx context.Context, ref domain.ProductRef, tagKey string) error {
	if err := s.store.DeleteAssignment(ctx, ref.ID, tagKey); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	s.images.ClearCache(ref.ID)
	s.logger.Info("media assignment cleared", "product", ref.String(), "tag", tagKey)
	return nil
}

// baseFilename extracts the last path segment of a URL for use as a
// default title.
func baseFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return rawURL
	}
	return path.Base(u.Path)
}
