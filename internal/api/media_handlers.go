package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/errors"
)

func (s *Server) registerMediaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "resolveAllMedia",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/media",
		Summary:     "Resolve all product media",
		Description: "Resolves every registered tag for a product; unassigned tags are omitted",
		Tags:        []string{"Media"},
	}, s.handleResolveAllMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolveMedia",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/media/{tagKey}",
		Summary:     "Resolve product media",
		Description: "Resolves one tag for a product to a concrete media descriptor",
		Tags:        []string{"Media"},
	}, s.handleResolveMedia)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveMediaAssignment",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{id}/media/{tagKey}",
		Summary:     "Save media assignment",
		Description: "Assigns a media source to a product/tag pair, replacing any previous assignment",
		Tags:        []string{"Media"},
	}, s.handleSaveAssignment)

	huma.Register(s.api, huma.Operation{
		OperationID:   "clearMediaAssignment",
		Method:        http.MethodDelete,
		Path:          "/api/v1/products/{id}/media/{tagKey}",
		Summary:       "Clear media assignment",
		Description:   "Removes the media assignment for a product/tag pair",
		Tags:          []string{"Media"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleClearAssignment)
}

// === DTOs ===

// ValidationResponse carries the non-fatal type check result.
type ValidationResponse struct {
	OK      bool   `json:"ok" doc:"Whether the media matches the tag's expected type"`
	Message string `json:"message,omitempty" doc:"Mismatch description when ok is false"`
}

// ImageSizeResponse is one named render size.
type ImageSizeResponse struct {
	URL    string `json:"url" doc:"Render URL"`
	Width  int    `json:"width,omitempty" doc:"Pixel width"`
	Height int    `json:"height,omitempty" doc:"Pixel height"`
}

// MediaDescriptorResponse is a resolved media descriptor.
type MediaDescriptorResponse struct {
	URL        string                       `json:"url" doc:"Primary media URL"`
	Title      string                       `json:"title,omitempty" doc:"Display title"`
	Alt        string                       `json:"alt,omitempty" doc:"Alt text"`
	MimeType   string                       `json:"mime_type,omitempty" doc:"MIME type when known"`
	CoarseType string                       `json:"coarse_type" doc:"image, video, audio, or document"`
	Sizes      map[string]ImageSizeResponse `json:"sizes,omitempty" doc:"Named render sizes"`
	SourceKind string                       `json:"source_kind" doc:"Where the media came from"`
	BlurHash   string                       `json:"blur_hash,omitempty" doc:"Placeholder hash for images"`
	Validation ValidationResponse           `json:"validation" doc:"Type check result"`
}

func toDescriptorResponse(d *domain.MediaDescriptor) MediaDescriptorResponse {
	sizes := make(map[string]ImageSizeResponse, len(d.Sizes))
	for name, size := range d.Sizes {
		sizes[name] = ImageSizeResponse{URL: size.URL, Width: size.Width, Height: size.Height}
	}
	return MediaDescriptorResponse{
		URL:        d.URL,
		Title:      d.Title,
		Alt:        d.Alt,
		MimeType:   d.MimeType,
		CoarseType: string(d.CoarseType),
		Sizes:      sizes,
		SourceKind: string(d.SourceKind),
		BlurHash:   d.BlurHash,
		Validation: ValidationResponse{OK: d.Validation.OK, Message: d.Validation.Message},
	}
}

// ResolveMediaInput identifies one product/tag pair.
type ResolveMediaInput struct {
	ID     int64  `path:"id" doc:"Product ID"`
	TagKey string `path:"tagKey" doc:"Tag key"`
	SKU    string `query:"sku" doc:"Optional product SKU for logging"`
}

// MediaDescriptorOutput wraps a descriptor for Huma.
type MediaDescriptorOutput struct {
	Body MediaDescriptorResponse
}

// ResolveAllMediaInput identifies a product.
type ResolveAllMediaInput struct {
	ID  int64  `path:"id" doc:"Product ID"`
	SKU string `query:"sku" doc:"Optional product SKU for logging"`
}

// ResolveAllMediaOutput maps tag keys to resolved descriptors.
type ResolveAllMediaOutput struct {
	Body struct {
		Media map[string]MediaDescriptorResponse `json:"media" doc:"Resolved descriptors keyed by tag"`
	}
}

// SaveAssignmentRequest is the request body for assigning media.
// Exactly the payload matching kind is read; the others are ignored.
type SaveAssignmentRequest struct {
	Kind         string `json:"kind" validate:"required,oneof=upload url platform_image" doc:"Source kind"`
	AttachmentID string `json:"attachment_id,omitempty" doc:"Attachment ID for kind=upload"`
	URL          string `json:"url,omitempty" validate:"omitempty,url" doc:"Absolute URL for kind=url"`
	Position     int    `json:"position,omitempty" validate:"gte=0" doc:"Zero-based image position for kind=platform_image"`
}

// SaveAssignmentInput wraps the save request for Huma.
type SaveAssignmentInput struct {
	ID     int64  `path:"id" doc:"Product ID"`
	TagKey string `path:"tagKey" doc:"Tag key"`
	SKU    string `query:"sku" doc:"Optional product SKU for logging"`
	Body   SaveAssignmentRequest
}

// AssignmentResponse echoes a stored assignment.
type AssignmentResponse struct {
	ProductID int64     `json:"product_id" doc:"Product ID"`
	TagKey    string    `json:"tag_key" doc:"Tag key"`
	Kind      string    `json:"kind" doc:"Source kind"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last write time"`
}

// AssignmentOutput wraps an assignment response for Huma.
type AssignmentOutput struct {
	Body AssignmentResponse
}

// ClearAssignmentInput identifies the assignment to remove.
type ClearAssignmentInput struct {
	ID     int64  `path:"id" doc:"Product ID"`
	TagKey string `path:"tagKey" doc:"Tag key"`
}

// ClearAssignmentOutput is the empty response for a successful clear.
type ClearAssignmentOutput struct{}

// === Handlers ===

func (s *Server) handleResolveMedia(ctx context.Context, input *ResolveMediaInput) (*MediaDescriptorOutput, error) {
	ref := domain.ProductRef{ID: input.ID, SKU: input.SKU}
	desc, err := s.services.Resolver.ResolveMedia(ctx, ref, input.TagKey)
	if err != nil {
		return nil, err
	}
	return &MediaDescriptorOutput{Body: toDescriptorResponse(desc)}, nil
}

func (s *Server) handleResolveAllMedia(ctx context.Context, input *ResolveAllMediaInput) (*ResolveAllMediaOutput, error) {
	ref := domain.ProductRef{ID: input.ID, SKU: input.SKU}
	resolved, err := s.services.Resolver.ResolveAllMedia(ctx, ref)
	if err != nil {
		return nil, err
	}

	out := &ResolveAllMediaOutput{}
	out.Body.Media = make(map[string]MediaDescriptorResponse, len(resolved))
	for key, desc := range resolved {
		out.Body.Media[key] = toDescriptorResponse(desc)
	}
	return out, nil
}

func (s *Server) handleSaveAssignment(ctx context.Context, input *SaveAssignmentInput) (*AssignmentOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	source, err := sourceFromRequest(input.Body)
	if err != nil {
		return nil, err
	}

	ref := domain.ProductRef{ID: input.ID, SKU: input.SKU}
	assignment, err := s.services.Media.SaveAssignment(ctx, ref, input.TagKey, source)
	if err != nil {
		return nil, err
	}

	return &AssignmentOutput{Body: AssignmentResponse{
		ProductID: assignment.ProductID,
		TagKey:    assignment.TagKey,
		Kind:      string(assignment.Source.Kind()),
		UpdatedAt: assignment.UpdatedAt,
	}}, nil
}

func (s *Server) handleClearAssignment(ctx context.Context, input *ClearAssignmentInput) (*ClearAssignmentOutput, error) {
	ref := domain.ProductRef{ID: input.ID}
	if err := s.services.Media.ClearAssignment(ctx, ref, input.TagKey); err != nil {
		return nil, err
	}
	return &ClearAssignmentOutput{}, nil
}

// sourceFromRequest builds the typed media source from the wire shape.
func sourceFromRequest(req SaveAssignmentRequest) (domain.MediaSource, error) {
	switch domain.SourceKind(req.Kind) {
	case domain.SourceUpload:
		if req.AttachmentID == "" {
			return nil, errors.Validation("attachment_id is required for kind=upload")
		}
		return domain.UploadSource{AttachmentID: req.AttachmentID}, nil
	case domain.SourceURL:
		if req.URL == "" {
			return nil, errors.Validation("url is required for kind=url")
		}
		return domain.URLSource{URL: req.URL}, nil
	case domain.SourcePlatformImage:
		return domain.PlatformImageSource{Position: req.Position}, nil
	default:
		return nil, errors.Validationf("unknown source kind %q", req.Kind)
	}
}
