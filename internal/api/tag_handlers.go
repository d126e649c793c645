package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all content tags in insertion order, optionally filtered by category",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags",
		Summary:       "Create tag",
		Description:   "Registers a new content tag; the key is immutable once created",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{key}",
		Summary:     "Get tag",
		Description: "Returns a tag by key",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{key}",
		Summary:     "Update tag",
		Description: "Edits a tag's label, description, category, or expected media type",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{key}",
		Summary:       "Delete tag",
		Description:   "Removes a tag; default tags are protected",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteTag)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	Key          string    `json:"key" doc:"Immutable tag key"`
	Label        string    `json:"label" doc:"Display name"`
	Description  string    `json:"description,omitempty" doc:"Admin-facing help text"`
	Category     string    `json:"category" doc:"Grouping category"`
	ExpectedType string    `json:"expected_type" doc:"Coarse media type the tag expects"`
	Default      bool      `json:"default" doc:"Member of the protected default set"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

func toTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{
		Key:          t.Key,
		Label:        t.Label,
		Description:  t.Description,
		Category:     string(t.Category),
		ExpectedType: string(t.ExpectedType),
		Default:      t.Default,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ListTagsInput contains parameters for listing tags.
type ListTagsInput struct {
	Category string `query:"category" doc:"Filter by category"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags in insertion order"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Key          string `json:"key" validate:"required,tagkey,max=64" doc:"Immutable snake_case key"`
	Label        string `json:"label" validate:"required,max=200" doc:"Display name"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=1000" doc:"Admin-facing help text"`
	Category     string `json:"category,omitempty" validate:"omitempty,oneof=primary secondary reference media gallery other" doc:"Grouping category"`
	ExpectedType string `json:"expected_type" validate:"required,oneof=image video audio document" doc:"Coarse media type"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body CreateTagRequest
}

// TagOutput wraps a single tag response for Huma.
type TagOutput struct {
	Body TagResponse
}

// GetTagInput contains parameters for getting a tag.
type GetTagInput struct {
	Key string `path:"key" doc:"Tag key"`
}

// UpdateTagRequest is the request body for updating a tag.
// The key itself can never be changed.
type UpdateTagRequest struct {
	Label        *string `json:"label,omitempty" validate:"omitempty,max=200" doc:"Display name"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000" doc:"Admin-facing help text"`
	Category     *string `json:"category,omitempty" validate:"omitempty,oneof=primary secondary reference media gallery other" doc:"Grouping category"`
	ExpectedType *string `json:"expected_type,omitempty" validate:"omitempty,oneof=image video audio document" doc:"Coarse media type"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	Key  string `path:"key" doc:"Tag key"`
	Body UpdateTagRequest
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	Key string `path:"key" doc:"Tag key"`
}

// DeleteTagOutput is the empty response for a successful delete.
type DeleteTagOutput struct{}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, input *ListTagsInput) (*ListTagsOutput, error) {
	var (
		tags []*domain.Tag
		err  error
	)
	if input.Category != "" {
		tags, err = s.services.Registry.ListByCategory(ctx, domain.Category(input.Category))
	} else {
		tags, err = s.services.Registry.ListTags(ctx)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = toTagResponse(t)
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	tag, err := s.services.Registry.AddTag(ctx, &domain.Tag{
		Key:          input.Body.Key,
		Label:        input.Body.Label,
		Description:  input.Body.Description,
		Category:     domain.Category(input.Body.Category),
		ExpectedType: domain.MediaType(input.Body.ExpectedType),
	})
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: toTagResponse(tag)}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	tag, err := s.services.Registry.GetTag(ctx, input.Key)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: toTagResponse(tag)}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	var category *domain.Category
	if input.Body.Category != nil {
		c := domain.Category(*input.Body.Category)
		category = &c
	}
	var expectedType *domain.MediaType
	if input.Body.ExpectedType != nil {
		m := domain.MediaType(*input.Body.ExpectedType)
		expectedType = &m
	}

	tag, err := s.services.Registry.UpdateTag(ctx, input.Key, input.Body.Label, input.Body.Description, category, expectedType)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: toTagResponse(tag)}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*DeleteTagOutput, error) {
	if err := s.services.Registry.DeleteTag(ctx, input.Key); err != nil {
		return nil, err
	}
	return &DeleteTagOutput{}, nil
}
