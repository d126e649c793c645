package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

func (s *Server) registerTextRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "resolveText",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/texts/{field}",
		Summary:     "Resolve product text",
		Description: "Returns the best-matching localized text for a product field",
		Tags:        []string{"Texts"},
	}, s.handleResolveText)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveText",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{id}/texts/{field}",
		Summary:     "Save product text",
		Description: "Stores the base text and per-language overrides for a product field",
		Tags:        []string{"Texts"},
	}, s.handleSaveText)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteText",
		Method:        http.MethodDelete,
		Path:          "/api/v1/products/{id}/texts/{field}",
		Summary:       "Delete product text",
		Description:   "Removes the stored entry for a product field",
		Tags:          []string{"Texts"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteText)
}

// === DTOs ===

// ResolveTextInput identifies a product text field and requested language.
type ResolveTextInput struct {
	ID    int64  `path:"id" doc:"Product ID"`
	Field string `path:"field" doc:"Text field name"`
	Lang  string `query:"lang" doc:"Requested language code (e.g. nl or nl_NL)"`
}

// ResolvedTextResponse is the result of a text resolution.
type ResolvedTextResponse struct {
	Text           string `json:"text" doc:"Resolved text"`
	LanguageUsed   string `json:"language_used" doc:"Language that actually served the request"`
	HadTranslation bool   `json:"had_translation" doc:"Whether an override matched the request"`
}

// ResolvedTextOutput wraps the resolved text for Huma.
type ResolvedTextOutput struct {
	Body ResolvedTextResponse
}

// SaveTextRequest is the request body for storing a localized entry.
type SaveTextRequest struct {
	Base      string            `json:"base,omitempty" doc:"Default-language text"`
	Overrides map[string]string `json:"overrides,omitempty" doc:"Per-language overrides keyed by language code"`
}

// SaveTextInput wraps the save request for Huma.
type SaveTextInput struct {
	ID    int64  `path:"id" doc:"Product ID"`
	Field string `path:"field" doc:"Text field name"`
	Body  SaveTextRequest
}

// TextEntryResponse echoes a stored text entry.
type TextEntryResponse struct {
	ProductID int64             `json:"product_id" doc:"Product ID"`
	Field     string            `json:"field" doc:"Text field name"`
	Base      string            `json:"base,omitempty" doc:"Default-language text"`
	Overrides map[string]string `json:"overrides,omitempty" doc:"Normalized per-language overrides"`
	UpdatedAt time.Time         `json:"updated_at" doc:"Last write time"`
}

// TextEntryOutput wraps a stored entry for Huma.
type TextEntryOutput struct {
	Body TextEntryResponse
}

// DeleteTextInput identifies the entry to remove.
type DeleteTextInput struct {
	ID    int64  `path:"id" doc:"Product ID"`
	Field string `path:"field" doc:"Text field name"`
}

// DeleteTextOutput is the empty response for a successful delete.
type DeleteTextOutput struct{}

// === Handlers ===

func (s *Server) handleResolveText(ctx context.Context, input *ResolveTextInput) (*ResolvedTextOutput, error) {
	resolved, err := s.services.Text.ResolveText(ctx, input.ID, input.Field, input.Lang)
	if err != nil {
		return nil, err
	}
	return &ResolvedTextOutput{Body: ResolvedTextResponse{
		Text:           resolved.Text,
		LanguageUsed:   resolved.LanguageUsed,
		HadTranslation: resolved.HadTranslation,
	}}, nil
}

func (s *Server) handleSaveText(ctx context.Context, input *SaveTextInput) (*TextEntryOutput, error) {
	entry, err := s.services.Text.SaveText(ctx, input.ID, input.Field, domain.LocalizedEntry{
		Base:      input.Body.Base,
		Overrides: input.Body.Overrides,
	})
	if err != nil {
		return nil, err
	}
	return &TextEntryOutput{Body: TextEntryResponse{
		ProductID: entry.ProductID,
		Field:     entry.Field,
		Base:      entry.Entry.Base,
		Overrides: entry.Entry.Overrides,
		UpdatedAt: entry.UpdatedAt,
	}}, nil
}

func (s *Server) handleDeleteText(ctx context.Context, input *DeleteTextInput) (*DeleteTextOutput, error) {
	if err := s.services.Text.DeleteText(ctx, input.ID, input.Field); err != nil {
		return nil, err
	}
	return &DeleteTextOutput{}, nil
}
