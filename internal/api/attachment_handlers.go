package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/store"
)

func (s *Server) registerAttachmentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "uploadAttachment",
		Method:        http.MethodPost,
		Path:          "/api/v1/attachments",
		Summary:       "Upload attachment",
		Description:   "Ingests a raw file; images get thumb/medium render variants and a blurhash",
		Tags:          []string{"Attachments"},
		DefaultStatus: http.StatusCreated,
	}, s.handleUploadAttachment)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAttachment",
		Method:      http.MethodGet,
		Path:        "/api/v1/attachments/{id}",
		Summary:     "Get attachment",
		Description: "Returns attachment metadata by ID",
		Tags:        []string{"Attachments"},
	}, s.handleGetAttachment)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteAttachment",
		Method:        http.MethodDelete,
		Path:          "/api/v1/attachments/{id}",
		Summary:       "Delete attachment",
		Description:   "Removes an attachment's metadata and files",
		Tags:          []string{"Attachments"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteAttachment)
}

// === DTOs ===

// UploadAttachmentInput carries the raw file body plus descriptive metadata.
type UploadAttachmentInput struct {
	FileName string `query:"filename" required:"true" doc:"Original file name"`
	Title    string `query:"title" doc:"Display title"`
	Alt      string `query:"alt" doc:"Alt text for images"`
	RawBody  []byte `doc:"Raw file content"`
}

// AttachmentResponse contains attachment metadata in API responses.
type AttachmentResponse struct {
	ID        string                       `json:"id" doc:"Attachment ID"`
	FileName  string                       `json:"file_name" doc:"Original file name"`
	Title     string                       `json:"title,omitempty" doc:"Display title"`
	Alt       string                       `json:"alt,omitempty" doc:"Alt text"`
	MimeType  string                       `json:"mime_type" doc:"Detected MIME type"`
	BlurHash  string                       `json:"blur_hash,omitempty" doc:"Placeholder hash for images"`
	Sizes     map[string]ImageSizeResponse `json:"sizes" doc:"Named render sizes"`
	CreatedAt time.Time                    `json:"created_at" doc:"Upload time"`
}

func toAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	sizes := make(map[string]ImageSizeResponse, len(a.Sizes))
	for name, size := range a.Sizes {
		sizes[name] = ImageSizeResponse{URL: size.URL, Width: size.Width, Height: size.Height}
	}
	return AttachmentResponse{
		ID:        a.ID,
		FileName:  a.FileName,
		Title:     a.Title,
		Alt:       a.Alt,
		MimeType:  a.MimeType,
		BlurHash:  a.BlurHash,
		Sizes:     sizes,
		CreatedAt: a.CreatedAt,
	}
}

// AttachmentOutput wraps attachment metadata for Huma.
type AttachmentOutput struct {
	Body AttachmentResponse
}

// GetAttachmentInput identifies an attachment.
type GetAttachmentInput struct {
	ID string `path:"id" doc:"Attachment ID"`
}

// DeleteAttachmentInput identifies the attachment to remove.
type DeleteAttachmentInput struct {
	ID string `path:"id" doc:"Attachment ID"`
}

// DeleteAttachmentOutput is the empty response for a successful delete.
type DeleteAttachmentOutput struct{}

// === Handlers ===

func (s *Server) handleUploadAttachment(ctx context.Context, input *UploadAttachmentInput) (*AttachmentOutput, error) {
	att, err := s.attachments.Upload(ctx, input.FileName, input.Title, input.Alt, input.RawBody)
	if err != nil {
		return nil, err
	}
	return &AttachmentOutput{Body: toAttachmentResponse(att)}, nil
}

func (s *Server) handleGetAttachment(ctx context.Context, input *GetAttachmentInput) (*AttachmentOutput, error) {
	att, err := s.attachments.Resolve(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AttachmentOutput{Body: toAttachmentResponse(att)}, nil
}

func (s *Server) handleDeleteAttachment(ctx context.Context, input *DeleteAttachmentInput) (*DeleteAttachmentOutput, error) {
	if err := s.attachments.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteAttachmentOutput{}, nil
}

// handleServeMedia streams one stored variant of an attachment. Plain chi
// handler so large files are not buffered through huma.
func (s *Server) handleServeMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	variant := chi.URLParam(r, "variant")

	f, mimeType, err := s.attachments.Open(r.Context(), id, variant)
	if err != nil {
		if errors.Is(err, store.ErrAttachmentNotFound) {
			http.Error(w, "attachment not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to open attachment", http.StatusInternalServerError)
		}
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, f); err != nil {
		s.logger.Warn("media stream interrupted", "attachment_id", id, "error", err)
	}
}
