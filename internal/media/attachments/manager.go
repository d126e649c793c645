package attachments

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/id"
	"github.com/shoptagapp/shoptag-server/internal/store"
)

// Manager owns the attachment lifecycle: ingest, variant generation,
// metadata persistence and lookup.
type Manager struct {
	store     *store.Store
	storage   *Storage
	publicURL string
	logger    *slog.Logger
}

// NewManager creates an attachment manager. publicURL is the externally
// visible base URL used when building variant links.
func NewManager(st *store.Store, storage *Storage, publicURL string, logger *slog.Logger) *Manager {
	return &Manager{
		store:     st,
		storage:   storage,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// Upload ingests a file, generates image variants where applicable, and
// persists the attachment metadata. The detected MIME type wins over
// whatever the client claimed.
func (m *Manager) Upload(ctx context.Context, fileName, title, alt string, data []byte) (*domain.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file data cannot be empty")
	}

	mtype := mimetype.Detect(data)
	ext := mtype.Extension()
	if ext == "" {
		ext = ".bin"
	}

	attID, err := id.Generate("att")
	if err != nil {
		return nil, fmt.Errorf("generate attachment ID: %w", err)
	}

	att := &domain.Attachment{
		ID:        attID,
		FileName:  fileName,
		Title:     title,
		Alt:       alt,
		MimeType:  mtype.String(),
		Sizes:     map[string]domain.ImageSize{},
		CreatedAt: time.Now().UTC(),
	}

	if err := m.storage.Save(attID, "full", ext, data); err != nil {
		return nil, err
	}
	att.Sizes["full"] = domain.ImageSize{URL: m.variantURL(attID, "full")}

	if strings.HasPrefix(mtype.String(), "image/") {
		variants, blurHash, width, height, err := ProcessImage(data)
		if err != nil {
			// A corrupt-but-detected image is still stored; it just gets
			// no renders or placeholder.
			m.logger.Warn("image processing failed",
				"attachment_id", attID,
				"file_name", fileName,
				"error", err)
		} else {
			att.BlurHash = blurHash
			att.Sizes["full"] = domain.ImageSize{
				URL:    m.variantURL(attID, "full"),
				Width:  width,
				Height: height,
			}
			for _, v := range variants {
				if err := m.storage.Save(attID, v.Name, ".jpg", v.Data); err != nil {
					return nil, err
				}
				att.Sizes[v.Name] = domain.ImageSize{
					URL:    m.variantURL(attID, v.Name),
					Width:  v.Width,
					Height: v.Height,
				}
			}
		}
	}

	if err := m.store.PutAttachment(ctx, att); err != nil {
		return nil, fmt.Errorf("persist attachment metadata: %w", err)
	}

	m.logger.Info("attachment uploaded",
		"attachment_id", attID,
		"file_name", fileName,
		"mime_type", att.MimeType,
		"variants", len(att.Sizes))

	return att, nil
}

// Resolve returns the stored metadata for an attachment ID.
func (m *Manager) Resolve(ctx context.Context, id string) (*domain.Attachment, error) {
	return m.store.GetAttachment(ctx, id)
}

// Open returns a file handle and MIME type for one variant of an attachment.
// Generated variants are always JPEG; only "full" keeps the original type.
func (m *Manager) Open(ctx context.Context, id, variant string) (*os.File, string, error) {
	att, err := m.store.GetAttachment(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if _, ok := att.Sizes[variant]; !ok {
		return nil, "", store.ErrAttachmentNotFound
	}

	if variant == "full" {
		ext := extensionFor(att.MimeType)
		f, err := m.storage.Open(id, "full", ext)
		return f, att.MimeType, err
	}

	f, err := m.storage.Open(id, variant, ".jpg")
	return f, "image/jpeg", err
}

// Delete removes an attachment's metadata and files.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteAttachment(ctx, id); err != nil {
		return err
	}
	return m.storage.DeleteAll(id)
}

func (m *Manager) variantURL(id, variant string) string {
	return fmt.Sprintf("%s/media/%s/%s", m.publicURL, id, variant)
}

func extensionFor(mimeType string) string {
	if mtype := mimetype.Lookup(mimeType); mtype != nil && mtype.Extension() != "" {
		return mtype.Extension()
	}
	return ".bin"
}
