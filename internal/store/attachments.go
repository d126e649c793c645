package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

// ErrAttachmentNotFound is returned when an attachment ID resolves to nothing.
var ErrAttachmentNotFound = errors.New("attachment not found")

// PutAttachment stores attachment metadata.
func (s *Store) PutAttachment(ctx context.Context, a *domain.Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set(attachmentPrefix+a.ID, a)
}

// GetAttachment retrieves attachment metadata by ID.
func (s *Store) GetAttachment(ctx context.Context, id string) (*domain.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var a domain.Attachment
	err := s.get(attachmentPrefix+id, &a)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAttachment removes attachment metadata. The caller is responsible
// for removing the files on disk.
func (s *Store) DeleteAttachment(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete(attachmentPrefix + id)
}
