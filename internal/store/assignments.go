package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

// ErrAssignmentNotFound is returned when no media is assigned to a
// product/tag pair.
var ErrAssignmentNotFound = errors.New("assignment not found")

func assignmentKey(productID int64, tagKey string) string {
	return fmt.Sprintf("%s%d:%s", assignmentPrefix, productID, tagKey)
}

// PutAssignment stores the media assignment for a product/tag pair,
// replacing any previous one.
func (s *Store) PutAssignment(ctx context.Context, a *domain.MediaAssignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set(assignmentKey(a.ProductID, a.TagKey), a)
}

// GetAssignment retrieves the assignment for a product/tag pair.
func (s *Store) GetAssignment(ctx context.Context, productID int64, tagKey string) (*domain.MediaAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var a domain.MediaAssignment
	err := s.get(assignmentKey(productID, tagKey), &a)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAssignment removes the assignment for a product/tag pair. Deleting an
// absent assignment is not an error.
func (s *Store) DeleteAssignment(ctx context.Context, productID int64, tagKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete(assignmentKey(productID, tagKey))
}
