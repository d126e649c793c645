package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

// ErrTextNotFound is returned when a product has no stored entry for a
// text field.
var ErrTextNotFound = errors.New("text entry not found")

func textKey(productID int64, field string) string {
	return fmt.Sprintf("%s%d:%s", textPrefix, productID, field)
}

// PutTextEntry stores the localized text entry for a product field.
func (s *Store) PutTextEntry(ctx context.Context, e *domain.TextEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set(textKey(e.ProductID, e.Field), e)
}

// GetTextEntry retrieves the localized text entry for a product field.
func (s *Store) GetTextEntry(ctx context.Context, productID int64, field string) (*domain.TextEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var e domain.TextEntry
	err := s.get(textKey(productID, field), &e)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrTextNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteTextEntry removes the stored entry for a product field.
func (s *Store) DeleteTextEntry(ctx context.Context, productID int64, field string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete(textKey(productID, field))
}
