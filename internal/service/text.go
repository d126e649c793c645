package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/errors"
	"github.com/shoptagapp/shoptag-server/internal/i18n"
	"github.com/shoptagapp/shoptag-server/internal/store"
)

// TextService resolves localized product texts and owns the text write path.
type TextService struct {
	store     *store.Store
	resolver  *i18n.Resolver
	registrar i18n.Registrar
	logger    *slog.Logger
}

// NewTextService creates a new text service. registrar may be nil when no
// translation pipeline is configured.
func NewTextService(st *store.Store, resolver *i18n.Resolver, registrar i18n.Registrar, logger *slog.Logger) *TextService {
	return &TextService{
		store:     st,
		resolver:  resolver,
		registrar: registrar,
		logger:    logger,
	}
}

// ResolveText returns the best-matching localized text for a product field.
// Language fallback: requested override, else base text; not-found only when
// the base text is empty too.
func (s *TextService) ResolveText(ctx context.Context, productID int64, field, lang string) (*domain.ResolvedText, error) {
	entry, err := s.store.GetTextEntry(ctx, productID, field)
	if errors.Is(err, store.ErrTextNotFound) {
		return nil, errors.NotFoundf("no %q text for product %d", field, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("get text entry: %w", err)
	}

	resolved, ok := s.resolver.Resolve(entry.Entry, lang)
	if !ok {
		return nil, errors.NotFoundf("no %q text for product %d", field, productID)
	}
	return &resolved, nil
}

// ResolveEntry resolves an in-memory entry without touching persistence.
func (s *TextService) ResolveEntry(entry domain.LocalizedEntry, lang string) (*domain.ResolvedText, error) {
	resolved, ok := s.resolver.Resolve(entry, lang)
	if !ok {
		return nil, errors.NotFound("text entry has no base value")
	}
	return &resolved, nil
}

// SaveText stores a localized entry for a product field and registers the
// base text with the translation pipeline on a best-effort basis. Override
// language codes are normalized on the way in so lookups match.
func (s *TextService) SaveText(ctx context.Context, productID int64, field string, entry domain.LocalizedEntry) (*domain.TextEntry, error) {
	if entry.Base == "" && len(entry.Overrides) == 0 {
		return nil, errors.Validation("text entry needs a base text or at least one override")
	}

	if len(entry.Overrides) > 0 {
		normalized := make(map[string]string, len(entry.Overrides))
		for lang, text := range entry.Overrides {
			code := i18n.NormalizeLang(lang)
			if code == "" || text == "" {
				continue
			}
			normalized[code] = text
		}
		entry.Overrides = normalized
	}

	record := &domain.TextEntry{
		ProductID: productID,
		Field:     field,
		Entry:     entry,
		UpdatedAt: time.Now(),
	}
	if err := s.store.PutTextEntry(ctx, record); err != nil {
		return nil, fmt.Errorf("put text entry: %w", err)
	}

	i18n.RegisterForTranslation(ctx, s.registrar, s.logger,
		fmt.Sprintf("product-%d", productID), field, entry.Base)

	s.logger.Info("text entry saved",
		"product_id", productID,
		"field", field,
		"overrides", len(entry.Overrides),
	)
	return record, nil
}

// DeleteText removes the entry for a product field.
func (s *TextService) DeleteText(ctx context.Context, productID int64, field string) error {
	if err := s.store.DeleteTextEntry(ctx, productID, field); err != nil {
		return fmt.Errorf("delete text entry: %w", err)
	}
	return nil
}
