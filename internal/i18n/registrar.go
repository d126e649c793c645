package i18n

import (
	"context"
	"fmt"
	"log/slog"
)

// Registrar announces a string to an external translation pipeline so
// translators see it in their queue.
type Registrar interface {
	RegisterString(ctx context.Context, namespace, key, text string) error
}

// NoopRegistrar satisfies Registrar without doing anything. Used when no
// translation pipeline is configured.
type NoopRegistrar struct{}

func (NoopRegistrar) RegisterString(ctx context.Context, namespace, key, text string) error {
	return nil
}

// RegisterForTranslation registers text with the translation pipeline on a
// best-effort basis. Registration failures never propagate to the caller:
// saving product content must not fail because a translation backend is down.
func RegisterForTranslation(ctx context.Context, reg Registrar, logger *slog.Logger, namespace, key, text string) {
	if reg == nil || text == "" {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("translation registration panicked",
				"namespace", namespace,
				"key", key,
				"panic", fmt.Sprintf("%v", r))
		}
	}()

	if err := reg.RegisterString(ctx, namespace, key, text); err != nil {
		logger.Warn("translation registration failed",
			"namespace", namespace,
			"key", key,
			"error", err)
	}
}
