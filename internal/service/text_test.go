package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	domainerrors "github.com/shoptagapp/shoptag-server/internal/errors"
	"github.com/shoptagapp/shoptag-server/internal/i18n"
	"github.com/shoptagapp/shoptag-server/internal/store"
)

// recordingRegistrar captures registered strings for inspection.
type recordingRegistrar struct {
	calls []string
	err   error
}

func (r *recordingRegistrar) RegisterString(ctx context.Context, namespace, key, text string) error {
	r.calls = append(r.calls, namespace+"/"+key+"="+text)
	return r.err
}

func newTextFixture(t *testing.T, registrar i18n.Registrar) *TextService {
	t.Helper()

	st, err := store.New(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return NewTextService(st, i18n.NewResolver("en"), registrar, testLogger())
}

func TestResolveTextFallbackChain(t *testing.T) {
	reg := &recordingRegistrar{}
	svc := newTextFixture(t, reg)
	ctx := context.Background()

	// Ingredient "Aqua" with a Dutch override "Water".
	_, err := svc.SaveText(ctx, 7, "ingredient_aqua", domain.LocalizedEntry{
		Base:      "Aqua",
		Overrides: map[string]string{"nl": "Water"},
	})
	require.NoError(t, err)

	got, err := svc.ResolveText(ctx, 7, "ingredient_aqua", "nl")
	require.NoError(t, err)
	assert.Equal(t, "Water", got.Text)
	assert.True(t, got.HadTranslation)

	// Region variants behave like their base language.
	regional, err := svc.ResolveText(ctx, 7, "ingredient_aqua", "nl_NL")
	require.NoError(t, err)
	assert.Equal(t, got.Text, regional.Text)

	// No German override: base text, no translation.
	fallback, err := svc.ResolveText(ctx, 7, "ingredient_aqua", "de")
	require.NoError(t, err)
	assert.Equal(t, "Aqua", fallback.Text)
	assert.False(t, fallback.HadTranslation)
	assert.Equal(t, "en", fallback.LanguageUsed)

	// The default language reads the base text, which is not a translation.
	base, err := svc.ResolveText(ctx, 7, "ingredient_aqua", "en")
	require.NoError(t, err)
	assert.Equal(t, "Aqua", base.Text)
	assert.False(t, base.HadTranslation)

	_, err = svc.ResolveText(ctx, 7, "missing_field", "en")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSaveTextNormalizesOverrideCodes(t *testing.T) {
	svc := newTextFixture(t, nil)
	ctx := context.Background()

	saved, err := svc.SaveText(ctx, 7, "description", domain.LocalizedEntry{
		Base:      "Soft running shoe",
		Overrides: map[string]string{"nl_NL": "Zachte hardloopschoen", "DE": "Weicher Laufschuh", "fr": ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "Zachte hardloopschoen", saved.Entry.Overrides["nl"])
	assert.Equal(t, "Weicher Laufschuh", saved.Entry.Overrides["de"])
	assert.NotContains(t, saved.Entry.Overrides, "fr")
	assert.NotContains(t, saved.Entry.Overrides, "nl_NL")
}

func TestSaveTextRegistersForTranslation(t *testing.T) {
	reg := &recordingRegistrar{}
	svc := newTextFixture(t, reg)

	_, err := svc.SaveText(context.Background(), 7, "subtitle", domain.LocalizedEntry{Base: "Water"})
	require.NoError(t, err)
	require.Len(t, reg.calls, 1)
	assert.Equal(t, "product-7/subtitle=Water", reg.calls[0])
}

func TestSaveTextSurvivesRegistrarFailure(t *testing.T) {
	reg := &recordingRegistrar{err: errors.New("pipeline down")}
	svc := newTextFixture(t, reg)
	ctx := context.Background()

	saved, err := svc.SaveText(ctx, 7, "subtitle", domain.LocalizedEntry{Base: "Water"})
	require.NoError(t, err)
	require.NotNil(t, saved)

	got, err := svc.ResolveText(ctx, 7, "subtitle", "en")
	require.NoError(t, err)
	assert.Equal(t, "Water", got.Text)
}

func TestSaveTextRejectsEmptyEntry(t *testing.T) {
	svc := newTextFixture(t, nil)

	_, err := svc.SaveText(context.Background(), 7, "subtitle", domain.LocalizedEntry{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestDeleteText(t *testing.T) {
	svc := newTextFixture(t, nil)
	ctx := context.Background()

	_, err := svc.SaveText(ctx, 7, "subtitle", domain.LocalizedEntry{Base: "Water"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteText(ctx, 7, "subtitle"))

	_, err = svc.ResolveText(ctx, 7, "subtitle", "en")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
