package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoptagapp/shoptag-server/internal/domain"
	"github.com/shoptagapp/shoptag-server/internal/i18n"
	"github.com/shoptagapp/shoptag-server/internal/media/attachments"
	"github.com/shoptagapp/shoptag-server/internal/service"
	"github.com/shoptagapp/shoptag-server/internal/store"
	"github.com/shoptagapp/shoptag-server/internal/storefront"
)

// fakeImages serves a fixed platform image list in tests.
type fakeImages struct {
	primary string
	gallery []string
}

func (f *fakeImages) ImageAt(ctx context.Context, productID int64, position int) (domain.ProductImage, error) {
	if position == 0 {
		if f.primary == "" {
			return domain.ProductImage{}, storefront.ErrOutOfRange
		}
		return domain.ProductImage{URL: f.primary}, nil
	}
	if position < 0 || position-1 >= len(f.gallery) {
		return domain.ProductImage{}, storefront.ErrOutOfRange
	}
	return domain.ProductImage{URL: f.gallery[position-1]}, nil
}

func (f *fakeImages) PrimaryImage(ctx context.Context, productID int64) (domain.ProductImage, error) {
	return f.ImageAt(ctx, productID, 0)
}

func (f *fakeImages) ClearCache(productID int64) {}

type testServer struct {
	*Server
	api    humatest.TestAPI
	images *fakeImages
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	storage, err := attachments.NewStorage(t.TempDir())
	require.NoError(t, err)
	manager := attachments.NewManager(st, storage, "http://localhost:8080", logger)

	images := &fakeImages{}
	registry := service.NewRegistryService(st, logger)
	require.NoError(t, registry.Seed(context.Background()))

	media := service.NewMediaService(st, registry, manager, images, logger)
	text := service.NewTextService(st, i18n.NewResolver("en"), nil, logger)
	resolver := service.NewResolver(registry, media, text, images, logger)

	s := NewServer(st, &Services{
		Registry: registry,
		Media:    media,
		Text:     text,
		Resolver: resolver,
	}, manager, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		images: images,
	}
}

func TestTagCRUD(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags")
	require.Equal(t, http.StatusOK, resp.Code)

	var listing struct {
		Tags []TagResponse `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listing))
	require.Len(t, listing.Tags, 6)
	assert.Equal(t, "hero_image", listing.Tags[0].Key)

	resp = ts.api.Post("/api/v1/tags", map[string]any{
		"key":           "care_label",
		"label":         "Care label",
		"category":      "reference",
		"expected_type": "image",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get("/api/v1/tags/care_label")
	require.Equal(t, http.StatusOK, resp.Code)
	var tag TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
	assert.Equal(t, "Care label", tag.Label)
	assert.False(t, tag.Default)

	// Duplicate key is a conflict.
	resp = ts.api.Post("/api/v1/tags", map[string]any{
		"key":           "care_label",
		"label":         "Again",
		"expected_type": "image",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	// Non-canonical key is rejected.
	resp = ts.api.Post("/api/v1/tags", map[string]any{
		"key":           "Care-Label",
		"label":         "Bad key",
		"expected_type": "image",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Patch("/api/v1/tags/care_label", map[string]any{
		"label": "Care instructions",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
	assert.Equal(t, "care_label", tag.Key)
	assert.Equal(t, "Care instructions", tag.Label)

	resp = ts.api.Delete("/api/v1/tags/care_label")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/tags/care_label")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteDefaultTagForbidden(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Delete("/api/v1/tags/hero_image")
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestListTagsByCategory(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags?category=media")
	require.Equal(t, http.StatusOK, resp.Code)

	var listing struct {
		Tags []TagResponse `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listing))
	require.Len(t, listing.Tags, 2)
	assert.Equal(t, "product_video", listing.Tags[0].Key)
	assert.Equal(t, "audio_sample", listing.Tags[1].Key)
}

func TestMediaAssignmentFlow(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/products/42/media/product_video", map[string]any{
		"kind": "url",
		"url":  "https://cdn.example.com/clip.mov",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/products/42/media/product_video")
	require.Equal(t, http.StatusOK, resp.Code)

	var desc MediaDescriptorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &desc))
	assert.Equal(t, "https://cdn.example.com/clip.mov", desc.URL)
	assert.Equal(t, "url", desc.SourceKind)
	assert.Equal(t, "video", desc.CoarseType)
	assert.True(t, desc.Validation.OK)

	resp = ts.api.Delete("/api/v1/products/42/media/product_video")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/products/42/media/product_video")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestMediaTypeMismatchIsWarningNotError(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/products/42/media/size_chart", map[string]any{
		"kind": "url",
		"url":  "https://cdn.example.com/chart.pdf",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/products/42/media/size_chart")
	require.Equal(t, http.StatusOK, resp.Code)

	var desc MediaDescriptorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &desc))
	assert.False(t, desc.Validation.OK)
	assert.Contains(t, desc.Validation.Message, "document")
}

func TestSaveAssignmentValidation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/products/42/media/packshot", map[string]any{
		"kind": "upload",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Put("/api/v1/products/42/media/packshot", map[string]any{
		"kind": "carrier_pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Put("/api/v1/products/42/media/no_such_tag", map[string]any{
		"kind": "url",
		"url":  "https://cdn.example.com/a.jpg",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestResolveAllMedia(t *testing.T) {
	ts := setupTestServer(t)
	ts.images.primary = "https://cdn.example.com/42-main.jpg"

	resp := ts.api.Put("/api/v1/products/42/media/product_video", map[string]any{
		"kind": "url",
		"url":  "https://cdn.example.com/clip.mp4",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/products/42/media")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Media map[string]MediaDescriptorResponse `json:"media"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Media, 2)
	assert.Equal(t, "fallback_platform", body.Media["hero_image"].SourceKind)
	assert.Equal(t, "url", body.Media["product_video"].SourceKind)
}

func TestTextFlow(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/products/7/texts/ingredient_aqua", map[string]any{
		"base":      "Aqua",
		"overrides": map[string]string{"nl_NL": "Water"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var saved TextEntryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &saved))
	assert.Equal(t, "Water", saved.Overrides["nl"])

	resp = ts.api.Get("/api/v1/products/7/texts/ingredient_aqua?lang=nl")
	require.Equal(t, http.StatusOK, resp.Code)
	var resolved ResolvedTextResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &resolved))
	assert.Equal(t, "Water", resolved.Text)
	assert.True(t, resolved.HadTranslation)

	resp = ts.api.Get("/api/v1/products/7/texts/ingredient_aqua?lang=de")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &resolved))
	assert.Equal(t, "Aqua", resolved.Text)
	assert.False(t, resolved.HadTranslation)

	resp = ts.api.Get("/api/v1/products/7/texts/missing?lang=en")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete("/api/v1/products/7/texts/ingredient_aqua")
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestAttachmentUploadAndResolve(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/attachments?filename=notes.txt&title=Notes",
		strings.NewReader("plain text attachment body"))
	require.Equal(t, http.StatusCreated, resp.Code)

	var att AttachmentResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &att))
	assert.NotEmpty(t, att.ID)
	assert.Contains(t, att.MimeType, "text/plain")
	assert.Contains(t, att.Sizes, "full")

	resp = ts.api.Get("/api/v1/attachments/" + att.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	// Assign the upload and resolve it through the media endpoint.
	resp = ts.api.Put("/api/v1/products/42/media/user_manual", map[string]any{
		"kind":          "upload",
		"attachment_id": att.ID,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/products/42/media/user_manual")
	require.Equal(t, http.StatusOK, resp.Code)
	var desc MediaDescriptorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &desc))
	assert.Equal(t, "upload", desc.SourceKind)
	assert.Equal(t, "document", desc.CoarseType)

	resp = ts.api.Delete("/api/v1/attachments/" + att.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)

	// The assignment now points at nothing.
	resp = ts.api.Get("/api/v1/products/42/media/user_manual")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "healthy")
}
