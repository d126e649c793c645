package storefront

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productURL = "https://app.example.com/api/v3/store-1/products/42"

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c := New(Config{
		BaseURL:  "https://app.example.com",
		StoreID:  "store-1",
		Token:    "secret",
		Timeout:  5 * time.Second,
		CacheTTL: time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	httpmock.ActivateNonDefault(c.http)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestProductImagesOrder(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, productURL,
		httpmock.NewStringResponder(200, `{
			"id": 42,
			"sku": "SHOE-42",
			"imageUrl": "https://cdn.example.com/main.jpg",
			"galleryImages": [
				{"url": "https://cdn.example.com/side.jpg", "width": 1200, "height": 800},
				{"url": "https://cdn.example.com/back.jpg", "width": 1200, "height": 800}
			]
		}`))

	images, err := c.ProductImages(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "https://cdn.example.com/main.jpg", images[0].URL)
	assert.Equal(t, "https://cdn.example.com/side.jpg", images[1].URL)
	assert.Equal(t, 1200, images[1].Width)
}

func TestImageAtPositions(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, productURL,
		httpmock.NewStringResponder(200, `{
			"id": 42,
			"imageUrl": "https://cdn.example.com/main.jpg",
			"galleryImages": [{"url": "https://cdn.example.com/side.jpg"}]
		}`))

	ctx := context.Background()

	img, err := c.ImageAt(ctx, 42, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/main.jpg", img.URL)

	img, err = c.ImageAt(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/side.jpg", img.URL)

	_, err = c.ImageAt(ctx, 42, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = c.ImageAt(ctx, 42, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPositionZeroNeedsPrimaryImage(t *testing.T) {
	c := newTestClient(t)

	// Gallery images do not promote to the primary slot.
	httpmock.RegisterResponder(http.MethodGet, productURL,
		httpmock.NewStringResponder(200, `{
			"id": 42,
			"galleryImages": [{"url": "https://cdn.example.com/side.jpg"}]
		}`))

	_, err := c.PrimaryImage(context.Background(), 42)
	assert.ErrorIs(t, err, ErrOutOfRange)

	img, err := c.ImageAt(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/side.jpg", img.URL)
}

func TestProductCache(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, productURL,
		httpmock.NewStringResponder(200, `{"id": 42, "imageUrl": "https://cdn.example.com/main.jpg"}`))

	ctx := context.Background()
	_, err := c.PrimaryImage(ctx, 42)
	require.NoError(t, err)
	_, err = c.ProductImages(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	c.ClearCache(42)
	_, err = c.PrimaryImage(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestPlatformErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	httpmock.RegisterResponder(http.MethodGet, productURL,
		httpmock.NewStringResponder(404, `{"errorMessage": "Product not found"}`))
	_, err := c.ProductImages(ctx, 42)
	assert.ErrorIs(t, err, ErrProductNotFound)

	httpmock.Reset()
	httpmock.RegisterResponder(http.MethodGet, productURL,
		httpmock.NewStringResponder(503, "maintenance"))
	c.ClearCache(42)
	_, err = c.ProductImages(ctx, 42)
	assert.ErrorIs(t, err, ErrUnavailable)

	httpmock.Reset()
	httpmock.RegisterResponder(http.MethodGet, productURL,
		httpmock.NewStringResponder(429, "slow down"))
	_, err = c.ProductImages(ctx, 42)
	assert.ErrorIs(t, err, ErrRateLimited)
}
