// Package storefront talks to the commerce platform's REST API for product
// data the resolver does not own, primarily product images.
package storefront

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// Rate limit: 4 requests per second, burst of 8. The platform throttles
	// around 600 req/min per token.
	defaultRPS   = 4.0
	defaultBurst = 8
)

// Platform errors.
var (
	ErrProductNotFound = errors.New("product not found on platform")
	ErrRateLimited     = errors.New("platform rate limit exceeded")
	ErrUnavailable     = errors.New("platform unavailable")
)

// Config carries the connection settings for the platform API.
type Config struct {
	BaseURL  string
	StoreID  string
	Token    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client is a rate-limited, caching platform API client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	cache   *gocache.Cache
	baseURL string
	storeID string
	token   string
	logger  *slog.Logger
}

// New creates a platform client. Product payloads are cached for cfg.CacheTTL
// so a burst of tag resolutions for the same product costs one upstream call.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		baseURL: cfg.BaseURL,
		storeID: cfg.StoreID,
		token:   cfg.Token,
		logger:  logger,
	}
}

// productPayload is the subset of the platform's product document we read.
type productPayload struct {
	ID            int64          `json:"id"`
	SKU           string         `json:"sku"`
	ImageURL      string         `json:"imageUrl"`
	GalleryImages []galleryImage `json:"galleryImages"`
}

type galleryImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// fetchProduct retrieves a product document, serving from cache when fresh.
func (c *Client) fetchProduct(ctx context.Context, productID int64) (*productPayload, error) {
	cacheKey := fmt.Sprintf("product:%d", productID)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*productPayload), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/api/v3/%s/products/%d", c.baseURL, url.PathEscape(c.storeID), productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.logger.Debug("platform request", "product_id", productID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrProductNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode product payload: %w", err)
	}

	c.cache.SetDefault(cacheKey, &payload)
	return &payload, nil
}

// ClearCache drops the cached payload for one product. Called after admin
// writes so the next resolution sees fresh platform data.
func (c *Client) ClearCache(productID int64) {
	c.cache.Delete(fmt.Sprintf("product:%d", productID))
}
