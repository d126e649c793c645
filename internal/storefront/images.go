package storefront

import (
	"context"
	"errors"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

// ErrOutOfRange is returned when a gallery position points past the
// product's image list.
var ErrOutOfRange = errors.New("image position out of range")

// ProductImages returns the product's images in platform order: the primary
// image first, then the gallery.
func (c *Client) ProductImages(ctx context.Context, productID int64) ([]domain.ProductImage, error) {
	payload, err := c.fetchProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var images []domain.ProductImage
	if payload.ImageURL != "" {
		images = append(images, domain.ProductImage{URL: payload.ImageURL})
	}
	for _, g := range payload.GalleryImages {
		images = append(images, domain.ProductImage{URL: g.URL, Width: g.Width, Height: g.Height})
	}
	return images, nil
}

// ImageAt returns the image at a zero-based position. Position 0 is the
// primary image; gallery entries follow. A product with gallery images but
// no primary image has nothing at position 0.
func (c *Client) ImageAt(ctx context.Context, productID int64, position int) (domain.ProductImage, error) {
	payload, err := c.fetchProduct(ctx, productID)
	if err != nil {
		return domain.ProductImage{}, err
	}

	if position < 0 {
		return domain.ProductImage{}, ErrOutOfRange
	}
	if position == 0 {
		if payload.ImageURL == "" {
			return domain.ProductImage{}, ErrOutOfRange
		}
		return domain.ProductImage{URL: payload.ImageURL}, nil
	}

	idx := position - 1
	if idx >= len(payload.GalleryImages) {
		return domain.ProductImage{}, ErrOutOfRange
	}
	g := payload.GalleryImages[idx]
	return domain.ProductImage{URL: g.URL, Width: g.Width, Height: g.Height}, nil
}

// PrimaryImage returns the product's primary image, or ErrOutOfRange when
// the product has none.
func (c *Client) PrimaryImage(ctx context.Context, productID int64) (domain.ProductImage, error) {
	return c.ImageAt(ctx, productID, 0)
}
