// Package domain defines the core types for product content tags, media
// assignments, and localized text entries.
package domain

import "time"

// TagHeroImage is the well-known primary-image tag. It is the only tag with an
// implicit fallback: when a product has no assignment for it, resolution falls
// back to the storefront's primary product image.
const TagHeroImage = "hero_image"

// Category groups tags for admin presentation. Grouping only — nothing in
// resolution dispatches on it.
type Category string

// Tag categories.
const (
	CategoryPrimary   Category = "primary"
	CategorySecondary Category = "secondary"
	CategoryReference Category = "reference"
	CategoryMedia     Category = "media"
	CategoryGallery   Category = "gallery"
	CategoryOther     Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPrimary, CategorySecondary, CategoryReference, CategoryMedia, CategoryGallery, CategoryOther:
		return true
	}
	return false
}

// MediaType is the coarse media class a tag expects its content to be.
type MediaType string

// Coarse media types.
const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
)

// Valid reports whether m is one of the four coarse types.
func (m MediaType) Valid() bool {
	switch m {
	case MediaImage, MediaVideo, MediaAudio, MediaDocument:
		return true
	}
	return false
}

// Tag is a named content slot a product can fill.
// Key is the source of truth and never changes after creation.
type Tag struct {
	Key          string    `json:"key"`           // Canonical form: lowercase snake_case
	Label        string    `json:"label"`         // Display name
	Description  string    `json:"description"`   // Admin-facing help text
	Category     Category  `json:"category"`      // Admin grouping
	ExpectedType MediaType `json:"expected_type"` // What resolved media should classify as
	Default      bool      `json:"default"`       // Member of the seeded set; cannot be deleted
	Position     int       `json:"position"`      // Insertion order for stable listings
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}
