package domain

import "time"

// Attachment is stored metadata for an uploaded media file. The blob itself
// lives on the filesystem; Sizes carries the generated render variants
// (images get thumb/medium/full, everything else a single full entry).
type Attachment struct {
	ID        string               `json:"id"`
	FileName  string               `json:"file_name"`
	Title     string               `json:"title,omitempty"`
	Alt       string               `json:"alt,omitempty"`
	MimeType  string               `json:"mime_type"`
	BlurHash  string               `json:"blur_hash,omitempty"`
	Sizes     map[string]ImageSize `json:"sizes"`
	CreatedAt time.Time            `json:"created_at"`
}

// FullSize returns the original-resolution variant.
func (a *Attachment) FullSize() (ImageSize, bool) {
	size, ok := a.Sizes["full"]
	return size, ok
}
