package domain

// ImageSize is one named render size of a resolved media item.
type ImageSize struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Validation carries the non-fatal type check attached to a resolved descriptor.
// A mismatch never fails resolution; callers decide whether to warn.
type Validation struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// MediaDescriptor is the normalized output of media resolution. Never persisted.
type MediaDescriptor struct {
	URL        string               `json:"url"`
	Title      string               `json:"title,omitempty"`
	Alt        string               `json:"alt,omitempty"`
	MimeType   string               `json:"mime_type,omitempty"`
	CoarseType MediaType            `json:"coarse_type"`
	Sizes      map[string]ImageSize `json:"sizes,omitempty"`
	SourceKind SourceKind           `json:"source_kind"`
	BlurHash   string               `json:"blur_hash,omitempty"`
	Validation Validation           `json:"validation"`
}
