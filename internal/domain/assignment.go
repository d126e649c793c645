package domain

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"time"
)

// SourceKind identifies where a media assignment points.
type SourceKind string

// Source kinds. SourceFallbackPlatform never appears on a stored assignment;
// it only marks resolved descriptors produced by the primary-image fallback.
const (
	SourceUpload           SourceKind = "upload"
	SourceURL              SourceKind = "url"
	SourcePlatformImage    SourceKind = "platform_image"
	SourceFallbackPlatform SourceKind = "fallback_platform"
)

// MediaSource is the closed set of places an assignment can point at.
// Each variant carries only its own payload, so an assignment can never hold
// two payloads at once.
type MediaSource interface {
	Kind() SourceKind
}

// UploadSource points at a stored attachment.
type UploadSource struct {
	AttachmentID string `json:"attachment_id"`
}

// Kind implements MediaSource.
func (UploadSource) Kind() SourceKind { return SourceUpload }

// URLSource points at an external absolute URL.
type URLSource struct {
	URL string `json:"url"`
}

// Kind implements MediaSource.
func (URLSource) Kind() SourceKind { return SourceURL }

// PlatformImageSource points at the product's ordered image list by position.
// Position 0 is the primary image; 1+ index into the gallery at position-1.
type PlatformImageSource struct {
	Position int `json:"position"`
}

// Kind implements MediaSource.
func (PlatformImageSource) Kind() SourceKind { return SourcePlatformImage }

// MediaAssignment binds one tag to one concrete source for one product.
// One assignment per (product, tag) pair; saves replace wholesale.
type MediaAssignment struct {
	ProductID int64       `json:"product_id"`
	TagKey    string      `json:"tag_key"`
	Source    MediaSource `json:"-"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// assignmentEnvelope is the persisted wire form: a kind discriminator plus the
// matching variant's payload.
type assignmentEnvelope struct {
	ProductID int64          `json:"product_id"`
	TagKey    string         `json:"tag_key"`
	Kind      SourceKind     `json:"kind"`
	Source    jsontext.Value `json:"source"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// MarshalJSON encodes the assignment as a kind-tagged envelope.
func (a MediaAssignment) MarshalJSON() ([]byte, error) {
	if a.Source == nil {
		return nil, fmt.Errorf("media assignment for tag %q has no source", a.TagKey)
	}

	payload, err := json.Marshal(a.Source)
	if err != nil {
		return nil, err
	}

	return json.Marshal(assignmentEnvelope{
		ProductID: a.ProductID,
		TagKey:    a.TagKey,
		Kind:      a.Source.Kind(),
		Source:    payload,
		UpdatedAt: a.UpdatedAt,
	})
}

// UnmarshalJSON decodes the kind-tagged envelope back into the matching variant.
func (a *MediaAssignment) UnmarshalJSON(data []byte) error {
	var env assignmentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	a.ProductID = env.ProductID
	a.TagKey = env.TagKey
	a.UpdatedAt = env.UpdatedAt

	switch env.Kind {
	case SourceUpload:
		var src UploadSource
		if err := json.Unmarshal(env.Source, &src); err != nil {
			return err
		}
		a.Source = src
	case SourceURL:
		var src URLSource
		if err := json.Unmarshal(env.Source, &src); err != nil {
			return err
		}
		a.Source = src
	case SourcePlatformImage:
		var src PlatformImageSource
		if err := json.Unmarshal(env.Source, &src); err != nil {
			return err
		}
		a.Source = src
	default:
		return fmt.Errorf("unknown media source kind %q", env.Kind)
	}

	return nil
}
