package domain

import (
	"encoding/json/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaAssignment_EnvelopeEncoding(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		source   MediaSource
		wantKind SourceKind
	}{
		{
			name:     "upload",
			source:   UploadSource{AttachmentID: "att-V1StGXR8_Z5jdHi6B-myT"},
			wantKind: SourceUpload,
		},
		{
			name:     "external url",
			source:   URLSource{URL: "https://cdn.example.com/clip.mov"},
			wantKind: SourceURL,
		},
		{
			name:     "platform image",
			source:   PlatformImageSource{Position: 2},
			wantKind: SourcePlatformImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := MediaAssignment{
				ProductID: 42,
				TagKey:    "product_video",
				Source:    tt.source,
				UpdatedAt: now,
			}

			data, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded MediaAssignment
			require.NoError(t, json.Unmarshal(data, &decoded))

			assert.Equal(t, original.ProductID, decoded.ProductID)
			assert.Equal(t, original.TagKey, decoded.TagKey)
			assert.Equal(t, tt.wantKind, decoded.Source.Kind())
			assert.Equal(t, tt.source, decoded.Source)
		})
	}
}

func TestMediaAssignment_MarshalWithoutSource(t *testing.T) {
	_, err := json.Marshal(MediaAssignment{ProductID: 1, TagKey: "hero_image"})
	assert.Error(t, err)
}

func TestMediaAssignment_UnmarshalUnknownKind(t *testing.T) {
	raw := []byte(`{"product_id":1,"tag_key":"hero_image","kind":"carrier_pigeon","source":{}}`)

	var a MediaAssignment
	err := json.Unmarshal(raw, &a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier_pigeon")
}

func TestLocalizedEntry_Override(t *testing.T) {
	entry := LocalizedEntry{
		Base: "Aqua",
		Overrides: map[string]string{
			"nl": "Water",
			"fr": "",
		},
	}

	text, ok := entry.Override("nl")
	assert.True(t, ok)
	assert.Equal(t, "Water", text)

	// Empty overrides behave like missing ones.
	_, ok = entry.Override("fr")
	assert.False(t, ok)

	_, ok = entry.Override("de")
	assert.False(t, ok)
}

func TestCategoryAndMediaTypeValidity(t *testing.T) {
	assert.True(t, CategoryGallery.Valid())
	assert.False(t, Category("shiny").Valid())

	assert.True(t, MediaDocument.Valid())
	assert.False(t, MediaType("hologram").Valid())
}
