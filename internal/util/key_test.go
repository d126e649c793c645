package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hero Image", "hero_image"},
		{"hero-image", "hero_image"},
		{"HERO_IMAGE", "hero_image"},
		{"Size chart !", "size_chart"},
		{"  multi   word ", "multi_word"},
		{"__leading__", "leading"},
		{"packshot", "packshot"},
		{"360/view", "360_view"},
		{"🐉 dragons", "dragons"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTagKey(tt.input))
		})
	}
}

func TestValidTagKey(t *testing.T) {
	assert.True(t, ValidTagKey("hero_image"))
	assert.True(t, ValidTagKey("packshot2"))
	assert.False(t, ValidTagKey("Hero_Image"))
	assert.False(t, ValidTagKey("hero-image"))
	assert.False(t, ValidTagKey(""))
}
