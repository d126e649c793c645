package attachments

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Render variant widths. Height follows the source aspect ratio.
const (
	thumbWidth  = 160
	mediumWidth = 640
)

// jpegQuality for re-encoded variants. Originals are kept untouched.
const jpegQuality = 85

// blurHashSize is the working size for BlurHash computation. BlurHash is a
// low-resolution placeholder, so a small thumbnail produces nearly identical
// results at a fraction of the cost.
const blurHashSize = 64

// Variant is one generated render of an uploaded image.
type Variant struct {
	Name   string
	Data   []byte
	Width  int
	Height int
}

// ProcessImage decodes an uploaded image and produces the thumb and medium
// variants plus a BlurHash placeholder. Variants wider than the source are
// skipped rather than upscaled.
func ProcessImage(data []byte) (variants []Variant, blurHash string, width, height int, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width = bounds.Dx()
	height = bounds.Dy()

	for _, v := range []struct {
		name  string
		width int
	}{
		{"thumb", thumbWidth},
		{"medium", mediumWidth},
	} {
		if width <= v.width {
			continue
		}
		scaled, w, h := resize(img, v.width)
		encoded, err := encodeJPEG(scaled)
		if err != nil {
			return nil, "", 0, 0, fmt.Errorf("encode %s variant: %w", v.name, err)
		}
		variants = append(variants, Variant{Name: v.name, Data: encoded, Width: w, Height: h})
	}

	blurHash, err = computeBlurHash(img)
	if err != nil {
		return nil, "", 0, 0, err
	}

	return variants, blurHash, width, height, nil
}

// resize scales img to targetWidth preserving aspect ratio.
func resize(img image.Image, targetWidth int) (image.Image, int, int) {
	bounds := img.Bounds()
	targetHeight := (bounds.Dy() * targetWidth) / bounds.Dx()
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, targetWidth, targetHeight
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// computeBlurHash generates a BlurHash string from a decoded image.
// 4x3 components are a good balance of size (~20-30 chars) and detail.
func computeBlurHash(img image.Image) (string, error) {
	bounds := img.Bounds()
	if bounds.Dx() > blurHashSize || bounds.Dy() > blurHashSize {
		small := image.NewRGBA(image.Rect(0, 0, blurHashSize, blurHashSize))
		draw.ApproxBiLinear.Scale(small, small.Bounds(), img, bounds, draw.Over, nil)
		img = small
	}

	hash, err := blurhash.Encode(4, 3, img)
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}
