package attachments

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoptagapp/shoptag-server/internal/store"
)

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	return NewManager(st, storage, "http://localhost:8080/", logger)
}

func TestProcessImage(t *testing.T) {
	data := testJPEG(t, 800, 600)

	variants, blurHash, width, height, err := ProcessImage(data)
	require.NoError(t, err)

	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)
	assert.NotEmpty(t, blurHash)

	require.Len(t, variants, 2)
	assert.Equal(t, "thumb", variants[0].Name)
	assert.Equal(t, 160, variants[0].Width)
	assert.Equal(t, 120, variants[0].Height)
	assert.Equal(t, "medium", variants[1].Name)
	assert.Equal(t, 640, variants[1].Width)
	assert.NotEmpty(t, variants[0].Data)
}

func TestProcessImageSkipsUpscaling(t *testing.T) {
	data := testJPEG(t, 100, 80)

	variants, blurHash, width, height, err := ProcessImage(data)
	require.NoError(t, err)

	assert.Equal(t, 100, width)
	assert.Equal(t, 80, height)
	assert.NotEmpty(t, blurHash)
	assert.Empty(t, variants)
}

func TestUploadImage(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	att, err := m.Upload(ctx, "shoe.jpg", "Blue shoe", "A blue running shoe", testJPEG(t, 800, 600))
	require.NoError(t, err)

	assert.Regexp(t, `^att-[0-9a-z]{12}$`, att.ID)
	assert.Equal(t, "image/jpeg", att.MimeType)
	assert.NotEmpty(t, att.BlurHash)

	require.Contains(t, att.Sizes, "full")
	require.Contains(t, att.Sizes, "thumb")
	require.Contains(t, att.Sizes, "medium")
	assert.Equal(t, 800, att.Sizes["full"].Width)
	assert.Equal(t, "http://localhost:8080/media/"+att.ID+"/thumb", att.Sizes["thumb"].URL)

	got, err := m.Resolve(ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue shoe", got.Title)

	f, mime, err := m.Open(ctx, att.ID, "medium")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "image/jpeg", mime)
}

func TestUploadNonImage(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	att, err := m.Upload(ctx, "manual.pdf", "", "", []byte("%PDF-1.4 fake manual body"))
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", att.MimeType)
	assert.Empty(t, att.BlurHash)
	require.Len(t, att.Sizes, 1)
	assert.Contains(t, att.Sizes, "full")

	_, _, err = m.Open(ctx, att.ID, "thumb")
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)
}

func TestDelete(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	att, err := m.Upload(ctx, "shoe.jpg", "", "", testJPEG(t, 400, 400))
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, att.ID))

	_, err = m.Resolve(ctx, att.ID)
	assert.ErrorIs(t, err, store.ErrAttachmentNotFound)
	assert.False(t, m.storage.Exists(att.ID, "full", ".jpg"))
}

func TestEmptyUpload(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Upload(context.Background(), "empty.bin", "", "", nil)
	assert.Error(t, err)
}
