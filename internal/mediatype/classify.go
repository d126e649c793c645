// Package mediatype infers a coarse media type (image, video, audio, document)
// from a URL and optional MIME hint, and checks it against a tag's expectation.
// Classification is pure and deterministic; it never fetches the URL.
package mediatype

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

// Extension sets per coarse type. Checked in the order video, audio, image,
// document: ogg is a valid container for both video and audio, and the
// video-first order keeps it classified as video.
var (
	videoExtensions = map[string]bool{
		"mp4": true, "webm": true, "ogg": true, "avi": true, "mov": true,
		"wmv": true, "flv": true, "m4v": true, "3gp": true, "mkv": true,
	}
	audioExtensions = map[string]bool{
		"mp3": true, "wav": true, "ogg": true, "aac": true, "flac": true,
		"m4a": true, "wma": true,
	}
	imageExtensions = map[string]bool{
		"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
		"svg": true, "bmp": true, "tiff": true,
	}
	documentExtensions = map[string]bool{
		"pdf": true, "doc": true, "docx": true, "txt": true, "rtf": true,
		"xls": true, "xlsx": true, "ppt": true, "pptx": true,
	}
)

// videoHostDomains are substrings of known video hosting domains. A URL whose
// host matches one classifies as video even without a recognizable extension.
var videoHostDomains = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
	"wistia.com",
	"twitch.tv",
}

// Classify infers the coarse media type for rawURL. Priority order: MIME hint,
// file extension (query string ignored), video hosting domain, then image as
// the default.
func Classify(rawURL, mimeHint string) domain.MediaType {
	if t, ok := classifyByMime(mimeHint); ok {
		return t
	}

	if ext := extractExtension(rawURL); ext != "" {
		switch {
		case videoExtensions[ext]:
			return domain.MediaVideo
		case audioExtensions[ext]:
			return domain.MediaAudio
		case imageExtensions[ext]:
			return domain.MediaImage
		case documentExtensions[ext]:
			return domain.MediaDocument
		}
	}

	if isVideoHost(rawURL) {
		return domain.MediaVideo
	}

	return domain.MediaImage
}

// Validate classifies rawURL and compares the result against expected.
// A mismatch is reported, not an error: content still renders when mislabeled.
func Validate(rawURL, mimeHint string, expected domain.MediaType) domain.Validation {
	actual := Classify(rawURL, mimeHint)
	if actual == expected {
		return domain.Validation{OK: true}
	}

	return domain.Validation{
		OK:      false,
		Message: fmt.Sprintf("expected %s but the assigned media looks like a %s", expected, actual),
	}
}

// classifyByMime maps a MIME hint to a coarse type by its top-level prefix.
func classifyByMime(mimeHint string) (domain.MediaType, bool) {
	mimeHint = strings.ToLower(strings.TrimSpace(mimeHint))
	if mimeHint == "" {
		return "", false
	}

	// Parameters like "; charset=utf-8" don't affect classification.
	if i := strings.IndexByte(mimeHint, ';'); i >= 0 {
		mimeHint = strings.TrimSpace(mimeHint[:i])
	}

	switch {
	case strings.HasPrefix(mimeHint, "image/"):
		return domain.MediaImage, true
	case strings.HasPrefix(mimeHint, "video/"):
		return domain.MediaVideo, true
	case strings.HasPrefix(mimeHint, "audio/"):
		return domain.MediaAudio, true
	case mimeHint == "application/pdf", strings.HasPrefix(mimeHint, "text/"):
		return domain.MediaDocument, true
	}

	return "", false
}

// extractExtension returns the lowercase file extension of the URL path,
// without the dot. Query strings and fragments are ignored.
func extractExtension(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fall back to treating the whole string as a path.
		parsed = &url.URL{Path: rawURL}
	}

	ext := path.Ext(parsed.Path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// isVideoHost reports whether the URL's host matches a known video hosting domain.
func isVideoHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := strings.ToLower(parsed.Host)
	for _, d := range videoHostDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}
