// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches spaces, dashes, and slashes (for replacement with underscores).
	wordSeparatorRe = regexp.MustCompile(`[\s\-/]+`)
	// Matches characters outside the tag key alphabet.
	nonKeyCharRe = regexp.MustCompile(`[^a-z0-9_]`)
	// Matches multiple consecutive underscores.
	multipleUnderscoreRe = regexp.MustCompile(`_+`)
)

// tagKeyRe is the canonical tag key shape. Keys are identity and never
// change after creation.
var tagKeyRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidTagKey reports whether a string already is a canonical tag key.
func ValidTagKey(key string) bool {
	return tagKeyRe.MatchString(key)
}

// NormalizeTagKey converts user input to a canonical snake_case tag key.
//
// Normalization rules:
//  1. Trim whitespace and lowercase
//  2. Replace spaces, dashes, and slashes with underscores
//  3. Remove anything outside [a-z0-9_]
//  4. Collapse multiple underscores
//  5. Trim leading/trailing underscores
//
// Examples:
//
//	"Hero Image"    → "hero_image"
//	"hero-image"    → "hero_image"
//	"HERO_IMAGE"    → "hero_image"
//	"Size chart !"  → "size_chart"
//	"  multi   word " → "multi_word"
func NormalizeTagKey(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "_")
	s = nonKeyCharRe.ReplaceAllString(s, "")
	s = multipleUnderscoreRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
