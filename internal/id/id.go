// Package id generates prefixed unique identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// alphabet keeps IDs lowercase so they survive case-insensitive filesystems
// and can be embedded in URLs without escaping.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// length of the random part. 12 characters over a 36-symbol alphabet is
// plenty for a single store's attachment volume.
const length = 12

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "att-f3k9x2m1qp7z").
//
// Returns an error if the system has insufficient entropy for secure random
// generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails. Use only
// during initialization, where failure should crash the program.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
