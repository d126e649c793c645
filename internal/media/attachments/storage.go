// Package attachments stores uploaded media files and their metadata.
package attachments

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage manages attachment files on disk.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates a Storage rooted at basePath. Files are written as
// {basePath}/{id}_{variant}{ext}.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &Storage{basePath: basePath}, nil
}

// Save stores one variant of an attachment.
func (s *Storage) Save(id, variant, ext string, data []byte) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("file data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(id, variant, ext), data, 0644); err != nil {
		return fmt.Errorf("failed to write attachment file: %w", err)
	}
	return nil
}

// Open returns a handle on one variant for streaming to a client.
func (s *Storage) Open(id, variant, ext string) (*os.File, error) {
	if id == "" {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.Path(id, variant, ext))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("attachment file not found for %s/%s: %w", id, variant, err)
		}
		return nil, fmt.Errorf("failed to open attachment file: %w", err)
	}
	return f, nil
}

// Exists checks whether a variant exists for an attachment.
func (s *Storage) Exists(id, variant, ext string) bool {
	if id == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(id, variant, ext))
	return err == nil
}

// DeleteAll removes every variant of an attachment. Missing files are not
// an error.
func (s *Storage) DeleteAll(id string) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(s.basePath, id+"_*"))
	if err != nil {
		return fmt.Errorf("failed to list attachment files: %w", err)
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete attachment file: %w", err)
		}
	}
	return nil
}

// Path returns the filesystem path for one variant of an attachment.
func (s *Storage) Path(id, variant, ext string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s_%s%s", id, variant, ext))
}
