package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

// Tag errors.
var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag already exists")
)

// CreateTag stores a new tag. The tag's Position is assigned here so listings
// preserve insertion order across restarts.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(tagPrefix + t.Key)
		if _, err := txn.Get(key); err == nil {
			return ErrTagExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		maxPos, err := maxTagPosition(txn)
		if err != nil {
			return err
		}
		t.Position = maxPos + 1

		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// SaveTag overwrites an existing tag. Position and Key are the caller's
// responsibility; used for updates and back-fill migration.
func (s *Store) SaveTag(ctx context.Context, t *domain.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set(tagPrefix+t.Key, t)
}

// GetTag retrieves a tag by key.
func (s *Store) GetTag(ctx context.Context, key string) (*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var t domain.Tag
	err := s.get(tagPrefix+key, &t)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TagExists reports whether a tag with the given key is stored.
func (s *Store) TagExists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.exists(tagPrefix + key)
}

// ListTags returns all tags in insertion order.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(tagPrefix)
	var tags []*domain.Tag

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var t domain.Tag
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &t)
			})
			if err != nil {
				continue
			}
			tags = append(tags, &t)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Insertion order, with key as tiebreaker for legacy records that share
	// a position.
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Position != tags[j].Position {
			return tags[i].Position < tags[j].Position
		}
		return tags[i].Key < tags[j].Key
	})

	return tags, nil
}

// CountTags returns the number of stored tags.
func (s *Store) CountTags(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prefix := []byte(tagPrefix)
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// DeleteTag removes a tag. Existing assignments referencing it are left in
// place and resolve to not-found from then on.
func (s *Store) DeleteTag(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	exists, err := s.exists(tagPrefix + key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTagNotFound
	}

	return s.delete(tagPrefix + key)
}

// maxTagPosition scans stored tags for the highest position within a transaction.
func maxTagPosition(txn *badger.Txn) (int, error) {
	prefix := []byte(tagPrefix)
	maxPos := 0

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var t domain.Tag
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &t)
		})
		if err != nil {
			continue
		}
		if t.Position > maxPos {
			maxPos = t.Position
		}
	}

	return maxPos, nil
}
