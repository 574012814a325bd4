// Package storage is the key-value persistence port for the journal and settings blobs.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("key not found")
	ErrCorrupt          = errors.New("stored value is corrupt")
	ErrInvalidConfig    = errors.New("invalid storage configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
)

// Store keeps whole JSON blobs under named keys. Writes replace the previous value.
type Store interface {
	// Get returns ErrNotFound when the key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadJSON decodes the blob under key into dst.
// It reports found=false for a missing key. A blob that fails to decode is removed
// from the store and reported as ErrCorrupt so the next load starts clean.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		if delErr := s.Delete(ctx, key); delErr != nil {
			return false, fmt.Errorf("%w: %s (%v), delete failed: %v", ErrCorrupt, key, err, delErr)
		}
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
