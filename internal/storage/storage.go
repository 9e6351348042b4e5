// Package storage provides the durable key-value backend used for
// persisting learning progress. Values are JSON-serializable blobs
// addressed by an opaque string key.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key is absent. Corrupt payloads are
// reported the same way: a record that cannot be decoded is treated as
// if it were never written.
var ErrNotFound = errors.New("storage: key not found")

// Backend is the durable store contract.
type Backend interface {
	// Save persists value (JSON-serialized) under key, overwriting any previous value.
	Save(ctx context.Context, key string, value any) error
	// Load reads the value stored under key into dest.
	// Returns ErrNotFound if the key is absent or the payload is corrupt.
	Load(ctx context.Context, key string, dest any) error
	// Keys returns all stored keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}
