package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("not found")

// KeyValueStore is the persistence collaborator: a flat string-to-string map
// surviving restarts. Set replaces any prior value; Remove of an absent key
// is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
