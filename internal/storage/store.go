package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or was
// deleted.
var ErrNotFound = errors.New("storage: key not found")

// LocalStore is the client-side key/value state that survives restarts.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes every pair or none of them.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

var (
	_ LocalStore = (*SQLiteStore)(nil)
	_ LocalStore = (*RedisStore)(nil)
	_ LocalStore = (*PostgresStore)(nil)
)
