// Package store is the persistence port every collection goes through.
//
// A Store is a durable string-keyed byte store. Collections never talk to a
// Store directly; they use Get and Put, which wrap values in a versioned
// Document, run migrations on load, and turn every load failure into
// "absent" so the caller falls back to its seed data.
package store

import (
	"context"
)

// Store loads and saves raw documents by key.
//
// Load returns an error matching errors.ErrNotFound when the key has never
// been saved. Save replaces the whole value and is durable on return.
// Implementations must be safe for concurrent use.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Lister is implemented by backends that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context) ([]string, error)
}
