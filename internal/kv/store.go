package kv

import (
	"context"
)

// PutOptions carries optional write behavior. ExpireAfterSeconds is only used
// for retry markers, every other entity is written without expiry.
type PutOptions struct {
	ExpireAfterSeconds int64
}

// Store is the durable keyed storage consumed by every repository. It offers
// single-key atomicity only: no compare-and-swap and no multi-key
// transactions. Concurrent read-modify-write sequences on the same key can
// interleave and lose updates, callers own that tradeoff.
type Store interface {
	// Get returns the value for an exact key. The boolean reports whether the
	// key was present, an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put upserts a value under a key
	Put(ctx context.Context, key string, value []byte, opts *PutOptions) error

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// List returns all keys with the given prefix in lexical order
	List(ctx context.Context, prefix string) ([]string, error)
}
