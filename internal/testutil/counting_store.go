package testutil

import (
	"context"
	"sync"

	"github.com/subcycle/subcycle/internal/kv"
)

// StoreOp records a single operation against the kv store
type StoreOp struct {
	Kind string // "get", "put", "delete", "list"
	Key  string
}

// CountingStore wraps a kv.Store and records every operation in order, so
// tests can assert exactly which writes a service performed.
type CountingStore struct {
	mu    sync.Mutex
	inner kv.Store
	ops   []StoreOp
}

func NewCountingStore(inner kv.Store) *CountingStore {
	return &CountingStore{inner: inner}
}

func (s *CountingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.record("get", key)
	return s.inner.Get(ctx, key)
}

func (s *CountingStore) Put(ctx context.Context, key string, value []byte, opts *kv.PutOptions) error {
	s.record("put", key)
	return s.inner.Put(ctx, key, value, opts)
}

func (s *CountingStore) Delete(ctx context.Context, key string) error {
	s.record("delete", key)
	return s.inner.Delete(ctx, key)
}

func (s *CountingStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.record("list", prefix)
	return s.inner.List(ctx, prefix)
}

func (s *CountingStore) record(kind, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, StoreOp{Kind: kind, Key: key})
}

// Ops returns a copy of every recorded operation in order
func (s *CountingStore) Ops() []StoreOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoreOp, len(s.ops))
	copy(out, s.ops)
	return out
}

// Writes returns only the mutating operations, puts and deletes, in order
func (s *CountingStore) Writes() []StoreOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []StoreOp
	for _, op := range s.ops {
		if op.Kind == "put" || op.Kind == "delete" {
			out = append(out, op)
		}
	}
	return out
}

// ResetOps clears the recorded operations without touching stored data
func (s *CountingStore) ResetOps() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = nil
}
