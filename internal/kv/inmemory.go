package kv

import (
	"context"
	"sort"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired items are removed from the
// in-memory store
const DefaultCleanupInterval = 1 * time.Minute

// InMemoryStore implements Store using github.com/patrickmn/go-cache. It is
// used for tests and local development, per-key TTL matches the retry-marker
// expiry contract of the durable store.
type InMemoryStore struct {
	cache *goCache.Cache
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		cache: goCache.New(goCache.NoExpiration, DefaultCleanupInterval),
	}
}

func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := s.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	return val.([]byte), true, nil
}

func (s *InMemoryStore) Put(_ context.Context, key string, value []byte, opts *PutOptions) error {
	expiry := goCache.NoExpiration
	if opts != nil && opts.ExpireAfterSeconds > 0 {
		expiry = time.Duration(opts.ExpireAfterSeconds) * time.Second
	}

	// go-cache stores the slice header only, copy so later caller mutations
	// don't leak into the store
	buf := make([]byte, len(value))
	copy(buf, value)

	s.cache.Set(key, buf, expiry)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	items := s.cache.Items()

	keys := make([]string, 0, len(items))
	for k := range items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Flush removes all items from the store
func (s *InMemoryStore) Flush() {
	s.cache.Flush()
}
