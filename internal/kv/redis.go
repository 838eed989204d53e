package kv

import (
	"context"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/subcycle/subcycle/internal/config"
	ierr "github.com/subcycle/subcycle/internal/errors"
)

// RedisStore implements Store on a redis client. SET handles both the plain
// upsert and the expiring retry-marker writes, SCAN serves prefix listing.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient connects to the redis server configured in cfg and verifies
// the connection with a ping before returning.
func NewRedisClient(cfg *config.Configuration) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid redis connection URL").
			Mark(ierr.ErrSystem)
	}

	client := redis.NewClient(opt)

	timeout := cfg.Redis.ConnectTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, ierr.WithError(err).
			WithHint("Redis server is not reachable").
			Mark(ierr.ErrSystem)
	}

	return client, nil
}

// NewRedisStore wraps an existing redis client as a Store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, ierr.WithError(err).
			WithHint("Failed to read from store").
			WithReportableDetails(map[string]any{"key": key}).
			Mark(ierr.ErrDatabase)
	}
	return val, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte, opts *PutOptions) error {
	var expiry time.Duration
	if opts != nil && opts.ExpireAfterSeconds > 0 {
		expiry = time.Duration(opts.ExpireAfterSeconds) * time.Second
	}

	if err := s.client.Set(ctx, key, value, expiry).Err(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to write to store").
			WithReportableDetails(map[string]any{"key": key}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete from store").
			WithReportableDetails(map[string]any{"key": key}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list keys from store").
			WithReportableDetails(map[string]any{"prefix": prefix}).
			Mark(ierr.ErrDatabase)
	}

	// SCAN yields keys in no particular order
	sort.Strings(keys)
	return keys, nil
}
