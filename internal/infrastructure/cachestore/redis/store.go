package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"
)

// Store keeps entries in a Redis hash under <prefix>:entries. No TTL is set:
// cache entries never expire on their own.
type Store struct {
	rdb *redis.Client
	key string
}

func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, key: prefix + ":entries"}
}

func (s *Store) Get(ctx context.Context, id domain.SourceID) ([]byte, error) {
	b, err := s.rdb.HGet(ctx, s.key, id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return b, nil
}

func (s *Store) Put(ctx context.Context, id domain.SourceID, blob []byte) error {
	if err := s.rdb.HSet(ctx, s.key, id.String(), blob).Err(); err != nil {
		return fmt.Errorf("redis put %s: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error { return s.rdb.Close() }

var _ port.CacheStore = (*Store)(nil)
