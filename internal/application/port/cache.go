package port

import (
	"context"
	"errors"

	"coincorr/internal/domain"
)

// ErrCacheMiss reports that no entry exists for the requested source id.
var ErrCacheMiss = errors.New("cache entry not found")

// CacheStore persists fetched frames keyed by source id. Entries never
// expire; Put overwrites. Get returns ErrCacheMiss when the id is unknown.
type CacheStore interface {
	Get(ctx context.Context, id domain.SourceID) ([]byte, error)
	Put(ctx context.Context, id domain.SourceID, blob []byte) error
	Close() error
}
