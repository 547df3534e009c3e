// Package cache is a cache-aside layer with tag-based invalidation. Stores
// hold opaque bytes; Cache adds loader de-duplication, background refresh
// and graceful degradation when the store is unreachable.
package cache

import (
	"context"
	"time"

	"carwash-booking/internal/pkg/errs"
)

var ErrMiss = errs.New("cache miss")

type Store interface {
	// Get returns ErrMiss when the key is absent or expired. remaining is the
	// TTL left on a hit, or zero when the store cannot tell.
	Get(ctx context.Context, key string) (val []byte, remaining time.Duration, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags []string) error
	// InvalidateTags deletes every key carrying any of tags, then the tag
	// index itself. Unknown tags are a no-op.
	InvalidateTags(ctx context.Context, tags ...string) error
}

type Policy struct {
	TTL time.Duration
	// RefreshThreshold enables stale-while-revalidate: a hit with less TTL
	// left than this is served and refreshed in the background.
	RefreshThreshold time.Duration
	Tags             []string
}

type Loader func(ctx context.Context) ([]byte, error)
