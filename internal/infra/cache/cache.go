package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache wraps a Store with cache-aside semantics. A store failure never
// fails a read: Fetch logs and falls through to the loader.
type Cache struct {
	store  Store
	prefix string
	logger *slog.Logger

	group      singleflight.Group
	refreshing sync.Map
	// epoch is bumped on every invalidation. A load that started before an
	// invalidation must not write its (possibly stale) result back.
	epoch atomic.Uint64
}

func New(store Store, prefix string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, prefix: prefix, logger: logger}
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

func (c *Cache) tags(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = c.prefix + t
	}
	return out
}

// Fetch returns the cached value for key or loads, stores and returns it.
// Concurrent misses on the same key share one loader call.
func (c *Cache) Fetch(ctx context.Context, key string, policy Policy, load Loader) ([]byte, error) {
	full := c.key(key)

	val, remaining, err := c.store.Get(ctx, full)
	switch {
	case err == nil:
		if policy.RefreshThreshold > 0 && remaining > 0 && remaining < policy.RefreshThreshold {
			c.refreshInBackground(ctx, full, policy, load)
		}
		return val, nil
	case errors.Is(err, ErrMiss):
	default:
		c.logger.WarnContext(ctx, "cache read failed, using loader",
			"key", full,
			"error", err.Error())
		return load(ctx)
	}

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := c.group.DoChan(full, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		return c.loadAndStore(loadCtx, full, policy, load)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Cache) loadAndStore(ctx context.Context, full string, policy Policy, load Loader) ([]byte, error) {
	startEpoch := c.epoch.Load()
	val, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if c.epoch.Load() != startEpoch {
		return val, nil
	}
	ttl := policy.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := c.store.Set(ctx, full, val, ttl, c.tags(policy.Tags)); err != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			"key", full,
			"error", err.Error())
	}
	return val, nil
}

func (c *Cache) refreshInBackground(ctx context.Context, full string, policy Policy, load Loader) {
	if _, busy := c.refreshing.LoadOrStore(full, struct{}{}); busy {
		return
	}
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
	go func() {
		defer cancel()
		defer c.refreshing.Delete(full)
		if _, err := c.loadAndStore(bg, full, policy, load); err != nil {
			c.logger.WarnContext(bg, "background cache refresh failed",
				"key", full,
				"error", err.Error())
		}
	}()
}

// InvalidateTags drops every entry filed under tags. Errors are logged
// only; the entries then expire by TTL.
func (c *Cache) InvalidateTags(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	c.epoch.Add(1)
	if err := c.store.InvalidateTags(ctx, c.tags(tags)...); err != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed",
			"tags", tags,
			"error", err.Error())
	}
}

// Fetcher is the part of Cache that GetOrLoad needs.
type Fetcher interface {
	Fetch(ctx context.Context, key string, policy Policy, load Loader) ([]byte, error)
}

// GetOrLoad is Fetch for JSON-encodable values. An entry that no longer
// decodes is treated as a miss.
func GetOrLoad[T any](ctx context.Context, f Fetcher, key string, policy Policy, load func(context.Context) (T, error)) (T, error) {
	loader := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	var out T
	raw, err := f.Fetch(ctx, key, policy, loader)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return load(ctx)
	}
	return out, nil
}

const (
	// DefaultTTL is used when a Policy leaves TTL unset.
	DefaultTTL = 5 * time.Minute
	// LoadTimeout bounds a shared or background load, which no longer
	// follows the deadline of the request that started it.
	LoadTimeout = 10 * time.Second
)
