//go:build unit

package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"carwash-booking/internal/infra/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func TestCache_FetchMissThenHit(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	c := cache.New(store, "carwash:", quietLogger)

	var calls atomic.Int32
	load := func(context.Context) ([]slot, error) {
		calls.Add(1)
		return []slot{{Time: "10:00", Available: true}}, nil
	}
	policy := cache.Policy{TTL: time.Minute, Tags: []string{"availability"}}

	first, err := cache.GetOrLoad(ctx, c, "availability:s1:2026-10-20", policy, load)
	require.NoError(t, err)
	second, err := cache.GetOrLoad(ctx, c, "availability:s1:2026-10-20", policy, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())

	_, _, err = store.Get(ctx, "carwash:availability:s1:2026-10-20")
	assert.NoError(t, err, "keys are stored under the prefix")
}

func TestCache_InvalidateTagsForcesReload(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.NewMemoryStore(), "carwash:", quietLogger)

	available := true
	load := func(context.Context) ([]slot, error) {
		return []slot{{Time: "10:00", Available: available}}, nil
	}
	policy := cache.Policy{TTL: time.Minute, Tags: []string{"service:s1", "date:2026-10-20"}}

	got, err := cache.GetOrLoad(ctx, c, "k", policy, load)
	require.NoError(t, err)
	assert.True(t, got[0].Available)

	available = false
	c.InvalidateTags(ctx, "date:2026-10-20")

	got, err = cache.GetOrLoad(ctx, c, "k", policy, load)
	require.NoError(t, err)
	assert.False(t, got[0].Available)
}

func TestCache_ConcurrentMissesShareOneLoad(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.NewMemoryStore(), "", quietLogger)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte(`"v"`), nil
	}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err := c.Fetch(ctx, "hot", cache.Policy{TTL: time.Minute}, load)
			assert.NoError(t, err)
			assert.Equal(t, []byte(`"v"`), val)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := cache.New(cache.NewMemoryStore(), "", quietLogger)

	started := make(chan struct{})
	load := func(ctx context.Context) ([]byte, error) {
		close(started)
		select {
		case <-time.After(200 * time.Millisecond):
			return []byte(`"v"`), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	policy := cache.Policy{TTL: time.Minute}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctxA, "k", policy, load)
		errA <- err
	}()
	<-started

	type result struct {
		val []byte
		err error
	}
	resB := make(chan result, 1)
	go func() {
		val, err := c.Fetch(context.Background(), "k", policy, load)
		resB <- result{val, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancelA()

	assert.ErrorIs(t, <-errA, context.Canceled)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, []byte(`"v"`), b.val)
}

func TestCache_LoaderErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	c := cache.New(store, "", quietLogger)
	boom := errors.New("db down")

	_, err := c.Fetch(ctx, "k", cache.Policy{TTL: time.Minute}, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.Len())
}

func TestCache_StoreFailureDegradesToLoader(t *testing.T) {
	ctx := context.Background()
	c := cache.New(failingStore{}, "", quietLogger)

	var calls atomic.Int32
	load := func(context.Context) ([]slot, error) {
		calls.Add(1)
		return []slot{{Time: "10:00", Available: true}}, nil
	}

	for range 3 {
		got, err := cache.GetOrLoad(ctx, c, "k", cache.Policy{TTL: time.Minute}, load)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, int32(3), calls.Load())

	c.InvalidateTags(ctx, "anything")
}

func TestCache_StaleWhileRevalidate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	store := cache.NewMemoryStore().WithNow(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	})
	c := cache.New(store, "", quietLogger)
	policy := cache.Policy{TTL: time.Minute, RefreshThreshold: 20 * time.Second}

	var version atomic.Int32
	load := func(context.Context) ([]byte, error) {
		return []byte{byte('0' + version.Add(1))}, nil
	}

	val, err := c.Fetch(ctx, "k", policy, load)
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	mu.Lock()
	now = now.Add(50 * time.Second)
	mu.Unlock()

	val, err = c.Fetch(ctx, "k", policy, load)
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val, "stale value is served while refreshing")

	require.Eventually(t, func() bool {
		v, _, err := store.Get(ctx, "k")
		return err == nil && string(v) == "2"
	}, time.Second, 10*time.Millisecond)
}

func TestCache_InvalidationDuringLoadSkipsWrite(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	c := cache.New(store, "", quietLogger)

	val, err := c.Fetch(ctx, "k", cache.Policy{TTL: time.Minute}, func(ctx context.Context) ([]byte, error) {
		c.InvalidateTags(ctx, "availability")
		return []byte("computed-before-write"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("computed-before-write"), val)
	assert.Zero(t, store.Len(), "a value loaded across an invalidation is not stored")
}

func TestGetOrLoad_CorruptEntryFallsBackToLoader(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", []byte("{not json"), time.Minute, nil))
	c := cache.New(store, "", quietLogger)

	got, err := cache.GetOrLoad(ctx, c, "k", cache.Policy{TTL: time.Minute}, func(context.Context) ([]slot, error) {
		return []slot{{Time: "11:00"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00", got[0].Time)
}

type failingStore struct{}

var errStoreDown = errors.New("connection refused")

func (failingStore) Get(context.Context, string) ([]byte, time.Duration, error) {
	return nil, 0, errStoreDown
}

func (failingStore) Set(context.Context, string, []byte, time.Duration, []string) error {
	return errStoreDown
}

func (failingStore) InvalidateTags(context.Context, ...string) error { return errStoreDown }
