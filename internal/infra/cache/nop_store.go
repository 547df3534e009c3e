package cache

import (
	"context"
	"time"
)

// NopStore always misses. Selected by CACHE_DRIVER=none.
type NopStore struct{}

func NewNopStore() NopStore { return NopStore{} }

func (NopStore) Get(context.Context, string) ([]byte, time.Duration, error) {
	return nil, 0, ErrMiss
}

func (NopStore) Set(context.Context, string, []byte, time.Duration, []string) error { return nil }

func (NopStore) InvalidateTags(context.Context, ...string) error { return nil }
