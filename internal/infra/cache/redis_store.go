package cache

import (
	"context"
	"errors"
	"time"

	"carwash-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisStore files each key under a Redis set per tag.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func tagKey(tag string) string {
	return "tag:" + tag
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, time.Duration, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, errs.Wrap(err, "redis get "+key)
	}

	val, err := getCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, 0, ErrMiss
	}
	if err != nil {
		return nil, 0, errs.Wrap(err, "redis get "+key)
	}

	remaining := ttlCmd.Val()
	if remaining < 0 {
		remaining = 0
	}
	return val, remaining, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags []string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, val, ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, tagKey(tag), key)
		// The index lives as long as its newest member.
		pipe.Expire(ctx, tagKey(tag), ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errs.Wrap(err, "redis set "+key)
	}
	return nil
}

func (s *RedisStore) del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errs.Wrap(err, "redis del")
	}
	return nil
}

func (s *RedisStore) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		idx := tagKey(tag)
		members, err := s.client.SMembers(ctx, idx).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return errs.Wrapf(err, "redis smembers %s", idx)
		}
		if err := s.del(ctx, append(members, idx)...); err != nil {
			return err
		}
	}
	return nil
}
