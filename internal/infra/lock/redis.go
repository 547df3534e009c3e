package lock

import (
	"context"
	"errors"
	"time"

	"carwash-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	errAcquire = errs.New("acquire slot lock")
	errRelease = errs.New("release slot lock")
)

// Deletes the key only while it still carries the caller's token, so an
// attempt whose lock already expired cannot free someone else's.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

type RedisLocker struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisLocker(client redis.UniversalClient, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.prefix+key, token, ttl).Result()
	if err != nil {
		return "", false, errs.Mark(errs.Wrap(err, "setnx "+key), errAcquire)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *RedisLocker) Release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{l.prefix + key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errs.Mark(errs.Wrap(err, "unlock "+key), errRelease)
	}
	return nil
}
