package db

import (
	"context"
	"log/slog"
	"time"

	"carwash-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis never fails: connections are opened lazily, and a Redis
// that is down at startup only degrades locking and caching.
func ConnectRedis(cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, func()) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		PoolSize:     20,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable at startup, continuing in degraded mode",
			"addr", cfg.Addr,
			"error", err.Error())
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup
}
