//go:build e2e

package redistest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container
	redisAddr          string
	nextDB             int
	nextDBMu           sync.Mutex
)

// ------------------------------------------------------------
// Redis container, started once per test process
// ------------------------------------------------------------
func Addr(t *testing.T) string {
	t.Helper()
	redisContainerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no", "--databases", "64"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start redis container")

		host, err := redisTestContainer.Host(ctx)
		require.NoError(t, err)
		port, err := redisTestContainer.MappedPort(ctx, nat.Port("6379/tcp"))
		require.NoError(t, err)
		redisAddr = fmt.Sprintf("%s:%s", host, port.Port())
	})
	require.NotEmpty(t, redisAddr, "redis container is not available")
	return redisAddr
}

// NewClient hands every caller its own logical database so tests do not
// see each other's keys.
func NewClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := Addr(t)

	nextDBMu.Lock()
	db := nextDB % 64
	nextDB++
	nextDBMu.Unlock()

	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.FlushDB(ctx).Err())

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	})
	return client
}
