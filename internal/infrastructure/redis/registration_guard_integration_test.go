//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/oksasatya/schoollib-identity/internal/application"
)

func newRedis(t *testing.T) *goredis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	addr, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := goredis.ParseURL(addr)
	require.NoError(t, err)

	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRegistrationGuard(t *testing.T) {
	ctx := context.Background()
	rdb := newRedis(t)
	guard := NewRegistrationGuard(rdb, time.Minute, nil)

	release, err := guard.Acquire(ctx, "Max@Schule.de")
	require.NoError(t, err)

	_, err = guard.Acquire(ctx, "max@schule.de")
	assert.ErrorIs(t, err, application.ErrRegistrationInProgress)

	ttl, err := rdb.PTTL(ctx, LockKey("max@schule.de")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	release()

	release2, err := guard.Acquire(ctx, "max@schule.de")
	require.NoError(t, err)

	// a stale release must not drop someone else's lock
	release()
	exists, err := rdb.Exists(ctx, LockKey("max@schule.de")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	release2()
}
