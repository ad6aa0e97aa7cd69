package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockKey(t *testing.T) {
	assert.Equal(t, "registration:lock:max@schule.de", LockKey("  MAX@Schule.de "))
}

func TestRegistrationGuard_FailsOpen(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer func() { _ = rdb.Close() }()
	guard := NewRegistrationGuard(rdb, time.Minute, nil)

	release, err := guard.Acquire(context.Background(), "max@schule.de")
	require.NoError(t, err)
	release()
}
