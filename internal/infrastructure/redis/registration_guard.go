package redis

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/internal/application"
)

const lockPrefix = "registration:lock:"

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another registration is left alone.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RegistrationGuard takes a short-lived SET NX lock per email. It only narrows
// the check-then-act window of registration; the store's unique indexes stay
// the real guarantee. When Redis is unreachable the guard lets the
// registration through.
type RegistrationGuard struct {
	rdb    goredis.UniversalClient
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRegistrationGuard(rdb goredis.UniversalClient, ttl time.Duration, logger *logrus.Logger) *RegistrationGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RegistrationGuard{rdb: rdb, ttl: ttl, logger: logger}
}

var _ application.RegistrationGuard = (*RegistrationGuard)(nil)

func LockKey(email string) string {
	return lockPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (g *RegistrationGuard) Acquire(ctx context.Context, email string) (func(), error) {
	key := LockKey(email)
	token := uuid.NewString()

	ok, err := g.rdb.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		if g.logger != nil {
			g.logger.WithError(err).WithField("key", key).Warn("registration lock unavailable; continuing without it")
		}
		return func() {}, nil
	}
	if !ok {
		return nil, application.ErrRegistrationInProgress
	}
	return func() {
		// the request context may already be cancelled
		if err := releaseScript.Run(context.Background(), g.rdb, []string{key}, token).Err(); err != nil && g.logger != nil {
			g.logger.WithError(err).WithField("key", key).Warn("release registration lock failed")
		}
	}, nil
}
