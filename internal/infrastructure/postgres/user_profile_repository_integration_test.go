//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
)

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("identity"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.WithInitScripts(filepath.Join("..", "..", "..", "db", "migrations", "000001_create_user_profiles.up.sql")),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newProfile(t *testing.T, extID, email string) *entity.UserProfile {
	t.Helper()
	ext, err := entity.NewExternalUserID(extID)
	require.NoError(t, err)
	name, err := entity.NewUserName("Max", "Mustermann")
	require.NoError(t, err)
	p, err := entity.NewUserProfile(ext, entity.MustEmail(email), name, entity.RoleStudent, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return p
}

func TestUserProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserProfileRepository(newPool(t))

	p := newProfile(t, "kc-1", "max@schule.de")
	saved, err := repo.Save(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.ID(), saved.ID())

	byEmail, err := repo.FindByEmail(ctx, entity.MustEmail("max@schule.de"))
	require.NoError(t, err)
	assert.Equal(t, p.ID(), byEmail.ID())

	byExt, err := repo.FindByExternalUserID(ctx, p.ExternalUserID())
	require.NoError(t, err)
	assert.Equal(t, p.ID(), byExt.ID())

	exists, err := repo.ExistsByEmail(ctx, entity.MustEmail("max@schule.de"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, saved.ChangeRole(entity.RoleTeacher, time.Now().UTC()))
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTeacher, updated.Role())

	_, err = repo.Save(ctx, newProfile(t, "kc-2", "max@schule.de"))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.Save(ctx, newProfile(t, "kc-1", "other@schule.de"))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, repo.Delete(ctx, updated))
	_, err = repo.FindByID(ctx, p.ID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, p.ID()), repository.ErrNotFound)

	_, err = repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, "not-a-uuid"), repository.ErrNotFound)
}
