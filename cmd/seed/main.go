// Command seed bootstraps the first ADMIN account in Keycloak and the profile
// store. Registration only ever creates borrower accounts, so someone has to
// promote the first librarian.
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/config"
	"github.com/oksasatya/schoollib-identity/internal/container"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/identity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/internal/infrastructure/keycloak"
	pginfra "github.com/oksasatya/schoollib-identity/internal/infrastructure/postgres"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
	"github.com/oksasatya/schoollib-identity/pkg/helpers"
)

type adminSeed struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

var errOrphanAccount = errors.New("account exists in keycloak without a profile; remove it there first")

// seedAdmin is a no-op when the profile already exists. A profile that
// cannot be saved rolls back the Keycloak user.
func seedAdmin(ctx context.Context, idp identity.Provider, profiles repository.UserProfileRepository, in adminSeed, now time.Time, logger *logrus.Logger) (*entity.UserProfile, bool, error) {
	email, err := entity.NewEmail(in.Email)
	if err != nil {
		return nil, false, err
	}
	name, err := entity.NewUserName(in.FirstName, in.LastName)
	if err != nil {
		return nil, false, err
	}

	existing, err := profiles.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return existing, false, nil
	case !apperror.HasCode(err, apperror.CodeNotFound):
		return nil, false, err
	}

	registered, err := idp.IsEmailRegistered(ctx, email.String())
	if err != nil {
		return nil, false, err
	}
	if registered {
		return nil, false, errOrphanAccount
	}

	rawID, err := idp.CreateUser(ctx, email.String(), in.Password, name.FirstName(), name.LastName(), nil)
	if err != nil {
		return nil, false, err
	}
	rollback := func(cause error) error {
		if derr := idp.DeleteUser(ctx, rawID); derr != nil {
			logger.WithError(derr).WithField("external_user_id", rawID).Error("rollback of seeded keycloak user failed")
		}
		return cause
	}

	if err := idp.AssignRole(ctx, rawID, entity.RoleAdmin.String()); err != nil {
		return nil, false, rollback(err)
	}
	extID, err := entity.NewExternalUserID(rawID)
	if err != nil {
		return nil, false, rollback(err)
	}
	p, err := entity.NewUserProfile(extID, email, name, entity.RoleAdmin, now)
	if err != nil {
		return nil, false, rollback(err)
	}
	p.PullEvents()
	saved, err := profiles.Save(ctx, p)
	if err != nil {
		return nil, false, rollback(err)
	}
	return saved, true, nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		logger.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	p, created, err := seedAdmin(ctx,
		keycloak.New(container.KeycloakConfig(cfg), logger),
		pginfra.NewUserProfileRepository(pool),
		adminSeed{
			Email:     cfg.SeedAdminEmail,
			Password:  cfg.SeedAdminPassword,
			FirstName: cfg.SeedAdminFirstName,
			LastName:  cfg.SeedAdminLastName,
		},
		time.Now().UTC(),
		logger,
	)
	if err != nil {
		logger.Fatalf("seed admin: %v", err)
	}
	state := "already present"
	if created {
		state = "created"
	}
	fmt.Printf("admin %s: id=%s email=%s role=%s\n", state, p.ID(), p.Email(), p.Role())
}
