// Package container is the composition root: infrastructure handles go in,
// wired adapters and application services come out.
package container

import (
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/config"
	"github.com/oksasatya/schoollib-identity/internal/application"
	"github.com/oksasatya/schoollib-identity/internal/domain/identity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/internal/domain/service"
	esinfra "github.com/oksasatya/schoollib-identity/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/schoollib-identity/internal/infrastructure/keycloak"
	"github.com/oksasatya/schoollib-identity/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/schoollib-identity/internal/infrastructure/postgres"
	mqinfra "github.com/oksasatya/schoollib-identity/internal/infrastructure/rabbitmq"
	redisinfra "github.com/oksasatya/schoollib-identity/internal/infrastructure/redis"
	"github.com/oksasatya/schoollib-identity/internal/interface/middleware"
	"github.com/oksasatya/schoollib-identity/internal/metrics"
	"github.com/oksasatya/schoollib-identity/pkg/helpers"
)

// Infra carries the connections a binary opened. Every field but Config and
// Logger may be nil; the matching feature is then disabled or replaced by an
// in-process fallback.
type Infra struct {
	Config   *config.Config
	Logger   *logrus.Logger
	PG       *pgxpool.Pool
	Redis    *redis.Client
	Rabbit   *helpers.RabbitPublisher
	ES       *elasticsearch.Client
	Registry *prometheus.Registry

	// Provider overrides the Keycloak client, Verifier the OIDC verifier.
	Provider identity.Provider
	Verifier middleware.TokenVerifier
}

type Container struct {
	Infra

	Metrics  *metrics.Metrics
	Profiles repository.UserProfileRepository

	Registration  *application.RegistrationService
	Auth          *application.AuthenticationService
	PasswordReset *application.PasswordResetService
	UserProfiles  *application.UserProfileService
}

func New(in Infra) (*Container, error) {
	if in.Logger == nil {
		in.Logger = logrus.New()
	}
	c := &Container{Infra: in}
	cfg := in.Config

	if c.Provider == nil {
		c.Provider = keycloak.New(KeycloakConfig(cfg), in.Logger)
	}
	if c.Registry != nil {
		c.Metrics = metrics.New(c.Registry)
	}

	if in.PG != nil {
		c.Profiles = pginfra.NewUserProfileRepository(in.PG)
	} else {
		in.Logger.Warn("no postgres pool; using in-memory profile store")
		c.Profiles = memory.NewUserProfileRepository()
	}

	deps := application.Deps{
		Provider: c.Provider,
		Profiles: c.Profiles,
		Logger:   in.Logger,
		Metrics:  c.Metrics,
	}
	if in.Rabbit != nil {
		deps.Events = mqinfra.NewEventPublisher(in.Rabbit)
	}
	if in.Redis != nil {
		deps.Guard = redisinfra.NewRegistrationGuard(in.Redis, cfg.RegistrationLockTTL, in.Logger)
	}
	if in.ES != nil {
		deps.Indexer = esinfra.NewProfileIndex(in.ES, cfg.ESProfilesIndex)
	}

	var err error
	if c.Registration, err = application.NewRegistrationService(deps, service.NewRegistrationPolicy(), cfg.Registration); err != nil {
		return nil, err
	}
	if c.Auth, err = application.NewAuthenticationService(deps, c.Registration.AllowedDomains()); err != nil {
		return nil, err
	}
	if c.PasswordReset, err = application.NewPasswordResetService(deps, cfg.Registration); err != nil {
		return nil, err
	}
	if c.UserProfiles, err = application.NewUserProfileService(deps); err != nil {
		return nil, err
	}
	return c, nil
}

// KeycloakConfig maps application config onto the adapter's config.
func KeycloakConfig(cfg *config.Config) keycloak.Config {
	k := cfg.Keycloak
	return keycloak.Config{
		ServerURL:            k.ServerURL,
		Realm:                k.Realm,
		AdminRealm:           k.AdminRealm,
		AdminClientID:        k.AdminClientID,
		AdminClientSecret:    k.AdminClientSecret,
		AdminUsername:        k.AdminUsername,
		AdminPassword:        k.AdminPassword,
		TokenClientID:        k.TokenClientID,
		TokenClientSecret:    k.TokenClientSecret,
		Timeout:              k.Timeout,
		VerificationRequired: cfg.Registration.EmailVerificationRequired,
		VerificationLifespan: time.Duration(cfg.Registration.VerificationTokenExpiryHours) * time.Hour,
	}
}
