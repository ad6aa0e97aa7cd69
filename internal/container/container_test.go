package container

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/schoollib-identity/config"
	"github.com/oksasatya/schoollib-identity/internal/infrastructure/keycloak"
	"github.com/oksasatya/schoollib-identity/internal/infrastructure/memory"
)

func TestNewFallsBackToMemoryStore(t *testing.T) {
	cfg := config.Load()
	cfg.Registration.AllowedDomains = []string{"schule.de"}

	c, err := New(Infra{Config: cfg, Registry: prometheus.NewRegistry()})
	require.NoError(t, err)

	assert.IsType(t, &memory.UserProfileRepository{}, c.Profiles)
	assert.IsType(t, &keycloak.Client{}, c.Provider)
	assert.NotNil(t, c.Logger)
	require.NotNil(t, c.Metrics)
	assert.NotNil(t, c.Registration)
	assert.NotNil(t, c.Auth)
	assert.NotNil(t, c.PasswordReset)
	assert.NotNil(t, c.UserProfiles)
	require.Len(t, c.Registration.AllowedDomains(), 1)
	assert.Equal(t, "schule.de", c.Registration.AllowedDomains()[0].String())
}

func TestNewWithoutRegistryHasNoMetrics(t *testing.T) {
	c, err := New(Infra{Config: config.Load()})
	require.NoError(t, err)
	assert.Nil(t, c.Metrics)
}

func TestNewRejectsMalformedDomain(t *testing.T) {
	cfg := config.Load()
	cfg.Registration.AllowedDomains = []string{"schule"}

	_, err := New(Infra{Config: cfg})
	assert.Error(t, err)
}

func TestKeycloakConfig(t *testing.T) {
	cfg := config.Load()
	cfg.Keycloak.ServerURL = "https://sso.schule.de"
	cfg.Keycloak.Realm = "library"
	cfg.Keycloak.Timeout = 3 * time.Second
	cfg.Registration.EmailVerificationRequired = false
	cfg.Registration.VerificationTokenExpiryHours = 48

	kc := KeycloakConfig(cfg)
	assert.Equal(t, "https://sso.schule.de", kc.ServerURL)
	assert.Equal(t, "library", kc.Realm)
	assert.Equal(t, 3*time.Second, kc.Timeout)
	assert.False(t, kc.VerificationRequired)
	assert.Equal(t, 48*time.Hour, kc.VerificationLifespan)
}
