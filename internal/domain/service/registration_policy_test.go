package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

func TestIsRegistrationAllowed(t *testing.T) {
	policy := NewRegistrationPolicy()
	domains, err := entity.NewAllowedDomains("schule.de", "gymnasium-nord.de")
	require.NoError(t, err)

	tests := []struct {
		name    string
		email   string
		domains []entity.AllowedDomain
		want    bool
	}{
		{"first domain", "max@schule.de", domains, true},
		{"second domain mixed case", "Anna@Gymnasium-Nord.DE", domains, true},
		{"unlisted domain", "max@other.com", domains, false},
		{"subdomain is not the domain", "max@mail.schule.de", domains, false},
		{"empty list", "max@schule.de", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := entity.MustEmail(tt.email)
			assert.Equal(t, tt.want, policy.IsRegistrationAllowed(&email, tt.domains))
		})
	}

	assert.False(t, policy.IsRegistrationAllowed(nil, domains))
}

func TestDetermineInitialRole(t *testing.T) {
	policy := NewRegistrationPolicy()
	for _, raw := range []string{"max@schule.de", "admin@schule.de", "librarian@other.org"} {
		assert.Equal(t, entity.RoleStudent, policy.DetermineInitialRole(entity.MustEmail(raw)))
	}
}
