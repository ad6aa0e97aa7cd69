package application

import (
	"context"
	"strings"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/metrics"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

// AuthenticationService delegates credential checks and token issuance to the
// identity provider. It never touches local state.
type AuthenticationService struct {
	Deps
	domains []entity.AllowedDomain
}

func NewAuthenticationService(deps Deps, domains []entity.AllowedDomain) (*AuthenticationService, error) {
	if deps.Provider == nil {
		return nil, errProviderRequired
	}
	return &AuthenticationService{Deps: deps.withDefaults(), domains: domains}, nil
}

// Login errors from the provider are returned unchanged.
func (s *AuthenticationService) Login(ctx context.Context, cmd LoginCommand) (entity.AuthenticationResult, error) {
	if strings.TrimSpace(cmd.Email) == "" {
		return entity.AuthenticationResult{}, required("email")
	}
	if cmd.Password == "" {
		return entity.AuthenticationResult{}, required("password")
	}
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	res, err := s.Provider.AuthenticateWithCredentials(ctx, email, cmd.Password)
	s.Metrics.IncLogin(metrics.Outcome(err))
	if err != nil {
		entry := s.Logger.WithField("email", email)
		if apperror.HasCode(err, apperror.CodeInvalidCredentials) {
			entry.Warn("login rejected")
		} else {
			entry.WithError(err).Error("login failed")
		}
		return entity.AuthenticationResult{}, err
	}
	s.Logger.WithField("email", email).Info("login succeeded")
	return res, nil
}

func (s *AuthenticationService) RefreshToken(ctx context.Context, cmd RefreshTokenCommand) (entity.AuthenticationResult, error) {
	if strings.TrimSpace(cmd.RefreshToken) == "" {
		return entity.AuthenticationResult{}, required("refresh token")
	}
	res, err := s.Provider.RefreshToken(ctx, cmd.RefreshToken)
	if err != nil {
		s.Logger.WithError(err).Debug("token refresh failed")
		return entity.AuthenticationResult{}, err
	}
	s.Logger.Debug("token refreshed")
	return res, nil
}

// AllowedDomains is a pure read of configuration.
func (s *AuthenticationService) AllowedDomains() []string {
	out := make([]string, 0, len(s.domains))
	for _, d := range s.domains {
		out = append(out, d.String())
	}
	return out
}
