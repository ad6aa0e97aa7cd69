// Package identity declares the port to the external identity provider. No
// provider-specific type crosses this boundary; adapters translate protocol
// failures into apperror codes.
package identity

//go:generate mockgen -source=provider.go -destination=../../application/mocks/identity.go -package=mocks

import (
	"context"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

// Attributes are provider-side custom user attributes (e.g. studentId).
type Attributes map[string][]string

// Provider is the anti-corruption port to the identity provider, which owns
// credentials and token issuance.
//
// Error contract:
//   - AuthenticateWithCredentials: CodeInvalidCredentials on rejected
//     credentials, CodeProvider otherwise. Never reveals which field was wrong.
//   - RefreshToken: CodeInvalidRefreshToken on a 400/401 answer, CodeProvider
//     otherwise.
//   - SendPasswordResetEmail: nil when no account matches the email.
//   - ResetUserPassword, SetUserEnabled: CodeUserNotFound when the user is gone.
//   - everything else: CodeProvider with the cause wrapped.
type Provider interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string, attrs Attributes) (string, error)
	IsEmailRegistered(ctx context.Context, email string) (bool, error)
	// AssignRole is not guaranteed idempotent; call once right after CreateUser.
	AssignRole(ctx context.Context, externalUserID, roleName string) error
	// ReplaceRole makes roleName the user's only library realm role. Safe to
	// repeat.
	ReplaceRole(ctx context.Context, externalUserID, roleName string) error
	// SetUserEnabled enables or disables sign-in; disabling also ends the
	// user's sessions.
	SetUserEnabled(ctx context.Context, externalUserID string, enabled bool) error
	SendVerificationEmail(ctx context.Context, externalUserID string) error
	AuthenticateWithCredentials(ctx context.Context, email, password string) (entity.AuthenticationResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (entity.AuthenticationResult, error)
	SendPasswordResetEmail(ctx context.Context, email string) error
	ResetUserPassword(ctx context.Context, externalUserID, newPassword string) error
	DeleteUser(ctx context.Context, externalUserID string) error
}

// Errors adapters return. Callers compare with errors.Is.
var (
	ErrInvalidCredentials  = apperror.New(apperror.CodeInvalidCredentials, "invalid email or password")
	ErrInvalidRefreshToken = apperror.New(apperror.CodeInvalidRefreshToken, "invalid or expired refresh token")
	ErrUserNotFound        = apperror.New(apperror.CodeUserNotFound, "user not found")
)
