package handlers

import (
	"context"
	"time"

	"github.com/oksasatya/schoollib-identity/internal/application"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

// The handlers depend on these narrow views of the application services.

type Registrar interface {
	Register(ctx context.Context, cmd application.RegisterUserCommand) (*application.RegistrationResult, error)
	CheckEmailAvailability(ctx context.Context, email string) (*application.EmailAvailability, error)
}

type Authenticator interface {
	Login(ctx context.Context, cmd application.LoginCommand) (entity.AuthenticationResult, error)
	RefreshToken(ctx context.Context, cmd application.RefreshTokenCommand) (entity.AuthenticationResult, error)
	AllowedDomains() []string
}

type PasswordResetter interface {
	RequestPasswordReset(ctx context.Context, cmd application.RequestPasswordResetCommand) error
	ResetPassword(ctx context.Context, cmd application.ResetPasswordCommand) error
}

type ProfileManager interface {
	GetByExternalUserID(ctx context.Context, externalUserID string) (*entity.UserProfile, error)
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	ChangeRole(ctx context.Context, id, role string) (*entity.UserProfile, error)
	Deactivate(ctx context.Context, id string) (*entity.UserProfile, error)
	Reactivate(ctx context.Context, id string) (*entity.UserProfile, error)
	UpdateName(ctx context.Context, id string, cmd application.UpdateNameCommand) (*entity.UserProfile, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]*entity.UserProfile, error)
}

var (
	_ Registrar        = (*application.RegistrationService)(nil)
	_ Authenticator    = (*application.AuthenticationService)(nil)
	_ PasswordResetter = (*application.PasswordResetService)(nil)
	_ ProfileManager   = (*application.UserProfileService)(nil)
)

type profileResponse struct {
	ID             string    `json:"id"`
	ExternalUserID string    `json:"external_user_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Active         bool      `json:"active"`
	CanBorrowBooks bool      `json:"can_borrow_books"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toProfileResponse(p *entity.UserProfile) profileResponse {
	return profileResponse{
		ID:             p.ID(),
		ExternalUserID: p.ExternalUserID().String(),
		Email:          p.Email().String(),
		FirstName:      p.UserName().FirstName(),
		LastName:       p.UserName().LastName(),
		FullName:       p.FullName(),
		Role:           p.Role().String(),
		Active:         p.IsActive(),
		CanBorrowBooks: p.CanBorrowBooks(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}
