package repository

//go:generate mockgen -source=user_profile_repository.go -destination=../../application/mocks/repository.go -package=mocks

import (
	"context"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(apperror.CodeNotFound, "user profile not found")
	ErrDuplicate = apperror.New(apperror.CodeConflict, "user profile already exists")
)

// UserProfileRepository persists the UserProfile aggregate. Implementations
// must enforce email and external user id uniqueness at the storage level and
// return ErrDuplicate when either is violated.
type UserProfileRepository interface {
	// Save inserts or updates by profile ID.
	Save(ctx context.Context, p *entity.UserProfile) (*entity.UserProfile, error)
	FindByID(ctx context.Context, id string) (*entity.UserProfile, error)
	FindByExternalUserID(ctx context.Context, id entity.ExternalUserID) (*entity.UserProfile, error)
	FindByEmail(ctx context.Context, email entity.Email) (*entity.UserProfile, error)
	ExistsByEmail(ctx context.Context, email entity.Email) (bool, error)
	ExistsByExternalUserID(ctx context.Context, id entity.ExternalUserID) (bool, error)
	Delete(ctx context.Context, p *entity.UserProfile) error
	DeleteByID(ctx context.Context, id string) error
}
