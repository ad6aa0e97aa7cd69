package application

import (
	"errors"

	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

var (
	ErrDomainNotAllowed       = apperror.New(apperror.CodeDomainNotAllowed, "email domain is not allowed to register")
	ErrAlreadyRegistered      = apperror.New(apperror.CodeAlreadyRegistered, "email address is already registered")
	ErrRegistrationInProgress = apperror.New(apperror.CodeConflict, "registration already in progress for this email")
	ErrProfileNotFound        = apperror.New(apperror.CodeNotFound, "user profile not found")
	ErrUserNotFound           = apperror.New(apperror.CodeUserNotFound, "user not found")
	ErrPasswordReset          = apperror.New(apperror.CodePasswordReset, "password reset failed")
)

var errProviderRequired = errors.New("identity provider is required")

func required(field string) error {
	return apperror.Newf(apperror.CodeValidation, "%s is required", field)
}
