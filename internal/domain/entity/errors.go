package entity

import "github.com/oksasatya/schoollib-identity/pkg/apperror"

var (
	ErrInvalidEmail          = apperror.New(apperror.CodeValidation, "invalid email")
	ErrInvalidUserName       = apperror.New(apperror.CodeValidation, "invalid user name")
	ErrInvalidRole           = apperror.New(apperror.CodeValidation, "invalid role")
	ErrInvalidExternalUserID = apperror.New(apperror.CodeValidation, "invalid external user id")
	ErrInvalidDomain         = apperror.New(apperror.CodeValidation, "invalid domain")
	ErrInvalidToken          = apperror.New(apperror.CodeValidation, "invalid authentication result")
	ErrSameRole              = apperror.New(apperror.CodeValidation, "new role is the same as current role")

	ErrProfileInactive    = apperror.New(apperror.CodeIllegalState, "user profile is deactivated")
	ErrAlreadyDeactivated = apperror.New(apperror.CodeIllegalState, "user profile is already deactivated")
	ErrAlreadyActive      = apperror.New(apperror.CodeIllegalState, "user profile is already active")
)

func invalid(sentinel *apperror.Error, detail string) error {
	return apperror.Wrap(sentinel, sentinel.Code, sentinel.Message+": "+detail)
}
