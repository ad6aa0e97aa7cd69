package service

import "github.com/oksasatya/schoollib-identity/internal/domain/entity"

// RegistrationPolicy decides who may self-register and with which role.
// Implementations are pure.
type RegistrationPolicy interface {
	IsRegistrationAllowed(email *entity.Email, allowedDomains []entity.AllowedDomain) bool
	DetermineInitialRole(email entity.Email) entity.UserRole
}

type DefaultRegistrationPolicy struct{}

func NewRegistrationPolicy() DefaultRegistrationPolicy { return DefaultRegistrationPolicy{} }

func (DefaultRegistrationPolicy) IsRegistrationAllowed(email *entity.Email, allowedDomains []entity.AllowedDomain) bool {
	if email == nil || email.IsZero() || len(allowedDomains) == 0 {
		return false
	}
	for _, d := range allowedDomains {
		if d.Matches(*email) {
			return true
		}
	}
	return false
}

// DetermineInitialRole always yields STUDENT. Elevated roles are granted by an
// administrator afterwards.
func (DefaultRegistrationPolicy) DetermineInitialRole(entity.Email) entity.UserRole {
	return entity.RoleStudent
}
