package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/config"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/identity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/internal/domain/service"
	"github.com/oksasatya/schoollib-identity/internal/metrics"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

const (
	attrStudentID   = "studentId"
	attrSchoolClass = "schoolClass"

	msgRegisteredVerify = "Registration successful. Please check your email to verify your account."
	msgRegistered       = "Registration successful. You can now sign in."
)

// RegistrationService runs self-registration as a saga over the identity
// provider and the local profile store. Once the provider user exists, a
// failure to assign the role or save the profile deletes that user again.
type RegistrationService struct {
	Deps
	policy   service.RegistrationPolicy
	settings config.RegistrationSettings
	domains  []entity.AllowedDomain
}

func NewRegistrationService(deps Deps, policy service.RegistrationPolicy, settings config.RegistrationSettings) (*RegistrationService, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		policy = service.NewRegistrationPolicy()
	}
	domains, err := entity.NewAllowedDomains(settings.AllowedDomains...)
	if err != nil {
		return nil, err
	}
	return &RegistrationService{
		Deps:     deps.withDefaults(),
		policy:   policy,
		settings: settings,
		domains:  domains,
	}, nil
}

// AllowedDomains returns the configured domains in configuration order.
func (s *RegistrationService) AllowedDomains() []entity.AllowedDomain {
	out := make([]entity.AllowedDomain, len(s.domains))
	copy(out, s.domains)
	return out
}

func (s *RegistrationService) Register(ctx context.Context, cmd RegisterUserCommand) (*RegistrationResult, error) {
	res, err := s.register(ctx, cmd)
	s.Metrics.IncRegistration(metrics.Outcome(err))
	return res, err
}

func (s *RegistrationService) register(ctx context.Context, cmd RegisterUserCommand) (*RegistrationResult, error) {
	if err := validateRegistration(cmd); err != nil {
		return nil, err
	}
	email, err := entity.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	name, err := entity.NewUserName(cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, err
	}

	log := s.Logger.WithField("email", email.String())
	log.Info("registration started")

	if !s.policy.IsRegistrationAllowed(&email, s.domains) {
		log.WithField("domain", email.Domain()).Warn("registration rejected: domain not allowed")
		return nil, ErrDomainNotAllowed
	}

	if s.Guard != nil {
		release, err := s.Guard.Acquire(ctx, email.String())
		if err != nil {
			return nil, err
		}
		defer release()
	}

	if err := s.ensureNotRegistered(ctx, email); err != nil {
		return nil, err
	}

	role := s.policy.DetermineInitialRole(email)
	extID, err := s.Provider.CreateUser(ctx, email.String(), cmd.Password, name.FirstName(), name.LastName(), registrationAttributes(cmd))
	if err != nil {
		log.WithError(err).Error("create identity provider user failed")
		return nil, err
	}
	log = log.WithField("external_user_id", extID)

	if err := s.Provider.AssignRole(ctx, extID, role.String()); err != nil {
		log.WithError(err).WithField("role", role).Error("assign initial role failed")
		s.compensate(ctx, log, extID)
		return nil, err
	}

	if s.settings.EmailVerificationRequired {
		if err := s.Provider.SendVerificationEmail(ctx, extID); err != nil {
			s.Metrics.IncVerificationEmailFailure()
			log.WithError(err).Warn("send verification email failed; continuing registration")
		}
	}

	externalUserID, err := entity.NewExternalUserID(extID)
	if err != nil {
		s.compensate(ctx, log, extID)
		return nil, err
	}
	profile, err := entity.NewUserProfile(externalUserID, email, name, role, s.Now())
	if err != nil {
		s.compensate(ctx, log, extID)
		return nil, err
	}
	saved, err := s.Profiles.Save(ctx, profile)
	if err != nil {
		log.WithError(err).Error("save user profile failed")
		s.compensate(ctx, log, extID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Wrap(err, apperror.CodeAlreadyRegistered, ErrAlreadyRegistered.Message)
		}
		return nil, err
	}

	s.publish(ctx, profile.PullEvents())
	s.index(ctx, saved)

	log.WithField("profile_id", saved.ID()).Info("registration completed")

	msg := msgRegistered
	if s.settings.EmailVerificationRequired {
		msg = msgRegisteredVerify
	}
	return &RegistrationResult{
		UserID:               extID,
		Email:                email.String(),
		Message:              msg,
		VerificationRequired: s.settings.EmailVerificationRequired,
	}, nil
}

// CheckEmailAvailability reports whether email may register right now.
func (s *RegistrationService) CheckEmailAvailability(ctx context.Context, raw string) (*EmailAvailability, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, required("email")
	}
	email, err := entity.NewEmail(raw)
	if err != nil {
		return nil, err
	}
	out := &EmailAvailability{Email: email.String()}
	out.Allowed = s.policy.IsRegistrationAllowed(&email, s.domains)
	if !out.Allowed {
		return out, nil
	}
	switch err := s.ensureNotRegistered(ctx, email); {
	case err == nil:
		out.Available = true
	case errors.Is(err, ErrAlreadyRegistered):
	default:
		return nil, err
	}
	return out, nil
}

// ensureNotRegistered asks the identity provider first, then the local store.
func (s *RegistrationService) ensureNotRegistered(ctx context.Context, email entity.Email) error {
	exists, err := s.Provider.IsEmailRegistered(ctx, email.String())
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRegistered
	}
	exists, err = s.Profiles.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRegistered
	}
	return nil
}

func (s *RegistrationService) compensate(ctx context.Context, log *logrus.Entry, extID string) {
	if err := s.Provider.DeleteUser(ctx, extID); err != nil {
		s.Metrics.IncCompensation(metrics.OutcomeFailure)
		log.WithError(err).Error("compensation failed: identity provider user left without local profile")
		return
	}
	s.Metrics.IncCompensation(metrics.OutcomeSuccess)
	log.Warn("compensation: identity provider user deleted")
}

func validateRegistration(cmd RegisterUserCommand) error {
	switch {
	case strings.TrimSpace(cmd.Email) == "":
		return required("email")
	case strings.TrimSpace(cmd.Password) == "":
		return required("password")
	case strings.TrimSpace(cmd.FirstName) == "":
		return required("first name")
	case strings.TrimSpace(cmd.LastName) == "":
		return required("last name")
	}
	return nil
}

func registrationAttributes(cmd RegisterUserCommand) identity.Attributes {
	attrs := identity.Attributes{}
	if cmd.StudentID != nil {
		attrs[attrStudentID] = []string{*cmd.StudentID}
	}
	if cmd.SchoolClass != nil {
		attrs[attrSchoolClass] = []string{*cmd.SchoolClass}
	}
	return attrs
}
