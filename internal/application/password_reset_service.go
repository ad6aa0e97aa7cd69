package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oksasatya/schoollib-identity/config"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/internal/metrics"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

const defaultResetWindow = time.Hour

// PasswordResetService runs the two reset phases. The request phase never
// discloses whether an account exists; the completion phase may, because the
// caller has already proven control of the mailbox through the provider's
// token flow.
type PasswordResetService struct {
	Deps
	window time.Duration
}

func NewPasswordResetService(deps Deps, settings config.RegistrationSettings) (*PasswordResetService, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	window := settings.PasswordResetWindow
	if window <= 0 {
		window = defaultResetWindow
	}
	return &PasswordResetService{Deps: deps.withDefaults(), window: window}, nil
}

func (s *PasswordResetService) RequestPasswordReset(ctx context.Context, cmd RequestPasswordResetCommand) error {
	err := s.requestReset(ctx, cmd)
	s.Metrics.IncPasswordReset(metrics.PhaseRequest, metrics.Outcome(err))
	return err
}

func (s *PasswordResetService) requestReset(ctx context.Context, cmd RequestPasswordResetCommand) error {
	if strings.TrimSpace(cmd.Email) == "" {
		return required("email")
	}
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	log := s.Logger.WithField("email", email)

	if err := s.Provider.SendPasswordResetEmail(ctx, email); err != nil {
		if !apperror.HasCode(err, apperror.CodeUserNotFound) {
			log.WithError(err).Error("password reset email failed")
			if apperror.HasCode(err, apperror.CodePasswordReset) {
				return err
			}
			return apperror.Wrap(err, apperror.CodePasswordReset, ErrPasswordReset.Message)
		}
		log.Debug("password reset requested for unknown email")
	}

	requested := entity.NewPasswordResetRequested(email, s.Now(), s.window)
	s.publish(ctx, []entity.DomainEvent{requested})
	log.WithField("expires_at", requested.ExpiresAt).Info("password reset requested")
	return nil
}

func (s *PasswordResetService) ResetPassword(ctx context.Context, cmd ResetPasswordCommand) error {
	err := s.resetPassword(ctx, cmd)
	s.Metrics.IncPasswordReset(metrics.PhaseComplete, metrics.Outcome(err))
	return err
}

func (s *PasswordResetService) resetPassword(ctx context.Context, cmd ResetPasswordCommand) error {
	if strings.TrimSpace(cmd.Email) == "" {
		return required("email")
	}
	if strings.TrimSpace(cmd.NewPassword) == "" {
		return required("new password")
	}
	email, err := entity.NewEmail(cmd.Email)
	if err != nil {
		return err
	}
	log := s.Logger.WithField("email", email.String())

	profile, err := s.Profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("password reset for unknown profile")
			return ErrUserNotFound
		}
		return err
	}

	extID := profile.ExternalUserID().String()
	if err := s.Provider.ResetUserPassword(ctx, extID, cmd.NewPassword); err != nil {
		log.WithError(err).WithField("external_user_id", extID).Error("password reset failed")
		return err
	}

	s.publish(ctx, []entity.DomainEvent{entity.PasswordResetCompleted{
		UserID:      extID,
		Email:       email.String(),
		CompletedAt: s.Now(),
	}})
	log.Info("password reset completed")
	return nil
}
