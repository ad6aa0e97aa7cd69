package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/schoollib-identity/config"
	"github.com/oksasatya/schoollib-identity/internal/application/mocks"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/identity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

type PasswordResetServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	provider *mocks.MockProvider
	profiles *mocks.MockUserProfileRepository
	events   *mocks.MockEventPublisher
	service  *PasswordResetService
	ctx      context.Context
}

func TestPasswordResetServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordResetServiceSuite))
}

func (s *PasswordResetServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.provider = mocks.NewMockProvider(s.ctrl)
	s.profiles = mocks.NewMockUserProfileRepository(s.ctrl)
	s.events = mocks.NewMockEventPublisher(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.service, err = NewPasswordResetService(Deps{
		Provider: s.provider,
		Profiles: s.profiles,
		Events:   s.events,
		Now:      func() time.Time { return fixedNow },
	}, config.RegistrationSettings{})
	s.Require().NoError(err)
}

func (s *PasswordResetServiceSuite) profile() *entity.UserProfile {
	ext, _ := entity.NewExternalUserID("kc-7")
	name, _ := entity.NewUserName("Max", "Mustermann")
	return entity.RehydrateUserProfile("p-7", ext, entity.MustEmail("max@schule.de"), name, entity.RoleStudent, true, fixedNow, fixedNow)
}

func (s *PasswordResetServiceSuite) TestRequestPasswordReset() {
	s.Run("publishes request with one hour expiry", func() {
		s.provider.EXPECT().SendPasswordResetEmail(gomock.Any(), "max@schule.de").Return(nil).Times(1)
		s.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, events []entity.DomainEvent) error {
				s.Require().Len(events, 1)
				req := events[0].(entity.PasswordResetRequested)
				s.Equal("max@schule.de", req.Email)
				s.Equal(fixedNow, req.RequestedAt)
				s.Equal(fixedNow.Add(time.Hour), req.ExpiresAt)
				return nil
			})

		s.NoError(s.service.RequestPasswordReset(s.ctx, RequestPasswordResetCommand{Email: "Max@Schule.de"}))
	})

	s.Run("unknown email still succeeds", func() {
		s.provider.EXPECT().SendPasswordResetEmail(gomock.Any(), "ghost@schule.de").Return(identity.ErrUserNotFound).Times(1)
		s.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		s.NoError(s.service.RequestPasswordReset(s.ctx, RequestPasswordResetCommand{Email: "ghost@schule.de"}))
	})

	s.Run("provider failure is a reset error", func() {
		s.provider.EXPECT().SendPasswordResetEmail(gomock.Any(), gomock.Any()).Return(errors.New("Email service unavailable"))

		err := s.service.RequestPasswordReset(s.ctx, RequestPasswordResetCommand{Email: "max@schule.de"})
		s.Equal(apperror.CodePasswordReset, apperror.CodeOf(err))
		s.ErrorContains(err, "Email service unavailable")
	})

	s.Run("blank email", func() {
		err := s.service.RequestPasswordReset(s.ctx, RequestPasswordResetCommand{Email: "  "})
		s.Equal(apperror.CodeValidation, apperror.CodeOf(err))
	})
}

func (s *PasswordResetServiceSuite) TestResetPassword() {
	s.Run("resets and publishes completion", func() {
		s.profiles.EXPECT().FindByEmail(gomock.Any(), entity.MustEmail("max@schule.de")).Return(s.profile(), nil)
		s.provider.EXPECT().ResetUserPassword(gomock.Any(), "kc-7", "NewSecret1!").Return(nil)
		s.events.EXPECT().Publish(gomock.Any(), []entity.DomainEvent{entity.PasswordResetCompleted{
			UserID:      "kc-7",
			Email:       "max@schule.de",
			CompletedAt: fixedNow,
		}}).Return(nil)

		s.NoError(s.service.ResetPassword(s.ctx, ResetPasswordCommand{Email: "max@schule.de", NewPassword: "NewSecret1!"}))
	})

	s.Run("unknown profile is user not found without provider call", func() {
		s.profiles.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, repository.ErrNotFound)

		err := s.service.ResetPassword(s.ctx, ResetPasswordCommand{Email: "ghost@schule.de", NewPassword: "x"})
		s.ErrorIs(err, ErrUserNotFound)
		s.Equal(apperror.CodeUserNotFound, apperror.CodeOf(err))
	})

	s.Run("provider failure publishes nothing", func() {
		s.profiles.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(s.profile(), nil)
		s.provider.EXPECT().ResetUserPassword(gomock.Any(), "kc-7", gomock.Any()).Return(identity.ErrUserNotFound)

		err := s.service.ResetPassword(s.ctx, ResetPasswordCommand{Email: "max@schule.de", NewPassword: "x"})
		s.Equal(apperror.CodeUserNotFound, apperror.CodeOf(err))
	})

	s.Run("blank new password", func() {
		err := s.service.ResetPassword(s.ctx, ResetPasswordCommand{Email: "max@schule.de"})
		s.Equal(apperror.CodeValidation, apperror.CodeOf(err))
	})
}
