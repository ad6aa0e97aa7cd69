package notification

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/infrastructure/memory"
	mailtpl "github.com/oksasatya/schoollib-identity/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	msgs []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, sent{to, subject, text, html})
	return nil
}

var at = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newNotifier(t *testing.T, sender *fakeSender) *Notifier {
	t.Helper()
	repo := memory.NewUserProfileRepository()
	name, err := entity.NewUserName("Erika", "Mustermann")
	require.NoError(t, err)
	ext, err := entity.NewExternalUserID("kc-1")
	require.NoError(t, err)
	p, err := entity.NewUserProfile(ext, entity.MustEmail("erika@schule.de"), name, entity.RoleStudent, at)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), p)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewNotifier(sender, repo, mailtpl.Branding{CompanyName: "Gymnasium Library", LoginURL: "https://library.example/login"}, logger)
}

func TestHandlePasswordResetCompleted(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(t, sender)

	err := n.Handle(context.Background(), entity.PasswordResetCompleted{UserID: "kc-1", Email: "erika@schule.de", CompletedAt: at})
	require.NoError(t, err)

	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, "erika@schule.de", msg.to)
	assert.Equal(t, "Gymnasium Library: Your password was changed", msg.subject)
	assert.Contains(t, msg.text, "Hello Erika,")
	assert.Contains(t, msg.text, "https://library.example/login")
}

func TestHandleRoleChangedWithoutProfile(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(t, sender)

	err := n.Handle(context.Background(), entity.UserRoleChangedEvent{
		ProfileID: "p-2", Email: "max@schule.de", OldRole: entity.RoleStudent, NewRole: entity.RoleLibrarian, OccurredOn: at,
	})
	require.NoError(t, err)

	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.msgs[0].text, "Hello there,")
	assert.Contains(t, sender.msgs[0].text, "from STUDENT to LIBRARIAN")
	assert.NotContains(t, sender.msgs[0].text, "Sign in")
}

func TestHandleSkipsQuietEvents(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(t, sender)

	for _, e := range []entity.DomainEvent{
		entity.UserProfileCreatedEvent{Email: "erika@schule.de", OccurredOn: at},
		entity.NewPasswordResetRequested("erika@schule.de", at, time.Hour),
	} {
		require.NoError(t, n.Handle(context.Background(), e))
	}
	assert.Empty(t, sender.msgs)
}

func TestHandleSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("mailgun down")}
	n := newNotifier(t, sender)

	err := n.Handle(context.Background(), entity.UserProfileDeactivatedEvent{ProfileID: "p-1", Email: "erika@schule.de", OccurredOn: at})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.deactivated")
}
