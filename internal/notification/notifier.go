// Package notification turns published identity events into security notices
// for the affected user.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
	"github.com/oksasatya/schoollib-identity/pkg/mailer"
	mailtpl "github.com/oksasatya/schoollib-identity/pkg/mailer/templates"
)

// ProfileLookup resolves a recipient's display name. Satisfied by every
// UserProfileRepository.
type ProfileLookup interface {
	FindByEmail(ctx context.Context, email entity.Email) (*entity.UserProfile, error)
}

type Notifier struct {
	sender   mailer.Sender
	profiles ProfileLookup
	branding mailtpl.Branding
	logger   *logrus.Logger
}

func NewNotifier(sender mailer.Sender, profiles ProfileLookup, branding mailtpl.Branding, logger *logrus.Logger) *Notifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &Notifier{sender: sender, profiles: profiles, branding: branding, logger: logger}
}

type notice struct {
	email    string
	headline string
	lines    []string
	action   bool
	at       time.Time
}

// noticeFor returns false for events nobody needs to be told about.
func noticeFor(e entity.DomainEvent) (notice, bool) {
	switch ev := e.(type) {
	case entity.PasswordResetCompleted:
		return notice{
			email:    ev.Email,
			headline: "Your password was changed",
			lines:    []string{"The password of your library account " + ev.Email + " was reset."},
			action:   true,
			at:       ev.CompletedAt,
		}, true
	case entity.UserProfileDeactivatedEvent:
		return notice{
			email:    ev.Email,
			headline: "Your library account was deactivated",
			lines:    []string{"You can no longer sign in or borrow books until the library staff reactivates the account."},
			at:       ev.OccurredOn,
		}, true
	case entity.UserProfileReactivatedEvent:
		return notice{
			email:    ev.Email,
			headline: "Your library account was reactivated",
			lines:    []string{"You can sign in again."},
			action:   true,
			at:       ev.OccurredOn,
		}, true
	case entity.UserRoleChangedEvent:
		return notice{
			email:    ev.Email,
			headline: "Your library role changed",
			lines:    []string{fmt.Sprintf("Your role changed from %s to %s.", ev.OldRole, ev.NewRole)},
			at:       ev.OccurredOn,
		}, true
	}
	return notice{}, false
}

// Handle sends the notice for e, if any. Returned errors are worth retrying.
func (n *Notifier) Handle(ctx context.Context, e entity.DomainEvent) error {
	nt, ok := noticeFor(e)
	if !ok {
		n.logger.WithField("event", e.EventName()).Debug("no notice for event")
		return nil
	}

	opts := []mailtpl.Option{mailtpl.WithTime(nt.at), mailtpl.WithLines(nt.lines...)}
	if nt.action {
		opts = append(opts, mailtpl.WithAction("Sign in", n.branding.LoginURL))
	}
	data := mailtpl.NewNoticeData(n.branding, n.displayName(ctx, nt.email), nt.email, nt.headline, opts...)

	subject, text, html, err := mailtpl.Render(mailtpl.SecurityNotice, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", e.EventName(), err)
	}
	if err := n.sender.Send(ctx, nt.email, subject, text, html); err != nil {
		return fmt.Errorf("send %s: %w", e.EventName(), err)
	}
	n.logger.WithFields(logrus.Fields{"event": e.EventName(), "to": nt.email}).Info("notice sent")
	return nil
}

// displayName falls back to a greeting without a name when the profile is
// gone, e.g. after a deletion.
func (n *Notifier) displayName(ctx context.Context, raw string) string {
	if n.profiles == nil {
		return ""
	}
	email, err := entity.NewEmail(raw)
	if err != nil {
		return ""
	}
	p, err := n.profiles.FindByEmail(ctx, email)
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeNotFound) {
			n.logger.WithError(err).WithField("to", raw).Warn("profile lookup for notice failed")
		}
		return ""
	}
	return p.UserName().FirstName()
}
