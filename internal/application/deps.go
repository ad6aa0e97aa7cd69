package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/identity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/internal/metrics"
)

// Deps are the collaborators shared by the application services. Provider and
// Profiles are required; the rest may be nil.
type Deps struct {
	Provider identity.Provider
	Profiles repository.UserProfileRepository
	Events   EventPublisher
	Guard    RegistrationGuard
	Indexer  ProfileIndexer
	Logger   *logrus.Logger
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

func (d Deps) validate() error {
	if d.Provider == nil {
		return errProviderRequired
	}
	if d.Profiles == nil {
		return errors.New("profile repository is required")
	}
	return nil
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logrus.New()
		d.Logger.SetOutput(io.Discard)
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// publish never fails the caller: the state change is already durable.
func (d Deps) publish(ctx context.Context, events []entity.DomainEvent) {
	if d.Events == nil || len(events) == 0 {
		return
	}
	if err := d.Events.Publish(ctx, events); err != nil {
		names := make([]string, 0, len(events))
		for _, e := range events {
			names = append(names, e.EventName())
		}
		d.Logger.WithError(err).WithField("events", names).Error("publish domain events failed")
	}
}

func (d Deps) index(ctx context.Context, p *entity.UserProfile) {
	if d.Indexer == nil {
		return
	}
	if err := d.Indexer.Index(ctx, p); err != nil {
		d.Logger.WithError(err).WithField("profile_id", p.ID()).Warn("index user profile failed")
	}
}

func (d Deps) unindex(ctx context.Context, id string) {
	if d.Indexer == nil {
		return
	}
	if err := d.Indexer.Remove(ctx, id); err != nil {
		d.Logger.WithError(err).WithField("profile_id", id).Warn("remove user profile from index failed")
	}
}
