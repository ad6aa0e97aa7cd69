package application

//go:generate mockgen -source=ports.go -destination=mocks/ports.go -package=mocks

import (
	"context"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

// EventPublisher hands domain events to the outside world. Callers publish
// only after the state change that produced the events has been saved.
type EventPublisher interface {
	Publish(ctx context.Context, events []entity.DomainEvent) error
}

// RegistrationGuard serializes registrations for one email across instances.
// Acquire returns ErrRegistrationInProgress when another registration holds
// the email.
type RegistrationGuard interface {
	Acquire(ctx context.Context, email string) (release func(), err error)
}

// ProfileIndexer maintains a search projection of user profiles.
type ProfileIndexer interface {
	Index(ctx context.Context, p *entity.UserProfile) error
	Remove(ctx context.Context, id string) error
	// Search returns matching profile ids, best match first.
	Search(ctx context.Context, query string, size int) ([]string, error)
}
