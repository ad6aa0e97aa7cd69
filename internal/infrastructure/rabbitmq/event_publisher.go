package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/schoollib-identity/internal/application"
	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

// Envelope is the wire format of a domain event. Type doubles as the routing
// key on the events exchange.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func NewEnvelope(e entity.DomainEvent) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         uuid.NewString(),
		Type:       e.EventName(),
		OccurredAt: e.OccurredAt().UTC(),
		Payload:    payload,
	}, nil
}

// Decode unmarshals the payload into the event type named by Type.
func (e Envelope) Decode() (entity.DomainEvent, error) {
	var (
		out entity.DomainEvent
		err error
	)
	switch e.Type {
	case entity.EventUserProfileCreated:
		out, err = decode[entity.UserProfileCreatedEvent](e.Payload)
	case entity.EventUserProfileDeactivated:
		out, err = decode[entity.UserProfileDeactivatedEvent](e.Payload)
	case entity.EventUserProfileReactivated:
		out, err = decode[entity.UserProfileReactivatedEvent](e.Payload)
	case entity.EventUserRoleChanged:
		out, err = decode[entity.UserRoleChangedEvent](e.Payload)
	case entity.EventPasswordResetRequested:
		out, err = decode[entity.PasswordResetRequested](e.Payload)
	case entity.EventPasswordResetCompleted:
		out, err = decode[entity.PasswordResetCompleted](e.Payload)
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	return out, err
}

func decode[T entity.DomainEvent](raw json.RawMessage) (entity.DomainEvent, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, routingKey, messageID string, body any) error
}

type EventPublisher struct {
	pub JSONPublisher
}

func NewEventPublisher(pub JSONPublisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

var _ application.EventPublisher = (*EventPublisher)(nil)

// Publish sends every event, continuing past failures, and returns them joined.
func (p *EventPublisher) Publish(ctx context.Context, events []entity.DomainEvent) error {
	var errs []error
	for _, e := range events {
		env, err := NewEnvelope(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", e.EventName(), err))
			continue
		}
		if err := p.pub.PublishJSON(ctx, env.Type, env.ID, env); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", env.Type, err))
		}
	}
	return errors.Join(errs...)
}
