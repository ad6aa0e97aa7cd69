package entity

import "time"

// Event names double as message routing keys.
const (
	EventUserProfileCreated     = "user.created"
	EventUserProfileDeactivated = "user.deactivated"
	EventUserProfileReactivated = "user.reactivated"
	EventUserRoleChanged        = "user.role_changed"
	EventPasswordResetRequested = "password_reset.requested"
	EventPasswordResetCompleted = "password_reset.completed"
)

// DomainEvent is a fact recorded by the domain. Events are handed to a
// publisher only after the state change that produced them has been saved.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

type UserProfileCreatedEvent struct {
	ProfileID      string    `json:"profile_id"`
	ExternalUserID string    `json:"external_user_id"`
	Email          string    `json:"email"`
	Role           UserRole  `json:"role"`
	OccurredOn     time.Time `json:"occurred_on"`
}

func (e UserProfileCreatedEvent) EventName() string     { return EventUserProfileCreated }
func (e UserProfileCreatedEvent) OccurredAt() time.Time { return e.OccurredOn }

type UserProfileDeactivatedEvent struct {
	ProfileID  string    `json:"profile_id"`
	Email      string    `json:"email"`
	OccurredOn time.Time `json:"occurred_on"`
}

func (e UserProfileDeactivatedEvent) EventName() string     { return EventUserProfileDeactivated }
func (e UserProfileDeactivatedEvent) OccurredAt() time.Time { return e.OccurredOn }

type UserProfileReactivatedEvent struct {
	ProfileID  string    `json:"profile_id"`
	Email      string    `json:"email"`
	OccurredOn time.Time `json:"occurred_on"`
}

func (e UserProfileReactivatedEvent) EventName() string     { return EventUserProfileReactivated }
func (e UserProfileReactivatedEvent) OccurredAt() time.Time { return e.OccurredOn }

type UserRoleChangedEvent struct {
	ProfileID  string    `json:"profile_id"`
	Email      string    `json:"email"`
	OldRole    UserRole  `json:"old_role"`
	NewRole    UserRole  `json:"new_role"`
	OccurredOn time.Time `json:"occurred_on"`
}

func (e UserRoleChangedEvent) EventName() string     { return EventUserRoleChanged }
func (e UserRoleChangedEvent) OccurredAt() time.Time { return e.OccurredOn }

type PasswordResetRequested struct {
	Email       string    `json:"email"`
	RequestedAt time.Time `json:"requested_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func NewPasswordResetRequested(email string, requestedAt time.Time, window time.Duration) PasswordResetRequested {
	return PasswordResetRequested{Email: email, RequestedAt: requestedAt, ExpiresAt: requestedAt.Add(window)}
}

func (e PasswordResetRequested) EventName() string     { return EventPasswordResetRequested }
func (e PasswordResetRequested) OccurredAt() time.Time { return e.RequestedAt }

type PasswordResetCompleted struct {
	// UserID is the identity provider's id for the user.
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	CompletedAt time.Time `json:"completed_at"`
}

func (e PasswordResetCompleted) EventName() string     { return EventPasswordResetCompleted }
func (e PasswordResetCompleted) OccurredAt() time.Time { return e.CompletedAt }
