package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the aggregate root for a library user. The identity provider
// owns credentials; the profile owns role, activation state and name.
//
// Invariants:
//   - ID and ExternalUserID never change after creation
//   - a new profile is always active
//   - role and name changes are rejected while inactive
//   - Deactivate requires active, Reactivate requires inactive
//
// Mutations record domain events; callers drain them with PullEvents after a
// successful save.
type UserProfile struct {
	id             string
	externalUserID ExternalUserID
	email          Email
	userName       UserName
	role           UserRole
	active         bool
	createdAt      time.Time
	updatedAt      time.Time

	events []DomainEvent
}

// NewUserProfile registers a new active profile and records
// UserProfileCreatedEvent.
func NewUserProfile(externalUserID ExternalUserID, email Email, userName UserName, role UserRole, now time.Time) (*UserProfile, error) {
	if externalUserID.IsZero() {
		return nil, invalid(ErrInvalidExternalUserID, "external user id is required")
	}
	if email.IsZero() {
		return nil, invalid(ErrInvalidEmail, "email is required")
	}
	if userName.firstName == "" {
		return nil, invalid(ErrInvalidUserName, "user name is required")
	}
	if !role.IsValid() {
		return nil, invalid(ErrInvalidRole, "role is required")
	}

	p := &UserProfile{
		id:             uuid.NewString(),
		externalUserID: externalUserID,
		email:          email,
		userName:       userName,
		role:           role,
		active:         true,
		createdAt:      now,
		updatedAt:      now,
	}
	p.record(UserProfileCreatedEvent{
		ProfileID:      p.id,
		ExternalUserID: externalUserID.String(),
		Email:          email.String(),
		Role:           role,
		OccurredOn:     now,
	})
	return p, nil
}

// RehydrateUserProfile rebuilds a stored profile. No events are recorded.
func RehydrateUserProfile(id string, externalUserID ExternalUserID, email Email, userName UserName, role UserRole, active bool, createdAt, updatedAt time.Time) *UserProfile {
	return &UserProfile{
		id:             id,
		externalUserID: externalUserID,
		email:          email,
		userName:       userName,
		role:           role,
		active:         active,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (p *UserProfile) ID() string                     { return p.id }
func (p *UserProfile) ExternalUserID() ExternalUserID { return p.externalUserID }
func (p *UserProfile) Email() Email                   { return p.email }
func (p *UserProfile) UserName() UserName             { return p.userName }
func (p *UserProfile) Role() UserRole                 { return p.role }
func (p *UserProfile) IsActive() bool                 { return p.active }
func (p *UserProfile) CreatedAt() time.Time           { return p.createdAt }
func (p *UserProfile) UpdatedAt() time.Time           { return p.updatedAt }
func (p *UserProfile) FullName() string               { return p.userName.FullName() }

func (p *UserProfile) Deactivate(now time.Time) error {
	if !p.active {
		return ErrAlreadyDeactivated
	}
	p.active = false
	p.updatedAt = now
	p.record(UserProfileDeactivatedEvent{ProfileID: p.id, Email: p.email.String(), OccurredOn: now})
	return nil
}

func (p *UserProfile) Reactivate(now time.Time) error {
	if p.active {
		return ErrAlreadyActive
	}
	p.active = true
	p.updatedAt = now
	p.record(UserProfileReactivatedEvent{ProfileID: p.id, Email: p.email.String(), OccurredOn: now})
	return nil
}

func (p *UserProfile) ChangeRole(newRole UserRole, now time.Time) error {
	if !newRole.IsValid() {
		return invalid(ErrInvalidRole, "new role is required")
	}
	if p.role == newRole {
		return ErrSameRole
	}
	if !p.active {
		return ErrProfileInactive
	}
	old := p.role
	p.role = newRole
	p.updatedAt = now
	p.record(UserRoleChangedEvent{
		ProfileID:  p.id,
		Email:      p.email.String(),
		OldRole:    old,
		NewRole:    newRole,
		OccurredOn: now,
	})
	return nil
}

func (p *UserProfile) UpdateName(newName UserName, now time.Time) error {
	if newName.firstName == "" {
		return invalid(ErrInvalidUserName, "new name is required")
	}
	if !p.active {
		return ErrProfileInactive
	}
	p.userName = newName
	p.updatedAt = now
	return nil
}

// CanBorrowBooks requires an active profile with a borrowing role.
func (p *UserProfile) CanBorrowBooks() bool {
	return p.active && p.role.CanBorrowBooks()
}

func (p *UserProfile) HasAdministrativePrivileges() bool {
	return p.active && p.role.HasAdministrativePrivileges()
}

func (p *UserProfile) CanBeDeactivated() bool { return p.active }
func (p *UserProfile) CanBeReactivated() bool { return !p.active }

// Events returns a copy of the pending events.
func (p *UserProfile) Events() []DomainEvent {
	out := make([]DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

// PullEvents returns the pending events and clears the buffer.
func (p *UserProfile) PullEvents() []DomainEvent {
	out := p.events
	p.events = nil
	return out
}

func (p *UserProfile) record(e DomainEvent) {
	p.events = append(p.events, e)
}
