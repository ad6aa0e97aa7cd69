// Package memory implements an in-memory profile store for development and
// testing. It enforces the same uniqueness rules as the Postgres store.
package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
)

// UserProfileRepository keeps snapshots, so callers never share aggregate
// state (or pending events) with the store.
type UserProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*entity.UserProfile
}

func NewUserProfileRepository() *UserProfileRepository {
	return &UserProfileRepository{profiles: make(map[string]*entity.UserProfile)}
}

var _ repository.UserProfileRepository = (*UserProfileRepository)(nil)

func (r *UserProfileRepository) Save(ctx context.Context, p *entity.UserProfile) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, other := range r.profiles {
		if id == p.ID() {
			continue
		}
		if other.Email() == p.Email() || other.ExternalUserID() == p.ExternalUserID() {
			return nil, repository.ErrDuplicate
		}
	}
	r.profiles[p.ID()] = snapshot(p)
	return snapshot(p), nil
}

func (r *UserProfileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return snapshot(p), nil
}

func (r *UserProfileRepository) FindByExternalUserID(ctx context.Context, id entity.ExternalUserID) (*entity.UserProfile, error) {
	return r.findFirst(func(p *entity.UserProfile) bool { return p.ExternalUserID() == id })
}

func (r *UserProfileRepository) FindByEmail(ctx context.Context, email entity.Email) (*entity.UserProfile, error) {
	return r.findFirst(func(p *entity.UserProfile) bool { return p.Email() == email })
}

func (r *UserProfileRepository) ExistsByEmail(ctx context.Context, email entity.Email) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return exists(err)
}

func (r *UserProfileRepository) ExistsByExternalUserID(ctx context.Context, id entity.ExternalUserID) (bool, error) {
	_, err := r.FindByExternalUserID(ctx, id)
	return exists(err)
}

func (r *UserProfileRepository) Delete(ctx context.Context, p *entity.UserProfile) error {
	return r.DeleteByID(ctx, p.ID())
}

func (r *UserProfileRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.profiles, id)
	return nil
}

func (r *UserProfileRepository) findFirst(match func(*entity.UserProfile) bool) (*entity.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if match(p) {
			return snapshot(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func exists(err error) (bool, error) {
	switch err {
	case nil:
		return true, nil
	case repository.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

func snapshot(p *entity.UserProfile) *entity.UserProfile {
	return entity.RehydrateUserProfile(p.ID(), p.ExternalUserID(), p.Email(), p.UserName(), p.Role(), p.IsActive(), p.CreatedAt(), p.UpdatedAt())
}
