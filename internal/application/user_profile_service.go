package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

const (
	defaultSearchSize = 20
	maxSearchSize     = 100
)

// UserProfileService exposes reads and the administrative commands of the
// UserProfile aggregate. The aggregate enforces the rules; this service saves,
// publishes and reindexes.
type UserProfileService struct {
	Deps
}

func NewUserProfileService(deps Deps) (*UserProfileService, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &UserProfileService{Deps: deps.withDefaults()}, nil
}

// GetByExternalUserID loads the profile of an authenticated caller.
func (s *UserProfileService) GetByExternalUserID(ctx context.Context, raw string) (*entity.UserProfile, error) {
	id, err := entity.NewExternalUserID(raw)
	if err != nil {
		return nil, err
	}
	p, err := s.Profiles.FindByExternalUserID(ctx, id)
	return p, notFound(err)
}

func (s *UserProfileService) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, required("id")
	}
	// profile ids are UUIDs; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProfileNotFound
	}
	p, err := s.Profiles.FindByID(ctx, id)
	return p, notFound(err)
}

// ChangeRole makes the new role the user's only library role at the identity
// provider before saving it, so tokens issued afterwards carry it.
func (s *UserProfileService) ChangeRole(ctx context.Context, id, rawRole string) (*entity.UserProfile, error) {
	role, err := entity.ParseUserRole(rawRole)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(p *entity.UserProfile) error {
		return p.ChangeRole(role, s.Now())
	}, func(p *entity.UserProfile) error {
		return s.Provider.ReplaceRole(ctx, p.ExternalUserID().String(), role.String())
	})
}

// Deactivate disables the identity provider user, which blocks login and
// refresh, and then marks the profile inactive.
func (s *UserProfileService) Deactivate(ctx context.Context, id string) (*entity.UserProfile, error) {
	return s.mutate(ctx, id, func(p *entity.UserProfile) error {
		return p.Deactivate(s.Now())
	}, func(p *entity.UserProfile) error {
		return s.Provider.SetUserEnabled(ctx, p.ExternalUserID().String(), false)
	})
}

func (s *UserProfileService) Reactivate(ctx context.Context, id string) (*entity.UserProfile, error) {
	return s.mutate(ctx, id, func(p *entity.UserProfile) error {
		return p.Reactivate(s.Now())
	}, func(p *entity.UserProfile) error {
		return s.Provider.SetUserEnabled(ctx, p.ExternalUserID().String(), true)
	})
}

func (s *UserProfileService) UpdateName(ctx context.Context, id string, cmd UpdateNameCommand) (*entity.UserProfile, error) {
	name, err := entity.NewUserName(cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(p *entity.UserProfile) error {
		return p.UpdateName(name, s.Now())
	}, nil)
}

// Delete removes the identity provider user (best effort) and then the local
// profile.
func (s *UserProfileService) Delete(ctx context.Context, id string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	log := s.Logger.WithField("profile_id", p.ID()).WithField("external_user_id", p.ExternalUserID().String())
	if err := s.Provider.DeleteUser(ctx, p.ExternalUserID().String()); err != nil {
		log.WithError(err).Warn("delete identity provider user failed; deleting local profile anyway")
	}
	if err := s.Profiles.DeleteByID(ctx, p.ID()); err != nil {
		return notFound(err)
	}
	s.unindex(ctx, p.ID())
	log.Info("user profile deleted")
	return nil
}

// Search queries the profile projection and loads the hits from the store.
// Hits that vanished from the store since indexing are skipped.
func (s *UserProfileService) Search(ctx context.Context, query string, size int) ([]*entity.UserProfile, error) {
	if s.Indexer == nil {
		return nil, apperror.New(apperror.CodeInternal, "profile search is not configured")
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}
	ids, err := s.Indexer.Search(ctx, strings.TrimSpace(query), size)
	if err != nil {
		s.Logger.WithError(err).WithField("query", query).Error("profile search failed")
		return nil, err
	}
	out := make([]*entity.UserProfile, 0, len(ids))
	for _, id := range ids {
		p, err := s.Profiles.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// mutate loads, applies change, runs sync (if any), saves, then publishes the
// recorded events and reindexes. A failed sync leaves the stored profile
// untouched, so the same command can be retried.
func (s *UserProfileService) mutate(ctx context.Context, id string, change, sync func(*entity.UserProfile) error) (*entity.UserProfile, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(p); err != nil {
		return nil, err
	}
	if sync != nil {
		if err := sync(p); err != nil {
			s.Logger.WithError(err).WithField("profile_id", id).Error("sync profile change to identity provider failed")
			return nil, err
		}
	}
	saved, err := s.Profiles.Save(ctx, p)
	if err != nil {
		s.Logger.WithError(err).WithField("profile_id", id).Error("save user profile failed")
		return nil, err
	}
	s.publish(ctx, p.PullEvents())
	s.index(ctx, saved)
	return saved, nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}
