package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/repository"
)

const uniqueViolation = "23505"

const selectProfile = `
	SELECT id, external_user_id, email, first_name, last_name, role, active, created_at, updated_at
	FROM user_profiles
`

type UserProfileRepository struct {
	pool *pgxpool.Pool
}

func NewUserProfileRepository(pool *pgxpool.Pool) *UserProfileRepository {
	return &UserProfileRepository{pool: pool}
}

var _ repository.UserProfileRepository = (*UserProfileRepository)(nil)

func (r *UserProfileRepository) Save(ctx context.Context, p *entity.UserProfile) (*entity.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (id, external_user_id, email, first_name, last_name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    role = EXCLUDED.role,
		    active = EXCLUDED.active,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, external_user_id, email, first_name, last_name, role, active, created_at, updated_at
	`, p.ID(), p.ExternalUserID().String(), p.Email().String(), p.UserName().FirstName(), p.UserName().LastName(),
		p.Role().String(), p.IsActive(), p.CreatedAt(), p.UpdatedAt())

	saved, err := scanProfile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return saved, nil
}

// FindByID reports ErrNotFound for ids that are not UUIDs instead of letting
// the id column reject them.
func (r *UserProfileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, selectProfile+` WHERE id = $1`, id)
}

func (r *UserProfileRepository) FindByExternalUserID(ctx context.Context, id entity.ExternalUserID) (*entity.UserProfile, error) {
	return r.findOne(ctx, selectProfile+` WHERE external_user_id = $1`, id.String())
}

func (r *UserProfileRepository) FindByEmail(ctx context.Context, email entity.Email) (*entity.UserProfile, error) {
	return r.findOne(ctx, selectProfile+` WHERE email = $1`, email.String())
}

func (r *UserProfileRepository) ExistsByEmail(ctx context.Context, email entity.Email) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM user_profiles WHERE email = $1)`, email.String())
}

func (r *UserProfileRepository) ExistsByExternalUserID(ctx context.Context, id entity.ExternalUserID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM user_profiles WHERE external_user_id = $1)`, id.String())
}

func (r *UserProfileRepository) Delete(ctx context.Context, p *entity.UserProfile) error {
	return r.DeleteByID(ctx, p.ID())
}

func (r *UserProfileRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserProfileRepository) findOne(ctx context.Context, query string, arg any) (*entity.UserProfile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *UserProfileRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// scanProfile rebuilds the aggregate through the value object constructors,
// so a row that no longer satisfies them surfaces as an error.
func scanProfile(row pgx.Row) (*entity.UserProfile, error) {
	var (
		id, extID, email, first, last, role string
		active                              bool
		createdAt, updatedAt                time.Time
	)
	if err := row.Scan(&id, &extID, &email, &first, &last, &role, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	ext, err := entity.NewExternalUserID(extID)
	if err != nil {
		return nil, err
	}
	addr, err := entity.NewEmail(email)
	if err != nil {
		return nil, err
	}
	name, err := entity.NewUserName(first, last)
	if err != nil {
		return nil, err
	}
	userRole, err := entity.ParseUserRole(role)
	if err != nil {
		return nil, err
	}
	return entity.RehydrateUserProfile(id, ext, addr, name, userRole, active, createdAt, updatedAt), nil
}
