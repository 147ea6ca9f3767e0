// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	ListAll(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, p *Profile) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const profileColumns = `
	id, email, password_hash, name, phone, role, is_active, token_version,
	created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING is_active, token_version, created_at, updated_at`

	return core.GetOne(ctx, r.db, p, "create profile", query,
		p.ID,
		p.Email,
		p.PasswordHash,
		p.Name,
		p.Phone,
		p.Role,
	)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1 AND deleted_at IS NULL`

	var p Profile
	if err := core.GetOne(ctx, r.db, &p, "get profile", query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE email = $1 AND deleted_at IS NULL`

	var p Profile
	if err := core.GetOne(ctx, r.db, &p, "get profile by email", query, email); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC`

	var profiles []Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, phone = $3, role = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &p.UpdatedAt, "update profile", query,
		p.ID,
		p.Name,
		p.Phone,
		p.Role,
		p.IsActive,
	)
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE profiles
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return core.ExecOne(ctx, r.db, "update password", query, id, passwordHash)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE profiles
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return core.ExecOne(ctx, r.db, "increment token version", query, id)
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE profiles
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return core.ExecOne(ctx, r.db, "delete profile", query, id)
}
