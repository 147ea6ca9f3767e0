// AngelaMos | 2026
// repository.go

package promo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *PromoCode) error
	GetByID(ctx context.Context, id string) (*PromoCode, error)
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	ListAll(ctx context.Context) ([]PromoCode, error)
	Update(ctx context.Context, p *PromoCode) error
	Delete(ctx context.Context, id string) error
	// Redeem increments used_count when the code is active, inside its
	// window and below max_uses, in one statement.
	Redeem(ctx context.Context, code string, now time.Time) (*PromoCode, error)
	Release(ctx context.Context, code string) error
	CountActive(ctx context.Context, now time.Time) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const promoColumns = `
	id, code, description, discount_type, discount_value, max_uses, used_count,
	valid_from, valid_until, is_active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p *PromoCode) error {
	query := `
		INSERT INTO promo_codes (
			id, code, description, discount_type, discount_value, max_uses,
			valid_from, valid_until, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING used_count, created_at, updated_at`

	return core.GetOne(ctx, r.db, p, "create promo code", query,
		p.ID,
		p.Code,
		p.Description,
		p.DiscountType,
		p.DiscountValue,
		p.MaxUses,
		p.ValidFrom,
		p.ValidUntil,
		p.IsActive,
	)
}

func (r *repository) GetByID(ctx context.Context, id string) (*PromoCode, error) {
	var p PromoCode
	err := core.GetOne(ctx, r.db, &p, "get promo code",
		`SELECT `+promoColumns+` FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	var p PromoCode
	err := core.GetOne(ctx, r.db, &p, "get promo code",
		`SELECT `+promoColumns+` FROM promo_codes WHERE code = $1`, code)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListAll(ctx context.Context) ([]PromoCode, error) {
	var items []PromoCode
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, p *PromoCode) error {
	query := `
		UPDATE promo_codes
		SET code = $2, description = $3, discount_type = $4, discount_value = $5,
		    max_uses = $6, valid_from = $7, valid_until = $8, is_active = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &p.UpdatedAt, "update promo code", query,
		p.ID,
		p.Code,
		p.Description,
		p.DiscountType,
		p.DiscountValue,
		p.MaxUses,
		p.ValidFrom,
		p.ValidUntil,
		p.IsActive,
	)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return core.ExecOne(ctx, r.db, "delete promo code",
		`DELETE FROM promo_codes WHERE id = $1`, id)
}

func (r *repository) Redeem(
	ctx context.Context,
	code string,
	now time.Time,
) (*PromoCode, error) {
	query := `
		UPDATE promo_codes
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE code = $1
			AND is_active
			AND $2 BETWEEN valid_from AND valid_until
			AND (max_uses IS NULL OR used_count < max_uses)
		RETURNING ` + promoColumns

	var p PromoCode
	err := core.GetOne(ctx, r.db, &p, "redeem promo code", query, code, now)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	current, lookupErr := r.GetByCode(ctx, code)
	if lookupErr != nil {
		return nil, lookupErr
	}
	return nil, unavailable(current, now)
}

func (r *repository) Release(ctx context.Context, code string) error {
	return core.ExecOne(ctx, r.db, "release promo code", `
		UPDATE promo_codes
		SET used_count = used_count - 1, updated_at = NOW()
		WHERE code = $1 AND used_count > 0`, code)
}

func (r *repository) CountActive(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM promo_codes
		WHERE is_active
			AND $1 BETWEEN valid_from AND valid_until
			AND (max_uses IS NULL OR used_count < max_uses)`, now)
	if err != nil {
		return 0, fmt.Errorf("count active promo codes: %w", err)
	}
	return n, nil
}
