// AngelaMos | 2026
// repository.go

package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	SetPublished(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
	Reserve(ctx context.Context, id string, seats int, now time.Time) (*Event, error)
	ListUpcoming(ctx context.Context, now time.Time, limit int) ([]Event, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const eventColumns = `
	id, title, description, category, location, starts_at, ends_at,
	capacity, booked_count, price, is_published, created_at, updated_at`

func (r *repository) Create(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO events (
			id, title, description, category, location, starts_at, ends_at,
			capacity, price, is_published
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return core.GetOne(ctx, r.db, e, "create event", query,
		e.ID,
		e.Title,
		e.Description,
		e.Category,
		e.Location,
		e.StartsAt,
		e.EndsAt,
		e.Capacity,
		e.Price,
		e.IsPublished,
	)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	err := core.GetOne(ctx, r.db, &e, "get event",
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Event, error) {
	var items []Event
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+eventColumns+` FROM events ORDER BY starts_at`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, category = $4, location = $5,
			starts_at = $6, ends_at = $7, capacity = $8, price = $9,
			is_published = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &e.UpdatedAt, "update event", query,
		e.ID,
		e.Title,
		e.Description,
		e.Category,
		e.Location,
		e.StartsAt,
		e.EndsAt,
		e.Capacity,
		e.Price,
		e.IsPublished,
	)
}

func (r *repository) SetPublished(ctx context.Context, e *Event) error {
	query := `
		UPDATE events
		SET is_published = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &e.UpdatedAt, "set event published", query,
		e.ID, e.IsPublished)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return core.ExecOne(ctx, r.db, "delete event",
		`DELETE FROM events WHERE id = $1`, id)
}

// Reserve adds seats in a single conditional update so concurrent
// reservations can never push booked_count past capacity.
func (r *repository) Reserve(
	ctx context.Context,
	id string,
	seats int,
	now time.Time,
) (*Event, error) {
	var e Event
	err := r.db.GetContext(ctx, &e, `
		UPDATE events
		SET booked_count = booked_count + $2, updated_at = NOW()
		WHERE id = $1
			AND is_published
			AND starts_at > $3
			AND booked_count + $2 <= capacity
		RETURNING `+eventColumns, id, seats, now)
	if err == nil {
		return &e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reserve seats: %w", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, refusal(current, seats, now)
}

func (r *repository) ListUpcoming(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]Event, error) {
	var items []Event
	err := r.db.SelectContext(ctx, &items, `SELECT `+eventColumns+`
		FROM events
		WHERE is_published AND starts_at > $1
		ORDER BY starts_at
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return items, nil
}
