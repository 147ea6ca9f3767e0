// AngelaMos | 2026
// repository.go

package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListAll(ctx context.Context) ([]Booking, error)
	UpdateStatus(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id string) error
	ListOnDate(ctx context.Context, day time.Time, status string) ([]Booking, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const bookingColumns = `
	id, guest_name, guest_email, guest_phone, booking_date, time_slot,
	experience_type, guests, payment_amount, status, special_requests,
	promo_code, created_at, updated_at`

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, guest_name, guest_email, guest_phone, booking_date, time_slot,
			experience_type, guests, payment_amount, status, special_requests,
			promo_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	return core.GetOne(ctx, r.db, b, "create booking", query,
		b.ID,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		b.BookingDate,
		b.TimeSlot,
		b.ExperienceType,
		b.Guests,
		b.PaymentAmount,
		b.Status,
		b.SpecialRequests,
		b.PromoCode,
	)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := core.GetOne(ctx, r.db, &b, "get booking",
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Booking, error) {
	var items []Booking
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, b *Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &b.UpdatedAt, "update booking status", query,
		b.ID, b.Status)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return core.ExecOne(ctx, r.db, "delete booking",
		`DELETE FROM bookings WHERE id = $1`, id)
}

func (r *repository) ListOnDate(
	ctx context.Context,
	day time.Time,
	status string,
) ([]Booking, error) {
	var items []Booking
	err := r.db.SelectContext(ctx, &items, `SELECT `+bookingColumns+`
		FROM bookings
		WHERE booking_date = $1 AND status = $2
		ORDER BY time_slot`, core.FormatDate(day), status)
	if err != nil {
		return nil, fmt.Errorf("list bookings on %s: %w", core.FormatDate(day), err)
	}
	return items, nil
}

func (r *repository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.SelectContext(ctx, &counts, `
		SELECT status, COUNT(*) AS count, COALESCE(SUM(payment_amount), 0) AS amount
		FROM bookings
		GROUP BY status
		ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	return counts, nil
}
