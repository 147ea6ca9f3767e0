// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, l *Log) error
	ListByBooking(ctx context.Context, bookingID string) ([]Log, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Log) error {
	query := `
		INSERT INTO notification_logs (
			id, booking_id, email_type, recipient, provider_message_id, status, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return core.GetOne(ctx, r.db, &l.CreatedAt, "create notification log", query,
		l.ID,
		l.BookingID,
		l.EmailType,
		l.Recipient,
		l.ProviderMessageID,
		l.Status,
		l.Error,
	)
}

func (r *repository) ListByBooking(ctx context.Context, bookingID string) ([]Log, error) {
	query := `
		SELECT id, booking_id, email_type, recipient, provider_message_id,
		       status, error, created_at
		FROM notification_logs
		WHERE booking_id = $1
		ORDER BY created_at DESC`

	var logs []Log
	if err := r.db.SelectContext(ctx, &logs, query, bookingID); err != nil {
		return nil, fmt.Errorf("list notification logs: %w", err)
	}

	return logs, nil
}
