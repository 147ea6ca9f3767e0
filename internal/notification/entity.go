// AngelaMos | 2026
// entity.go

package notification

import (
	"time"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Log records one delivery attempt.
type Log struct {
	ID                string    `db:"id"`
	BookingID         string    `db:"booking_id"`
	EmailType         string    `db:"email_type"`
	Recipient         string    `db:"recipient"`
	ProviderMessageID string    `db:"provider_message_id"`
	Status            string    `db:"status"`
	Error             string    `db:"error"`
	CreatedAt         time.Time `db:"created_at"`
}
