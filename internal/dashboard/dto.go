// AngelaMos | 2026
// dto.go

package dashboard

import (
	"time"

	"github.com/carterperez-dev/foodhall/internal/document"
)

type Summary struct {
	Bookings            BookingStats    `json:"bookings"`
	PendingApplications int             `json:"pending_applications"`
	UpcomingEvents      []UpcomingEvent `json:"upcoming_events"`
	ActivePromos        int             `json:"active_promos"`
	Documents           *DocumentStats  `json:"documents,omitempty"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

type BookingStats struct {
	Total            int            `json:"total"`
	ByStatus         map[string]int `json:"by_status"`
	ConfirmedRevenue float64        `json:"confirmed_revenue"`
}

type UpcomingEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	Capacity  int       `json:"capacity"`
	SeatsLeft int       `json:"seats_left"`
}

type DocumentStats struct {
	Total   int                    `json:"total"`
	Bytes   int64                  `json:"bytes"`
	Buckets []document.BucketCount `json:"buckets"`
}
