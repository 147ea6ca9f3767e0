// AngelaMos | 2026
// entity.go

package booking

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID              string    `db:"id"`
	GuestName       string    `db:"guest_name"`
	GuestEmail      string    `db:"guest_email"`
	GuestPhone      string    `db:"guest_phone"`
	BookingDate     time.Time `db:"booking_date"`
	TimeSlot        string    `db:"time_slot"`
	ExperienceType  string    `db:"experience_type"`
	Guests          int       `db:"guests"`
	PaymentAmount   float64   `db:"payment_amount"`
	Status          string    `db:"status"`
	SpecialRequests string    `db:"special_requests"`
	PromoCode       string    `db:"promo_code"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// StatusCount is one row of the per-status booking tally.
type StatusCount struct {
	Status string  `db:"status"  json:"status"`
	Count  int     `db:"count"   json:"count"`
	Amount float64 `db:"amount"  json:"amount"`
}
