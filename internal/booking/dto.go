// AngelaMos | 2026
// dto.go

package booking

import (
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type CreateBookingRequest struct {
	GuestName       string         `json:"guest_name"       validate:"required,min=1,max=100"`
	GuestEmail      string         `json:"guest_email"      validate:"required,email,max=255"`
	GuestPhone      string         `json:"guest_phone"      validate:"omitempty,max=32"`
	BookingDate     string         `json:"booking_date"     validate:"required,datetime=2006-01-02"`
	TimeSlot        string         `json:"time_slot"        validate:"required,max=32"`
	ExperienceType  string         `json:"experience_type"  validate:"required,max=64"`
	Guests          core.FlexInt   `json:"guests"           validate:"gte=1,lte=20"`
	PaymentAmount   core.FlexFloat `json:"payment_amount"   validate:"gte=0"`
	SpecialRequests string         `json:"special_requests" validate:"max=1000"`
	PromoCode       string         `json:"promo_code"       validate:"omitempty,max=32"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	GuestName       string    `json:"guest_name"`
	GuestEmail      string    `json:"guest_email"`
	GuestPhone      string    `json:"guest_phone"`
	BookingDate     string    `json:"booking_date"`
	TimeSlot        string    `json:"time_slot"`
	ExperienceType  string    `json:"experience_type"`
	Guests          int       `json:"guests"`
	PaymentAmount   float64   `json:"payment_amount"`
	Status          string    `json:"status"`
	SpecialRequests string    `json:"special_requests"`
	PromoCode       string    `json:"promo_code,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		BookingDate:     core.FormatDate(b.BookingDate),
		TimeSlot:        b.TimeSlot,
		ExperienceType:  b.ExperienceType,
		Guests:          b.Guests,
		PaymentAmount:   b.PaymentAmount,
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		PromoCode:       b.PromoCode,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func ToBookingResponseList(items []Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(items))
	for i := range items {
		out = append(out, ToBookingResponse(&items[i]))
	}
	return out
}
