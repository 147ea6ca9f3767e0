// AngelaMos | 2026
// bus.go

// Package bus carries booking lifecycle events between components.
package bus

import (
	"context"
	"time"
)

const (
	SubjectBookingCreated   = "bookings.created"
	SubjectBookingConfirmed = "bookings.confirmed"
	SubjectBookingCancelled = "bookings.cancelled"
)

type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	Status     string    `json:"status"`
	GuestEmail string    `json:"guest_email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
}

// Handler processes one delivered message. Returning an error asks for
// redelivery.
type Handler func(ctx context.Context, subject string, data []byte) error

type Subscriber interface {
	Subscribe(ctx context.Context, name, subject string, h Handler) (stop func(), err error)
}

// Nop discards events. It stands in for the bus when NATS is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error {
	return nil
}
