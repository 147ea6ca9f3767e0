// AngelaMos | 2026
// service.go

package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/bus"
	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
	"github.com/carterperez-dev/foodhall/internal/promo"
)

// PromoRedeemer consumes promo code uses for new bookings.
type PromoRedeemer interface {
	Redeem(ctx context.Context, code string, amount float64) (*promo.Quote, error)
	Release(ctx context.Context, code string) error
}

type Service struct {
	repo      Repository
	promos    PromoRedeemer
	publisher bus.Publisher
	bookings  *listview.Collection[Booking]
}

func NewService(
	repo Repository,
	promos PromoRedeemer,
	publisher bus.Publisher,
	store listview.Store,
) *Service {
	if publisher == nil {
		publisher = bus.Nop{}
	}
	return &Service{
		repo:      repo,
		promos:    promos,
		publisher: publisher,
		bookings:  listview.NewCollection("bookings", store, repo.ListAll),
	}
}

var listSpec = listview.Spec[Booking]{
	Search: func(b Booking) []string {
		return []string{b.GuestName, b.GuestEmail, b.GuestPhone}
	},
	Filters: map[string]func(Booking) []string{
		"status":          func(b Booking) []string { return listview.One(b.Status) },
		"experience_type": func(b Booking) []string { return listview.One(b.ExperienceType) },
	},
	Sorts: map[string]func(a, b Booking) int{
		"date":        byDate,
		"date_desc":   listview.Desc(byDate),
		"newest":      listview.Desc(listview.ByTime(func(b Booking) time.Time { return b.CreatedAt })),
		"guests":      listview.Desc(listview.ByNumber(func(b Booking) int { return b.Guests })),
		"amount_high": listview.Desc(listview.ByNumber(func(b Booking) float64 { return b.PaymentAmount })),
	},
	DefaultSort: "newest",
}

var byDate = listview.Then(
	listview.ByTime(func(b Booking) time.Time { return b.BookingDate }),
	listview.ByString(func(b Booking) string { return b.TimeSlot }),
)

func ListSpec() listview.Spec[Booking] {
	return listSpec
}

func (s *Service) List(
	ctx context.Context,
	q listview.Query,
) (listview.Result[Booking], error) {
	items, err := s.bookings.Items(ctx)
	if err != nil {
		return listview.Result[Booking]{}, err
	}
	return listview.Apply(items, q, listSpec)
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new pending booking. A promo code is redeemed first and
// handed back if the booking cannot be stored.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	date, err := core.ParseDate(req.BookingDate)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:              uuid.New().String(),
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestEmail:      strings.ToLower(strings.TrimSpace(req.GuestEmail)),
		GuestPhone:      strings.TrimSpace(req.GuestPhone),
		BookingDate:     date,
		TimeSlot:        strings.TrimSpace(req.TimeSlot),
		ExperienceType:  strings.TrimSpace(req.ExperienceType),
		Guests:          req.Guests.Int(),
		PaymentAmount:   req.PaymentAmount.Float64(),
		Status:          StatusPending,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}

	if code := promo.NormalizeCode(req.PromoCode); code != "" {
		quote, err := s.promos.Redeem(ctx, code, b.PaymentAmount)
		if err != nil {
			return nil, promoError(err)
		}
		b.PromoCode = quote.Code
		b.PaymentAmount = quote.FinalAmount
	}

	err = s.bookings.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, b)
	})
	if err != nil {
		if b.PromoCode != "" {
			if relErr := s.promos.Release(ctx, b.PromoCode); relErr != nil {
				slog.ErrorContext(ctx, "promo release after failed booking",
					"promo_code", b.PromoCode,
					"error", relErr,
				)
			}
		}
		return nil, err
	}

	s.publish(ctx, bus.SubjectBookingCreated, b)
	return b, nil
}

// UpdateStatus sets the booking status. Setting the current status is a
// no-op: nothing is written and updated_at is unchanged.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == status {
		return b, nil
	}

	b.Status = status
	err = s.bookings.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.UpdateStatus(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case StatusConfirmed:
		s.publish(ctx, bus.SubjectBookingConfirmed, b)
	case StatusCancelled:
		s.publish(ctx, bus.SubjectBookingCancelled, b)
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.bookings.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// ConfirmedOn lists confirmed bookings for the calendar day of day.
func (s *Service) ConfirmedOn(ctx context.Context, day time.Time) ([]Booking, error) {
	return s.repo.ListOnDate(ctx, day, StatusConfirmed)
}

func (s *Service) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	return s.repo.CountByStatus(ctx)
}

// publish is best-effort: the booking is already stored.
func (s *Service) publish(ctx context.Context, subject string, b *Booking) {
	err := s.publisher.Publish(ctx, subject, bus.BookingEvent{
		BookingID:  b.ID,
		Status:     b.Status,
		GuestEmail: b.GuestEmail,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		slog.WarnContext(ctx, "booking event not published",
			"subject", subject,
			"booking_id", b.ID,
			"error", err,
		)
	}
}

func promoError(err error) error {
	fields := func(msg string) map[string][]string {
		return map[string][]string{"promo_code": {msg}}
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.ValidationError("unknown promo code", fields("is not a valid promo code"))
	case promo.IsUnavailable(err):
		appErr := core.ConflictError(promoReason(err))
		appErr.Fields = fields("cannot be applied")
		return appErr
	default:
		return fmt.Errorf("redeem promo code: %w", err)
	}
}

var promoReasons = []struct {
	err error
	msg string
}{
	{promo.ErrInactive, "promo code is inactive"},
	{promo.ErrNotStarted, "promo code is not valid yet"},
	{promo.ErrExpired, "promo code has expired"},
	{promo.ErrExhausted, "promo code has no uses left"},
}

func promoReason(err error) string {
	for _, r := range promoReasons {
		if errors.Is(err, r.err) {
			return r.msg
		}
	}
	return "promo code cannot be applied"
}
