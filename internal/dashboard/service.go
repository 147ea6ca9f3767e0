// AngelaMos | 2026
// service.go

// Package dashboard aggregates headline figures across the food hall.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/foodhall/internal/booking"
	"github.com/carterperez-dev/foodhall/internal/document"
	"github.com/carterperez-dev/foodhall/internal/event"
)

const upcomingLimit = 5

type BookingCounter interface {
	CountByStatus(ctx context.Context) ([]booking.StatusCount, error)
}

type ApplicationCounter interface {
	CountPending(ctx context.Context) (int, error)
}

type EventLister interface {
	Upcoming(ctx context.Context, limit int) ([]event.Event, error)
}

type PromoCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type DocumentCounter interface {
	CountByBucket(ctx context.Context) ([]document.BucketCount, error)
}

type Sources struct {
	Bookings     BookingCounter
	Applications ApplicationCounter
	Events       EventLister
	Promos       PromoCounter
	Documents    DocumentCounter
}

type Service struct {
	src Sources
	now func() time.Time
}

func NewService(src Sources) *Service {
	return &Service{src: src, now: time.Now}
}

// Summary runs every query concurrently. The first failure cancels the
// rest and is returned.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	return s.collect(ctx, true)
}

// InvestorSummary omits document storage figures.
func (s *Service) InvestorSummary(ctx context.Context) (*Summary, error) {
	return s.collect(ctx, false)
}

func (s *Service) collect(ctx context.Context, withDocuments bool) (*Summary, error) {
	var (
		statuses []booking.StatusCount
		pending  int
		upcoming []event.Event
		promos   int
		buckets  []document.BucketCount
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		statuses, err = s.src.Bookings.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		pending, err = s.src.Applications.CountPending(gctx)
		if err != nil {
			return fmt.Errorf("count pending applications: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		upcoming, err = s.src.Events.Upcoming(gctx, upcomingLimit)
		if err != nil {
			return fmt.Errorf("list upcoming events: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		promos, err = s.src.Promos.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("count active promos: %w", err)
		}
		return nil
	})

	if withDocuments {
		g.Go(func() error {
			var err error
			buckets, err = s.src.Documents.CountByBucket(gctx)
			if err != nil {
				return fmt.Errorf("count documents: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Bookings:            bookingStats(statuses),
		PendingApplications: pending,
		UpcomingEvents:      toUpcoming(upcoming),
		ActivePromos:        promos,
		GeneratedAt:         s.now().UTC(),
	}
	if withDocuments {
		summary.Documents = documentStats(buckets)
	}

	return summary, nil
}

func bookingStats(rows []booking.StatusCount) BookingStats {
	stats := BookingStats{
		ByStatus: map[string]int{
			booking.StatusPending:   0,
			booking.StatusConfirmed: 0,
			booking.StatusCancelled: 0,
		},
	}

	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus[row.Status] = row.Count
		if row.Status == booking.StatusConfirmed {
			stats.ConfirmedRevenue = row.Amount
		}
	}

	return stats
}

func documentStats(rows []document.BucketCount) *DocumentStats {
	stats := &DocumentStats{Buckets: make([]document.BucketCount, 0, len(rows))}
	for _, row := range rows {
		stats.Total += row.Count
		stats.Bytes += row.Bytes
		stats.Buckets = append(stats.Buckets, row)
	}
	return stats
}

func toUpcoming(events []event.Event) []UpcomingEvent {
	out := make([]UpcomingEvent, len(events))
	for i, e := range events {
		out[i] = UpcomingEvent{
			ID:        e.ID,
			Title:     e.Title,
			StartsAt:  e.StartsAt,
			Capacity:  e.Capacity,
			SeatsLeft: e.SeatsLeft(),
		}
	}
	return out
}
