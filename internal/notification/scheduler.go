// AngelaMos | 2026
// scheduler.go

package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/carterperez-dev/foodhall/internal/booking"
)

const jobTimeout = 5 * time.Minute

// Scheduler runs named background jobs on cron expressions.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	jobs    map[string]cron.EntryID
	mu      sync.Mutex
	running bool
}

func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Add registers job under name. A run that is still going when the next
// tick fires is skipped.
func (s *Scheduler) Add(name, spec string, job func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already scheduled", name)
	}

	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(
		cron.FuncJob(func() {
			s.run(name, job)
		}),
	)

	id, err := s.cron.AddJob(spec, wrapped)
	if err != nil {
		return fmt.Errorf("schedule %q with %q: %w", name, spec, err)
	}

	s.jobs[name] = id
	slog.Info("job scheduled", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) run(name string, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		slog.ErrorContext(ctx, "scheduled job failed",
			"job", name,
			"duration", time.Since(start),
			"error", err,
		)
		return
	}

	slog.InfoContext(ctx, "scheduled job finished",
		"job", name,
		"duration", time.Since(start),
	)
}

// Next reports when name fires next.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
}

// Stop cancels running jobs and waits for them to return or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ConfirmedLister finds confirmed bookings for a calendar day.
type ConfirmedLister interface {
	ConfirmedOn(ctx context.Context, day time.Time) ([]booking.Booking, error)
}

// Reminders sends the reminder email for every confirmed booking dated
// the day after now.
type Reminders struct {
	bookings ConfirmedLister
	sender   *Service
	now      func() time.Time
}

func NewReminders(bookings ConfirmedLister, sender *Service) *Reminders {
	return &Reminders{
		bookings: bookings,
		sender:   sender,
		now:      time.Now,
	}
}

// Run returns how many reminders went out. Individual send failures are
// logged and do not stop the sweep.
func (r *Reminders) Run(ctx context.Context) (int, error) {
	now := r.now().UTC()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)

	due, err := r.bookings.ConfirmedOn(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("list bookings due tomorrow: %w", err)
	}

	sent := 0
	for _, b := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		_, err := r.sender.Send(ctx, Request{Type: TypeReminder, BookingID: b.ID})
		if err != nil {
			slog.WarnContext(ctx, "reminder not sent",
				"booking_id", b.ID,
				"error", err,
			)
			continue
		}
		sent++
	}

	slog.InfoContext(ctx, "reminder sweep done",
		"day", tomorrow.Format(time.DateOnly),
		"due", len(due),
		"sent", sent,
	)
	return sent, nil
}

// Job adapts Run to Scheduler.Add.
func (r *Reminders) Job(ctx context.Context) error {
	_, err := r.Run(ctx)
	return err
}
