// AngelaMos | 2026
// entity.go

package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

var (
	ErrSoldOut = fmt.Errorf("not enough seats left: %w", core.ErrConflict)
	ErrStarted = fmt.Errorf("event has already started: %w", core.ErrConflict)
)

type Event struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Location    string    `db:"location"`
	StartsAt    time.Time `db:"starts_at"`
	EndsAt      time.Time `db:"ends_at"`
	Capacity    int       `db:"capacity"`
	BookedCount int       `db:"booked_count"`
	Price       float64   `db:"price"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (e *Event) SeatsLeft() int {
	return max(e.Capacity-e.BookedCount, 0)
}

// refusal explains why seats could not be reserved on e at now.
func refusal(e *Event, seats int, now time.Time) error {
	switch {
	case !e.IsPublished:
		return fmt.Errorf("event %s: %w", e.ID, core.ErrNotFound)
	case !now.Before(e.StartsAt):
		return ErrStarted
	case e.SeatsLeft() < seats:
		return ErrSoldOut
	default:
		return errors.New("reservation refused")
	}
}
