// AngelaMos | 2026
// service.go

package event

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
)

type Service struct {
	repo   Repository
	events *listview.Collection[Event]
	now    func() time.Time
}

func NewService(repo Repository, store listview.Store) *Service {
	return &Service{
		repo:   repo,
		events: listview.NewCollection("events", store, repo.ListAll),
		now:    time.Now,
	}
}

var listSpec = listview.Spec[Event]{
	Search: func(e Event) []string {
		return []string{e.Title, e.Description, e.Location}
	},
	Filters: map[string]func(Event) []string{
		"category":  func(e Event) []string { return listview.One(e.Category) },
		"published": func(e Event) []string { return listview.Bool(e.IsPublished) },
	},
	Sorts: map[string]func(a, b Event) int{
		"date":      byStart,
		"date_desc": listview.Desc(byStart),
		"price_low": listview.Then(listview.ByNumber(func(e Event) float64 { return e.Price }), byStart),
		"capacity":  listview.Then(listview.Desc(listview.ByNumber(func(e Event) int { return e.Capacity })), byStart),
	},
	DefaultSort: "date",
}

var byStart = listview.ByTime(func(e Event) time.Time { return e.StartsAt })

func ListSpec() listview.Spec[Event] {
	return listSpec
}

// List applies q to all events, or to published ones only for the public
// calendar.
func (s *Service) List(
	ctx context.Context,
	q listview.Query,
	publishedOnly bool,
) (listview.Result[Event], error) {
	items, err := s.events.Items(ctx)
	if err != nil {
		return listview.Result[Event]{}, err
	}

	if publishedOnly {
		visible := make([]Event, 0, len(items))
		for _, e := range items {
			if e.IsPublished {
				visible = append(visible, e)
			}
		}
		items = visible
	}

	return listview.Apply(items, q, listSpec)
}

func (s *Service) Get(ctx context.Context, id string, publishedOnly bool) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if publishedOnly && !e.IsPublished {
		return nil, core.NotFoundError("event")
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*Event, error) {
	e := &Event{ID: uuid.New().String()}
	apply(e, req)

	err := s.events.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateEventRequest) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(e, req)

	if e.Capacity < e.BookedCount {
		return nil, core.ValidationError("capacity is below seats already booked",
			map[string][]string{"capacity": {"must be at least the booked seat count"}})
	}

	err = s.events.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// SetPublished toggles public visibility. Setting the current value writes
// nothing.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.IsPublished == published {
		return e, nil
	}

	e.IsPublished = published
	err = s.events.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.SetPublished(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.events.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *Service) Reserve(ctx context.Context, id string, seats int) (*Event, error) {
	var e *Event
	err := s.events.Mutate(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.repo.Reserve(ctx, id, seats, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Upcoming(ctx context.Context, limit int) ([]Event, error) {
	return s.repo.ListUpcoming(ctx, s.now(), limit)
}

func apply(e *Event, req CreateEventRequest) {
	e.Title = strings.TrimSpace(req.Title)
	e.Description = strings.TrimSpace(req.Description)
	e.Category = strings.TrimSpace(req.Category)
	e.Location = strings.TrimSpace(req.Location)
	e.StartsAt = req.StartsAt.UTC()
	e.EndsAt = req.EndsAt.UTC()
	e.Capacity = req.Capacity.Int()
	e.Price = req.Price.Float64()
	if req.IsPublished != nil {
		e.IsPublished = *req.IsPublished
	}
}
