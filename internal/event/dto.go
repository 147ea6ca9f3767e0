// AngelaMos | 2026
// dto.go

package event

import (
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type CreateEventRequest struct {
	Title       string         `json:"title"        validate:"required,max=200"`
	Description string         `json:"description"  validate:"max=4000"`
	Category    string         `json:"category"     validate:"required,max=64"`
	Location    string         `json:"location"     validate:"max=200"`
	StartsAt    time.Time      `json:"starts_at"    validate:"required"`
	EndsAt      time.Time      `json:"ends_at"      validate:"required,gtfield=StartsAt"`
	Capacity    core.FlexInt   `json:"capacity"     validate:"gte=1,lte=100000"`
	Price       core.FlexFloat `json:"price"        validate:"gte=0"`
	IsPublished *bool          `json:"is_published"`
}

type UpdateEventRequest = CreateEventRequest

type PublishRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}

type ReserveRequest struct {
	Seats core.FlexInt `json:"seats" validate:"gte=1,lte=50"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"booked_count"`
	SeatsLeft   int       `json:"seats_left"`
	Price       float64   `json:"price"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		BookedCount: e.BookedCount,
		SeatsLeft:   e.SeatsLeft(),
		Price:       e.Price,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToEventResponseList(items []Event) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for i := range items {
		out = append(out, ToEventResponse(&items[i]))
	}
	return out
}
