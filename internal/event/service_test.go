// AngelaMos | 2026
// service_test.go

package event

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
)

type memRepo struct {
	mu     sync.Mutex
	rows   map[string]*Event
	clock  time.Time
	writes int
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]*Event), clock: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) Create(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (m *memRepo) ListAll(_ context.Context) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[e.ID]; !ok {
		return fmt.Errorf("update event: %w", core.ErrNotFound)
	}
	m.writes++
	e.UpdatedAt = m.tick()
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memRepo) SetPublished(ctx context.Context, e *Event) error {
	return m.Update(ctx, e)
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete event: %w", core.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) Reserve(_ context.Context, id string, seats int, now time.Time) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	if !row.IsPublished || !now.Before(row.StartsAt) || row.BookedCount+seats > row.Capacity {
		return nil, refusal(row, seats, now)
	}
	row.BookedCount += seats
	cp := *row
	return &cp, nil
}

func (m *memRepo) ListUpcoming(_ context.Context, now time.Time, limit int) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, row := range m.rows {
		if row.IsPublished && row.StartsAt.After(now) {
			out = append(out, *row)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	svc := NewService(repo, listview.NewMemoryStore())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func published() *bool {
	v := true
	return &v
}

func createEvent(t *testing.T, svc *Service, title string, startIn time.Duration, capacity int, pub bool) *Event {
	t.Helper()
	req := CreateEventRequest{
		Title:    title,
		Category: "tasting",
		Location: "Main hall",
		StartsAt: fixedNow.Add(startIn),
		EndsAt:   fixedNow.Add(startIn + 2*time.Hour),
		Capacity: core.FlexInt(capacity),
		Price:    500,
	}
	if pub {
		req.IsPublished = published()
	}
	e, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create %s: %v", title, err)
	}
	return e
}

func TestReserveNeverOversells(t *testing.T) {
	svc, repo := newTestService()
	e := createEvent(t, svc, "Street food night", 48*time.Hour, 10, true)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, soldOut := 0, 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), e.ID, 3)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrSoldOut):
				soldOut++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 3 || soldOut != 5 {
		t.Errorf("ok=%d sold out=%d, want 3 and 5", ok, soldOut)
	}
	if got := repo.rows[e.ID].BookedCount; got != 9 {
		t.Errorf("booked = %d, want 9", got)
	}
}

func TestReserveRefusals(t *testing.T) {
	svc, _ := newTestService()
	draft := createEvent(t, svc, "Draft", 24*time.Hour, 10, false)
	past := createEvent(t, svc, "Yesterday", -24*time.Hour, 10, true)
	small := createEvent(t, svc, "Chef table", 24*time.Hour, 2, true)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)

	tests := []struct {
		name   string
		id     string
		body   string
		status int
	}{
		{"unpublished", draft.ID, `{"seats":1}`, http.StatusNotFound},
		{"started", past.ID, `{"seats":1}`, http.StatusConflict},
		{"oversell", small.ID, `{"seats":"3"}`, http.StatusConflict},
		{"zero seats", small.ID, `{"seats":0}`, http.StatusBadRequest},
		{"fits", small.ID, `{"seats":2}`, http.StatusOK},
		{"missing", "nope", `{"seats":1}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events/"+tt.id+"/reserve",
				strings.NewReader(tt.body)))
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body)
			}
		})
	}
}

func TestPublicListHidesDrafts(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	createEvent(t, svc, "Songkran feast", 72*time.Hour, 80, true)
	draft := createEvent(t, svc, "Secret supper", 24*time.Hour, 12, false)
	createEvent(t, svc, "Durian tasting", 24*time.Hour, 30, true)

	result, err := svc.List(ctx, listview.Query{}, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, e := range result.Items {
		got = append(got, e.Title)
	}
	if strings.Join(got, ",") != "Durian tasting,Songkran feast" {
		t.Errorf("public = %v", got)
	}

	if _, err := svc.SetPublished(ctx, draft.ID, false); err != nil {
		t.Fatalf("no-op publish: %v", err)
	}
	if repo.writes != 0 {
		t.Errorf("no-op publish wrote %d times", repo.writes)
	}
	if _, err := svc.SetPublished(ctx, draft.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}

	result, err = svc.List(ctx, listview.Query{Sort: "capacity"}, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Matched != 3 || result.Items[0].Title != "Songkran feast" || result.Items[2].Title != "Secret supper" {
		t.Errorf("after publish = %+v", result.Items)
	}
}

func TestUpdateRejectsCapacityBelowBooked(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	e := createEvent(t, svc, "Cooking class", 24*time.Hour, 10, true)
	if _, err := svc.Reserve(ctx, e.ID, 6); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	req := CreateEventRequest{
		Title:       e.Title,
		Category:    e.Category,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    4,
		IsPublished: published(),
	}
	_, err := svc.Update(ctx, e.ID, req)
	appErr, ok := core.AsAppError(err)
	if !ok || appErr.Kind != core.KindValidation || appErr.Fields["capacity"] == nil {
		t.Fatalf("err = %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	r := chi.NewRouter()
	NewHandler(svc).RegisterAdminRoutes(r)

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"ends before start", `{"title":"T","category":"c","starts_at":"2026-07-01T18:00:00Z",` +
			`"ends_at":"2026-07-01T17:00:00Z","capacity":10}`, http.StatusBadRequest, `"ends_at"`},
		{"zero capacity", `{"title":"T","category":"c","starts_at":"2026-07-01T18:00:00Z",` +
			`"ends_at":"2026-07-01T20:00:00Z","capacity":0}`, http.StatusBadRequest, `"capacity"`},
		{"valid", `{"title":"Wine pairing","category":"tasting","starts_at":"2026-07-01T18:00:00Z",` +
			`"ends_at":"2026-07-01T20:00:00Z","capacity":"24","price":"1200"}`, http.StatusCreated, `"seats_left":24`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body)))
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body missing %s: %s", tt.want, w.Body)
			}
		})
	}
}
