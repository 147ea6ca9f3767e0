// AngelaMos | 2026
// service_test.go

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/foodhall/internal/booking"
	"github.com/carterperez-dev/foodhall/internal/document"
	"github.com/carterperez-dev/foodhall/internal/event"
)

type fakeBookings struct {
	rows []booking.StatusCount
	err  error
}

func (f fakeBookings) CountByStatus(context.Context) ([]booking.StatusCount, error) {
	return f.rows, f.err
}

type fakeCount struct {
	n   int
	err error
}

func (f fakeCount) CountPending(context.Context) (int, error) { return f.n, f.err }
func (f fakeCount) CountActive(context.Context) (int, error)  { return f.n, f.err }

type fakeEvents []event.Event

func (f fakeEvents) Upcoming(_ context.Context, limit int) ([]event.Event, error) {
	if len(f) > limit {
		return f[:limit], nil
	}
	return f, nil
}

type blockingEvents struct{}

func (blockingEvents) Upcoming(ctx context.Context, _ int) ([]event.Event, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type fakeDocuments []document.BucketCount

func (f fakeDocuments) CountByBucket(context.Context) ([]document.BucketCount, error) {
	return f, nil
}

func sources() Sources {
	return Sources{
		Bookings: fakeBookings{rows: []booking.StatusCount{
			{Status: booking.StatusConfirmed, Count: 3, Amount: 960},
			{Status: booking.StatusPending, Count: 2, Amount: 400},
		}},
		Applications: fakeCount{n: 4},
		Events: fakeEvents{
			{ID: "e1", Title: "Sambal Night", Capacity: 40, BookedCount: 35},
			{ID: "e2", Title: "Noodle Lab", Capacity: 12, BookedCount: 0},
		},
		Promos: fakeCount{n: 2},
		Documents: fakeDocuments{
			{Bucket: "contracts", Count: 3, Bytes: 3000},
			{Bucket: "vendor-documents", Count: 1, Bytes: 500},
		},
	}
}

func TestSummary(t *testing.T) {
	svc := NewService(sources())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if got.Bookings.Total != 5 || got.Bookings.ConfirmedRevenue != 960 {
		t.Errorf("bookings = %+v", got.Bookings)
	}
	if got.Bookings.ByStatus[booking.StatusCancelled] != 0 || got.Bookings.ByStatus[booking.StatusPending] != 2 {
		t.Errorf("by status = %v", got.Bookings.ByStatus)
	}
	if got.PendingApplications != 4 || got.ActivePromos != 2 {
		t.Errorf("pending = %d, promos = %d", got.PendingApplications, got.ActivePromos)
	}
	if len(got.UpcomingEvents) != 2 || got.UpcomingEvents[0].SeatsLeft != 5 {
		t.Errorf("upcoming = %+v", got.UpcomingEvents)
	}
	if got.Documents == nil || got.Documents.Total != 4 || got.Documents.Bytes != 3500 {
		t.Errorf("documents = %+v", got.Documents)
	}
}

func TestInvestorSummaryOmitsDocuments(t *testing.T) {
	src := sources()
	src.Documents = nil

	got, err := NewService(src).InvestorSummary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.Documents != nil {
		t.Errorf("investor view exposed documents: %+v", got.Documents)
	}
}

func TestSummaryFailureCancelsSiblings(t *testing.T) {
	src := sources()
	src.Bookings = fakeBookings{err: errors.New("connection refused")}
	src.Events = blockingEvents{}

	done := make(chan error, 1)
	go func() {
		_, err := NewService(src).Summary(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("summary did not return after a failed query")
	}
}

func TestHandlers(t *testing.T) {
	h := NewHandler(NewService(sources()))

	r := chi.NewRouter()
	r.Route("/admin", h.RegisterAdminRoutes)
	r.Route("/investors", h.RegisterInvestorRoutes)

	tests := []struct {
		path          string
		wantDocuments bool
	}{
		{"/admin/dashboard", true},
		{"/investors/dashboard", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}

			var body struct {
				Data map[string]json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, ok := body.Data["documents"]; ok != tt.wantDocuments {
				t.Errorf("documents present = %v, want %v", ok, tt.wantDocuments)
			}
		})
	}
}
