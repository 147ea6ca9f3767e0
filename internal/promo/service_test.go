// AngelaMos | 2026
// service_test.go

package promo

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
	mu    sync.Mutex
	rows  map[string]*PromoCode
	clock time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]*PromoCode), clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memRepo) Create(_ context.Context, p *PromoCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Code == p.Code {
			return fmt.Errorf("create promo code: %w", core.ErrDuplicateKey)
		}
	}
	m.clock = m.clock.Add(time.Minute)
	p.CreatedAt, p.UpdatedAt = m.clock, m.clock
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get promo code: %w", core.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (m *memRepo) byCode(code string) *PromoCode {
	for _, row := range m.rows {
		if row.Code == code {
			return row
		}
	}
	return nil
}

func (m *memRepo) GetByCode(_ context.Context, code string) (*PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.byCode(code)
	if row == nil {
		return nil, fmt.Errorf("get promo code: %w", core.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (m *memRepo) ListAll(_ context.Context) ([]PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PromoCode, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, p *PromoCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return fmt.Errorf("update promo code: %w", core.ErrNotFound)
	}
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete promo code: %w", core.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) Redeem(_ context.Context, code string, now time.Time) (*PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.byCode(code)
	if row == nil {
		return nil, fmt.Errorf("redeem promo code: %w", core.ErrNotFound)
	}
	if !row.IsActive || !row.InWindow(now) || row.Exhausted() {
		return nil, unavailable(row, now)
	}
	row.UsedCount++
	cp := *row
	return &cp, nil
}

func (m *memRepo) Release(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.byCode(code)
	if row == nil || row.UsedCount == 0 {
		return fmt.Errorf("release promo code: %w", core.ErrNotFound)
	}
	row.UsedCount--
	return nil
}

func (m *memRepo) CountActive(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.rows {
		if row.Status(now) == StatusActive && row.InWindow(now) {
			n++
		}
	}
	return n, nil
}

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	svc := NewService(repo, listview.NewMemoryStore())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func maxUses(n int) *core.FlexInt {
	v := core.FlexInt(n)
	return &v
}

func createCode(t *testing.T, svc *Service, req CreatePromoRequest) *PromoCode {
	t.Helper()
	if req.ValidFrom.IsZero() {
		req.ValidFrom = fixedNow.AddDate(0, -1, 0)
	}
	if req.ValidUntil.IsZero() {
		req.ValidUntil = fixedNow.AddDate(0, 1, 0)
	}
	p, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create %s: %v", req.Code, err)
	}
	return p
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name   string
		promo  PromoCode
		amount float64
		want   float64
	}{
		{"percentage", PromoCode{DiscountType: DiscountPercentage, DiscountValue: 15}, 380, 57},
		{"percentage rounds to cents", PromoCode{DiscountType: DiscountPercentage, DiscountValue: 12.5}, 99.99, 12.5},
		{"fixed", PromoCode{DiscountType: DiscountFixed, DiscountValue: 100}, 320, 100},
		{"fixed capped at amount", PromoCode{DiscountType: DiscountFixed, DiscountValue: 500}, 320, 320},
		{"zero amount", PromoCode{DiscountType: DiscountFixed, DiscountValue: 50}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.promo.Discount(tt.amount); got != tt.want {
				t.Errorf("Discount(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestRedeemRespectsMaxUses(t *testing.T) {
	svc, repo := newTestService()
	createCode(t, svc, CreatePromoRequest{
		Code:          "songkran",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		MaxUses:       maxUses(3),
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, exhausted := 0, 0

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Redeem(context.Background(), "Songkran", 200)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, core.ErrExhausted):
				exhausted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 3 || exhausted != 7 {
		t.Errorf("ok=%d exhausted=%d, want 3 and 7", ok, exhausted)
	}
	if got := repo.byCode("SONGKRAN").UsedCount; got != 3 {
		t.Errorf("used_count = %d, want 3", got)
	}
}

func TestRedeemAndRelease(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	createCode(t, svc, CreatePromoRequest{Code: "LOYAL50", DiscountType: DiscountFixed, DiscountValue: 50})

	q, err := svc.Redeem(ctx, "loyal50", 380)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if q.Discount != 50 || q.FinalAmount != 330 {
		t.Errorf("quote = %+v", q)
	}

	if err := svc.Release(ctx, "LOYAL50"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := repo.byCode("LOYAL50").UsedCount; got != 0 {
		t.Errorf("used_count = %d after release", got)
	}

	result, err := svc.List(ctx, listview.Query{Sort: "usage"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Items[0].UsedCount != 0 {
		t.Errorf("list snapshot not refreshed: %+v", result.Items[0])
	}
}

func TestValidateDoesNotRedeem(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	createCode(t, svc, CreatePromoRequest{Code: "HALAL10", DiscountType: DiscountPercentage, DiscountValue: 10})
	expired := createCode(t, svc, CreatePromoRequest{
		Code:          "NEWYEAR",
		DiscountType:  DiscountPercentage,
		DiscountValue: 20,
		ValidFrom:     fixedNow.AddDate(0, -6, 0),
		ValidUntil:    fixedNow.AddDate(0, -5, 0),
	})
	paused := createCode(t, svc, CreatePromoRequest{Code: "PAUSED", DiscountType: DiscountFixed, DiscountValue: 5})
	if _, err := svc.SetActive(ctx, paused.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	tests := []struct {
		code    string
		wantErr error
	}{
		{code: "halal10"},
		{code: expired.Code, wantErr: ErrExpired},
		{code: "PAUSED", wantErr: ErrInactive},
		{code: "MISSING", wantErr: core.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := svc.Validate(ctx, tt.code, 100)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if got := repo.byCode("HALAL10").UsedCount; got != 0 {
		t.Errorf("validate consumed a use: %d", got)
	}
}

func TestListStatusFilter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	createCode(t, svc, CreatePromoRequest{Code: "LIVE1", DiscountType: DiscountFixed, DiscountValue: 5})
	createCode(t, svc, CreatePromoRequest{
		Code: "OLD1", DiscountType: DiscountFixed, DiscountValue: 5,
		ValidFrom: fixedNow.AddDate(-1, 0, 0), ValidUntil: fixedNow.AddDate(0, -1, 0),
	})
	off := createCode(t, svc, CreatePromoRequest{Code: "OFF1", DiscountType: DiscountFixed, DiscountValue: 5})
	if _, err := svc.SetActive(ctx, off.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	for status, want := range map[string]string{
		StatusActive:   "LIVE1",
		StatusExpired:  "OLD1",
		StatusInactive: "OFF1",
	} {
		result, err := svc.List(ctx, listview.Query{Filters: map[string]string{"status": status}})
		if err != nil {
			t.Fatalf("list %s: %v", status, err)
		}
		if result.Matched != 1 || result.Items[0].Code != want {
			t.Errorf("status %s: got %+v", status, result.Items)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	r := chi.NewRouter()
	h := NewHandler(svc)
	h.RegisterAdminRoutes(r)
	h.RegisterRoutes(r)

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{
			name: "percentage over 100",
			body: `{"code":"BIG","discount_type":"percentage","discount_value":150,` +
				`"valid_from":"2026-06-01T00:00:00Z","valid_until":"2026-07-01T00:00:00Z"}`,
			status: http.StatusBadRequest,
			field:  "discount_value",
		},
		{
			name: "window reversed",
			body: `{"code":"BACK","discount_type":"fixed","discount_value":10,` +
				`"valid_from":"2026-07-01T00:00:00Z","valid_until":"2026-06-01T00:00:00Z"}`,
			status: http.StatusBadRequest,
			field:  "valid_until",
		},
		{
			name: "numeric strings coerced",
			body: `{"code":"FORM10","discount_type":"fixed","discount_value":"10","max_uses":"25",` +
				`"valid_from":"2026-06-01T00:00:00Z","valid_until":"2026-07-01T00:00:00Z"}`,
			status: http.StatusCreated,
			field:  `"max_uses":25`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/promos", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body)
			}
			if !strings.Contains(w.Body.String(), tt.field) {
				t.Errorf("body missing %s: %s", tt.field, w.Body)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/promos/validate",
		strings.NewReader(`{"code":"form10","amount":"320"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"final_amount":310`) {
		t.Errorf("validate: %d %s", w.Code, w.Body)
	}
}
