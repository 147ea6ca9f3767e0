// AngelaMos | 2026
// service_test.go

package profile

import (
	"context"
	"encoding/json"
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
	"github.com/carterperez-dev/foodhall/internal/middleware"
)

type memRepo struct {
	mu      sync.Mutex
	rows    map[string]*Profile
	updates int
	clock   time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		rows:  make(map[string]*Profile),
		clock: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memRepo) Create(_ context.Context, p *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Email == p.Email && existing.DeletedAt == nil {
			return fmt.Errorf("create profile: %w", core.ErrDuplicateKey)
		}
	}
	p.IsActive = true
	p.CreatedAt = m.tick()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memRepo) live(id string) (*Profile, error) {
	p, ok := m.rows[id]
	if !ok || p.DeletedAt != nil {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	return p, nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.live(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.Email == email && p.DeletedAt == nil {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get profile by email: %w", core.ErrNotFound)
}

func (m *memRepo) ListAll(_ context.Context) ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Profile
	for _, p := range m.rows {
		if p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, p *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, err := m.live(p.ID)
	if err != nil {
		return err
	}
	m.updates++
	p.UpdatedAt = m.tick()
	row.Name, row.Phone, row.Role, row.IsActive, row.UpdatedAt =
		p.Name, p.Phone, p.Role, p.IsActive, p.UpdatedAt
	return nil
}

func (m *memRepo) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, err := m.live(id)
	if err != nil {
		return err
	}
	row.PasswordHash = hash
	return nil
}

func (m *memRepo) IncrementTokenVersion(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, err := m.live(id)
	if err != nil {
		return err
	}
	row.TokenVersion++
	return nil
}

func (m *memRepo) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, err := m.live(id)
	if err != nil {
		return err
	}
	now := m.tick()
	row.DeletedAt = &now
	return nil
}

func seed(t *testing.T, svc *Service, name, email, role string) *Profile {
	t.Helper()
	p := &Profile{Name: name, Email: email, Role: role}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	return p
}

func TestListFiltersAndSorts(t *testing.T) {
	svc := NewService(newMemRepo(), listview.NewMemoryStore())
	ctx := context.Background()

	seed(t, svc, "Wanida", "wanida@example.com", core.RoleTenant)
	seed(t, svc, "Arthit", "arthit@example.com", core.RoleInvestor)
	kanya := seed(t, svc, "Kanya", "kanya@example.com", core.RoleTenant)

	if _, err := svc.SetActive(ctx, kanya.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	tests := []struct {
		name  string
		query listview.Query
		want  []string
	}{
		{
			name:  "default newest first",
			query: listview.Query{},
			want:  []string{"Kanya", "Arthit", "Wanida"},
		},
		{
			name:  "by name",
			query: listview.Query{Sort: "name"},
			want:  []string{"Arthit", "Kanya", "Wanida"},
		},
		{
			name:  "tenants",
			query: listview.Query{Filters: map[string]string{"role": "tenant"}, Sort: "oldest"},
			want:  []string{"Wanida", "Kanya"},
		},
		{
			name: "active tenants",
			query: listview.Query{Filters: map[string]string{
				"role":   "tenant",
				"status": "active",
			}},
			want: []string{"Wanida"},
		},
		{
			name:  "search email",
			query: listview.Query{Search: "ARTHIT@"},
			want:  []string{"Arthit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.List(ctx, tt.query)
			if err != nil {
				t.Fatalf("list: %v", err)
			}

			var got []string
			for _, p := range result.Items {
				got = append(got, p.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if result.Total != 3 {
				t.Errorf("total = %d, want 3", result.Total)
			}
		})
	}
}

func TestSetActiveIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, listview.NewMemoryStore())
	ctx := context.Background()

	p := seed(t, svc, "Nok", "nok@example.com", core.RoleGuest)

	first, err := svc.SetActive(ctx, p.ID, true)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if repo.updates != 0 {
		t.Errorf("same state wrote %d times", repo.updates)
	}
	if !first.UpdatedAt.Equal(p.UpdatedAt) {
		t.Errorf("updated_at changed on no-op")
	}

	if _, err := svc.SetActive(ctx, p.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if repo.updates != 1 {
		t.Errorf("updates = %d, want 1", repo.updates)
	}
}

func TestSetRoleBumpsTokenVersion(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, listview.NewMemoryStore())
	ctx := context.Background()

	p := seed(t, svc, "Ploy", "ploy@example.com", core.RoleGuest)

	if _, err := svc.SetRole(ctx, p.ID, "superuser"); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected invalid role, got %v", err)
	}

	if _, err := svc.SetRole(ctx, p.ID, core.RoleTenant); err != nil {
		t.Fatalf("set role: %v", err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Role != core.RoleTenant || got.TokenVersion != 1 {
		t.Errorf("role=%s version=%d", got.Role, got.TokenVersion)
	}
}

func TestAccountStore(t *testing.T) {
	svc := NewService(newMemRepo(), listview.NewMemoryStore())
	accounts := NewAccountStore(svc)
	ctx := context.Background()

	seed(t, svc, "Dao", "dao@example.com", core.RoleTenant)

	account, err := accounts.GetByEmail(ctx, "DAO@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if !account.IsActive || account.Role != core.RoleTenant {
		t.Errorf("unexpected account %+v", account)
	}

	result, err := svc.List(ctx, listview.Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Matched != 1 {
		t.Errorf("new profile missing from list: %d", result.Matched)
	}
}

func TestAdminHandlers(t *testing.T) {
	svc := NewService(newMemRepo(), listview.NewMemoryStore())
	admin := seed(t, svc, "Admin", "admin@example.com", core.RoleAdmin)
	other := seed(t, svc, "Other Admin", "other@example.com", core.RoleAdmin)
	tenant := seed(t, svc, "Tenant", "tenant@example.com", core.RoleTenant)

	r := chi.NewRouter()
	NewHandler(svc).RegisterAdminRoutes(r)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req = req.WithContext(middleware.WithUser(req.Context(), admin.ID, core.RoleAdmin))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"list", http.MethodGet, "/profiles?role=admin", "", http.StatusOK},
		{"unknown sort", http.MethodGet, "/profiles?sort=shoe_size", "", http.StatusBadRequest},
		{"misspelt filter", http.MethodGet, "/profiles?rol=admin", "", http.StatusBadRequest},
		{"bad role", http.MethodPut, "/profiles/" + tenant.ID + "/role", `{"role":"owner"}`, http.StatusBadRequest},
		{"missing active flag", http.MethodPut, "/profiles/" + tenant.ID + "/active", `{}`, http.StatusBadRequest},
		{"deactivate", http.MethodPut, "/profiles/" + tenant.ID + "/active", `{"is_active":false}`, http.StatusOK},
		{"cannot delete admin", http.MethodDelete, "/profiles/" + other.ID, "", http.StatusForbidden},
		{"delete tenant", http.MethodDelete, "/profiles/" + tenant.ID, "", http.StatusNoContent},
		{"deleted is gone", http.MethodGet, "/profiles/" + tenant.ID, "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(tt.method, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body)
			}
		})
	}

	w := do(http.MethodGet, "/profiles?role=admin&sort=name", "")
	var resp struct {
		Data []ProfileResponse `json:"data"`
		Meta struct {
			Matched int `json:"matched"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Meta.Matched != 2 || resp.Data[0].Name != "Admin" {
		t.Errorf("unexpected admin listing %+v", resp)
	}
}
