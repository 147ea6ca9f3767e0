// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		deps   []Dependency
		status int
		body   string
	}{
		{
			name: "all healthy",
			deps: []Dependency{
				{Name: "database", Checker: CheckerFunc(up)},
				{Name: "redis", Checker: CheckerFunc(up)},
			},
			status: http.StatusOK,
			body:   "ok",
		},
		{
			name: "required dependency down",
			deps: []Dependency{
				{Name: "database", Checker: CheckerFunc(down)},
				{Name: "redis", Checker: CheckerFunc(up)},
			},
			status: http.StatusServiceUnavailable,
			body:   "degraded",
		},
		{
			name: "optional dependency down",
			deps: []Dependency{
				{Name: "database", Checker: CheckerFunc(up)},
				{Name: "nats", Checker: CheckerFunc(down), Optional: true},
			},
			status: http.StatusOK,
			body:   "degraded",
		},
		{
			name:   "unconfigured checker",
			deps:   []Dependency{{Name: "database"}},
			status: http.StatusServiceUnavailable,
			body:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.deps...)
			w := httptest.NewRecorder()
			h.Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}

			var resp ReadinessResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.body {
				t.Errorf("status field = %q, want %q", resp.Status, tt.body)
			}
			if len(resp.Checks) != len(tt.deps) {
				t.Errorf("got %d checks, want %d", len(resp.Checks), len(tt.deps))
			}
		})
	}
}

func TestShutdownFailsProbes(t *testing.T) {
	h := NewHandler(Dependency{Name: "database", Checker: CheckerFunc(up)})
	h.SetShutdown(true)

	for _, probe := range []http.HandlerFunc{h.Liveness, h.Readiness} {
		w := httptest.NewRecorder()
		probe(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	}
}
