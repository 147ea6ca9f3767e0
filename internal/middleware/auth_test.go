// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carterperez-dev/foodhall/internal/config"
	"github.com/carterperez-dev/foodhall/internal/core"
)

type stubVerifier map[string]*AccessTokenClaims

func (s stubVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*AccessTokenClaims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, core.ErrTokenExpired
}

func newTestGuard() *Guard {
	return NewGuard(stubVerifier{
		"admin-token":  {UserID: "u-admin", Role: core.RoleAdmin},
		"tenant-token": {UserID: "u-tenant", Role: core.RoleTenant},
		"guest-token":  {UserID: "u-guest", Role: core.RoleGuest},
	}, config.AuthConfig{LoginPath: "/login", ForbiddenPath: "/"})
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(GetUserID(r.Context())))
}

func TestGuardSections(t *testing.T) {
	g := newTestGuard()

	tenantSection := g.Authenticator(g.RequireTenant(http.HandlerFunc(okHandler)))
	adminSection := g.Authenticator(g.RequireAdmin(http.HandlerFunc(okHandler)))

	tests := []struct {
		name     string
		handler  http.Handler
		token    string
		accept   string
		status   int
		location string
	}{
		{
			name:    "tenant allowed in tenant section",
			handler: tenantSection,
			token:   "tenant-token",
			status:  http.StatusOK,
		},
		{
			name:    "admin allowed in tenant section",
			handler: tenantSection,
			token:   "admin-token",
			status:  http.StatusOK,
		},
		{
			name:    "guest forbidden as json",
			handler: tenantSection,
			token:   "guest-token",
			status:  http.StatusForbidden,
		},
		{
			name:     "guest redirected to forbidden page from browser",
			handler:  adminSection,
			token:    "guest-token",
			accept:   "text/html,application/xhtml+xml",
			status:   http.StatusSeeOther,
			location: "/",
		},
		{
			name:    "anonymous api call is unauthorized",
			handler: adminSection,
			status:  http.StatusUnauthorized,
		},
		{
			name:     "anonymous browser is sent to login",
			handler:  adminSection,
			accept:   "text/html",
			status:   http.StatusSeeOther,
			location: "/login?next=%2Fv1%2Fadmin%2Fbookings",
		},
		{
			name:    "expired token is unauthorized",
			handler: adminSection,
			token:   "stale",
			status:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/admin/bookings", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()

			tt.handler.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body)
			}
			if tt.location != "" && w.Header().Get("Location") != tt.location {
				t.Errorf("location = %q, want %q", w.Header().Get("Location"), tt.location)
			}
		})
	}
}

func TestGuardExpiredTokenCode(t *testing.T) {
	g := newTestGuard()
	h := g.Authenticator(http.HandlerFunc(okHandler))

	r := httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil)
	r.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if !strings.Contains(w.Body.String(), "TOKEN_EXPIRED") {
		t.Errorf("expected TOKEN_EXPIRED code, got %s", w.Body)
	}
}

func TestOptionalAuth(t *testing.T) {
	g := newTestGuard()
	h := g.OptionalAuth(http.HandlerFunc(okHandler))

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"no token", "", ""},
		{"valid token", "tenant-token", "u-tenant"},
		{"invalid token ignored", "bogus", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != http.StatusOK || w.Body.String() != tt.want {
				t.Errorf("got %d %q, want 200 %q", w.Code, w.Body.String(), tt.want)
			}
		})
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		method string
		header string
		cookie string
		want   string
	}{
		{"bearer", http.MethodGet, "Bearer abc", "", "abc"},
		{"lowercase scheme", http.MethodGet, "bearer abc", "", "abc"},
		{"basic ignored", http.MethodGet, "Basic abc", "", ""},
		{"cookie fallback", http.MethodGet, "", "xyz", "xyz"},
		{"cookie on head", http.MethodHead, "", "xyz", "xyz"},
		{"cookie ignored on post", http.MethodPost, "", "xyz", ""},
		{"cookie ignored on delete", http.MethodDelete, "", "xyz", ""},
		{"bearer on post", http.MethodPost, "Bearer abc", "xyz", "abc"},
		{"none", http.MethodGet, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGuardCookieOnlyCoversNavigation(t *testing.T) {
	g := newTestGuard()
	adminSection := g.Authenticator(g.RequireAdmin(http.HandlerFunc(okHandler)))

	tests := []struct {
		name   string
		method string
		ctype  string
		status int
	}{
		{"page load", http.MethodGet, "", http.StatusOK},
		{"cross-site form post", http.MethodPost, "text/plain", http.StatusUnauthorized},
		{"json put", http.MethodPut, "application/json", http.StatusUnauthorized},
		{"delete", http.MethodDelete, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/v1/admin/promos", strings.NewReader(`{"code":"FREE"}`))
			r.AddCookie(&http.Cookie{Name: "access_token", Value: "admin-token"})
			if tt.ctype != "" {
				r.Header.Set("Content-Type", tt.ctype)
			}
			w := httptest.NewRecorder()

			adminSection.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body)
			}
		})
	}
}

func TestKeyByUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:5100"

	if got := KeyByUser(r); got != "ratelimit:ip:203.0.113.7" {
		t.Errorf("anonymous key = %q", got)
	}

	r = r.WithContext(WithUser(r.Context(), "u-tenant", core.RoleTenant))
	if got := KeyByUser(r); got != "ratelimit:user:u-tenant" {
		t.Errorf("user key = %q", got)
	}
}
