// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carterperez-dev/foodhall/internal/config"
	"github.com/carterperez-dev/foodhall/internal/core"
)

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
	ClaimsKey   contextKey = "jwt_claims"

	accessTokenCookie = "access_token"
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

type AccessTokenClaims struct {
	ID           string
	UserID       string
	Role         string
	TokenVersion int
	ExpiresAt    time.Time
}

// Guard authenticates requests and enforces role sections. Browsers that
// ask for HTML are redirected to the login or forbidden page; API clients
// receive a JSON 401 or 403.
type Guard struct {
	verifier      TokenVerifier
	loginPath     string
	forbiddenPath string
}

func NewGuard(verifier TokenVerifier, cfg config.AuthConfig) *Guard {
	g := &Guard{
		verifier:      verifier,
		loginPath:     cfg.LoginPath,
		forbiddenPath: cfg.ForbiddenPath,
	}
	if g.loginPath == "" {
		g.loginPath = "/login"
	}
	if g.forbiddenPath == "" {
		g.forbiddenPath = "/"
	}
	return g
}

func (g *Guard) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)

		if token == "" {
			g.deny(w, r, core.UnauthorizedError("missing authorization token"))
			return
		}

		claims, err := g.verifier.VerifyAccessToken(r.Context(), token)
		if err != nil {
			g.deny(w, r, authError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (g *Guard) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := ExtractToken(r); token != "" {
			claims, err := g.verifier.VerifyAccessToken(r.Context(), token)
			if err == nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Guard) RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetUserRole(r.Context())

			if userRole == "" {
				g.deny(w, r, core.UnauthorizedError("authentication required"))
				return
			}

			if _, ok := roleSet[userRole]; !ok {
				g.deny(w, r, core.ForbiddenError("insufficient permissions"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return g.RequireRole(core.RoleAdmin)(next)
}

func (g *Guard) RequireTenant(next http.Handler) http.Handler {
	return g.RequireRole(core.RoleTenant, core.RoleAdmin)(next)
}

func (g *Guard) RequireInvestor(next http.Handler) http.Handler {
	return g.RequireRole(core.RoleInvestor, core.RoleAdmin)(next)
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, appErr *core.AppError) {
	if !wantsHTML(r) {
		core.JSONError(w, appErr)
		return
	}

	switch appErr.Kind {
	case core.KindUnauthorized:
		target := g.loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusSeeOther)
	case core.KindForbidden:
		http.Redirect(w, r, g.forbiddenPath, http.StatusSeeOther)
	default:
		core.JSONError(w, appErr)
	}
}

// wantsHTML reports a browser navigation, as opposed to an API call.
func wantsHTML(r *http.Request) bool {
	if !isSafeMethod(r.Method) {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func withClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ExtractToken reads a bearer token, falling back to the access token cookie
// browsers carry on page navigations. The cookie is never honoured on
// state-changing methods, which must present the bearer header.
func ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}

	if !isSafeMethod(r.Method) {
		return ""
	}

	if c, err := r.Cookie(accessTokenCookie); err == nil {
		return c.Value
	}

	return ""
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func authError(err error) *core.AppError {
	if appErr, ok := core.AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		return core.TokenExpiredError()
	case errors.Is(err, core.ErrTokenRevoked):
		return core.TokenRevokedError()
	case core.IsRetryable(err):
		return core.FromError(err, "session")
	default:
		return core.TokenInvalidError()
	}
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == core.RoleAdmin
}

// WithUser attaches an identity to ctx. Handlers under test use it in place
// of a signed token.
func WithUser(ctx context.Context, userID, role string) context.Context {
	return withClaims(ctx, &AccessTokenClaims{UserID: userID, Role: role})
}
