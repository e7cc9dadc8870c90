package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sakif/bookie/internal/model"
)

// CookieName is the HttpOnly cookie that carries the JWT.
const CookieName = "token"

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID       int64
	SessionToken string
	Role         model.Role
}

// Resolver turns a raw JWT into an Identity. The auth service implements
// it, adding the open-session check to the signature check.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// contextKey is unexported so no other package can read or shadow the
// identity stored in a request context.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth rejects requests without a valid, open-session token with
// 401. Otherwise it stores the Identity in the request context.
func RequireAuth(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				deny(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
				return
			}
			id, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				deny(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole must run after RequireAuth. It answers 403 unless the caller
// has the given role.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
				return
			}
			if id.Role != role {
				deny(w, http.StatusForbidden, "forbidden", fmt.Sprintf("%s role required", role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller stored by RequireAuth, or
// (nil, false) on an anonymous request.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// TokenFromRequest reads the JWT from the "token" cookie, falling back to
// an "Authorization: Bearer" header for non-browser clients.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func deny(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": message})
}
