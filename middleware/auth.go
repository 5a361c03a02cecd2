package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-shop/models"
	"go-shop/services"
)

// Key type for context
type contextKey string

const (
	// ClaimsContextKey holds the authenticated *services.Claims.
	ClaimsContextKey = contextKey("claims")
	// TokenContextKey holds the raw bearer token string (logout needs it).
	TokenContextKey = contextKey("token")
)

// Auth guards routes with bearer-token authentication.
type Auth struct {
	tokens services.TokenService
}

// NewAuth returns middleware bound to the given token service.
func NewAuth(tokens services.TokenService) *Auth {
	return &Auth{tokens: tokens}
}

// Authenticate verifies the Authorization header and attaches claims and
// the raw token to the request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			http.Error(w, "Missing or malformed Authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := a.tokens.Authenticate(r.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, services.ErrTokenExpired) &&
				!errors.Is(err, services.ErrTokenInvalid) &&
				!errors.Is(err, services.ErrTokenRevoked) {
				status = http.StatusInternalServerError
			}
			http.Error(w, err.Error(), status)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin claims. Must run after Authenticate.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || a.tokens.RequireRole(claims, models.RoleAdmin) != nil {
			http.Error(w, "Forbidden: admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom extracts the authenticated claims from a request context.
func ClaimsFrom(ctx context.Context) (*services.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*services.Claims)
	return claims, ok
}

// TokenFrom extracts the raw bearer token from a request context.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenContextKey).(string)
	return token, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
