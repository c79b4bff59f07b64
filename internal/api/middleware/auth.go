package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rrens/shoplist/internal/api/response"
)

type contextKey string

const ListIDKey contextKey = "listID"

// TokenResolver maps a bearer token to the list it grants access to.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (int64, bool, error)
}

// AuthMiddleware handles bearer token authentication
type AuthMiddleware struct {
	resolver TokenResolver
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate resolves the bearer token and scopes the request to its list.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		listID, ok, err := m.resolver.Resolve(r.Context(), parts[1])
		if err != nil {
			response.InternalError(w, "failed to verify token")
			return
		}
		if !ok {
			response.Unauthorized(w, "invalid or revoked token")
			return
		}

		ctx := context.WithValue(r.Context(), ListIDKey, listID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetListID gets the authenticated list ID from context
func GetListID(ctx context.Context) (int64, bool) {
	listID, ok := ctx.Value(ListIDKey).(int64)
	return listID, ok
}
