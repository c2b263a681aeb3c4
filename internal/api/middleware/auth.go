package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/mahjong-scoreboard/internal/api/apierr"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
)

type contextKey string

const adminIDContextKey contextKey = "admin_id"

// TokenValidator verifies a bearer token and returns the admin ID it names
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// Ensure the auth service can guard routes
var _ TokenValidator = (*auth.Service)(nil)

// Auth creates middleware that rejects requests without a valid bearer token.
// Every token failure produces the same response.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			adminID, err := validator.ValidateToken(token)
			if err != nil {
				apierr.WriteError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminIDContextKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetAdminID returns the authenticated admin ID from the request context
func GetAdminID(ctx context.Context) string {
	adminID, _ := ctx.Value(adminIDContextKey).(string)
	return adminID
}
