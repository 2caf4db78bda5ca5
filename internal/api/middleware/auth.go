package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crestline-labs/supportdesk/internal/api"
	"github.com/crestline-labs/supportdesk/internal/domain"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// TokenVerifier resolves a bearer token into an authenticated principal.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.Principal, error)
}

// BearerAuth authenticates requests with a JWT bearer token and injects the
// resulting Principal into the request context.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				api.Error(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			principal, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				api.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose principal does not hold one of the
// given roles. Must run after BearerAuth.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil {
				api.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !allowed[principal.Role] {
				api.HandleError(w, domain.ErrRoleNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal returns the authenticated principal from context, or nil.
func GetPrincipal(ctx context.Context) *domain.Principal {
	principal, _ := ctx.Value(PrincipalKey).(*domain.Principal)
	return principal
}
