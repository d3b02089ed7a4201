package http

import (
	"context"
	"net/http"
	"strings"

	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// IdentityMiddleware resolves an optional verified identity from a bearer
// token. Absent or invalid tokens leave the request anonymous; the admin and
// browsing surfaces own access control, this core only consumes the identity.
func IdentityMiddleware(verifier security.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token := strings.TrimPrefix(header, "Bearer ")
				claims, err := verifier.Verify(token)
				if err != nil {
					logger.Debug("bearer token rejected, treating request as guest", "error", err)
				} else {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// userIDFrom returns the verified user id of the request, or nil for guests.
func userIDFrom(ctx context.Context) *int32 {
	claims, ok := ctx.Value(claimsKey).(*security.Claims)
	if !ok || claims.UserID == 0 {
		return nil
	}
	id := claims.UserID
	return &id
}

func claimsFrom(ctx context.Context) *security.Claims {
	claims, _ := ctx.Value(claimsKey).(*security.Claims)
	return claims
}
