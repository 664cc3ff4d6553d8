package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/staffdir/staffdir/internal/api/response"
	"github.com/staffdir/staffdir/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that reads the raw token from the Authorization header
// and resolves it to an Identity via the auth service. The three verification
// failures keep their distinct messages so clients can tell a missing token
// from an unknown or expired one.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")

			identity, err := authService.Verify(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenMissing):
					response.Message(w, http.StatusUnauthorized, "token not provided")
				case errors.Is(err, auth.ErrTokenExpired):
					response.Message(w, http.StatusUnauthorized, "token expired")
				default:
					response.Message(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
