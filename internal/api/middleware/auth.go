package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"marketplace/internal/common"
	"marketplace/internal/common/security"
)

type contextKey string

const identityCtxKey contextKey = "identity"

const (
	msgNoToken      = "Unauthorized: No token provided"
	msgInvalidToken = "Unauthorized: Invalid or expired token"
)

// Identity is the authenticated caller attached to a request by Authenticator.
type Identity struct {
	UserID string
}

// Verifier reads the session cookie and verifies it against tm. The outcome
// is left in the request context for Authenticator.
func Verifier(tm *security.TokenManager) func(http.Handler) http.Handler {
	return jwtauth.Verify(tm.JWTAuth(), security.TokenFromCookie)
}

// Authenticator rejects requests that Verifier could not authenticate.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			common.RespondWithError(w, http.StatusUnauthorized, msgNoToken)
			return
		}
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// IdentityFromContext returns the caller stored by Authenticator.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(Identity)
	return id, ok && id.UserID != ""
}
