package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
)

// UserChecker reports whether a user still exists. A token outlives the
// account it was issued for, so RequireAuth checks on every request.
type UserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// RequireAuth is a chi middleware that enforces bearer token authentication.
// It reads "Authorization: Bearer <token>", verifies it, confirms the user
// still exists and injects the user ID into the request context.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(tokens *TokenManager, users UserChecker, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				log.WarnContext(r.Context(), "rejected bearer token", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "Token invalid")
				return
			}

			exists, err := users.Exists(r.Context(), userID)
			if err != nil {
				log.ErrorContext(r.Context(), "user lookup failed during auth", "user_id", userID, "error", err)
				httpx.JSONError(w, http.StatusInternalServerError, "Server error")
				return
			}
			if !exists {
				httpx.JSONError(w, http.StatusUnauthorized, "User not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
