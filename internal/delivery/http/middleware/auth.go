package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "bookingcalendar/internal/delivery/http/helpers"
	"bookingcalendar/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

var (
	errNoAuthorization = errors.New("missing authorization header")
	errNotBearer       = errors.New("invalid authorization format")
	errEmptyToken      = errors.New("missing token")
)

// SetUserID stores the caller's user id for handlers behind RequireAuth.
func SetUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext is false for requests that never passed RequireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>" value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoAuthorization
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errNotBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyToken
	}
	return token, nil
}

// RequireAuth gates calendar routes on a verified JWT. Rejected requests get a 401 envelope
// and never reach next; the verifier's reason is only logged at debug level.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected",
					"request_id", RequestIDFromContext(r.Context()),
					"err", err,
				)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetUserID(r.Context(), userID)))
		}
	}
}
