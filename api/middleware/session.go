package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ozanakin/carsi-storefront/pkg/logger"
)

type contextKey string

const (
	sessionContextKey contextKey = "session_key"

	sessionHeader = "X-Session-Key"
	sessionCookie = "carsi_session"
	sessionMaxAge = 180 * 24 * time.Hour
)

// Session resolves the anonymous storefront session: header first, cookie
// second, and a fresh key when neither is present. The key is echoed back on
// both header and cookie so clients stay pinned to one cart.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(sessionHeader)
			if key == "" {
				if cookie, err := r.Cookie(sessionCookie); err == nil {
					key = cookie.Value
				}
			}
			if key == "" {
				key = uuid.NewString()
			}

			w.Header().Set(sessionHeader, key)
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    key,
				Path:     "/",
				MaxAge:   int(sessionMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionContextKey, key)
			if logg != nil {
				ctx = logg.WithSessionKey(ctx, key)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionKey returns the session key resolved for this request, or empty.
func SessionKey(ctx context.Context) string {
	key, _ := ctx.Value(sessionContextKey).(string)
	return key
}
