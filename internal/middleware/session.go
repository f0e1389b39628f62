package middleware

import (
	"net/http"
	"time"

	"quickcart/internal/session"
)

const (
	SessionCookie = "quickcart_session"

	sessionCookieTTL = 30 * 24 * time.Hour
)

// Session makes sure every request carries a session id, issuing a cookie
// for new visitors.
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil && session.ValidID(c.Value) {
				id = c.Value
			} else {
				id = session.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(sessionCookieTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), id)))
		})
	}
}
