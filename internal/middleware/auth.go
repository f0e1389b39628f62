package middleware

import (
	"encoding/json"
	"net/http"

	"quickcart/internal/auth"
	"quickcart/internal/logger"

	"go.uber.org/zap"
)

// Auth verifies the session token when one is present. Requests without a
// token continue anonymously; a bad or expired token is rejected.
func Auth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := verifier.Verify(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected session token", zap.Error(err))
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
