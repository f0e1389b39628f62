package auth

import (
	"net/http"
	"strings"
)

// SessionCookie is where the identity provider's browser SDK keeps the
// session token.
const SessionCookie = "__session"

func ExtractAccessToken(r *http.Request) string {
	// 1️⃣ Cookies (preferred)
	for _, name := range []string{SessionCookie, "access_token"} {
		if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}

	// 2️⃣ Authorization header (fallback)
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	return ""
}
