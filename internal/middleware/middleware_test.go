package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickcart/internal/auth"
	"quickcart/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier("test-secret")
	require.NoError(t, err)
	return v
}

func TestAuth(t *testing.T) {
	verifier := newVerifier(t)

	t.Run("Missing Token", func(t *testing.T) {
		// Expectation: Middleware allows request but context has no user
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Nil(t, auth.UserFrom(r.Context()), "Context should not contain a user")
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()

		Auth(verifier)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		Auth(verifier)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid or expired token"}`, w.Body.String())
	})

	t.Run("Valid Token", func(t *testing.T) {
		tokenString, err := verifier.Issue(auth.User{
			ID:             "user_1",
			PublicMetadata: map[string]any{"role": "seller"},
		}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := auth.UserFrom(r.Context())
			require.NotNil(t, u)
			assert.Equal(t, "user_1", u.ID)
			assert.True(t, auth.IsSeller(u))
			w.WriteHeader(http.StatusOK)
		})

		Auth(verifier)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cookie Token", func(t *testing.T) {
		tokenString, err := verifier.Issue(auth.User{ID: "user_2"}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: tokenString})
		w := httptest.NewRecorder()

		var got *auth.User
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = auth.UserFrom(r.Context())
		})

		Auth(verifier)(next).ServeHTTP(w, req)

		require.NotNil(t, got)
		assert.Equal(t, "user_2", got.ID)
		assert.False(t, auth.IsSeller(got))
	})

	t.Run("Expired Token", func(t *testing.T) {
		tokenString, err := verifier.Issue(auth.User{ID: "user_1"}, -time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		Auth(verifier)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user_1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		Auth(verifier)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic user:pass") // Wrong scheme
		w := httptest.NewRecorder()

		// Middleware ignores non-Bearer headers and treats as anonymous
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Nil(t, auth.UserFrom(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		Auth(verifier)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSession(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.IDFrom(r.Context())
	})
	handler := Session(false)(next)

	t.Run("Issues cookie for new visitor", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, cookies[0].Value, seen)
		assert.True(t, session.ValidID(seen))
	})

	t.Run("Keeps existing session", func(t *testing.T) {
		id := session.NewID()
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Result().Cookies())
		assert.Equal(t, id, seen)
	})

	t.Run("Replaces garbage cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		require.Len(t, w.Result().Cookies(), 1)
		assert.NotEqual(t, "../../etc", seen)
	})
}

func TestLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Strict tier on catalog refresh", func(t *testing.T) {
		l := NewLimiter()
		handler := l.Middleware(ok)

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/api/products/refresh", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusTooManyRequests, codes[burstStrict])
	})

	t.Run("Separate buckets per caller", func(t *testing.T) {
		l := NewLimiter()
		handler := l.Middleware(ok)

		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest("POST", "/api/products/refresh", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest("POST", "/api/products/refresh", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest("POST", "/api/products/refresh", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req = req.WithContext(auth.WithUser(req.Context(), &auth.User{ID: "user_1"}))
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Evicts idle visitors", func(t *testing.T) {
		l := NewLimiter()
		clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return clock }

		l.getVisitor("ip:1:general", limitGeneral, burstGeneral)
		clock = clock.Add(5 * time.Minute)
		l.getVisitor("ip:2:general", limitGeneral, burstGeneral)

		l.evict(3 * time.Minute)

		assert.Len(t, l.visitors, 1)
		assert.Contains(t, l.visitors, "ip:2:general")
	})
}

func TestLimiter_TokenMiddleware(t *testing.T) {
	verifier := newVerifier(t)
	l := NewLimiter()
	handler := l.TokenMiddleware(Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	send := func(ip, token string) int {
		req := httptest.NewRequest("GET", "/api/me", nil)
		req.RemoteAddr = ip + ":1234"
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("Bad tokens are limited per IP", func(t *testing.T) {
		for i := 0; i < burstToken; i++ {
			assert.Equal(t, http.StatusUnauthorized, send("10.0.0.9", "bogus"))
		}
		assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.9", "bogus"))

		// Other callers keep their own budget.
		assert.Equal(t, http.StatusUnauthorized, send("10.0.0.10", "bogus"))
	})

	t.Run("Anonymous requests are not counted", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send("10.0.0.9", ""))
	})
}

func TestResolveRateTier(t *testing.T) {
	tests := []struct {
		method, path, tier string
	}{
		{"POST", "/api/products/refresh", "strict"},
		{"POST", "/api/cart/items", "cart"},
		{"PUT", "/api/cart/items/3", "cart"},
		{"GET", "/api/cart", "general"},
		{"GET", "/api/products", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			_, _, tier := resolveRateTier(httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.tier, tier)
		})
	}
}
