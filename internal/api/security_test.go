package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuthMiddleware(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	t.Run("allows request when no API key configured", func(t *testing.T) {
		middleware := apiKeyAuthMiddleware("")
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("blocks request without API key when configured", func(t *testing.T) {
		middleware := apiKeyAuthMiddleware("secret-key")
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "unauthorized")
	})

	t.Run("allows request with correct X-API-Key header", func(t *testing.T) {
		middleware := apiKeyAuthMiddleware("secret-key")
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-API-Key", "secret-key")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("allows request with correct Bearer token", func(t *testing.T) {
		middleware := apiKeyAuthMiddleware("secret-key")
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer secret-key")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("blocks request with wrong API key", func(t *testing.T) {
		middleware := apiKeyAuthMiddleware("secret-key")
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-API-Key", "wrong-key")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("prefers X-API-Key over Authorization header", func(t *testing.T) {
		middleware := apiKeyAuthMiddleware("secret-key")
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-API-Key", "secret-key")
		req.Header.Set("Authorization", "Bearer wrong-key")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestMatchOriginPattern(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		pattern string
		want    bool
	}{
		{"port wildcard matches", "http://localhost:3000", "http://localhost:*", true},
		{"port wildcard rejects other host", "http://evil.com:3000", "http://localhost:*", false},
		{"subdomain wildcard matches", "https://app.example.com", "*.example.com", true},
		{"subdomain wildcard matches apex", "https://example.com", "*.example.com", true},
		{"subdomain wildcard rejects other domain", "https://example.org", "*.example.com", false},
		{"no wildcard never matches", "http://localhost", "http://localhost:8080", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchOriginPattern(tt.origin, tt.pattern))
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("sets origin header for allowed origin", func(t *testing.T) {
		middleware := corsMiddleware([]string{"http://localhost:3000"})
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("omits origin header for unknown origin", func(t *testing.T) {
		middleware := corsMiddleware([]string{"http://localhost:3000"})
		handler := middleware(nextHandler)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Origin", "http://evil.com")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight without calling next", func(t *testing.T) {
		called := false
		middleware := corsMiddleware(nil)
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest("OPTIONS", "/test", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, called)
	})
}
