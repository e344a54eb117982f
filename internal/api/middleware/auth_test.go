package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guarded := APIKeyMiddleware("secret")(next)

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/assignments/_internal/a-1/status", nil)
		req.Header.Set("X-API-Key", "secret")
		rec := httptest.NewRecorder()

		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/assignments/_internal/a-1/status", nil)
		req.Header.Set("X-API-Key", "guess")
		rec := httptest.NewRecorder()

		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/assignments/_internal/a-1/status", nil)
		rec := httptest.NewRecorder()

		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty configured key rejects everything", func(t *testing.T) {
		open := APIKeyMiddleware("")(next)
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/assignments/_internal/a-1/status", nil)
		req.Header.Set("X-API-Key", "")
		rec := httptest.NewRecorder()

		open.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
