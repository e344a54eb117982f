package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// APIKeyMiddleware guards internal endpoints with a shared X-API-Key header.
// An empty configured key rejects every request rather than disabling auth.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-API-Key")
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing api key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
