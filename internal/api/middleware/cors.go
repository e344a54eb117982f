package middleware

import (
	"net/http"
	"os"
	"strings"
)

// allowedOrigins reads ALLOWED_ORIGINS (comma-separated) once at middleware
// construction. An empty variable means wildcard, which is only appropriate
// for development deployments.
func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// CORSMiddleware adds CORS headers for the assignment API. The allowed
// method and header sets match what the API actually serves: reads, creates,
// and the internal PATCH status transitions with their key headers.
func CORSMiddleware(next http.Handler) http.Handler {
	origins := allowedOrigins()
	wildcard := origins[0] == "*"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				for _, allowed := range origins {
					if allowed == origin {
						w.Header().Set("Access-Control-Allow-Origin", origin)
						w.Header().Add("Vary", "Origin")
						break
					}
				}
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
