package routes

import (
	"net/http"

	"github.com/Maximus-08/Assignment-solver/internal/api/handlers"
	"github.com/Maximus-08/Assignment-solver/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	assignmentHandler *handlers.AssignmentHandler
	providerHandler   *handlers.ProviderHandler

	cacheMiddleware *middleware.CacheMiddleware
	internalAPIKey  string
}

// NewRouter creates a new router
func NewRouter(
	assignmentHandler *handlers.AssignmentHandler,
	providerHandler *handlers.ProviderHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	internalAPIKey string,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		assignmentHandler: assignmentHandler,
		providerHandler:   providerHandler,
		cacheMiddleware:   cacheMiddleware,
		internalAPIKey:    internalAPIKey,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Assignment endpoints
	r.mux.HandleFunc("GET /api/v1/assignments", r.assignmentHandler.ListAssignments)
	r.mux.HandleFunc("POST /api/v1/assignments", r.assignmentHandler.CreateAssignment)
	r.mux.HandleFunc("GET /api/v1/assignments/search", r.assignmentHandler.SearchAssignment)
	r.mux.HandleFunc("GET /api/v1/assignments/{id}", r.assignmentHandler.GetAssignment)
	r.mux.HandleFunc("GET /api/v1/assignments/{id}/solution", r.assignmentHandler.GetSolution)

	// Internal pipeline endpoints, guarded by the shared api key
	auth := middleware.APIKeyMiddleware(r.internalAPIKey)
	r.mux.Handle("PATCH /api/v1/assignments/_internal/{id}/status",
		auth(http.HandlerFunc(r.assignmentHandler.UpdateStatus)))
	r.mux.Handle("POST /api/v1/assignments/_internal/{id}/solution",
		auth(http.HandlerFunc(r.assignmentHandler.UploadSolution)))

	// Provider health and pipeline trigger endpoints
	if r.providerHandler != nil {
		r.mux.HandleFunc("GET /api/v1/providers/status", r.providerHandler.GetProviderStatus)
		r.mux.Handle("POST /api/v1/providers/{name}/reset",
			auth(http.HandlerFunc(r.providerHandler.ResetProvider)))
		r.mux.Handle("POST /api/v1/process",
			auth(http.HandlerFunc(r.providerHandler.TriggerProcessing)))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
