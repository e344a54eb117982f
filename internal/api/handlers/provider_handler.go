package handlers

import (
	"context"
	"net/http"
)

// PipelineService defines the pipeline operations exposed over the API
type PipelineService interface {
	ProcessPending(ctx context.Context, userID string) (int, error)
	ProviderStatus() map[string]string
	ResetProvider(name string) bool
}

// ProviderHandler exposes provider health and pipeline trigger endpoints
type ProviderHandler struct {
	pipeline PipelineService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(pipeline PipelineService) *ProviderHandler {
	return &ProviderHandler{
		pipeline: pipeline,
	}
}

// GetProviderStatus handles GET /api/v1/providers/status
func (h *ProviderHandler) GetProviderStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": h.pipeline.ProviderStatus(),
	})
}

// ResetProvider handles POST /api/v1/providers/{name}/reset
func (h *ProviderHandler) ResetProvider(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "provider name is required")
		return
	}

	if !h.pipeline.ResetProvider(name) {
		respondWithError(w, http.StatusNotFound, "unknown provider: "+name)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"provider": name,
		"status":   "reset",
	})
}

// TriggerProcessing handles POST /api/v1/process
func (h *ProviderHandler) TriggerProcessing(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	processed, err := h.pipeline.ProcessPending(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"processed": processed,
	})
}
