package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/internal/domain/repositories"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

// AssignmentHandler handles assignment requests
type AssignmentHandler struct {
	assignments repositories.AssignmentRepository
	solutions   repositories.SolutionRepository
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignments repositories.AssignmentRepository, solutions repositories.SolutionRepository) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		solutions:   solutions,
	}
}

// CreateAssignment handles POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var assignment entities.Assignment
	if err := json.NewDecoder(r.Body).Decode(&assignment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if assignment.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.Type == "" {
		assignment.Type = entities.AssignmentTypeGeneral
	}
	assignment.Status = entities.AssignmentStatusPending
	now := time.Now().UTC()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	if err := h.assignments.Create(r.Context(), &assignment); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, assignment)
}

// GetAssignment handles GET /api/v1/assignments/{id}
func (h *AssignmentHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "assignment ID is required")
		return
	}

	assignment, err := h.assignments.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, assignment)
}

// SearchAssignment handles GET /api/v1/assignments/search
func (h *AssignmentHandler) SearchAssignment(w http.ResponseWriter, r *http.Request) {
	externalID := r.URL.Query().Get("external_id")
	if externalID == "" {
		respondWithError(w, http.StatusBadRequest, "external_id query parameter is required")
		return
	}

	assignment, err := h.assignments.GetByExternalID(r.Context(), externalID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, assignment)
}

// ListAssignments handles GET /api/v1/assignments
func (h *AssignmentHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.AssignmentFilter{
		UserID:  query.Get("user_id"),
		Status:  entities.AssignmentStatus(query.Get("status")),
		Subject: query.Get("subject"),
		Limit:   parseIntParam(query.Get("limit"), 50),
		Offset:  parseIntParam(query.Get("offset"), 0),
	}

	assignments, err := h.assignments.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if assignments == nil {
		assignments = []*entities.Assignment{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"count":       len(assignments),
	})
}

// GetSolution handles GET /api/v1/assignments/{id}/solution
func (h *AssignmentHandler) GetSolution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "assignment ID is required")
		return
	}

	solution, err := h.solutions.GetByAssignmentID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, solution)
}

// UpdateStatus handles PATCH /api/v1/assignments/_internal/{id}/status
func (h *AssignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "assignment ID is required")
		return
	}

	var payload struct {
		Status entities.AssignmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Status == "" {
		respondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	if err := h.assignments.UpdateStatus(r.Context(), id, payload.Status); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": string(payload.Status),
	})
}

// UploadSolution handles POST /api/v1/assignments/_internal/{id}/solution
func (h *AssignmentHandler) UploadSolution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "assignment ID is required")
		return
	}

	var solution entities.GeneratedSolution
	if err := json.NewDecoder(r.Body).Decode(&solution); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if solution.Content == "" {
		respondWithError(w, http.StatusBadRequest, "solution content is required")
		return
	}

	if solution.ID == "" {
		solution.ID = uuid.NewString()
	}
	solution.AssignmentID = id
	if solution.CreatedAt.IsZero() {
		solution.CreatedAt = time.Now().UTC()
	}

	if err := h.solutions.Create(r.Context(), &solution); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, solution)
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeAuthentication:
			respondWithError(w, http.StatusUnauthorized, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, appErr.Message)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}
