package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Maximus-08/Assignment-solver/internal/analysis"
	"github.com/Maximus-08/Assignment-solver/internal/delivery"
	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/internal/domain/repositories"
	"github.com/Maximus-08/Assignment-solver/internal/generation"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

// PipelineService orchestrates the assignment-to-solution pipeline:
// analyze, generate with provider failover, persist, and deliver.
type PipelineService struct {
	analyzer       *analysis.Analyzer
	manager        *generation.Manager
	deliverer      *delivery.Deliverer
	deliveryClient delivery.Client
	assignmentRepo repositories.AssignmentRepository
	solutionRepo   repositories.SolutionRepository
	forceProvider  string
	logger         zerolog.Logger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	analyzer *analysis.Analyzer,
	manager *generation.Manager,
	deliverer *delivery.Deliverer,
	deliveryClient delivery.Client,
	assignmentRepo repositories.AssignmentRepository,
	solutionRepo repositories.SolutionRepository,
	forceProvider string,
	logger zerolog.Logger,
) *PipelineService {
	return &PipelineService{
		analyzer:       analyzer,
		manager:        manager,
		deliverer:      deliverer,
		deliveryClient: deliveryClient,
		assignmentRepo: assignmentRepo,
		solutionRepo:   solutionRepo,
		forceProvider:  forceProvider,
		logger:         logger.With().Str("component", "pipeline").Logger(),
	}
}

// Initialize probes the generation providers and the backend. A backend
// that is down is logged and tolerated since delivery retries later;
// having no working provider is fatal.
func (s *PipelineService) Initialize(ctx context.Context) error {
	if err := s.manager.Initialize(ctx); err != nil {
		return fmt.Errorf("provider initialization: %w", err)
	}

	if err := s.deliveryClient.HealthCheck(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("backend unreachable at startup, relying on delivery retries")
	}

	return nil
}

// ProcessAssignment runs the full pipeline for a single assignment. The
// caller's assignment is never modified; the pipeline works on its own
// copy and records state changes through the repository.
func (s *PipelineService) ProcessAssignment(ctx context.Context, input *entities.Assignment) error {
	if input == nil {
		return apperrors.NewValidationError("assignment is required")
	}

	copied := *input
	assignment := &copied

	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.Status == "" {
		assignment.Status = entities.AssignmentStatusPending
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now

	analysisCtx := s.analyzer.Analyze(assignment)
	if assignment.Subject == "" {
		assignment.Subject = analysisCtx.Subject
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID).
		Str("subject", analysisCtx.Subject).
		Str("complexity", string(analysisCtx.Complexity)).
		Str("question_type", string(analysisCtx.QuestionType)).
		Msg("assignment analyzed")

	if err := s.ensureStored(ctx, assignment); err != nil {
		return err
	}

	solution, err := s.manager.GenerateSolution(ctx, assignment, s.forceProvider)
	if err != nil {
		s.logger.Error().Err(err).Str("assignment_id", assignment.ID).Msg("all providers failed, using fallback solution")
		solution = fallbackSolution(assignment)
	}

	if err := s.solutionRepo.Create(ctx, solution); err != nil {
		s.logger.Warn().Err(err).Str("assignment_id", assignment.ID).Msg("failed to persist solution locally")
	}

	if err := s.deliverer.Deliver(ctx, assignment, solution); err != nil {
		if statusErr := s.assignmentRepo.UpdateStatus(ctx, assignment.ID, entities.AssignmentStatusFailed); statusErr != nil {
			s.logger.Warn().Err(statusErr).Str("assignment_id", assignment.ID).Msg("failed to mark assignment failed")
		}
		return fmt.Errorf("delivery: %w", err)
	}

	if err := s.assignmentRepo.UpdateStatus(ctx, assignment.ID, entities.AssignmentStatusCompleted); err != nil {
		s.logger.Warn().Err(err).Str("assignment_id", assignment.ID).Msg("failed to mark assignment completed")
	}

	return nil
}

// ProcessPending runs the pipeline over all pending assignments, optionally
// scoped to one user. Individual failures do not stop the batch.
func (s *PipelineService) ProcessPending(ctx context.Context, userID string) (int, error) {
	assignments, err := s.assignmentRepo.List(ctx, repositories.AssignmentFilter{
		UserID: userID,
		Status: entities.AssignmentStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("listing pending assignments: %w", err)
	}

	processed := 0
	for _, assignment := range assignments {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := s.ProcessAssignment(ctx, assignment); err != nil {
			s.logger.Error().Err(err).Str("assignment_id", assignment.ID).Msg("assignment processing failed")
			continue
		}
		processed++
	}

	s.logger.Info().Int("processed", processed).Int("total", len(assignments)).Msg("pending batch finished")
	return processed, nil
}

// ProviderStatus exposes the failover health snapshot for the API layer.
func (s *PipelineService) ProviderStatus() map[string]string {
	snapshot := s.manager.ProviderStatus()
	out := make(map[string]string, len(snapshot))
	for name, status := range snapshot {
		out[name] = string(status)
	}
	return out
}

// ResetProvider clears a provider's failure state so the next run tries it
// again.
func (s *PipelineService) ResetProvider(name string) bool {
	return s.manager.ResetProvider(name)
}

func (s *PipelineService) ensureStored(ctx context.Context, assignment *entities.Assignment) error {
	if assignment.ExternalID != "" {
		existing, err := s.assignmentRepo.GetByExternalID(ctx, assignment.ExternalID)
		if err == nil && existing != nil {
			assignment.ID = existing.ID
			assignment.Status = existing.Status
			return nil
		}
		if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return fmt.Errorf("assignment lookup: %w", err)
		}
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return fmt.Errorf("assignment create: %w", err)
	}
	return nil
}

// fallbackSolution keeps the pipeline moving when every provider failed.
// It carries a floor confidence and is never quality validated.
func fallbackSolution(assignment *entities.Assignment) *entities.GeneratedSolution {
	return &entities.GeneratedSolution{
		ID:           uuid.NewString(),
		AssignmentID: assignment.ID,
		Content:      fmt.Sprintf("Unable to generate solution automatically. Assignment: %s", assignment.Title),
		Explanation:  "Solution generation failed due to technical issues. Please review manually.",
		Steps: []string{
			"Review assignment requirements",
			"Research relevant concepts",
			"Develop solution approach",
		},
		Reasoning:        "Fallback solution provided due to AI generation failure.",
		GeneratedBy:      "fallback",
		ConfidenceScore:  0.1,
		SubjectArea:      assignment.Subject,
		QualityValidated: false,
		CreatedAt:        time.Now().UTC(),
	}
}
