package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/internal/domain/repositories"
	"github.com/Maximus-08/Assignment-solver/internal/infrastructure/clients/postgres"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

// SolutionAdapter implements the SolutionRepository interface
type SolutionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSolutionAdapter creates a new solution adapter
func NewSolutionAdapter(client *postgres.Client) repositories.SolutionRepository {
	return &SolutionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a generated solution
func (a *SolutionAdapter) Create(ctx context.Context, solution *entities.GeneratedSolution) error {
	steps, err := json.Marshal(solution.Steps)
	if err != nil {
		return apperrors.NewInternalError("failed to encode solution steps", err)
	}

	record := goqu.Record{
		"id":                 solution.ID,
		"assignment_id":      solution.AssignmentID,
		"content":            solution.Content,
		"explanation":        solution.Explanation,
		"steps":              steps,
		"reasoning":          solution.Reasoning,
		"generated_by":       solution.GeneratedBy,
		"ai_model_used":      solution.Model,
		"confidence_score":   solution.ConfidenceScore,
		"processing_time_ms": solution.ProcessingTime.Milliseconds(),
		"subject_area":       solution.SubjectArea,
		"quality_validated":  solution.QualityValidated,
		"created_at":         solution.CreatedAt,
	}

	query, args, err := a.db.Insert("solutions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create solution", err)
	}

	return nil
}

// GetByAssignmentID retrieves the latest solution for an assignment
func (a *SolutionAdapter) GetByAssignmentID(ctx context.Context, assignmentID string) (*entities.GeneratedSolution, error) {
	query, args, err := a.db.Select(
		"id", "assignment_id", "content", "explanation", "steps",
		"reasoning", "generated_by", "ai_model_used", "confidence_score",
		"processing_time_ms", "subject_area", "quality_validated", "created_at",
	).From("solutions").
		Where(goqu.Ex{"assignment_id": assignmentID}).
		Order(goqu.I("created_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	solution := &entities.GeneratedSolution{}
	var steps []byte
	var processingMs int64

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&solution.ID,
		&solution.AssignmentID,
		&solution.Content,
		&solution.Explanation,
		&steps,
		&solution.Reasoning,
		&solution.GeneratedBy,
		&solution.Model,
		&solution.ConfidenceScore,
		&processingMs,
		&solution.SubjectArea,
		&solution.QualityValidated,
		&solution.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no solution found for assignment %s", assignmentID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get solution", err)
	}

	solution.ProcessingTime = time.Duration(processingMs) * time.Millisecond
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &solution.Steps); err != nil {
			return nil, apperrors.NewInternalError("failed to decode solution steps", err)
		}
	}

	return solution, nil
}
