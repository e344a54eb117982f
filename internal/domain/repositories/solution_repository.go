package repositories

import (
	"context"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

// SolutionRepository defines the interface for solution data operations
type SolutionRepository interface {
	// Create stores a generated solution for an assignment
	Create(ctx context.Context, solution *entities.GeneratedSolution) error

	// GetByAssignmentID retrieves the solution for an assignment
	GetByAssignmentID(ctx context.Context, assignmentID string) (*entities.GeneratedSolution, error)
}
