package repositories

import (
	"context"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

// AssignmentRepository defines the interface for assignment data operations
type AssignmentRepository interface {
	// Create creates a new assignment record
	Create(ctx context.Context, assignment *entities.Assignment) error

	// GetByID retrieves an assignment by ID
	GetByID(ctx context.Context, id string) (*entities.Assignment, error)

	// GetByExternalID retrieves an assignment by its external identifier
	GetByExternalID(ctx context.Context, externalID string) (*entities.Assignment, error)

	// List retrieves assignments matching the filter
	List(ctx context.Context, filter AssignmentFilter) ([]*entities.Assignment, error)

	// UpdateStatus updates an assignment's processing status
	UpdateStatus(ctx context.Context, id string, status entities.AssignmentStatus) error
}

// AssignmentFilter defines filters for listing assignments
type AssignmentFilter struct {
	UserID  string
	Status  entities.AssignmentStatus
	Subject string
	Limit   int
	Offset  int
}
