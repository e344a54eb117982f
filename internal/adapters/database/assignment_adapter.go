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

var assignmentColumns = []interface{}{
	"id", "external_id", "title", "description", "subject", "course_name",
	"instructor", "due_date", "type", "user_id", "materials", "status",
	"created_at", "updated_at",
}

// AssignmentAdapter implements the AssignmentRepository interface
type AssignmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAssignmentAdapter creates a new assignment adapter
func NewAssignmentAdapter(client *postgres.Client) repositories.AssignmentRepository {
	return &AssignmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new assignment
func (a *AssignmentAdapter) Create(ctx context.Context, assignment *entities.Assignment) error {
	materials, err := json.Marshal(assignment.Materials)
	if err != nil {
		return apperrors.NewInternalError("failed to encode materials", err)
	}

	record := goqu.Record{
		"id":          assignment.ID,
		"external_id": assignment.ExternalID,
		"title":       assignment.Title,
		"description": assignment.Description,
		"subject":     assignment.Subject,
		"course_name": assignment.CourseName,
		"instructor":  assignment.Instructor,
		"due_date":    assignment.DueDate,
		"type":        assignment.Type,
		"user_id":     assignment.UserID,
		"materials":   materials,
		"status":      assignment.Status,
		"created_at":  assignment.CreatedAt,
		"updated_at":  assignment.UpdatedAt,
	}

	query, args, err := a.db.Insert("assignments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create assignment", err)
	}

	return nil
}

// GetByID retrieves an assignment by ID
func (a *AssignmentAdapter) GetByID(ctx context.Context, id string) (*entities.Assignment, error) {
	query, args, err := a.db.Select(assignmentColumns...).
		From("assignments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	assignment, err := a.scanAssignment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("assignment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get assignment", err)
	}

	return assignment, nil
}

// GetByExternalID retrieves an assignment by its external identifier
func (a *AssignmentAdapter) GetByExternalID(ctx context.Context, externalID string) (*entities.Assignment, error) {
	query, args, err := a.db.Select(assignmentColumns...).
		From("assignments").
		Where(goqu.Ex{"external_id": externalID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	assignment, err := a.scanAssignment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("assignment with external id %s not found", externalID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get assignment", err)
	}

	return assignment, nil
}

// List retrieves assignments matching the filter, newest first
func (a *AssignmentAdapter) List(ctx context.Context, filter repositories.AssignmentFilter) ([]*entities.Assignment, error) {
	ds := a.db.Select(assignmentColumns...).From("assignments")

	if filter.UserID != "" {
		ds = ds.Where(goqu.Ex{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.Subject != "" {
		ds = ds.Where(goqu.Ex{"subject": filter.Subject})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list assignments", err)
	}
	defer rows.Close()

	var assignments []*entities.Assignment
	for rows.Next() {
		assignment, err := a.scanAssignment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan assignment", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate assignments", err)
	}

	return assignments, nil
}

// UpdateStatus transitions an assignment's status, enforcing the lifecycle
func (a *AssignmentAdapter) UpdateStatus(ctx context.Context, id string, status entities.AssignmentStatus) error {
	current, err := a.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !current.Status.CanTransitionTo(status) {
		return apperrors.NewValidationError(fmt.Sprintf("cannot transition assignment from %s to %s", current.Status, status))
	}

	query, args, err := a.db.Update("assignments").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build status update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update assignment status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("assignment with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *AssignmentAdapter) scanAssignment(row rowScanner) (*entities.Assignment, error) {
	assignment := &entities.Assignment{}
	var instructor sql.NullString
	var dueDate sql.NullTime
	var materials []byte

	err := row.Scan(
		&assignment.ID,
		&assignment.ExternalID,
		&assignment.Title,
		&assignment.Description,
		&assignment.Subject,
		&assignment.CourseName,
		&instructor,
		&dueDate,
		&assignment.Type,
		&assignment.UserID,
		&materials,
		&assignment.Status,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	assignment.Instructor = instructor.String
	if dueDate.Valid {
		assignment.DueDate = &dueDate.Time
	}
	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &assignment.Materials); err != nil {
			return nil, err
		}
	}

	return assignment, nil
}
