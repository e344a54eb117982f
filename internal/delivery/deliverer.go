package delivery

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

// Deliverer pushes a generated solution through the backend's assignment
// lifecycle: ensure the assignment record exists, mark it processing,
// attach the solution, and mark it completed.
type Deliverer struct {
	client Client
	logger zerolog.Logger
}

func NewDeliverer(client Client, logger zerolog.Logger) *Deliverer {
	return &Deliverer{
		client: client,
		logger: logger.With().Str("component", "deliverer").Logger(),
	}
}

// Deliver runs the delivery sequence. A failure after the assignment has
// been created triggers a compensating transition to failed so the record
// is not stranded in processing; the compensation itself is best effort.
func (d *Deliverer) Deliver(ctx context.Context, assignment *entities.Assignment, solution *entities.GeneratedSolution) error {
	remote, err := d.client.CheckAssignmentExists(ctx, assignment.ExternalID)
	if err != nil {
		return fmt.Errorf("assignment lookup: %w", err)
	}

	if remote == nil {
		remote, err = d.client.CreateAssignment(ctx, assignment)
		if err != nil {
			return fmt.Errorf("assignment create: %w", err)
		}
		d.logger.Info().
			Str("assignment_id", remote.ID).
			Str("external_id", assignment.ExternalID).
			Msg("assignment registered with backend")
	} else {
		d.logger.Debug().
			Str("assignment_id", remote.ID).
			Str("external_id", assignment.ExternalID).
			Msg("reusing existing backend assignment")
	}

	if err := d.client.UpdateAssignmentStatus(ctx, remote.ID, entities.AssignmentStatusProcessing); err != nil {
		d.markFailed(ctx, remote.ID)
		return fmt.Errorf("status transition to processing: %w", err)
	}

	if err := d.client.UploadSolution(ctx, remote.ID, solution); err != nil {
		d.markFailed(ctx, remote.ID)
		return fmt.Errorf("solution upload: %w", err)
	}

	if err := d.client.UpdateAssignmentStatus(ctx, remote.ID, entities.AssignmentStatusCompleted); err != nil {
		d.markFailed(ctx, remote.ID)
		return fmt.Errorf("status transition to completed: %w", err)
	}

	d.logger.Info().
		Str("assignment_id", remote.ID).
		Str("generated_by", solution.GeneratedBy).
		Float64("confidence", solution.ConfidenceScore).
		Msg("solution delivered")
	return nil
}

// markFailed is the compensating transition; its own failure is only
// logged so the original delivery error is what callers see.
func (d *Deliverer) markFailed(ctx context.Context, assignmentID string) {
	if err := d.client.UpdateAssignmentStatus(ctx, assignmentID, entities.AssignmentStatusFailed); err != nil {
		d.logger.Warn().Err(err).Str("assignment_id", assignmentID).Msg("failed-status compensation did not apply")
	}
}
