package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/internal/domain/repositories"
	"github.com/Maximus-08/Assignment-solver/internal/infrastructure/clients/postgres"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

func newMockSolutionRepo(t *testing.T) (repositories.SolutionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSolutionAdapter(postgres.NewClientWithDB(db)), mock
}

func TestSolutionCreate(t *testing.T) {
	repo, mock := newMockSolutionRepo(t)

	mock.ExpectExec(`INSERT INTO "solutions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &entities.GeneratedSolution{
		ID:              "s-1",
		AssignmentID:    "a-1",
		Content:         "x = 2",
		Explanation:     "subtract then divide",
		Steps:           []string{"subtract 3", "divide by 2"},
		GeneratedBy:     "gemini",
		Model:           "gemini-2.0-flash",
		ConfidenceScore: 0.9,
		ProcessingTime:  1500 * time.Millisecond,
		CreatedAt:       time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSolutionGetByAssignmentID(t *testing.T) {
	repo, mock := newMockSolutionRepo(t)

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM "solutions" .*ORDER BY "created_at" DESC LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "assignment_id", "content", "explanation", "steps",
			"reasoning", "generated_by", "ai_model_used", "confidence_score",
			"processing_time_ms", "subject_area", "quality_validated", "created_at",
		}).AddRow(
			"s-1", "a-1", "x = 2", "subtract then divide", []byte(`["subtract 3","divide by 2"]`),
			"linear equation", "gemini", "gemini-2.0-flash", 0.9,
			int64(1500), "mathematics", true, created,
		))

	solution, err := repo.GetByAssignmentID(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", solution.ID)
	assert.Equal(t, []string{"subtract 3", "divide by 2"}, solution.Steps)
	assert.Equal(t, 1500*time.Millisecond, solution.ProcessingTime)
	assert.True(t, solution.QualityValidated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSolutionGetByAssignmentID_NotFound(t *testing.T) {
	repo, mock := newMockSolutionRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM "solutions"`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByAssignmentID(context.Background(), "a-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
