package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from AssignmentStatus
		to   AssignmentStatus
		want bool
	}{
		{AssignmentStatusPending, AssignmentStatusProcessing, true},
		{AssignmentStatusPending, AssignmentStatusCompleted, false},
		{AssignmentStatusPending, AssignmentStatusFailed, false},
		{AssignmentStatusProcessing, AssignmentStatusCompleted, true},
		{AssignmentStatusProcessing, AssignmentStatusFailed, true},
		{AssignmentStatusProcessing, AssignmentStatusPending, false},
		{AssignmentStatusCompleted, AssignmentStatusProcessing, false},
		{AssignmentStatusFailed, AssignmentStatusProcessing, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRequiresSteps(t *testing.T) {
	assert.True(t, AssignmentTypeProblemSet.RequiresSteps())
	assert.True(t, AssignmentTypeLab.RequiresSteps())
	assert.True(t, AssignmentTypeAssessment.RequiresSteps())
	assert.False(t, AssignmentTypeEssay.RequiresSteps())
	assert.False(t, AssignmentTypeResearch.RequiresSteps())
	assert.False(t, AssignmentTypeGeneral.RequiresSteps())
}
