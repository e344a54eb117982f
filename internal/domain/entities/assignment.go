package entities

import (
	"time"
)

// AssignmentStatus represents the processing status of an assignment
type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusProcessing AssignmentStatus = "processing"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusFailed     AssignmentStatus = "failed"
)

// CanTransitionTo reports whether the status change is a legal step in the
// pending -> processing -> completed|failed lifecycle.
func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	switch s {
	case AssignmentStatusPending:
		return next == AssignmentStatusProcessing
	case AssignmentStatusProcessing:
		return next == AssignmentStatusCompleted || next == AssignmentStatusFailed
	}
	return false
}

// AssignmentType tags the kind of work an assignment asks for
type AssignmentType string

const (
	AssignmentTypeProblemSet AssignmentType = "problem_set"
	AssignmentTypeEssay      AssignmentType = "essay"
	AssignmentTypeLab        AssignmentType = "lab"
	AssignmentTypeAssessment AssignmentType = "assessment"
	AssignmentTypeResearch   AssignmentType = "research"
	AssignmentTypeGeneral    AssignmentType = "general"
)

// RequiresSteps reports whether a step-by-step breakdown is expected for
// this assignment type.
func (t AssignmentType) RequiresSteps() bool {
	switch t {
	case AssignmentTypeProblemSet, AssignmentTypeLab, AssignmentTypeAssessment:
		return true
	}
	return false
}

// Material is a processed supplementary material attached to an assignment
type Material struct {
	Type     string            `json:"type"`
	Content  string            `json:"content,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Assignment represents an assignment handed to the pipeline. It is
// immutable once handed over; the pipeline never mutates it.
type Assignment struct {
	ID          string           `json:"id,omitempty" db:"id"`
	ExternalID  string           `json:"external_id,omitempty" db:"external_id"`
	Title       string           `json:"title" db:"title"`
	Description string           `json:"description" db:"description"`
	Subject     string           `json:"subject,omitempty" db:"subject"`
	CourseName  string           `json:"course_name" db:"course_name"`
	Instructor  string           `json:"instructor,omitempty" db:"instructor"`
	DueDate     *time.Time       `json:"due_date,omitempty" db:"due_date"`
	Type        AssignmentType   `json:"assignment_type" db:"assignment_type"`
	UserID      string           `json:"user_id,omitempty" db:"user_id"`
	Materials   []Material       `json:"processed_materials,omitempty"`
	Status      AssignmentStatus `json:"status,omitempty" db:"status"`
	CreatedAt   time.Time        `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at,omitempty" db:"updated_at"`
}
