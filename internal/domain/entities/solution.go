package entities

import (
	"time"
)

// GeneratedSolution is the output of the generation pipeline. Once returned
// it is owned solely by the caller; the pipeline holds no reference.
type GeneratedSolution struct {
	ID               string        `json:"id,omitempty" db:"id"`
	AssignmentID     string        `json:"assignment_id" db:"assignment_id"`
	Content          string        `json:"content" db:"content"`
	Explanation      string        `json:"explanation" db:"explanation"`
	Steps            []string      `json:"step_by_step"`
	Reasoning        string        `json:"reasoning" db:"reasoning"`
	GeneratedBy      string        `json:"generated_by" db:"generated_by"`
	Model            string        `json:"ai_model_used" db:"ai_model_used"`
	ConfidenceScore  float64       `json:"confidence_score" db:"confidence_score"`
	ProcessingTime   time.Duration `json:"processing_time" db:"processing_time"`
	SubjectArea      string        `json:"subject_area" db:"subject_area"`
	QualityValidated bool          `json:"quality_validated" db:"quality_validated"`
	CreatedAt        time.Time     `json:"created_at,omitempty" db:"created_at"`
}
