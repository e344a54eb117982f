package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

func TestConfidenceScore(t *testing.T) {
	longText := strings.Repeat("solution detail ", 10) // > 100 chars

	tests := []struct {
		name           string
		parsed         parsedSolution
		assignmentType entities.AssignmentType
		want           float64
	}{
		{
			name: "complete structured solution scores full marks",
			parsed: parsedSolution{
				Content:     longText,
				Explanation: longText,
				Steps:       []string{"step one", "step two"},
				Reasoning:   "because",
			},
			assignmentType: entities.AssignmentTypeProblemSet,
			want:           1.0,
		},
		{
			name: "missing steps penalized for problem sets",
			parsed: parsedSolution{
				Content:     longText,
				Explanation: longText,
				Reasoning:   "because",
			},
			assignmentType: entities.AssignmentTypeProblemSet,
			want:           0.8,
		},
		{
			name: "structured no-steps essay scores full marks",
			parsed: parsedSolution{
				Content:     longText,
				Explanation: longText,
				Reasoning:   "because",
			},
			assignmentType: entities.AssignmentTypeEssay,
			want:           1.0,
		},
		{
			name: "medium length content gets half the length weight",
			parsed: parsedSolution{
				Content:     strings.Repeat("a", 60),
				Explanation: strings.Repeat("b", 60),
			},
			assignmentType: entities.AssignmentTypeEssay,
			want:           0.4*2.0/3.0 + 0.1 + 0.2 + 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := confidenceScore(tt.parsed, tt.assignmentType)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestValidateQuality(t *testing.T) {
	valid := strings.Repeat("a thorough answer ", 5)

	tests := []struct {
		name   string
		parsed parsedSolution
		want   bool
	}{
		{
			name:   "substantial solution passes",
			parsed: parsedSolution{Content: valid, Explanation: "detailed explanation"},
			want:   true,
		},
		{
			name:   "empty content fails",
			parsed: parsedSolution{Content: "   ", Explanation: "detailed explanation"},
			want:   false,
		},
		{
			name:   "empty explanation fails",
			parsed: parsedSolution{Content: valid, Explanation: ""},
			want:   false,
		},
		{
			name:   "short content fails",
			parsed: parsedSolution{Content: "too short", Explanation: "detailed explanation"},
			want:   false,
		},
		{
			name:   "refusal language fails",
			parsed: parsedSolution{Content: "I cannot help with this request, " + valid, Explanation: "x"},
			want:   false,
		},
		{
			name:   "apology fails",
			parsed: parsedSolution{Content: "Sorry, there is insufficient information. " + valid, Explanation: "x"},
			want:   false,
		},
		{
			name:   "refusal language in explanation fails",
			parsed: parsedSolution{Content: valid, Explanation: "Sorry, unable to explain this further."},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateQuality(tt.parsed))
		})
	}
}
