package generation

import (
	"strings"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

// refusalPhrases flag responses where the model declined to answer instead
// of producing a solution.
var refusalPhrases = []string{
	"i cannot",
	"i can't",
	"unable to",
	"sorry",
	"i don't know",
	"not possible",
	"cannot provide",
	"insufficient information",
}

// confidenceScore grades a parsed solution on structural completeness:
// 40% for having the content, explanation and reasoning sections, 20% for
// content length, 20% for step-by-step presence, 20% for explanation
// depth. Assignment types that do not require enumerated steps get the
// step weight for free.
func confidenceScore(parsed parsedSolution, assignmentType entities.AssignmentType) float64 {
	score := 0.0

	sections := 0
	if strings.TrimSpace(parsed.Content) != "" {
		sections++
	}
	if strings.TrimSpace(parsed.Explanation) != "" {
		sections++
	}
	if strings.TrimSpace(parsed.Reasoning) != "" {
		sections++
	}
	score += 0.4 * float64(sections) / 3.0

	if len(parsed.Content) > 100 {
		score += 0.2
	} else if len(parsed.Content) > 50 {
		score += 0.1
	}

	if len(parsed.Steps) > 0 || !assignmentType.RequiresSteps() {
		score += 0.2
	}

	if len(parsed.Explanation) > 100 {
		score += 0.2
	} else if len(parsed.Explanation) > 50 {
		score += 0.1
	}

	return score
}

// validateQuality rejects solutions that are empty, too short, or contain
// refusal language.
func validateQuality(parsed parsedSolution) bool {
	if strings.TrimSpace(parsed.Content) == "" || strings.TrimSpace(parsed.Explanation) == "" {
		return false
	}
	if len(parsed.Content) < 50 {
		return false
	}
	content := strings.ToLower(parsed.Content)
	explanation := strings.ToLower(parsed.Explanation)
	for _, phrase := range refusalPhrases {
		if strings.Contains(content, phrase) || strings.Contains(explanation, phrase) {
			return false
		}
	}
	return true
}
