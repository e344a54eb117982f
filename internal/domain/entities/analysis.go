package entities

// ComplexityLevel grades how demanding an assignment is
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// QuestionType classifies what kind of answer an assignment asks for
type QuestionType string

const (
	QuestionProblemSolving QuestionType = "problem_solving"
	QuestionAnalytical     QuestionType = "analytical"
	QuestionExplanatory    QuestionType = "explanatory"
	QuestionComparative    QuestionType = "comparative"
	QuestionCreative       QuestionType = "creative"
	QuestionResearch       QuestionType = "research"
)

// AnalysisContext is the ephemeral result of analyzing an assignment's
// content. It is produced fresh per request and never persisted.
type AnalysisContext struct {
	Subject           string
	SubjectConfidence float64
	Complexity        ComplexityLevel
	QuestionType      QuestionType
	KeyConcepts       []string
	HasEquations      bool
	HasCode           bool
	WordCount         int
}
