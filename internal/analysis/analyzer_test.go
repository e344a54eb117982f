package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

func TestAnalyze_MathProblem(t *testing.T) {
	analyzer := NewAnalyzer()

	ctx := analyzer.Analyze(&entities.Assignment{
		Title:       "Algebra homework",
		Description: "Solve for x: 2x + 3 = 7",
	})

	assert.Equal(t, "mathematics", ctx.Subject)
	assert.Equal(t, entities.QuestionProblemSolving, ctx.QuestionType)
	assert.True(t, ctx.HasEquations)
	assert.False(t, ctx.HasCode)
}

func TestAnalyze_NilAssignment(t *testing.T) {
	analyzer := NewAnalyzer()

	ctx := analyzer.Analyze(nil)

	assert.Equal(t, "general", ctx.Subject)
	assert.Equal(t, 0.5, ctx.SubjectConfidence)
	assert.Equal(t, 0, ctx.WordCount)
}

func TestAnalyze_EmptyDescription(t *testing.T) {
	analyzer := NewAnalyzer()

	ctx := analyzer.Analyze(&entities.Assignment{Title: "Untitled"})

	assert.Equal(t, "general", ctx.Subject)
	assert.GreaterOrEqual(t, ctx.SubjectConfidence, 0.0)
	assert.LessOrEqual(t, ctx.SubjectConfidence, 1.0)
}

func TestDetectSubject(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name           string
		declared       string
		text           string
		wantSubject    string
		wantConfidence float64
	}{
		{
			name:           "declared subject maps onto known category",
			declared:       "Math",
			text:           "",
			wantSubject:    "mathematics",
			wantConfidence: 0.95,
		},
		{
			name:           "unknown declared subject taken verbatim",
			declared:       "Philosophy",
			text:           "",
			wantSubject:    "Philosophy",
			wantConfidence: 0.90,
		},
		{
			name:           "keyword scoring picks dominant subject",
			declared:       "",
			text:           "write a program with a loop over an array and debug the algorithm",
			wantSubject:    "computer_science",
			wantConfidence: 0.5,
		},
		{
			name:           "no signal falls back to general",
			declared:       "",
			text:           "please finish this by friday",
			wantSubject:    "general",
			wantConfidence: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, confidence := analyzer.detectSubject(tt.text, tt.declared)
			assert.Equal(t, tt.wantSubject, subject)
			assert.InDelta(t, tt.wantConfidence, confidence, 0.0001)
		})
	}
}

func TestDetectComplexity(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name string
		text string
		want entities.ComplexityLevel
	}{
		{
			name: "short basic text is low",
			text: "define the basic term",
			want: entities.ComplexityLow,
		},
		{
			name: "graduate level indicators win",
			text: "a rigorous and comprehensive graduate research treatment with advanced in-depth analysis",
			want: entities.ComplexityHigh,
		},
		{
			name: "tie resolves to the higher level",
			text: "explain the advanced topic",
			want: entities.ComplexityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.detectComplexity(tt.text, tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectQuestionType(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		text string
		want entities.QuestionType
	}{
		{"calculate the derivative and solve", entities.QuestionProblemSolving},
		{"analyze and critique the evidence", entities.QuestionAnalytical},
		{"compare and contrast the two approaches", entities.QuestionComparative},
		{"design and propose a new system", entities.QuestionCreative},
		{"no indicator words at all", entities.QuestionExplanatory},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, analyzer.detectQuestionType(tt.text), "text: %s", tt.text)
	}
}

func TestExtractKeyConcepts(t *testing.T) {
	analyzer := NewAnalyzer()

	ctx := analyzer.Analyze(&entities.Assignment{
		Title:       "Machine Learning assignment",
		Subject:     "computer_science",
		Description: "write python code with a loop over a data structure",
	})

	assert.Contains(t, ctx.KeyConcepts, "python")
	assert.Contains(t, ctx.KeyConcepts, "code")
	assert.Contains(t, ctx.KeyConcepts, "loop")
	assert.Contains(t, ctx.KeyConcepts, "Machine Learning")
	assert.LessOrEqual(t, len(ctx.KeyConcepts), 10)
}

func TestExtractKeyConcepts_CapAndDedup(t *testing.T) {
	analyzer := NewAnalyzer()

	text := "equation calculate solve derivative integral algebra geometry trigonometry calculus theorem proof"
	concepts := analyzer.extractKeyConcepts(text, text, "mathematics")

	assert.Len(t, concepts, 10)
}

func TestHasCode(t *testing.T) {
	analyzer := NewAnalyzer()

	assert.True(t, analyzer.hasCode("def fibonacci(n): return n"))
	assert.True(t, analyzer.hasCode("use the => operator"))
	assert.False(t, analyzer.hasCode("write an essay about the war"))
}

func TestHasEquations(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		text string
		want bool
	}{
		{"compute 12 + 7", true},
		{"x = 5 is the answer", true},
		{"find sin and cos of the angle", true},
		{"the integral ∫ f(x) dx", true},
		{"write about the french revolution", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, analyzer.hasEquations(tt.text), "text: %s", tt.text)
	}
}
