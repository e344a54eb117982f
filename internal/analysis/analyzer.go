package analysis

import (
	"regexp"
	"strings"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

// subjectOrder fixes the scoring iteration order so ties resolve
// deterministically to the earliest entry.
var subjectOrder = []string{
	"mathematics",
	"computer_science",
	"physics",
	"chemistry",
	"biology",
	"english",
	"history",
	"economics",
}

var subjectKeywords = map[string][]string{
	"mathematics": {
		"equation", "calculate", "solve", "derivative", "integral", "algebra",
		"geometry", "trigonometry", "calculus", "theorem", "proof", "formula",
		"variable", "function", "graph", "matrix", "vector", "polynomial",
	},
	"computer_science": {
		"code", "program", "algorithm", "function", "class", "method",
		"variable", "loop", "array", "data structure", "python", "java",
		"javascript", "compile", "debug", "api", "database", "sql",
	},
	"physics": {
		"force", "energy", "momentum", "velocity", "acceleration", "mass",
		"newton", "quantum", "thermodynamics", "mechanics", "wave", "particle",
		"electric", "magnetic", "circuit", "joule", "watt",
	},
	"chemistry": {
		"molecule", "atom", "reaction", "compound", "element", "bond",
		"chemical", "solution", "acid", "base", "ph", "periodic", "organic",
		"inorganic", "oxidation", "reduction", "catalyst",
	},
	"biology": {
		"cell", "organism", "dna", "protein", "gene", "evolution", "ecology",
		"metabolism", "photosynthesis", "enzyme", "bacteria", "virus", "tissue",
		"organ", "species", "ecosystem",
	},
	"english": {
		"essay", "analyze", "theme", "character", "plot", "metaphor", "symbolism",
		"author", "literature", "poem", "novel", "prose", "rhetoric", "argument",
		"paragraph", "thesis", "narrative",
	},
	"history": {
		"war", "revolution", "empire", "dynasty", "treaty", "constitution",
		"century", "civilization", "ancient", "medieval", "modern", "colonial",
		"independence", "political", "economic", "social",
	},
	"economics": {
		"market", "supply", "demand", "price", "inflation", "gdp", "trade",
		"economy", "fiscal", "monetary", "investment", "stock", "capital",
		"profit", "cost", "revenue",
	},
}

var complexityIndicators = map[entities.ComplexityLevel][]string{
	entities.ComplexityHigh: {
		"advanced", "complex", "sophisticated", "comprehensive", "in-depth",
		"detailed", "rigorous", "extensive", "thorough", "graduate", "research",
	},
	entities.ComplexityMedium: {
		"explain", "describe", "compare", "analyze", "discuss", "evaluate",
		"demonstrate", "justify", "interpret",
	},
	entities.ComplexityLow: {
		"simple", "basic", "introduction", "overview", "list", "define",
		"identify", "name", "what is", "elementary",
	},
}

// questionTypeOrder fixes the scoring iteration order; ties resolve to the
// earliest entry.
var questionTypeOrder = []entities.QuestionType{
	entities.QuestionProblemSolving,
	entities.QuestionAnalytical,
	entities.QuestionExplanatory,
	entities.QuestionComparative,
	entities.QuestionCreative,
	entities.QuestionResearch,
}

var questionTypeIndicators = map[entities.QuestionType][]string{
	entities.QuestionProblemSolving: {"solve", "calculate", "compute", "find", "determine", "derive"},
	entities.QuestionAnalytical:     {"analyze", "examine", "investigate", "evaluate", "assess", "critique"},
	entities.QuestionExplanatory:    {"explain", "describe", "discuss", "elaborate", "clarify", "illustrate"},
	entities.QuestionComparative:    {"compare", "contrast", "differentiate", "distinguish", "relate"},
	entities.QuestionCreative:       {"design", "create", "develop", "propose", "construct", "formulate"},
	entities.QuestionResearch:       {"research", "investigate", "survey", "review", "study", "explore"},
}

var equationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*[+\-*/=]\s*\d+`),        // basic arithmetic
	regexp.MustCompile(`[xy]\s*=\s*\d+`),              // variable assignments
	regexp.MustCompile(`(?i)\b(sin|cos|tan|log|ln)\b`),
	regexp.MustCompile(`\^|²|³`),                      // exponents
	regexp.MustCompile(`∫|∑|∏|√`),
	regexp.MustCompile(`\([^)]*[+\-*/][^)]*\)`),       // expressions in parentheses
}

var codeIndicators = []string{
	"def ", "function ", "class ", "import ", "include ",
	"public ", "private ", "void ", "return ",
	"{", "}", "=>", "==", "!=",
}

var (
	camelCasePattern  = regexp.MustCompile(`\b[A-Z][a-z]*[A-Z][a-z]*\b`)
	capitalizedPhrase = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
)

const (
	maxCapitalizedConcepts = 5
	maxKeyConcepts         = 10
)

// Analyzer classifies assignment content into subject, complexity, question
// type, and key concepts to drive context-aware prompting. It is pure and
// performs no I/O.
type Analyzer struct{}

// NewAnalyzer creates a new context analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze derives an AnalysisContext from an assignment. Missing fields are
// treated permissively: a nil assignment or empty description yields a
// "general" low-signal context rather than an error.
func (a *Analyzer) Analyze(assignment *entities.Assignment) entities.AnalysisContext {
	if assignment == nil {
		assignment = &entities.Assignment{}
	}

	raw := strings.TrimSpace(assignment.Title + " " + assignment.Description)
	text := strings.ToLower(raw)

	subject, confidence := a.detectSubject(text, assignment.Subject)

	return entities.AnalysisContext{
		Subject:           subject,
		SubjectConfidence: confidence,
		Complexity:        a.detectComplexity(text, raw),
		QuestionType:      a.detectQuestionType(text),
		KeyConcepts:       a.extractKeyConcepts(text, raw, subject),
		HasEquations:      a.hasEquations(text),
		HasCode:           a.hasCode(text),
		WordCount:         len(strings.Fields(text)),
	}
}

func (a *Analyzer) detectSubject(text, declared string) (string, float64) {
	// A declared subject wins: map it onto a known category when the names
	// overlap, otherwise take it verbatim at slightly lower confidence.
	if declared != "" {
		normalized := strings.ToLower(declared)
		for _, category := range subjectOrder {
			if strings.Contains(normalized, category) || strings.Contains(category, normalized) {
				return category, 0.95
			}
		}
		return declared, 0.90
	}

	bestSubject := ""
	bestScore := 0
	for _, category := range subjectOrder {
		score := 0
		for _, keyword := range subjectKeywords[category] {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestSubject = category
			bestScore = score
		}
	}

	if bestScore == 0 {
		return "general", 0.5
	}

	confidence := float64(bestScore) / 10.0
	if confidence > 0.95 {
		confidence = 0.95
	}
	return bestSubject, confidence
}

// detectComplexity accumulates indicator hits per level plus word-count and
// technical-term bonuses. Ties resolve high > medium > low.
func (a *Analyzer) detectComplexity(text, raw string) entities.ComplexityLevel {
	scores := map[entities.ComplexityLevel]int{}
	for level, indicators := range complexityIndicators {
		for _, indicator := range indicators {
			if strings.Contains(text, indicator) {
				scores[level]++
			}
		}
	}

	wordCount := len(strings.Fields(text))
	switch {
	case wordCount > 500:
		scores[entities.ComplexityHigh] += 2
	case wordCount > 200:
		scores[entities.ComplexityMedium] += 2
	default:
		scores[entities.ComplexityLow]++
	}

	if len(camelCasePattern.FindAllString(raw, -1)) > 5 {
		scores[entities.ComplexityHigh]++
	}

	best := entities.ComplexityHigh
	for _, level := range []entities.ComplexityLevel{entities.ComplexityMedium, entities.ComplexityLow} {
		if scores[level] > scores[best] {
			best = level
		}
	}
	return best
}

func (a *Analyzer) detectQuestionType(text string) entities.QuestionType {
	best := entities.QuestionExplanatory
	bestScore := 0
	for _, qt := range questionTypeOrder {
		score := 0
		for _, indicator := range questionTypeIndicators[qt] {
			if strings.Contains(text, indicator) {
				score++
			}
		}
		if score > bestScore {
			best = qt
			bestScore = score
		}
	}
	return best
}

// extractKeyConcepts collects subject keywords found in the text plus up to
// five capitalized multi-word phrases, deduplicated case-insensitively and
// capped at ten.
func (a *Analyzer) extractKeyConcepts(text, raw, subject string) []string {
	var concepts []string

	if keywords, ok := subjectKeywords[subject]; ok {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				concepts = append(concepts, keyword)
			}
		}
	}

	phrases := capitalizedPhrase.FindAllString(raw, -1)
	if len(phrases) > maxCapitalizedConcepts {
		phrases = phrases[:maxCapitalizedConcepts]
	}
	concepts = append(concepts, phrases...)

	seen := map[string]struct{}{}
	unique := make([]string, 0, len(concepts))
	for _, concept := range concepts {
		key := strings.ToLower(concept)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, concept)
		if len(unique) == maxKeyConcepts {
			break
		}
	}
	return unique
}

func (a *Analyzer) hasEquations(text string) bool {
	for _, pattern := range equationPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func (a *Analyzer) hasCode(text string) bool {
	for _, indicator := range codeIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}
