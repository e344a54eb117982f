package generation

import (
	"fmt"
	"strings"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

// subjectClass is the closed set of subjects with dedicated prompt
// instructions. Anything unrecognized falls back to subjectGeneral.
type subjectClass int

const (
	subjectGeneral subjectClass = iota
	subjectMathematics
	subjectScience
	subjectEnglish
	subjectHistory
	subjectComputerScience
)

func classifySubject(subject string) subjectClass {
	switch strings.ToLower(strings.TrimSpace(subject)) {
	case "mathematics", "math":
		return subjectMathematics
	case "science", "physics", "chemistry", "biology":
		return subjectScience
	case "english", "literature":
		return subjectEnglish
	case "history":
		return subjectHistory
	case "computer_science", "computer science":
		return subjectComputerScience
	default:
		return subjectGeneral
	}
}

func subjectInstructions(class subjectClass) string {
	switch class {
	case subjectMathematics:
		return `**Mathematics Instructions:**
- Show ALL mathematical work with complete step-by-step calculations
- Write out formulas in full before substituting values
- Define all variables and their units clearly
- Explain the mathematical reasoning for each step
- Include relevant theorems, laws, or principles with their statements
- Provide alternative solution methods when applicable and compare them
- Verify the answer using different methods or by substitution
- Include domain, range, or constraints where relevant`
	case subjectScience:
		return `**Science Instructions:**
- Use precise scientific terminology with definitions
- Explain ALL underlying scientific principles in detail
- State relevant scientific laws, theories, and principles explicitly
- Describe experimental procedures and methodologies thoroughly
- Provide molecular/atomic level explanations where applicable
- Connect to real-world applications with specific examples
- Include units for all measurements and calculations
- Compare and contrast related concepts or phenomena`
	case subjectEnglish:
		return `**English/Literature Instructions:**
- Provide textual evidence to support analysis
- Use proper literary terminology
- Structure arguments clearly with introduction, body, and conclusion
- Consider multiple interpretations where appropriate
- Focus on critical thinking and analysis skills`
	case subjectHistory:
		return `**History Instructions:**
- Provide historical context and background
- Use specific dates, names, and events
- Analyze cause and effect relationships
- Consider multiple perspectives on historical events
- Connect past events to their broader significance`
	case subjectComputerScience:
		return `**Computer Science Instructions:**
- Include complete, working code examples with proper syntax and formatting
- Add detailed inline comments explaining each code section
- Explain algorithms step-by-step with pseudocode when helpful
- Describe data structures used and why they were chosen
- Analyze time complexity and space complexity in detail
- Include edge cases and error handling
- Add example inputs and outputs with walkthroughs
- Discuss best practices, code style, and maintainability`
	default:
		return `**General Instructions:**
- Adapt your approach to the specific subject matter with depth
- Use precise academic language and define all terminology
- Provide comprehensive coverage of the topic
- Include multiple relevant examples with detailed explanations
- Add context, background, and historical perspective where applicable
- Build logical arguments with clear reasoning
- Focus on deep educational value and thorough understanding`
	}
}

func typeInstructions(assignmentType entities.AssignmentType) string {
	switch assignmentType {
	case entities.AssignmentTypeEssay:
		return `**Essay Instructions:**
- Provide a clear thesis statement
- Structure with introduction, body paragraphs, and conclusion
- Use topic sentences and transitions
- Include evidence and examples to support arguments
- Ensure proper grammar and style`
	case entities.AssignmentTypeProblemSet:
		return `**Problem Set Instructions:**
- Solve each problem completely
- Show all work and intermediate steps
- Explain the reasoning for each solution approach
- Double-check calculations and final answers
- Organize solutions clearly by problem number`
	case entities.AssignmentTypeResearch:
		return `**Research Instructions:**
- Identify key research questions or hypotheses
- Suggest reliable sources and research methods
- Outline the research process and methodology
- Discuss potential findings and implications
- Include proper citation format guidance`
	case entities.AssignmentTypeLab:
		return `**Lab Instructions:**
- Explain the scientific method and experimental design
- Describe procedures and safety considerations
- Discuss expected results and data analysis
- Address potential sources of error
- Connect results to theoretical concepts`
	case entities.AssignmentTypeAssessment:
		return `**Assessment Instructions:**
- Provide comprehensive answers to all questions
- Show understanding of key concepts
- Use examples to illustrate points
- Organize answers clearly and logically
- Review and verify all responses`
	default:
		return `**General Assignment Instructions:**
- Address all parts of the assignment thoroughly
- Use appropriate academic structure and format
- Provide clear explanations and reasoning
- Include relevant examples and evidence
- Ensure completeness and accuracy`
	}
}

const outputFormatDirective = `**Required Output Format:**
Please structure your response exactly as follows:

## SOLUTION
[Provide the complete, detailed solution/answer here. Be thorough and comprehensive - include all relevant details, formulas, concepts, and explanations needed for full understanding.]

## EXPLANATION
[Provide an in-depth explanation of the solution: explain all key concepts and terminology used, describe why this approach works, include context and background information, and discuss real-world applications or relevance.]

## STEP-BY-STEP
[Break down the solution into detailed, numbered steps. Each step should be clear and self-contained, with intermediate results and calculations shown.]

## REASONING
[Explain your analytical approach and methodology, why you chose this method over alternatives, the assumptions made, and any limitations or edge cases considered.]`

// buildPrompt assembles the full solution-generation prompt: assignment
// header block, material summaries, subject- and type-specific instruction
// blocks, and the fixed four-section output format directive.
func buildPrompt(assignment *entities.Assignment) string {
	var b strings.Builder

	b.WriteString(`You are a highly knowledgeable expert educational assistant with deep expertise across multiple academic disciplines. Your goal is to provide exceptionally detailed, precise, and comprehensive solutions that demonstrate thorough understanding and help students learn deeply.

**Assignment Details:**
`)
	fmt.Fprintf(&b, "- Title: %s\n", assignment.Title)
	fmt.Fprintf(&b, "- Subject: %s\n", assignment.Subject)
	fmt.Fprintf(&b, "- Course: %s\n", assignment.CourseName)
	fmt.Fprintf(&b, "- Type: %s\n", assignment.Type)
	fmt.Fprintf(&b, "- Description: %s\n", assignment.Description)

	if len(assignment.Materials) > 0 {
		b.WriteString("\n**Additional Materials:**\n")
		for _, material := range assignment.Materials {
			title := material.Metadata["title"]
			if title == "" {
				title = "Unknown"
			}
			fmt.Fprintf(&b, "- %s: %s\n", material.Type, title)
			if material.Content != "" {
				fmt.Fprintf(&b, "  Content: %s\n", truncate(material.Content, 200))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(subjectInstructions(classifySubject(assignment.Subject)))
	b.WriteString("\n\n")
	b.WriteString(typeInstructions(assignment.Type))
	b.WriteString("\n\n")
	b.WriteString(outputFormatDirective)

	return b.String()
}

// buildContextPrompt assembles the compact, analysis-driven prompt used by
// the fast fallback provider, which has tighter token limits.
func buildContextPrompt(assignment *entities.Assignment, analysis entities.AnalysisContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert educational assistant specializing in %s.\n\n", strings.ToUpper(analysis.Subject))

	b.WriteString("**Assignment Context:**\n")
	fmt.Fprintf(&b, "Subject: %s | Complexity: %s | Type: %s\n",
		analysis.Subject, strings.ToUpper(string(analysis.Complexity)), strings.ReplaceAll(string(analysis.QuestionType), "_", " "))
	concepts := analysis.KeyConcepts
	if len(concepts) > 3 {
		concepts = concepts[:3]
	}
	if len(concepts) == 0 {
		b.WriteString("Key Concepts: N/A\n")
	} else {
		fmt.Fprintf(&b, "Key Concepts: %s\n", strings.Join(concepts, ", "))
	}

	b.WriteString("\n**Assignment:**\n")
	fmt.Fprintf(&b, "Title: %s\n", assignment.Title)
	fmt.Fprintf(&b, "Course: %s\n", assignment.CourseName)
	fmt.Fprintf(&b, "Description: %s\n", assignment.Description)

	b.WriteString("\n**Approach:**\n")
	switch analysis.Complexity {
	case entities.ComplexityHigh:
		b.WriteString("- Provide advanced depth with theoretical foundations\n- Include multiple approaches and trade-offs\n- Address edge cases\n")
	case entities.ComplexityMedium:
		b.WriteString("- Balance depth with accessibility\n- Include thorough explanations with examples\n- Connect to practical applications\n")
	default:
		b.WriteString("- Start with fundamentals\n- Use clear, simple language\n- Provide examples and analogies\n")
	}

	b.WriteString("\n")
	b.WriteString(outputFormatDirective)
	b.WriteString("\n\nBe comprehensive and educational. Show all work and explain thoroughly.")

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
