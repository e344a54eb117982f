package generation

import (
	"strings"
	"unicode"
)

type parsedSolution struct {
	Content     string
	Explanation string
	Steps       []string
	Reasoning   string
}

const (
	fallbackExplanation = "Generated solution for the assignment."
	fallbackReasoning   = "Solution generated using AI analysis of the assignment requirements."
)

// parseSolutionResponse splits a model response into the four expected
// sections. A response without any recognizable section becomes the
// solution content verbatim, with fixed filler for explanation and
// reasoning.
func parseSolutionResponse(raw string) parsedSolution {
	var parsed parsedSolution

	sections := strings.Split(raw, "##")
	for _, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		header, body, found := strings.Cut(section, "\n")
		if !found {
			continue
		}
		body = strings.TrimSpace(body)
		switch {
		case containsFold(header, "SOLUTION"):
			parsed.Content = body
		case containsFold(header, "EXPLANATION"):
			parsed.Explanation = body
		case containsFold(header, "STEP-BY-STEP") || containsFold(header, "STEP BY STEP"):
			parsed.Steps = parseSteps(body)
		case containsFold(header, "REASONING"):
			parsed.Reasoning = body
		}
	}

	if parsed.Content == "" && parsed.Explanation == "" && len(parsed.Steps) == 0 && parsed.Reasoning == "" {
		parsed.Content = raw
		parsed.Explanation = fallbackExplanation
		parsed.Reasoning = fallbackReasoning
	}

	return parsed
}

// parseSteps extracts enumerated step lines: lines starting with a digit,
// a dash, or a bullet, with the list markers stripped off.
func parseSteps(body string) []string {
	var steps []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first := rune(line[0])
		if !unicode.IsDigit(first) && first != '-' && !strings.HasPrefix(line, "•") {
			continue
		}
		step := strings.TrimLeft(line, "0123456789.-• ")
		if step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), substr)
}
