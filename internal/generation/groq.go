package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Maximus-08/Assignment-solver/internal/analysis"
	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/pkg/config"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// groqConfidence is the fixed confidence assigned to solutions from the
// fast fallback provider; its compact prompt makes the structural
// heuristic unreliable.
const groqConfidence = 0.90

// GroqClient generates solutions through Groq's OpenAI-compatible
// chat completions API. It is the fast fallback provider: prompts are
// compact and driven by assignment analysis rather than the full
// instruction tables.
type GroqClient struct {
	apiKey      string
	model       string
	baseURL     string
	httpClient  *http.Client
	analyzer    *analysis.Analyzer
	initialized bool
}

// NewGroqClient creates a new Groq solution provider.
func NewGroqClient(cfg *config.GroqConfig, analyzer *analysis.Analyzer) (*GroqClient, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("groq api key is required")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}

	model := cfg.Model
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}

	return &GroqClient{
		apiKey:   cfg.APIKey,
		model:    model,
		baseURL:  groqBaseURL,
		analyzer: analyzer,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *GroqClient) Name() string { return "groq" }

// Initialize verifies the api key against the models endpoint.
func (c *GroqClient) Initialize(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError("groq availability check failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyProviderStatus("groq", resp)
	}

	c.initialized = true
	return nil
}

func (c *GroqClient) IsAvailable() bool { return c.initialized }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateSolution analyzes the assignment, sends the compact prompt, and
// parses the response into a solution with the fixed provider confidence.
func (c *GroqClient) GenerateSolution(ctx context.Context, assignment *entities.Assignment) (*entities.GeneratedSolution, error) {
	if assignment == nil {
		return nil, apperrors.NewValidationError("assignment is required")
	}
	if !c.initialized {
		return nil, &ErrProviderNotInitialized{Provider: "groq"}
	}

	analysisCtx := c.analyzer.Analyze(assignment)

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildContextPrompt(assignment, analysisCtx)},
		},
		Temperature: 0.3,
		MaxTokens:   4096,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordLLMMetric(ctx, "groq", c.model, 0, time.Since(start), err)
		return nil, apperrors.NewNetworkError("groq request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		classified := classifyProviderStatus("groq", resp)
		recordLLMMetric(ctx, "groq", c.model, resp.StatusCode, time.Since(start), classified)
		return nil, classified
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordLLMMetric(ctx, "groq", c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		err := errors.New("groq response missing message content")
		recordLLMMetric(ctx, "groq", c.model, resp.StatusCode, time.Since(start), err)
		return nil, apperrors.NewExternalError("groq returned no solution text", err)
	}

	recordLLMMetric(ctx, "groq", c.model, resp.StatusCode, time.Since(start), nil)

	parsed := parseSolutionResponse(stripMarkdownFence(envelope.Choices[0].Message.Content))
	recordSolutionConfidence(ctx, "groq", c.model, groqConfidence)

	return &entities.GeneratedSolution{
		ID:               uuid.NewString(),
		AssignmentID:     assignment.ID,
		Content:          parsed.Content,
		Explanation:      parsed.Explanation,
		Steps:            parsed.Steps,
		Reasoning:        parsed.Reasoning,
		GeneratedBy:      "groq",
		Model:            c.model,
		ConfidenceScore:  groqConfidence,
		ProcessingTime:   time.Since(start),
		SubjectArea:      analysisCtx.Subject,
		QualityValidated: validateQuality(parsed),
		CreatedAt:        time.Now().UTC(),
	}, nil
}
