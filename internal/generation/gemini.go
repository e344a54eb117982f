package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/pkg/config"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient generates solutions through the Gemini generateContent API.
type GeminiClient struct {
	apiKey      string
	model       string
	baseURL     string
	httpClient  *http.Client
	initialized bool
}

// NewGeminiClient creates a new Gemini solution provider.
func NewGeminiClient(cfg *config.GeminiConfig) (*GeminiClient, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

// Initialize probes the configured model so misconfiguration surfaces at
// startup instead of on the first assignment.
func (c *GeminiClient) Initialize(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError("gemini availability check failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyProviderStatus("gemini", resp)
	}

	c.initialized = true
	return nil
}

func (c *GeminiClient) IsAvailable() bool { return c.initialized }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateSolution builds the full structured prompt, calls the model, and
// parses the response into a scored solution.
func (c *GeminiClient) GenerateSolution(ctx context.Context, assignment *entities.Assignment) (*entities.GeneratedSolution, error) {
	if assignment == nil {
		return nil, apperrors.NewValidationError("assignment is required")
	}
	if !c.initialized {
		return nil, &ErrProviderNotInitialized{Provider: "gemini"}
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildPrompt(assignment)}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 4096,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordLLMMetric(ctx, "gemini", c.model, 0, time.Since(start), err)
		return nil, apperrors.NewNetworkError("gemini request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		classified := classifyProviderStatus("gemini", resp)
		recordLLMMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), classified)
		return nil, classified
	}

	var envelope geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordLLMMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	var text string
	for _, candidate := range envelope.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		err := errors.New("gemini response missing candidate text")
		recordLLMMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), err)
		return nil, apperrors.NewExternalError("gemini returned no solution text", err)
	}

	recordLLMMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), nil)

	parsed := parseSolutionResponse(stripMarkdownFence(text))
	score := confidenceScore(parsed, assignment.Type)
	recordSolutionConfidence(ctx, "gemini", c.model, score)

	return &entities.GeneratedSolution{
		ID:               uuid.NewString(),
		AssignmentID:     assignment.ID,
		Content:          parsed.Content,
		Explanation:      parsed.Explanation,
		Steps:            parsed.Steps,
		Reasoning:        parsed.Reasoning,
		GeneratedBy:      "gemini",
		Model:            c.model,
		ConfidenceScore:  score,
		ProcessingTime:   time.Since(start),
		SubjectArea:      assignment.Subject,
		QualityValidated: validateQuality(parsed),
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// classifyProviderStatus maps a non-2xx provider response to a typed error
// so the failover manager can tell rate limiting apart from hard failures.
func classifyProviderStatus(provider string, resp *http.Response) error {
	cause := fmt.Errorf("%s request failed with status %d", provider, resp.StatusCode)
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperrors.NewRateLimitError(provider+" rate limit exceeded", parseRetryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperrors.NewAuthenticationError(provider + " rejected the api key")
	case resp.StatusCode >= 500:
		return apperrors.NewServerError(provider+" is unavailable", cause)
	default:
		return apperrors.NewExternalError(cause.Error(), nil)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}

// stripMarkdownFence removes a code fence wrapping the whole response.
func stripMarkdownFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```markdown") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
