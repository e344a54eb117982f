package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/pkg/config"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

const geminiAnswer = `## SOLUTION
The value of x is 2, found by isolating the variable on one side of the equation and applying inverse operations in order.

## EXPLANATION
Subtract three from both sides to remove the constant term, then divide both sides by two so that x stands alone on the left side.

## STEP-BY-STEP
1. Subtract 3 from both sides
2. Divide both sides by 2

## REASONING
A linear equation in one variable is solved by inverse operations.`

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key"})
	require.NoError(t, err)
	client.baseURL = srv.URL
	return client
}

func geminiBody(text string) []byte {
	body, _ := json.Marshal(geminiResponse{
		Candidates: []struct {
			Content geminiContent `json:"content"`
		}{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	})
	return body
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(&config.GeminiConfig{})
	assert.Error(t, err)
	_, err = NewGeminiClient(nil)
	assert.Error(t, err)
}

func TestGeminiGenerateSolution(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusOK)
		case http.MethodPost:
			assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var payload geminiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Len(t, payload.Contents, 1)
			assert.Contains(t, payload.Contents[0].Parts[0].Text, "## SOLUTION")

			w.Write(geminiBody("```markdown\n" + geminiAnswer + "\n```"))
		}
	})
	require.NoError(t, client.Initialize(context.Background()))
	assert.True(t, client.IsAvailable())

	assignment := &entities.Assignment{
		ID:      "a-1",
		Title:   "Solve for x: 2x + 3 = 7",
		Subject: "mathematics",
		Type:    entities.AssignmentTypeProblemSet,
	}

	solution, err := client.GenerateSolution(context.Background(), assignment)
	require.NoError(t, err)

	assert.Equal(t, "gemini", solution.GeneratedBy)
	assert.Equal(t, "a-1", solution.AssignmentID)
	assert.Contains(t, solution.Content, "The value of x is 2")
	assert.Len(t, solution.Steps, 2)
	assert.True(t, solution.QualityValidated)
	assert.Equal(t, 1.0, solution.ConfidenceScore)
}

func TestGeminiGenerateSolution_RateLimited(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	require.NoError(t, client.Initialize(context.Background()))

	_, err := client.GenerateSolution(context.Background(), &entities.Assignment{Title: "t"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeRateLimit, appErr.Type)
	assert.Equal(t, 30*time.Second, appErr.RetryAfter)
}

func TestGeminiGenerateSolution_RefusalDeliveredUnvalidated(t *testing.T) {
	refusal := "I cannot provide a solution for this assignment without more information about the question being asked."
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write(geminiBody(refusal))
	})
	require.NoError(t, client.Initialize(context.Background()))

	solution, err := client.GenerateSolution(context.Background(), &entities.Assignment{Title: "t"})
	require.NoError(t, err)

	// a failed quality gate degrades the solution, it never errors
	assert.False(t, solution.QualityValidated)
	assert.Equal(t, refusal, solution.Content)
	assert.NotEmpty(t, solution.Explanation)
	assert.NotEmpty(t, solution.Reasoning)
}

func TestGeminiGenerateSolution_NotInitialized(t *testing.T) {
	client, err := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key"})
	require.NoError(t, err)

	_, err = client.GenerateSolution(context.Background(), &entities.Assignment{Title: "t"})
	require.Error(t, err)

	var notInit *ErrProviderNotInitialized
	assert.ErrorAs(t, err, &notInit)
}

func TestGeminiInitialize_BadKey(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.Initialize(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAuthentication))
	assert.False(t, client.IsAvailable())
}

func TestClassifyProviderStatus(t *testing.T) {
	tests := []struct {
		status int
		want   apperrors.ErrorType
	}{
		{http.StatusTooManyRequests, apperrors.ErrorTypeRateLimit},
		{http.StatusUnauthorized, apperrors.ErrorTypeAuthentication},
		{http.StatusForbidden, apperrors.ErrorTypeAuthentication},
		{http.StatusInternalServerError, apperrors.ErrorTypeServer},
		{http.StatusServiceUnavailable, apperrors.ErrorTypeServer},
		{http.StatusBadRequest, apperrors.ErrorTypeExternal},
	}

	for _, tt := range tests {
		resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
		err := classifyProviderStatus("gemini", resp)
		assert.True(t, apperrors.IsType(err, tt.want), "status %d", tt.status)
	}
}

func TestStripMarkdownFence(t *testing.T) {
	assert.Equal(t, "plain text", stripMarkdownFence("plain text"))
	assert.Equal(t, "fenced", stripMarkdownFence("```\nfenced\n```"))
	assert.Equal(t, "# Title", stripMarkdownFence("```markdown\n# Title\n```"))
}
