package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
	"github.com/Maximus-08/Assignment-solver/pkg/retry"
)

// Client is the backend assignment API used to deliver generated solutions.
type Client interface {
	HealthCheck(ctx context.Context) error
	CheckAssignmentExists(ctx context.Context, externalID string) (*RemoteAssignment, error)
	CreateAssignment(ctx context.Context, assignment *entities.Assignment) (*RemoteAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status entities.AssignmentStatus) error
	UploadSolution(ctx context.Context, assignmentID string, solution *entities.GeneratedSolution) error
}

// RemoteAssignment is the backend's view of an assignment record.
type RemoteAssignment struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retryCfg   retry.Config
	logger     zerolog.Logger
}

// NewHTTPClient creates a backend API client. Every request carries an
// X-API-Key header and a fresh X-Request-ID for correlation.
func NewHTTPClient(baseURL, apiKey string, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryCfg: retry.DefaultConfig(),
		logger:   logger.With().Str("component", "delivery_client").Logger(),
	}
}

// HealthCheck probes /health, falling back to the root path for backends
// that do not expose a dedicated health endpoint.
func (c *HTTPClient) HealthCheck(ctx context.Context) error {
	if err := c.ping(ctx, "/health"); err != nil {
		return c.ping(ctx, "/")
	}
	return nil
}

func (c *HTTPClient) ping(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError("backend is unreachable", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return apperrors.NewServerError("backend health check failed", fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}

// CheckAssignmentExists looks up an assignment by its external identifier.
// Lookup failures are reported as a miss so delivery can proceed with a
// create instead of stalling.
func (c *HTTPClient) CheckAssignmentExists(ctx context.Context, externalID string) (*RemoteAssignment, error) {
	var found RemoteAssignment
	path := "/api/v1/assignments/search?external_id=" + externalID
	err := c.doRequest(ctx, http.MethodGet, path, nil, &found)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, nil
		}
		c.logger.Warn().Err(err).Str("external_id", externalID).Msg("existence check failed, assuming missing")
		return nil, nil
	}
	if found.ID == "" {
		return nil, nil
	}
	return &found, nil
}

// CreateAssignment registers the assignment with the backend.
func (c *HTTPClient) CreateAssignment(ctx context.Context, assignment *entities.Assignment) (*RemoteAssignment, error) {
	var created RemoteAssignment
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/assignments", assignment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAssignmentStatus transitions the assignment on the backend.
func (c *HTTPClient) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status entities.AssignmentStatus) error {
	payload := map[string]string{"status": string(status)}
	path := fmt.Sprintf("/api/v1/assignments/_internal/%s/status", assignmentID)
	return c.doRequest(ctx, http.MethodPatch, path, payload, nil)
}

// UploadSolution attaches the generated solution to the assignment.
func (c *HTTPClient) UploadSolution(ctx context.Context, assignmentID string, solution *entities.GeneratedSolution) error {
	path := fmt.Sprintf("/api/v1/assignments/_internal/%s/solution", assignmentID)
	return c.doRequest(ctx, http.MethodPost, path, solution, nil)
}

// doRequest is the uniform request executor: it serializes the body, tags
// the request, classifies failures into typed errors, and retries the
// retryable ones with backoff.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	endpoint := c.baseURL + path
	return retry.DoWithLog(ctx, c.retryCfg, "backend", func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return err
		}
		req.Header.Set("X-API-Key", c.apiKey)
		req.Header.Set("X-Request-ID", uuid.NewString())
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return apperrors.NewNetworkError("backend request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return classifyResponse(resp)
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return apperrors.NewExternalError("backend returned malformed response", err)
			}
		} else {
			io.Copy(io.Discard, resp.Body)
		}
		return nil
	}, func(attempt int, err error, nextDelay time.Duration) {
		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("method", method).
			Str("path", path).
			Dur("next_delay", nextDelay).
			Msg("backend request retry")
	})
}

// classifyResponse maps backend status codes to typed errors; client
// errors surface immediately while rate limits and server faults retry.
func classifyResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.NewValidationError("backend rejected the request payload")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperrors.NewAuthenticationError("backend rejected the api key")
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError("backend resource not found")
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperrors.NewRateLimitError("backend rate limit exceeded", parseRetryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode >= 500:
		return apperrors.NewServerError("backend internal error", fmt.Errorf("status %d", resp.StatusCode))
	default:
		return apperrors.NewExternalError(fmt.Sprintf("backend returned status %d", resp.StatusCode), nil)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(strings.TrimSpace(header), "%d", &seconds); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}
