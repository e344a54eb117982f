package providers

import (
	"context"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
)

// ProviderStatus represents the tracked health of a generation provider
type ProviderStatus string

const (
	ProviderStatusAvailable   ProviderStatus = "available"
	ProviderStatusRateLimited ProviderStatus = "rate_limited"
	ProviderStatusUnavailable ProviderStatus = "unavailable"
	ProviderStatusError       ProviderStatus = "error"
)

// SolutionProvider wraps a remote text-generation service. Implementations
// build a prompt, invoke the service, parse the structured response, and
// score the result.
type SolutionProvider interface {
	// Name returns the provider's registry name.
	Name() string

	// Initialize validates credentials and performs a single connectivity
	// probe. It must be called before GenerateSolution.
	Initialize(ctx context.Context) error

	// IsAvailable reports whether the provider is ready to serve requests.
	IsAvailable() bool

	// GenerateSolution produces a solution for the assignment.
	GenerateSolution(ctx context.Context, assignment *entities.Assignment) (*entities.GeneratedSolution, error)
}
