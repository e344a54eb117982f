package generation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/internal/domain/providers"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

// Manager holds an ordered priority list of solution providers and executes
// generation requests with sequential failover. Providers are tried one at a
// time, never raced: racing paid, rate-limited services would burn quota for
// no benefit over ordered failover.
type Manager struct {
	priority   []string
	registered map[string]providers.SolutionProvider
	clients    map[string]providers.SolutionProvider
	health     *HealthRegistry
	logger     zerolog.Logger
}

// NewManager creates a provider manager over the given health registry and
// priority order. Providers not named in the priority list are never tried.
func NewManager(health *HealthRegistry, priority []string, logger zerolog.Logger, provs ...providers.SolutionProvider) *Manager {
	registered := make(map[string]providers.SolutionProvider, len(provs))
	for _, p := range provs {
		registered[p.Name()] = p
	}
	return &Manager{
		priority:   priority,
		registered: registered,
		clients:    make(map[string]providers.SolutionProvider),
		health:     health,
		logger:     logger.With().Str("component", "provider_manager").Logger(),
	}
}

// Initialize probes every registered provider independently. A provider
// failing to initialize is recorded as unavailable but does not abort the
// others; the only fatal condition is zero providers initializing.
func (m *Manager) Initialize(ctx context.Context) error {
	initialized := 0

	for _, name := range m.priority {
		provider, ok := m.registered[name]
		if !ok {
			m.logger.Warn().Str("provider", name).Msg("provider in priority list is not registered")
			continue
		}

		if err := provider.Initialize(ctx); err != nil {
			m.logger.Error().Err(err).Str("provider", name).Msg("provider initialization failed")
			m.health.Set(name, providers.ProviderStatusUnavailable)
			continue
		}

		m.clients[name] = provider
		m.health.Set(name, providers.ProviderStatusAvailable)
		initialized++
		m.logger.Info().Str("provider", name).Msg("provider initialized")
	}

	if initialized == 0 {
		return apperrors.NewExternalError("no solution providers initialized", nil)
	}

	m.logger.Info().Int("providers", initialized).Msg("provider manager ready")
	return nil
}

// GenerateSolution generates a solution using the first healthy provider in
// priority order. When forceProvider is non-empty the ordering is bypassed
// and that provider is invoked directly.
func (m *Manager) GenerateSolution(ctx context.Context, assignment *entities.Assignment, forceProvider string) (*entities.GeneratedSolution, error) {
	if forceProvider != "" {
		provider, ok := m.clients[forceProvider]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("provider %q is not initialized", forceProvider))
		}
		m.logger.Info().Str("provider", forceProvider).Msg("using forced provider")
		return provider.GenerateSolution(ctx, assignment)
	}

	var attempts []string

	for _, name := range m.priority {
		provider, ok := m.clients[name]
		if !ok {
			m.logger.Debug().Str("provider", name).Msg("provider not initialized, skipping")
			continue
		}

		if m.health.Status(name) == providers.ProviderStatusUnavailable {
			m.logger.Debug().Str("provider", name).Msg("provider unavailable, skipping")
			continue
		}

		if !provider.IsAvailable() {
			m.logger.Warn().Str("provider", name).Msg("provider reports not available")
			m.health.Set(name, providers.ProviderStatusUnavailable)
			continue
		}

		m.logger.Info().Str("provider", name).Str("assignment", assignment.Title).Msg("attempting solution generation")

		solution, err := provider.GenerateSolution(ctx, assignment)
		if err == nil {
			m.health.Set(name, providers.ProviderStatusAvailable)
			m.logger.Info().Str("provider", name).Float64("confidence", solution.ConfidenceScore).Msg("solution generated")
			return solution, nil
		}

		if apperrors.IsType(err, apperrors.ErrorTypeRateLimit) {
			m.logger.Warn().Err(err).Str("provider", name).Msg("provider rate limited")
			m.health.Set(name, providers.ProviderStatusRateLimited)
			attempts = append(attempts, fmt.Sprintf("%s: rate limited", name))
			continue
		}

		m.logger.Error().Err(err).Str("provider", name).Msg("provider failed")
		m.health.Set(name, providers.ProviderStatusError)
		attempts = append(attempts, fmt.Sprintf("%s: %v", name, err))
	}

	m.logger.Error().Strs("errors", attempts).Msg("all providers exhausted")
	return nil, &NoAvailableProvidersError{Attempts: attempts}
}

// ResetProvider forces a provider's health back to available
func (m *Manager) ResetProvider(name string) bool {
	if m.health.Reset(name) {
		m.logger.Info().Str("provider", name).Msg("provider health reset to available")
		return true
	}
	return false
}

// ProviderStatus returns the current health of all tracked providers
func (m *Manager) ProviderStatus() map[string]providers.ProviderStatus {
	return m.health.Snapshot()
}
