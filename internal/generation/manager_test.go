package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/internal/domain/providers"
	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

type fakeProvider struct {
	name      string
	initErr   error
	available bool
	genFn     func(ctx context.Context, a *entities.Assignment) (*entities.GeneratedSolution, error)
	calls     int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Initialize(_ context.Context) error { return f.initErr }

func (f *fakeProvider) IsAvailable() bool { return f.available }

func (f *fakeProvider) GenerateSolution(ctx context.Context, a *entities.Assignment) (*entities.GeneratedSolution, error) {
	f.calls++
	return f.genFn(ctx, a)
}

func healthyProvider(name string, solution *entities.GeneratedSolution) *fakeProvider {
	return &fakeProvider{
		name:      name,
		available: true,
		genFn: func(_ context.Context, _ *entities.Assignment) (*entities.GeneratedSolution, error) {
			return solution, nil
		},
	}
}

func failingProvider(name string, err error) *fakeProvider {
	return &fakeProvider{
		name:      name,
		available: true,
		genFn: func(_ context.Context, _ *entities.Assignment) (*entities.GeneratedSolution, error) {
			return nil, err
		},
	}
}

func testAssignment() *entities.Assignment {
	return &entities.Assignment{ID: "a-1", Title: "Solve for x"}
}

func TestManagerInitialize_PartialFailure(t *testing.T) {
	health := NewHealthRegistry()
	broken := &fakeProvider{name: "gemini", initErr: errors.New("dns failure")}
	working := healthyProvider("groq", &entities.GeneratedSolution{Content: "ok"})

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), broken, working)

	err := m.Initialize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, providers.ProviderStatusUnavailable, health.Status("gemini"))
	assert.Equal(t, providers.ProviderStatusAvailable, health.Status("groq"))
}

func TestManagerInitialize_AllFail(t *testing.T) {
	health := NewHealthRegistry()
	broken := &fakeProvider{name: "gemini", initErr: errors.New("dns failure")}

	m := NewManager(health, []string{"gemini"}, zerolog.Nop(), broken)

	err := m.Initialize(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestManagerInitialize_SkipsUnregisteredPriorityNames(t *testing.T) {
	health := NewHealthRegistry()
	working := healthyProvider("groq", &entities.GeneratedSolution{Content: "ok"})

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), working)

	require.NoError(t, m.Initialize(context.Background()))
	// The unregistered name was never probed, so it stays untracked.
	assert.Equal(t, providers.ProviderStatusUnavailable, health.Status("gemini"))
}

func TestGenerateSolution_FailoverToSecondProvider(t *testing.T) {
	health := NewHealthRegistry()
	want := &entities.GeneratedSolution{Content: "the answer", ConfidenceScore: 0.9}
	first := failingProvider("gemini", apperrors.NewServerError("upstream exploded", nil))
	second := healthyProvider("groq", want)

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), first, second)
	require.NoError(t, m.Initialize(context.Background()))

	got, err := m.GenerateSolution(context.Background(), testAssignment(), "")
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, providers.ProviderStatusError, health.Status("gemini"))
	assert.Equal(t, providers.ProviderStatusAvailable, health.Status("groq"))
}

func TestGenerateSolution_RateLimitedProviderMarked(t *testing.T) {
	health := NewHealthRegistry()
	want := &entities.GeneratedSolution{Content: "the answer"}
	limited := failingProvider("gemini", apperrors.NewRateLimitError("quota exceeded", 30*time.Second))
	second := healthyProvider("groq", want)

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), limited, second)
	require.NoError(t, m.Initialize(context.Background()))

	got, err := m.GenerateSolution(context.Background(), testAssignment(), "")
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, providers.ProviderStatusRateLimited, health.Status("gemini"))
}

func TestGenerateSolution_AllProvidersExhausted(t *testing.T) {
	health := NewHealthRegistry()
	limited := failingProvider("gemini", apperrors.NewRateLimitError("quota exceeded", time.Minute))
	broken := failingProvider("groq", apperrors.NewServerError("boom", nil))

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), limited, broken)
	require.NoError(t, m.Initialize(context.Background()))

	_, err := m.GenerateSolution(context.Background(), testAssignment(), "")
	require.Error(t, err)

	var exhausted *NoAvailableProvidersError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, []string{"gemini: rate limited", "groq: SERVER: boom"}, exhausted.Attempts)
	assert.Contains(t, err.Error(), "unable to generate solution - all providers failed or are rate-limited. Errors: gemini: rate limited; groq: SERVER: boom")
}

func TestGenerateSolution_SkipsUnavailableHealth(t *testing.T) {
	health := NewHealthRegistry()
	want := &entities.GeneratedSolution{Content: "the answer"}
	first := healthyProvider("gemini", nil)
	second := healthyProvider("groq", want)

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), first, second)
	require.NoError(t, m.Initialize(context.Background()))

	health.Set("gemini", providers.ProviderStatusUnavailable)

	got, err := m.GenerateSolution(context.Background(), testAssignment(), "")
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 0, first.calls)
}

func TestGenerateSolution_ProviderReportsNotAvailable(t *testing.T) {
	health := NewHealthRegistry()
	want := &entities.GeneratedSolution{Content: "the answer"}
	first := healthyProvider("gemini", nil)
	second := healthyProvider("groq", want)

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), first, second)
	require.NoError(t, m.Initialize(context.Background()))

	first.available = false

	got, err := m.GenerateSolution(context.Background(), testAssignment(), "")
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, providers.ProviderStatusUnavailable, health.Status("gemini"))
}

func TestGenerateSolution_ForcedProvider(t *testing.T) {
	health := NewHealthRegistry()
	want := &entities.GeneratedSolution{Content: "the answer"}
	first := healthyProvider("gemini", nil)
	second := healthyProvider("groq", want)

	m := NewManager(health, []string{"gemini", "groq"}, zerolog.Nop(), first, second)
	require.NoError(t, m.Initialize(context.Background()))

	got, err := m.GenerateSolution(context.Background(), testAssignment(), "groq")
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 0, first.calls)
}

func TestGenerateSolution_ForcedProviderNotInitialized(t *testing.T) {
	health := NewHealthRegistry()
	m := NewManager(health, nil, zerolog.Nop())

	_, err := m.GenerateSolution(context.Background(), testAssignment(), "openai")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), `provider "openai" is not initialized`)
}

func TestResetProvider(t *testing.T) {
	health := NewHealthRegistry()
	limited := failingProvider("gemini", apperrors.NewRateLimitError("quota exceeded", time.Minute))

	m := NewManager(health, []string{"gemini"}, zerolog.Nop(), limited)
	require.NoError(t, m.Initialize(context.Background()))

	_, err := m.GenerateSolution(context.Background(), testAssignment(), "")
	require.Error(t, err)
	assert.Equal(t, providers.ProviderStatusRateLimited, health.Status("gemini"))

	assert.False(t, m.ResetProvider("nope"))
	assert.True(t, m.ResetProvider("gemini"))
	assert.Equal(t, providers.ProviderStatusAvailable, health.Status("gemini"))
}

func TestHealthRegistrySnapshot(t *testing.T) {
	health := NewHealthRegistry()
	health.Set("gemini", providers.ProviderStatusRateLimited)
	health.Set("groq", providers.ProviderStatusAvailable)

	snap := health.Snapshot()
	assert.Equal(t, map[string]providers.ProviderStatus{
		"gemini": providers.ProviderStatusRateLimited,
		"groq":   providers.ProviderStatusAvailable,
	}, snap)

	// mutating the snapshot does not touch the registry
	snap["gemini"] = providers.ProviderStatusAvailable
	assert.Equal(t, providers.ProviderStatusRateLimited, health.Status("gemini"))
}
