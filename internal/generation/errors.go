package generation

import (
	"fmt"
	"strings"
)

// NoAvailableProvidersError is raised only after every registered provider
// has been tried and failed. It aggregates the per-provider errors in
// attempt order.
type NoAvailableProvidersError struct {
	Attempts []string
}

func (e *NoAvailableProvidersError) Error() string {
	return fmt.Sprintf(
		"unable to generate solution - all providers failed or are rate-limited. Errors: %s",
		strings.Join(e.Attempts, "; "),
	)
}

// ErrProviderNotInitialized is returned by clients when GenerateSolution is
// called before a successful Initialize.
type ErrProviderNotInitialized struct {
	Provider string
}

func (e *ErrProviderNotInitialized) Error() string {
	return fmt.Sprintf("%s client not initialized", e.Provider)
}
