package generation

import (
	"sync"

	"github.com/Maximus-08/Assignment-solver/internal/domain/providers"
)

// HealthRegistry tracks per-provider health. It is written only by the
// Manager after each attempt and read before each attempt. The mutex guards
// against lost updates between concurrent pipeline runs; health never
// expires on its own — Reset is the only recovery path besides a successful
// call.
type HealthRegistry struct {
	mu     sync.RWMutex
	status map[string]providers.ProviderStatus
}

// NewHealthRegistry creates an empty health registry
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{
		status: make(map[string]providers.ProviderStatus),
	}
}

// Status returns the tracked status for a provider. Providers that were
// never recorded report unavailable.
func (r *HealthRegistry) Status(name string) providers.ProviderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if status, ok := r.status[name]; ok {
		return status
	}
	return providers.ProviderStatusUnavailable
}

// Set records a provider's status
func (r *HealthRegistry) Set(name string, status providers.ProviderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[name] = status
}

// Reset forces a tracked provider back to available, e.g. after an
// operator-judged cooldown. Unknown providers are ignored.
func (r *HealthRegistry) Reset(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.status[name]; !ok {
		return false
	}
	r.status[name] = providers.ProviderStatusAvailable
	return true
}

// Snapshot returns a copy of all tracked statuses
func (r *HealthRegistry) Snapshot() map[string]providers.ProviderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]providers.ProviderStatus, len(r.status))
	for name, status := range r.status {
		out[name] = status
	}
	return out
}
