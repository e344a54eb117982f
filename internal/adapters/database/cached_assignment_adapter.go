package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Maximus-08/Assignment-solver/internal/domain/entities"
	"github.com/Maximus-08/Assignment-solver/internal/domain/providers"
	"github.com/Maximus-08/Assignment-solver/internal/domain/repositories"
)

// CachedAssignmentAdapter wraps AssignmentAdapter with caching
type CachedAssignmentAdapter struct {
	adapter repositories.AssignmentRepository
	cache   providers.CacheProvider
}

// NewCachedAssignmentAdapter creates a new cached assignment adapter
func NewCachedAssignmentAdapter(adapter repositories.AssignmentRepository, cache providers.CacheProvider) repositories.AssignmentRepository {
	return &CachedAssignmentAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	assignmentByIDTTL = 300 // 5 minutes for single assignment
	assignmentListTTL = 120 // 2 minutes for lists
)

func assignmentCacheKey(id string) string {
	return fmt.Sprintf("assignment:%s", id)
}

func assignmentExternalCacheKey(externalID string) string {
	return fmt.Sprintf("assignment:ext:%s", externalID)
}

func assignmentListCacheKey(filter repositories.AssignmentFilter) string {
	return fmt.Sprintf("assignments:list:%s:%s:%s:%d:%d",
		filter.UserID, filter.Status, filter.Subject, filter.Limit, filter.Offset)
}

// Create writes through to the database; list caches go stale within TTL
func (a *CachedAssignmentAdapter) Create(ctx context.Context, assignment *entities.Assignment) error {
	return a.adapter.Create(ctx, assignment)
}

// GetByID retrieves an assignment by ID with caching
func (a *CachedAssignmentAdapter) GetByID(ctx context.Context, id string) (*entities.Assignment, error) {
	cacheKey := assignmentCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var assignment entities.Assignment
		if err := json.Unmarshal(cached, &assignment); err == nil {
			return &assignment, nil
		}
		log.Warn().Str("assignment_id", id).Msg("failed to unmarshal cached assignment")
	}

	assignment, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(assignment); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, assignmentByIDTTL); err != nil {
				log.Warn().Err(err).Str("assignment_id", id).Msg("failed to cache assignment")
			}
		}
	}()

	return assignment, nil
}

// GetByExternalID retrieves an assignment by external ID with caching
func (a *CachedAssignmentAdapter) GetByExternalID(ctx context.Context, externalID string) (*entities.Assignment, error) {
	cacheKey := assignmentExternalCacheKey(externalID)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var assignment entities.Assignment
		if err := json.Unmarshal(cached, &assignment); err == nil {
			return &assignment, nil
		}
		log.Warn().Str("external_id", externalID).Msg("failed to unmarshal cached assignment")
	}

	assignment, err := a.adapter.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(assignment); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, assignmentByIDTTL); err != nil {
				log.Warn().Err(err).Str("external_id", externalID).Msg("failed to cache assignment")
			}
		}
	}()

	return assignment, nil
}

// List retrieves assignments with caching keyed on the full filter
func (a *CachedAssignmentAdapter) List(ctx context.Context, filter repositories.AssignmentFilter) ([]*entities.Assignment, error) {
	cacheKey := assignmentListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var assignments []*entities.Assignment
		if err := json.Unmarshal(cached, &assignments); err == nil {
			return assignments, nil
		}
	}

	assignments, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(assignments); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, assignmentListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache assignment list")
			}
		}
	}()

	return assignments, nil
}

// UpdateStatus updates the status and invalidates the cached entry
func (a *CachedAssignmentAdapter) UpdateStatus(ctx context.Context, id string, status entities.AssignmentStatus) error {
	if err := a.adapter.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, assignmentCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("assignment_id", id).Msg("failed to invalidate cached assignment")
	}

	return nil
}
