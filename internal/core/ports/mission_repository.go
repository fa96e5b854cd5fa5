package ports

import (
	"context"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
)

// MissionRepository defines the persistence contract for mission aggregates.
type MissionRepository interface {
	// Add persists a new mission aggregate to storage.
	// The mission must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *mission.Mission) error

	// Update persists changes to an existing mission aggregate.
	// The mission must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *mission.Mission) error

	// Get retrieves a mission aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such mission exists.
	Get(ctx context.Context, id kernel.UUID) (*mission.Mission, error)

	// GetAllPending retrieves missions awaiting courier assignment,
	// oldest first. Used by the dispatch loop.
	GetAllPending(ctx context.Context) ([]*mission.Mission, error)

	// GetAllActive retrieves missions currently being worked
	// (ACCEPTED, READY or ON_WAY).
	GetAllActive(ctx context.Context) ([]*mission.Mission, error)
}
