package ports

import (
	"context"
	"time"

	"missions/internal/core/domain/model/kernel"
)

// PositionRecord is the last accepted courier position for a mission as
// kept in the hot store.
type PositionRecord struct {
	Point      kernel.GeoPoint
	ReportedAt time.Time
}

// PositionStore is the hot read path for courier positions. The mission
// aggregate remains the source of truth; the store is a cache the tracking
// screens poll without touching the database.
type PositionStore interface {
	// Set stores the position for a mission if it is newer than the one
	// already held. Older writes are dropped, mirroring the aggregate's
	// monotonicity rule under concurrent reporters.
	Set(ctx context.Context, missionID kernel.UUID, record PositionRecord) error

	// Get returns the stored position for a mission.
	// Returns errs.ObjectNotFoundError when none has been stored.
	Get(ctx context.Context, missionID kernel.UUID) (PositionRecord, error)

	// Delete removes the stored position once a mission reaches a
	// terminal status.
	Delete(ctx context.Context, missionID kernel.UUID) error
}
