package ports

import (
	"context"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
)

// PricingEstimator quotes a mission before creation. The figures are stored
// on the mission and never recomputed.
type PricingEstimator interface {
	// Estimate quotes price, courier earnings, distance and duration for a
	// prospective mission of the given type between two points.
	Estimate(ctx context.Context, missionType mission.Type, origin, destination kernel.GeoPoint) (mission.Estimate, error)
}
