// Package pricing implements the mission quoting port with a local tariff
// table. Quotes are computed from great-circle distance; there is no call
// to an external routing service.
package pricing

import (
	"context"
	"math"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
)

// Tariff amounts are in CRC.
const (
	baseCourierFee     = 500.0
	perKmRate          = 300.0
	minCourierEarnings = 800.0
	maxCourierEarnings = 5000.0

	// platformCut is the share of the price the platform keeps.
	platformCut = 0.10

	// averageSpeedKmh is the blended urban courier speed.
	averageSpeedKmh = 20.0

	// pickupBufferMinutes covers parking and hand-over at the origin.
	pickupBufferMinutes = 5.0
	minEstimateMinutes  = 10.0
)

// rideRateMultiplier prices passenger rides above delivery runs.
const rideRateMultiplier = 1.5

// TariffEstimator implements ports.PricingEstimator.
type TariffEstimator struct{}

var _ ports.PricingEstimator = TariffEstimator{}

// NewTariffEstimator creates a tariff-table estimator.
func NewTariffEstimator() TariffEstimator {
	return TariffEstimator{}
}

// Estimate quotes a prospective mission. Courier earnings are
// base + distance * rate, clamped to the tariff bounds; the price adds
// the platform cut on top.
func (TariffEstimator) Estimate(
	_ context.Context,
	missionType mission.Type,
	origin, destination kernel.GeoPoint,
) (mission.Estimate, error) {
	if err := missionType.Validate(); err != nil {
		return mission.Estimate{}, err
	}

	distanceKm, err := origin.DistanceKm(destination)
	if err != nil {
		return mission.Estimate{}, err
	}

	rate := perKmRate
	if missionType == mission.TypeRide {
		rate *= rideRateMultiplier
	}

	earnings := baseCourierFee + distanceKm*rate
	earnings = math.Min(maxCourierEarnings, math.Max(minCourierEarnings, earnings))
	earnings = math.Round(earnings)

	price := math.Round(earnings / (1 - platformCut))

	minutes := distanceKm/averageSpeedKmh*60 + pickupBufferMinutes
	minutes = math.Max(minEstimateMinutes, math.Round(minutes))

	return mission.Estimate{
		Price:           price,
		CourierEarnings: earnings,
		DistanceKm:      distanceKm,
		Minutes:         int(minutes),
	}, nil
}
