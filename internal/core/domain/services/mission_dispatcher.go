package services

import (
	"errors"
	"math"

	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/mission"
)

// ErrNoCourierAvailable is returned when no suitable courier exists for a
// mission. This occurs when either no candidates are provided or none of
// them has spare capacity.
var ErrNoCourierAvailable = errors.New("no courier available")

// MissionDispatcher is a domain service that selects the best courier for a
// pending mission.
//
// Selection rules:
//   - only couriers with spare capacity are considered
//   - candidates are ranked by great-circle distance from the mission
//     origin, closest first
//   - between equally distant couriers the one signed on longest wins,
//     so nobody starves at the back of the queue
//
// The dispatcher only chooses; committing the choice onto the mission and
// booking the courier's capacity is the command handler's job, because both
// must happen inside the mission's critical section.
type MissionDispatcher struct{}

// NewMissionDispatcher creates a new MissionDispatcher instance.
func NewMissionDispatcher() MissionDispatcher {
	return MissionDispatcher{}
}

// Dispatch picks the best courier for the mission from the given candidate
// snapshots. Returns ErrNoCourierAvailable when no candidate qualifies.
func (d MissionDispatcher) Dispatch(m *mission.Mission, candidates []courier.Availability) (courier.Availability, error) {
	if err := m.Validate(); err != nil {
		return courier.Availability{}, err
	}

	var best courier.Availability
	bestDistance := math.MaxFloat64
	found := false

	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return courier.Availability{}, err
		}
		if !candidate.CanAccept() {
			continue
		}

		distance, err := candidate.DistanceKmTo(m.Origin())
		if err != nil {
			return courier.Availability{}, err
		}

		if !found || distance < bestDistance || (distance == bestDistance && candidate.SignedOnAt().Before(best.SignedOnAt())) {
			best = candidate
			bestDistance = distance
			found = true
		}
	}

	if !found {
		return courier.Availability{}, ErrNoCourierAvailable
	}
	return best, nil
}
