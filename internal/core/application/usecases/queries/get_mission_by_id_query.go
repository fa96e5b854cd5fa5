// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the aggregate and repositories, reading the
// database (or the hot position store) directly and returning plain
// response structs.
package queries

import (
	"errors"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/guard"
)

var ErrGetMissionByIDQueryIsNotConstructed = errors.New(
	"GetMissionByIDQuery must be created via NewGetMissionByIDQuery constructor",
)

// GetMissionByIDQuery retrieves the full state of one mission.
type GetMissionByIDQuery struct {
	missionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMissionByIDQuery creates a query for one mission.
func NewGetMissionByIDQuery(missionID kernel.UUID) (GetMissionByIDQuery, error) {
	if err := missionID.Validate(); err != nil {
		return GetMissionByIDQuery{}, err
	}

	return GetMissionByIDQuery{
		missionID: missionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMissionByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetMissionByIDQueryIsNotConstructed)
}

// MissionID returns the mission to fetch.
func (q GetMissionByIDQuery) MissionID() kernel.UUID {
	return q.missionID
}

// GetMissionByIDQueryResponse is the full read model of one mission.
// Enum fields carry wire names; optional fields are nil when unset.
type GetMissionByIDQueryResponse struct {
	ID                  kernel.UUID
	Type                string
	MerchantID          *kernel.UUID
	OriginAddress       string
	OriginLat           float64
	OriginLng           float64
	DestinationAddress  string
	DestinationLat      float64
	DestinationLng      float64
	Price               float64
	CourierEarnings     float64
	EstimatedDistanceKm float64
	EstimatedMinutes    int
	Status              string
	TripState           *string
	CourierID           *kernel.UUID
	PositionLat         *float64
	PositionLng         *float64
	PositionAt          *time.Time
	CreatedAt           time.Time
}
