package queries

import (
	"errors"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/guard"
)

var ErrGetCourierDistanceQueryIsNotConstructed = errors.New(
	"GetCourierDistanceQuery must be created via NewGetCourierDistanceQuery constructor",
)

// GetCourierDistanceQuery asks how far a mission's courier currently is
// from the destination. The tracking screen polls this.
type GetCourierDistanceQuery struct {
	missionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierDistanceQuery creates a courier-distance query.
func NewGetCourierDistanceQuery(missionID kernel.UUID) (GetCourierDistanceQuery, error) {
	if err := missionID.Validate(); err != nil {
		return GetCourierDistanceQuery{}, err
	}

	return GetCourierDistanceQuery{
		missionID: missionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierDistanceQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierDistanceQueryIsNotConstructed)
}

// MissionID returns the mission to measure.
func (q GetCourierDistanceQuery) MissionID() kernel.UUID {
	return q.missionID
}

// GetCourierDistanceQueryResponse reports the courier's distance to the
// destination based on the last accepted position report.
type GetCourierDistanceQueryResponse struct {
	MissionID  kernel.UUID
	DistanceKm float64
	ReportedAt time.Time
}
