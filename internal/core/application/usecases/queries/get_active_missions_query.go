package queries

import (
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/guard"
)

var ErrGetActiveMissionsQueryIsNotConstructed = errors.New(
	"GetActiveMissionsQuery must be created via NewGetActiveMissionsQuery constructor",
)

// GetActiveMissionsQuery retrieves all missions currently being worked:
// status ACCEPTED, READY or ON_WAY. Used by monitoring dashboards.
type GetActiveMissionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveMissionsQuery creates a query for all in-flight missions.
// This is a parameterless query.
func NewGetActiveMissionsQuery() GetActiveMissionsQuery {
	return GetActiveMissionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveMissionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveMissionsQueryIsNotConstructed)
}

// GetActiveMissionsQueryResponse is the compact read model of one in-flight
// mission, enough for a dispatch board row.
type GetActiveMissionsQueryResponse struct {
	ID        kernel.UUID
	Type      string
	Status    string
	TripState *string
	CourierID *kernel.UUID
}
