package queries

import (
	"context"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveMissionsQueryHandler lists in-flight missions straight from the
// database.
type GetActiveMissionsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveMissionsQueryHandler creates a handler for active-mission
// listings.
func NewGetActiveMissionsQueryHandler(db *gorm.DB) GetActiveMissionsQueryHandler {
	return GetActiveMissionsQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by creation time for
// stable dashboard output.
func (h GetActiveMissionsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveMissionsQuery,
) ([]GetActiveMissionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	missions := make([]GetActiveMissionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			status,
			trip_state,
			courier_id
		FROM missions
		WHERE status IN (?, ?, ?)
		ORDER BY created_at
	`, mission.StatusAccepted.String(), mission.StatusReady.String(), mission.StatusOnWay.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var courierID *uuid.UUID
		var resp GetActiveMissionsQueryResponse

		if err = rows.Scan(&id, &resp.Type, &resp.Status, &resp.TripState, &courierID); err != nil {
			return nil, err
		}

		missionID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = missionID

		if courierID != nil {
			cID, courierErr := kernel.UUIDFromBytes((*courierID)[:])
			if courierErr != nil {
				return nil, courierErr
			}
			resp.CourierID = &cID
		}

		missions = append(missions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return missions, nil
}
