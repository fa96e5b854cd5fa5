package queries

import (
	"context"
	"errors"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourierDistanceQueryHandler measures the courier's distance to the
// destination. The position comes from the hot store; on a cold cache it
// falls back to the position columns persisted with the mission. Either
// way the destination is read from the database.
type GetCourierDistanceQueryHandler struct {
	db            *gorm.DB
	positionStore ports.PositionStore
}

// NewGetCourierDistanceQueryHandler creates a courier-distance handler.
func NewGetCourierDistanceQueryHandler(db *gorm.DB, positionStore ports.PositionStore) GetCourierDistanceQueryHandler {
	return GetCourierDistanceQueryHandler{
		db:            db,
		positionStore: positionStore,
	}
}

// Handle executes the query.
// Returns NoPositionError when no position has ever been accepted for the
// mission, and ObjectNotFoundError when the mission does not exist.
func (h GetCourierDistanceQueryHandler) Handle(
	ctx context.Context,
	query GetCourierDistanceQuery,
) (GetCourierDistanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierDistanceQueryResponse{}, err
	}

	var row struct {
		DestinationLat float64
		DestinationLng float64
		PositionLat    *float64
		PositionLng    *float64
		PositionAt     *time.Time
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			destination_lat,
			destination_lng,
			position_lat,
			position_lng,
			position_at
		FROM missions
		WHERE id = ?
	`, query.MissionID().Bytes()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetCourierDistanceQueryResponse{}, errs.NewObjectNotFoundError("mission", query.MissionID().String())
		}
		return GetCourierDistanceQueryResponse{}, err
	}

	destination, err := kernel.NewGeoPoint(row.DestinationLat, row.DestinationLng)
	if err != nil {
		return GetCourierDistanceQueryResponse{}, err
	}

	record, err := h.positionStore.Get(ctx, query.MissionID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return GetCourierDistanceQueryResponse{}, err
		}
		// cache miss: fall back to the persisted position
		if row.PositionLat == nil || row.PositionLng == nil {
			return GetCourierDistanceQueryResponse{}, errs.NewNoPositionError(query.MissionID().String())
		}
		point, pointErr := kernel.NewGeoPoint(*row.PositionLat, *row.PositionLng)
		if pointErr != nil {
			return GetCourierDistanceQueryResponse{}, pointErr
		}
		record = ports.PositionRecord{Point: point}
		if row.PositionAt != nil {
			record.ReportedAt = *row.PositionAt
		}
	}

	distanceKm, err := record.Point.DistanceKm(destination)
	if err != nil {
		return GetCourierDistanceQueryResponse{}, err
	}

	return GetCourierDistanceQueryResponse{
		MissionID:  query.MissionID(),
		DistanceKm: distanceKm,
		ReportedAt: record.ReportedAt,
	}, nil
}
