package queries

import (
	"context"
	"errors"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMissionByIDQueryHandler reads one mission's row straight from the
// database, bypassing the aggregate.
type GetMissionByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetMissionByIDQueryHandler creates a handler for single-mission reads.
func NewGetMissionByIDQueryHandler(db *gorm.DB) GetMissionByIDQueryHandler {
	return GetMissionByIDQueryHandler{db: db}
}

// missionRow is the scan target for mission reads.
type missionRow struct {
	ID                  uuid.UUID
	Type                string
	MerchantID          *uuid.UUID
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
	CourierID           *uuid.UUID
	PositionLat         *float64
	PositionLng         *float64
	PositionAt          *time.Time
	CreatedAt           time.Time
}

func (r missionRow) toResponse() (GetMissionByIDQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return GetMissionByIDQueryResponse{}, err
	}

	resp := GetMissionByIDQueryResponse{
		ID:                  id,
		Type:                r.Type,
		OriginAddress:       r.OriginAddress,
		OriginLat:           r.OriginLat,
		OriginLng:           r.OriginLng,
		DestinationAddress:  r.DestinationAddress,
		DestinationLat:      r.DestinationLat,
		DestinationLng:      r.DestinationLng,
		Price:               r.Price,
		CourierEarnings:     r.CourierEarnings,
		EstimatedDistanceKm: r.EstimatedDistanceKm,
		EstimatedMinutes:    r.EstimatedMinutes,
		Status:              r.Status,
		TripState:           r.TripState,
		PositionLat:         r.PositionLat,
		PositionLng:         r.PositionLng,
		PositionAt:          r.PositionAt,
		CreatedAt:           r.CreatedAt,
	}

	if r.MerchantID != nil {
		mID, merchantErr := kernel.UUIDFromBytes((*r.MerchantID)[:])
		if merchantErr != nil {
			return GetMissionByIDQueryResponse{}, merchantErr
		}
		resp.MerchantID = &mID
	}
	if r.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*r.CourierID)[:])
		if courierErr != nil {
			return GetMissionByIDQueryResponse{}, courierErr
		}
		resp.CourierID = &cID
	}

	return resp, nil
}

// Handle executes the query.
// Returns ObjectNotFoundError when the mission does not exist.
func (h GetMissionByIDQueryHandler) Handle(
	ctx context.Context,
	query GetMissionByIDQuery,
) (GetMissionByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMissionByIDQueryResponse{}, err
	}

	var row missionRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			merchant_id,
			origin_address,
			origin_lat,
			origin_lng,
			destination_address,
			destination_lat,
			destination_lng,
			price,
			courier_earnings,
			estimated_distance_km,
			estimated_minutes,
			status,
			trip_state,
			courier_id,
			position_lat,
			position_lng,
			position_at,
			created_at
		FROM missions
		WHERE id = ?
	`, query.MissionID().Bytes()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetMissionByIDQueryResponse{}, errs.NewObjectNotFoundError("mission", query.MissionID().String())
		}
		return GetMissionByIDQueryResponse{}, err
	}

	return row.toResponse()
}
