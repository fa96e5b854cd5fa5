// Package missionrepo provides data transfer objects and mapping functions
// for mission persistence. It implements the repository pattern for the
// mission aggregate, converting between domain entities and their relational
// representation.
package missionrepo

import (
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"

	"github.com/google/uuid"
)

// MissionDTO represents the database structure for persisting mission
// aggregates, indexed for the dispatch loop (status) and courier lookups.
type MissionDTO struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Type                string      `gorm:"type:varchar(32)"`
	MerchantID          *uuid.UUID  `gorm:"type:uuid;index"`
	OriginAddress       string      `gorm:"type:varchar(512)"`
	Origin              GeoPointDTO `gorm:"embedded;embeddedPrefix:origin_"`
	DestinationAddress  string      `gorm:"type:varchar(512)"`
	Destination         GeoPointDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Price               float64
	CourierEarnings     float64
	EstimatedDistanceKm float64
	EstimatedMinutes    int
	Status              string     `gorm:"type:varchar(16);index"`
	TripState           *string    `gorm:"type:varchar(16)"`
	CourierID           *uuid.UUID `gorm:"type:uuid;index"`
	PositionLat         *float64
	PositionLng         *float64
	PositionAt          *time.Time
	CreatedAt           time.Time
}

// TableName specifies the database table name for mission entities.
func (MissionDTO) TableName() string {
	return "missions"
}

// GeoPointDTO represents embedded coordinates within the missions table.
type GeoPointDTO struct {
	Lat float64
	Lng float64
}

// fromDomain converts a mission aggregate to its database representation.
func fromDomain(m *mission.Mission) MissionDTO {
	dto := MissionDTO{
		ID:                  m.ID().Bytes(),
		Type:                m.Type().String(),
		OriginAddress:       m.OriginAddress(),
		Origin:              GeoPointDTO{Lat: m.Origin().Lat(), Lng: m.Origin().Lng()},
		DestinationAddress:  m.DestinationAddress(),
		Destination:         GeoPointDTO{Lat: m.Destination().Lat(), Lng: m.Destination().Lng()},
		Price:               m.Estimate().Price,
		CourierEarnings:     m.Estimate().CourierEarnings,
		EstimatedDistanceKm: m.Estimate().DistanceKm,
		EstimatedMinutes:    m.Estimate().Minutes,
		Status:              m.Status().String(),
		CreatedAt:           m.CreatedAt(),
	}

	if id := m.MerchantID(); id != nil {
		raw := id.Bytes()
		dto.MerchantID = &raw
	}
	if id := m.CourierID(); id != nil {
		raw := id.Bytes()
		dto.CourierID = &raw
	}
	if !m.TripState().IsNone() {
		ts := m.TripState().String()
		dto.TripState = &ts
	}
	if p := m.Position(); p != nil {
		lat, lng := p.Lat(), p.Lng()
		at := m.PositionAt()
		dto.PositionLat = &lat
		dto.PositionLng = &lng
		dto.PositionAt = &at
	}

	return dto
}

// toDomain converts a database DTO back into a mission aggregate using
// RestoreMission, which re-checks cross-field consistency.
func toDomain(dto MissionDTO) (*mission.Mission, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	missionType, err := mission.TypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	status, err := mission.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	tripState := mission.TripNone
	if dto.TripState != nil {
		if tripState, err = mission.TripStateFromString(*dto.TripState); err != nil {
			return nil, err
		}
	}

	var merchantID *kernel.UUID
	if dto.MerchantID != nil {
		mID, merchantErr := kernel.UUIDFromBytes((*dto.MerchantID)[:])
		if merchantErr != nil {
			return nil, merchantErr
		}
		merchantID = &mID
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	origin, err := kernel.NewGeoPoint(dto.Origin.Lat, dto.Origin.Lng)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewGeoPoint(dto.Destination.Lat, dto.Destination.Lng)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	var positionAt time.Time
	if dto.PositionLat != nil && dto.PositionLng != nil {
		p, positionErr := kernel.NewGeoPoint(*dto.PositionLat, *dto.PositionLng)
		if positionErr != nil {
			return nil, positionErr
		}
		position = &p
		if dto.PositionAt != nil {
			positionAt = *dto.PositionAt
		}
	}

	estimate := mission.Estimate{
		Price:           dto.Price,
		CourierEarnings: dto.CourierEarnings,
		DistanceKm:      dto.EstimatedDistanceKm,
		Minutes:         dto.EstimatedMinutes,
	}

	return mission.RestoreMission(
		id, missionType, merchantID,
		dto.OriginAddress, origin,
		dto.DestinationAddress, destination,
		estimate, status, tripState,
		courierID, position, positionAt, dto.CreatedAt,
	)
}
