package http

import (
	"time"

	"missions/internal/core/application/usecases/queries"
)

// GeoPointDTO carries a coordinate pair in request and response bodies.
type GeoPointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ActorDTO identifies who is requesting a transition.
type ActorDTO struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// CreateMissionRequest is the body of POST /missions.
type CreateMissionRequest struct {
	Type               string      `json:"type"`
	MerchantID         *string     `json:"merchantId,omitempty"`
	OriginAddress      string      `json:"originAddress"`
	Origin             GeoPointDTO `json:"origin"`
	DestinationAddress string      `json:"destinationAddress"`
	Destination        GeoPointDTO `json:"destination"`
}

// CreateMissionResponse returns the server-assigned mission id.
type CreateMissionResponse struct {
	ID string `json:"id"`
}

// TransitionRequest is the body of POST /missions/:id/transition.
// At least one of status and tripState must be present.
type TransitionRequest struct {
	Actor     ActorDTO `json:"actor"`
	Status    *string  `json:"status,omitempty"`
	TripState *string  `json:"tripState,omitempty"`
}

// ReportPositionRequest is the body of POST /missions/:id/position.
// ReportedAt defaults to the server clock when omitted.
type ReportPositionRequest struct {
	CourierID  string     `json:"courierId"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	ReportedAt *time.Time `json:"reportedAt,omitempty"`
}

// SignOnCourierRequest is the body of POST /couriers/sign-on.
type SignOnCourierRequest struct {
	CourierID string  `json:"courierId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Capacity  int     `json:"capacity"`
}

// MissionResponse is the full read model of GET /missions/:id.
type MissionResponse struct {
	ID                  string       `json:"id"`
	Type                string       `json:"type"`
	MerchantID          *string      `json:"merchantId,omitempty"`
	OriginAddress       string       `json:"originAddress"`
	Origin              GeoPointDTO  `json:"origin"`
	DestinationAddress  string       `json:"destinationAddress"`
	Destination         GeoPointDTO  `json:"destination"`
	Price               float64      `json:"price"`
	CourierEarnings     float64      `json:"courierEarnings"`
	EstimatedDistanceKm float64      `json:"estimatedDistanceKm"`
	EstimatedMinutes    int          `json:"estimatedMinutes"`
	Status              string       `json:"status"`
	TripState           *string      `json:"tripState,omitempty"`
	CourierID           *string      `json:"courierId,omitempty"`
	Position            *GeoPointDTO `json:"position,omitempty"`
	PositionAt          *time.Time   `json:"positionAt,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
}

// ActiveMissionResponse is one row of GET /missions/active.
type ActiveMissionResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	TripState *string `json:"tripState,omitempty"`
	CourierID *string `json:"courierId,omitempty"`
}

// CourierDistanceResponse is the body of GET /missions/:id/courier-distance.
type CourierDistanceResponse struct {
	MissionID  string    `json:"missionId"`
	DistanceKm float64   `json:"distanceKm"`
	ReportedAt time.Time `json:"reportedAt"`
}

func toMissionResponse(resp queries.GetMissionByIDQueryResponse) MissionResponse {
	out := MissionResponse{
		ID:                  resp.ID.String(),
		Type:                resp.Type,
		OriginAddress:       resp.OriginAddress,
		Origin:              GeoPointDTO{Lat: resp.OriginLat, Lng: resp.OriginLng},
		DestinationAddress:  resp.DestinationAddress,
		Destination:         GeoPointDTO{Lat: resp.DestinationLat, Lng: resp.DestinationLng},
		Price:               resp.Price,
		CourierEarnings:     resp.CourierEarnings,
		EstimatedDistanceKm: resp.EstimatedDistanceKm,
		EstimatedMinutes:    resp.EstimatedMinutes,
		Status:              resp.Status,
		TripState:           resp.TripState,
		PositionAt:          resp.PositionAt,
		CreatedAt:           resp.CreatedAt,
	}
	if resp.MerchantID != nil {
		merchantID := resp.MerchantID.String()
		out.MerchantID = &merchantID
	}
	if resp.CourierID != nil {
		courierID := resp.CourierID.String()
		out.CourierID = &courierID
	}
	if resp.PositionLat != nil && resp.PositionLng != nil {
		out.Position = &GeoPointDTO{Lat: *resp.PositionLat, Lng: *resp.PositionLng}
	}
	return out
}

func toActiveMissionResponse(resp queries.GetActiveMissionsQueryResponse) ActiveMissionResponse {
	out := ActiveMissionResponse{
		ID:        resp.ID.String(),
		Type:      resp.Type,
		Status:    resp.Status,
		TripState: resp.TripState,
	}
	if resp.CourierID != nil {
		courierID := resp.CourierID.String()
		out.CourierID = &courierID
	}
	return out
}
