// Package http exposes the mission lifecycle over a REST API.
// Handlers translate between JSON payloads and application commands and
// queries; all domain decisions stay behind the handlers.
package http

import (
	"net/http"
	"time"

	"missions/internal/core/application/usecases/commands"
	"missions/internal/core/application/usecases/queries"
	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to the application use cases.
type Server struct {
	// Command handlers
	createMissionHandler     commands.CreateMissionCommandHandler
	dispatchMissionHandler   commands.DispatchMissionCommandHandler
	requestTransitionHandler commands.RequestTransitionCommandHandler
	reportPositionHandler    commands.ReportPositionCommandHandler
	signOnCourierHandler     commands.SignOnCourierCommandHandler
	signOffCourierHandler    commands.SignOffCourierCommandHandler
	heartbeatCourierHandler  commands.HeartbeatCourierCommandHandler

	// Query handlers
	getMissionByIDHandler     queries.GetMissionByIDQueryHandler
	getActiveMissionsHandler  queries.GetActiveMissionsQueryHandler
	getCourierDistanceHandler queries.GetCourierDistanceQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createMissionHandler commands.CreateMissionCommandHandler,
	dispatchMissionHandler commands.DispatchMissionCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	reportPositionHandler commands.ReportPositionCommandHandler,
	signOnCourierHandler commands.SignOnCourierCommandHandler,
	signOffCourierHandler commands.SignOffCourierCommandHandler,
	heartbeatCourierHandler commands.HeartbeatCourierCommandHandler,
	getMissionByIDHandler queries.GetMissionByIDQueryHandler,
	getActiveMissionsHandler queries.GetActiveMissionsQueryHandler,
	getCourierDistanceHandler queries.GetCourierDistanceQueryHandler,
) *Server {
	return &Server{
		createMissionHandler:      createMissionHandler,
		dispatchMissionHandler:    dispatchMissionHandler,
		requestTransitionHandler:  requestTransitionHandler,
		reportPositionHandler:     reportPositionHandler,
		signOnCourierHandler:      signOnCourierHandler,
		signOffCourierHandler:     signOffCourierHandler,
		heartbeatCourierHandler:   heartbeatCourierHandler,
		getMissionByIDHandler:     getMissionByIDHandler,
		getActiveMissionsHandler:  getActiveMissionsHandler,
		getCourierDistanceHandler: getCourierDistanceHandler,
	}
}

// RegisterRoutes mounts all routes under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/missions", s.CreateMission)
	v1.GET("/missions/active", s.GetActiveMissions)
	v1.GET("/missions/:id", s.GetMission)
	v1.GET("/missions/:id/courier-distance", s.GetCourierDistance)
	v1.POST("/missions/:id/dispatch", s.DispatchMission)
	v1.POST("/missions/:id/transition", s.RequestTransition)
	v1.POST("/missions/:id/position", s.ReportPosition)

	v1.POST("/couriers/sign-on", s.SignOnCourier)
	v1.POST("/couriers/:id/sign-off", s.SignOffCourier)
	v1.POST("/couriers/:id/heartbeat", s.HeartbeatCourier)
}

// CreateMission handles POST /api/v1/missions.
func (s *Server) CreateMission(ctx echo.Context) error {
	var req CreateMissionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	missionType, err := mission.TypeFromString(req.Type)
	if err != nil {
		return badRequest(ctx, "Invalid mission type: "+req.Type)
	}

	var merchantID *kernel.UUID
	if req.MerchantID != nil {
		id, parseErr := kernel.UUIDFromString(*req.MerchantID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid merchant id")
		}
		merchantID = &id
	}

	origin, err := kernel.NewGeoPoint(req.Origin.Lat, req.Origin.Lng)
	if err != nil {
		return domainError(ctx, err)
	}
	destination, err := kernel.NewGeoPoint(req.Destination.Lat, req.Destination.Lng)
	if err != nil {
		return domainError(ctx, err)
	}

	missionID := kernel.NewUUID()
	cmd, err := commands.NewCreateMissionCommand(
		missionID, missionType, merchantID,
		req.OriginAddress, origin,
		req.DestinationAddress, destination,
	)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.createMissionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateMissionResponse{ID: missionID.String()})
}

// DispatchMission handles POST /api/v1/missions/:id/dispatch.
func (s *Server) DispatchMission(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id")
	}

	cmd, err := commands.NewDispatchMissionCommand(missionID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.dispatchMissionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestTransition handles POST /api/v1/missions/:id/transition.
func (s *Server) RequestTransition(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id")
	}

	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := parseActor(req.Actor)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	var desiredStatus *mission.Status
	if req.Status != nil {
		status, parseErr := mission.StatusFromString(*req.Status)
		if parseErr != nil {
			return badRequest(ctx, "Invalid status: "+*req.Status)
		}
		desiredStatus = &status
	}

	var desiredTripState *mission.TripState
	if req.TripState != nil {
		tripState, parseErr := mission.TripStateFromString(*req.TripState)
		if parseErr != nil {
			return badRequest(ctx, "Invalid trip state: "+*req.TripState)
		}
		desiredTripState = &tripState
	}

	cmd, err := commands.NewRequestTransitionCommand(missionID, actor, desiredStatus, desiredTripState)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportPosition handles POST /api/v1/missions/:id/position.
func (s *Server) ReportPosition(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id")
	}

	var req ReportPositionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	position, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return domainError(ctx, err)
	}

	reportedAt := time.Now().UTC()
	if req.ReportedAt != nil {
		reportedAt = req.ReportedAt.UTC()
	}

	cmd, err := commands.NewReportPositionCommand(missionID, courierID, position, reportedAt)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.reportPositionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// SignOnCourier handles POST /api/v1/couriers/sign-on.
func (s *Server) SignOnCourier(ctx echo.Context) error {
	var req SignOnCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	position, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewSignOnCourierCommand(courierID, position, req.Capacity)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.signOnCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SignOffCourier handles POST /api/v1/couriers/:id/sign-off.
func (s *Server) SignOffCourier(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewSignOffCourierCommand(courierID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.signOffCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// HeartbeatCourier handles POST /api/v1/couriers/:id/heartbeat.
func (s *Server) HeartbeatCourier(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewHeartbeatCourierCommand(courierID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.heartbeatCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetMission handles GET /api/v1/missions/:id.
func (s *Server) GetMission(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id")
	}

	query, err := queries.NewGetMissionByIDQuery(missionID)
	if err != nil {
		return domainError(ctx, err)
	}

	resp, err := s.getMissionByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMissionResponse(resp))
}

// GetActiveMissions handles GET /api/v1/missions/active.
func (s *Server) GetActiveMissions(ctx echo.Context) error {
	missions, err := s.getActiveMissionsHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveMissionsQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ActiveMissionResponse, len(missions))
	for i, m := range missions {
		response[i] = toActiveMissionResponse(m)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetCourierDistance handles GET /api/v1/missions/:id/courier-distance.
func (s *Server) GetCourierDistance(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid mission id")
	}

	query, err := queries.NewGetCourierDistanceQuery(missionID)
	if err != nil {
		return domainError(ctx, err)
	}

	resp, err := s.getCourierDistanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierDistanceResponse{
		MissionID:  resp.MissionID.String(),
		DistanceKm: resp.DistanceKm,
		ReportedAt: resp.ReportedAt,
	})
}

// parseActor builds the domain actor from the request payload.
func parseActor(dto ActorDTO) (mission.Actor, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return mission.Actor{}, err
	}
	role, err := mission.RoleFromString(dto.Role)
	if err != nil {
		return mission.Actor{}, err
	}
	return mission.NewActor(id, role)
}
