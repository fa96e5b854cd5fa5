package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	missionhttp "missions/internal/adapters/in/http"
	"missions/internal/adapters/out/inmemory"
	"missions/internal/adapters/out/pricing"
	"missions/internal/core/application/usecases/commands"
	"missions/internal/core/application/usecases/queries"
	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/domain/services"
	"missions/internal/pkg/keyedmutex"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardPublisher struct {
	mu     sync.Mutex
	events []mission.Event
}

// funcUoWFactory adapts a closure to commands.MissionUoWFactory.
type funcUoWFactory func() commands.MissionUoW

func (f funcUoWFactory) Create() commands.MissionUoW {
	return f()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (p *discardPublisher) Publish(event mission.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// serverFixture wires the HTTP server onto in-memory adapters. Query
// handlers read the database directly and are covered by their own
// integration suite; routes exercised here only touch commands.
type serverFixture struct {
	echo  *echo.Echo
	store *inmemory.MissionStore
	pool  *courier.Pool
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	store := inmemory.NewMissionStore()
	uowFactory := funcUoWFactory(func() commands.MissionUoW {
		return store.Create()
	})
	pool := courier.NewPool()
	positionStore := inmemory.NewPositionStore()
	locker := keyedmutex.New()
	publisher := &discardPublisher{}
	estimator := pricing.NewTariffEstimator()

	server := missionhttp.NewServer(
		commands.NewCreateMissionCommandHandler(uowFactory, estimator),
		commands.NewDispatchMissionCommandHandler(
			uowFactory, locker, pool, services.NewMissionDispatcher(), publisher),
		commands.NewRequestTransitionCommandHandler(
			uowFactory, locker, pool, positionStore, publisher),
		commands.NewReportPositionCommandHandler(
			uowFactory, locker, pool, positionStore, publisher, 0.3, discardLogger()),
		commands.NewSignOnCourierCommandHandler(pool),
		commands.NewSignOffCourierCommandHandler(pool),
		commands.NewHeartbeatCourierCommandHandler(pool),
		queries.GetMissionByIDQueryHandler{},
		queries.GetActiveMissionsQueryHandler{},
		queries.GetCourierDistanceQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return &serverFixture{echo: e, store: store, pool: pool}
}

func (f *serverFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f *serverFixture) createMission(t *testing.T, body string) kernel.UUID {
	t.Helper()
	rec := f.do(nethttp.MethodPost, "/api/v1/missions", body)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	var resp missionhttp.CreateMissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	id, err := kernel.UUIDFromString(resp.ID)
	require.NoError(t, err)
	return id
}

func foodMissionBody(merchantID kernel.UUID) string {
	return `{
		"type": "FOOD",
		"merchantId": "` + merchantID.String() + `",
		"originAddress": "Friedrichstr. 100",
		"origin": {"lat": 52.52, "lng": 13.405},
		"destinationAddress": "Torstr. 12",
		"destination": {"lat": 52.5, "lng": 13.39}
	}`
}

func TestServer_CreateMission(t *testing.T) {
	t.Run("should create a mission and return its id", func(t *testing.T) {
		fixture := newServerFixture(t)

		id := fixture.createMission(t, foodMissionBody(kernel.NewUUID()))

		m := fixture.getStored(t, id)
		assert.Equal(t, mission.StatusPending, m.Status())
	})

	t.Run("should reject an unknown mission type", func(t *testing.T) {
		fixture := newServerFixture(t)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions",
			`{"type": "TELEPORT", "origin": {"lat": 1, "lng": 1}, "destination": {"lat": 2, "lng": 2}}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a delivery mission without a merchant", func(t *testing.T) {
		fixture := newServerFixture(t)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions", `{
			"type": "FOOD",
			"originAddress": "a", "origin": {"lat": 52.52, "lng": 13.405},
			"destinationAddress": "b", "destination": {"lat": 52.5, "lng": 13.39}
		}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})

	t.Run("should reject out-of-range coordinates", func(t *testing.T) {
		fixture := newServerFixture(t)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions", `{
			"type": "RIDE",
			"originAddress": "a", "origin": {"lat": 95, "lng": 13.405},
			"destinationAddress": "b", "destination": {"lat": 52.5, "lng": 13.39}
		}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

func TestServer_DispatchMission(t *testing.T) {
	t.Run("should assign a signed-on courier", func(t *testing.T) {
		fixture := newServerFixture(t)
		missionID := fixture.createMission(t, foodMissionBody(kernel.NewUUID()))
		courierID := kernel.NewUUID()
		rec := fixture.do(nethttp.MethodPost, "/api/v1/couriers/sign-on",
			`{"courierId": "`+courierID.String()+`", "lat": 52.51, "lng": 13.4, "capacity": 1}`)
		require.Equal(t, nethttp.StatusNoContent, rec.Code, rec.Body.String())

		rec = fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/dispatch", "")

		require.Equal(t, nethttp.StatusNoContent, rec.Code, rec.Body.String())
		m := fixture.getStored(t, missionID)
		assert.Equal(t, mission.StatusAccepted, m.Status())
		require.NotNil(t, m.CourierID())
		assert.True(t, m.CourierID().IsEqual(courierID))
	})

	t.Run("should conflict when no courier is available", func(t *testing.T) {
		fixture := newServerFixture(t)
		missionID := fixture.createMission(t, foodMissionBody(kernel.NewUUID()))

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/dispatch", "")

		assert.Equal(t, nethttp.StatusConflict, rec.Code)
	})

	t.Run("should return not found for an unknown mission", func(t *testing.T) {
		fixture := newServerFixture(t)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+kernel.NewUUID().String()+"/dispatch", "")

		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})

	t.Run("should reject a malformed mission id", func(t *testing.T) {
		fixture := newServerFixture(t)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/not-a-uuid/dispatch", "")

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

func TestServer_RequestTransition(t *testing.T) {
	t.Run("should let the merchant mark the mission ready", func(t *testing.T) {
		fixture := newServerFixture(t)
		merchantID := kernel.NewUUID()
		missionID := fixture.createMission(t, foodMissionBody(merchantID))
		fixture.assignCourier(t, missionID)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/transition", `{
			"actor": {"id": "`+merchantID.String()+`", "role": "merchant"},
			"status": "READY"
		}`)

		require.Equal(t, nethttp.StatusNoContent, rec.Code, rec.Body.String())
		assert.Equal(t, mission.StatusReady, fixture.getStored(t, missionID).Status())
	})

	t.Run("should forbid a foreign merchant", func(t *testing.T) {
		fixture := newServerFixture(t)
		missionID := fixture.createMission(t, foodMissionBody(kernel.NewUUID()))
		fixture.assignCourier(t, missionID)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/transition", `{
			"actor": {"id": "`+kernel.NewUUID().String()+`", "role": "merchant"},
			"status": "READY"
		}`)

		assert.Equal(t, nethttp.StatusForbidden, rec.Code)
	})

	t.Run("should conflict on an illegal transition", func(t *testing.T) {
		fixture := newServerFixture(t)
		merchantID := kernel.NewUUID()
		missionID := fixture.createMission(t, foodMissionBody(merchantID))
		fixture.assignCourier(t, missionID)

		// READY -> READY is a no-op and rejected
		body := `{
			"actor": {"id": "` + merchantID.String() + `", "role": "merchant"},
			"status": "READY"
		}`
		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/transition", body)
		require.Equal(t, nethttp.StatusNoContent, rec.Code)
		rec = fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/transition", body)

		assert.Equal(t, nethttp.StatusConflict, rec.Code)
	})

	t.Run("should reject a request without status or trip state", func(t *testing.T) {
		fixture := newServerFixture(t)
		missionID := fixture.createMission(t, foodMissionBody(kernel.NewUUID()))

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/transition", `{
			"actor": {"id": "`+kernel.NewUUID().String()+`", "role": "admin"}
		}`)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

func TestServer_ReportPosition(t *testing.T) {
	t.Run("should accept a report from the assigned courier", func(t *testing.T) {
		fixture := newServerFixture(t)
		missionID := fixture.createMission(t, foodMissionBody(kernel.NewUUID()))
		courierID := fixture.assignCourier(t, missionID)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/position",
			`{"courierId": "`+courierID.String()+`", "lat": 52.515, "lng": 13.4}`)

		assert.Equal(t, nethttp.StatusAccepted, rec.Code, rec.Body.String())
	})

	t.Run("should forbid a report from a foreign courier", func(t *testing.T) {
		fixture := newServerFixture(t)
		missionID := fixture.createMission(t, foodMissionBody(kernel.NewUUID()))
		fixture.assignCourier(t, missionID)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/position",
			`{"courierId": "`+kernel.NewUUID().String()+`", "lat": 52.515, "lng": 13.4}`)

		assert.Equal(t, nethttp.StatusForbidden, rec.Code)
	})
}

func TestServer_CourierRoutes(t *testing.T) {
	t.Run("should sign a courier on, heartbeat and off", func(t *testing.T) {
		fixture := newServerFixture(t)
		courierID := kernel.NewUUID()

		rec := fixture.do(nethttp.MethodPost, "/api/v1/couriers/sign-on",
			`{"courierId": "`+courierID.String()+`", "lat": 52.51, "lng": 13.4, "capacity": 2}`)
		require.Equal(t, nethttp.StatusNoContent, rec.Code)
		assert.Equal(t, 1, fixture.pool.Size())

		rec = fixture.do(nethttp.MethodPost, "/api/v1/couriers/"+courierID.String()+"/heartbeat", "")
		require.Equal(t, nethttp.StatusNoContent, rec.Code)

		rec = fixture.do(nethttp.MethodPost, "/api/v1/couriers/"+courierID.String()+"/sign-off", "")
		require.Equal(t, nethttp.StatusNoContent, rec.Code)
		assert.Equal(t, 0, fixture.pool.Size())
	})

	t.Run("should return not found for heartbeat of an unknown courier", func(t *testing.T) {
		fixture := newServerFixture(t)

		rec := fixture.do(nethttp.MethodPost, "/api/v1/couriers/"+kernel.NewUUID().String()+"/heartbeat", "")

		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})
}

// getStored reads the aggregate back through the in-memory store.
func (f *serverFixture) getStored(t *testing.T, id kernel.UUID) *mission.Mission {
	t.Helper()
	ctx := context.Background()
	uow := f.store.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	m, err := uow.MissionRepository().Get(ctx, id)
	require.NoError(t, err)
	return m
}

// assignCourier signs a courier on and dispatches the mission to them.
func (f *serverFixture) assignCourier(t *testing.T, missionID kernel.UUID) kernel.UUID {
	t.Helper()
	courierID := kernel.NewUUID()
	rec := f.do(nethttp.MethodPost, "/api/v1/couriers/sign-on",
		`{"courierId": "`+courierID.String()+`", "lat": 52.51, "lng": 13.4, "capacity": 1}`)
	require.Equal(t, nethttp.StatusNoContent, rec.Code)
	rec = f.do(nethttp.MethodPost, "/api/v1/missions/"+missionID.String()+"/dispatch", "")
	require.Equal(t, nethttp.StatusNoContent, rec.Code, rec.Body.String())
	return courierID
}
