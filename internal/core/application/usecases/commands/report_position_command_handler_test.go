package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"missions/internal/adapters/out/inmemory"
	"missions/internal/core/application/usecases/commands"
	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/pkg/errs"
	"missions/internal/pkg/keyedmutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackerFixture struct {
	store         *inmemory.MissionStore
	pool          *courier.Pool
	positionStore *inmemory.PositionStore
	publisher     *capturePublisher
	handler       commands.ReportPositionCommandHandler

	missionID   kernel.UUID
	courierID   kernel.UUID
	destination kernel.GeoPoint
}

// newTrackerFixture seeds a FOOD mission in ON_WAY/TO_CUSTOMER, the state
// the proximity trigger watches.
func newTrackerFixture(t *testing.T, thresholdKm float64) *trackerFixture {
	t.Helper()
	f := &trackerFixture{
		store:         inmemory.NewMissionStore(),
		pool:          courier.NewPool(),
		positionStore: inmemory.NewPositionStore(),
		publisher:     &capturePublisher{},
		courierID:     kernel.NewUUID(),
	}
	f.handler = commands.NewReportPositionCommandHandler(
		FuncMissionUoWFactory(func() commands.MissionUoW { return f.store.Create() }),
		keyedmutex.New(),
		f.pool,
		f.positionStore,
		f.publisher,
		thresholdKm,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	merchantID := kernel.NewUUID()
	origin, err := kernel.NewGeoPoint(52.52, 13.405)
	require.NoError(t, err)
	f.destination, err = kernel.NewGeoPoint(52.5, 13.39)
	require.NoError(t, err)

	m, err := mission.NewMission(
		kernel.NewUUID(), mission.TypeFood, &merchantID,
		"Friedrichstr. 100", origin,
		"Torstr. 12", f.destination,
		mission.Estimate{Price: 10, CourierEarnings: 4, DistanceKm: 2, Minutes: 15},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	f.missionID = m.ID()

	now := time.Now().UTC()
	_, err = m.AssignCourier(f.courierID, now)
	require.NoError(t, err)
	merchant, err := mission.NewActor(merchantID, mission.RoleMerchant)
	require.NoError(t, err)
	courierActor, err := mission.NewActor(f.courierID, mission.RoleCourier)
	require.NoError(t, err)
	_, err = m.ApplyTransition(merchant, statusPtr(mission.StatusReady), nil, now)
	require.NoError(t, err)
	_, err = m.ApplyTransition(courierActor, statusPtr(mission.StatusOnWay), tripPtr(mission.TripAtMerchant), now)
	require.NoError(t, err)
	_, err = m.ApplyTransition(courierActor, nil, tripPtr(mission.TripToCustomer), now)
	require.NoError(t, err)

	ctx := t.Context()
	require.NoError(t, f.pool.SignOn(f.courierID, origin, 1, now))

	uow := f.store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.MissionRepository().Add(ctx, m))
	require.NoError(t, uow.Commit(ctx))
	return f
}

func (f *trackerFixture) report(t *testing.T, courierID kernel.UUID, lat, lng float64, at time.Time) error {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	cmd, err := commands.NewReportPositionCommand(f.missionID, courierID, point, at)
	require.NoError(t, err)
	return f.handler.Handle(t.Context(), cmd)
}

func (f *trackerFixture) currentMission(t *testing.T) *mission.Mission {
	t.Helper()
	ctx := t.Context()
	uow := f.store.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	m, err := uow.MissionRepository().Get(ctx, f.missionID)
	require.NoError(t, err)
	return m
}

func TestReportPositionCommandHandler_Handle(t *testing.T) {
	t.Run("should record a far report without triggering arrival", func(t *testing.T) {
		f := newTrackerFixture(t, 0.3)
		now := time.Now().UTC()

		require.NoError(t, f.report(t, f.courierID, 52.51, 13.4, now))

		m := f.currentMission(t)
		assert.Equal(t, mission.TripToCustomer, m.TripState())
		require.NotNil(t, m.Position())
		assert.Empty(t, f.publisher.Events())

		record, err := f.positionStore.Get(t.Context(), f.missionID)
		require.NoError(t, err)
		assert.Equal(t, now, record.ReportedAt)

		availability, err := f.pool.Get(f.courierID)
		require.NoError(t, err)
		assert.Equal(t, record.Point, availability.Position())
	})

	t.Run("should fire the arriving advance exactly once", func(t *testing.T) {
		f := newTrackerFixture(t, 0.3)
		now := time.Now().UTC()

		// ~110m from the destination, well inside the threshold
		require.NoError(t, f.report(t, f.courierID, 52.501, 13.39, now))

		m := f.currentMission(t)
		assert.Equal(t, mission.StatusOnWay, m.Status())
		assert.Equal(t, mission.TripArriving, m.TripState())

		events := f.publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, mission.TripToCustomer, events[0].PreviousTripState())
		assert.Equal(t, mission.TripArriving, events[0].NewTripState())
		assert.True(t, events[0].Actor().IsSystem())

		// repeated in-range reports change nothing
		require.NoError(t, f.report(t, f.courierID, 52.5005, 13.39, now.Add(time.Second)))
		assert.Len(t, f.publisher.Events(), 1)
		assert.Equal(t, mission.TripArriving, f.currentMission(t).TripState())
	})

	t.Run("should reject a foreign courier", func(t *testing.T) {
		f := newTrackerFixture(t, 0.3)

		err := f.report(t, kernel.NewUUID(), 52.51, 13.4, time.Now().UTC())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorizedAction)
		assert.Nil(t, f.currentMission(t).Position())
	})

	t.Run("should drop stale reports silently", func(t *testing.T) {
		f := newTrackerFixture(t, 0.3)
		now := time.Now().UTC()
		require.NoError(t, f.report(t, f.courierID, 52.51, 13.4, now))

		require.NoError(t, f.report(t, f.courierID, 52.505, 13.395, now.Add(-time.Minute)))

		m := f.currentMission(t)
		assert.InDelta(t, 52.51, m.Position().Lat(), 1e-9)
		assert.Equal(t, now, m.PositionAt())
	})

	t.Run("should keep the position store monotonic", func(t *testing.T) {
		f := newTrackerFixture(t, 0.3)
		now := time.Now().UTC()
		require.NoError(t, f.report(t, f.courierID, 52.51, 13.4, now))

		record, err := f.positionStore.Get(t.Context(), f.missionID)
		require.NoError(t, err)
		assert.Equal(t, now, record.ReportedAt)
	})
}
