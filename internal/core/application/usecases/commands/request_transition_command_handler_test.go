package commands_test

import (
	"testing"
	"time"

	"missions/internal/adapters/out/inmemory"
	"missions/internal/core/application/usecases/commands"
	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"
	"missions/internal/pkg/keyedmutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transitionFixture struct {
	store         *inmemory.MissionStore
	pool          *courier.Pool
	positionStore *inmemory.PositionStore
	publisher     *capturePublisher
	handler       commands.RequestTransitionCommandHandler

	missionID  kernel.UUID
	merchantID kernel.UUID
	courierID  kernel.UUID
}

// newTransitionFixture seeds a FOOD mission already assigned to a courier
// (ACCEPTED/TO_MERCHANT), the state most transition cases start from.
func newTransitionFixture(t *testing.T) *transitionFixture {
	t.Helper()
	f := &transitionFixture{
		store:         inmemory.NewMissionStore(),
		pool:          courier.NewPool(),
		positionStore: inmemory.NewPositionStore(),
		publisher:     &capturePublisher{},
		merchantID:    kernel.NewUUID(),
		courierID:     kernel.NewUUID(),
	}
	f.handler = commands.NewRequestTransitionCommandHandler(
		FuncMissionUoWFactory(func() commands.MissionUoW { return f.store.Create() }),
		keyedmutex.New(),
		f.pool,
		f.positionStore,
		f.publisher,
	)

	origin, err := kernel.NewGeoPoint(52.52, 13.405)
	require.NoError(t, err)
	destination, err := kernel.NewGeoPoint(52.5, 13.39)
	require.NoError(t, err)

	m, err := mission.NewMission(
		kernel.NewUUID(), mission.TypeFood, &f.merchantID,
		"Friedrichstr. 100", origin,
		"Torstr. 12", destination,
		mission.Estimate{Price: 10, CourierEarnings: 4, DistanceKm: 2, Minutes: 15},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	f.missionID = m.ID()

	_, err = m.AssignCourier(f.courierID, time.Now().UTC())
	require.NoError(t, err)

	ctx := t.Context()
	require.NoError(t, f.pool.SignOn(f.courierID, origin, 1, time.Now().UTC()))
	require.NoError(t, f.pool.Book(f.courierID))

	uow := f.store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.MissionRepository().Add(ctx, m))
	require.NoError(t, uow.Commit(ctx))
	return f
}

func (f *transitionFixture) request(t *testing.T, actor mission.Actor, status *mission.Status, trip *mission.TripState) error {
	t.Helper()
	cmd, err := commands.NewRequestTransitionCommand(f.missionID, actor, status, trip)
	require.NoError(t, err)
	return f.handler.Handle(t.Context(), cmd)
}

func (f *transitionFixture) currentMission(t *testing.T) *mission.Mission {
	t.Helper()
	ctx := t.Context()
	uow := f.store.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	m, err := uow.MissionRepository().Get(ctx, f.missionID)
	require.NoError(t, err)
	return m
}

func (f *transitionFixture) merchant(t *testing.T) mission.Actor {
	t.Helper()
	actor, err := mission.NewActor(f.merchantID, mission.RoleMerchant)
	require.NoError(t, err)
	return actor
}

func (f *transitionFixture) courier(t *testing.T) mission.Actor {
	t.Helper()
	actor, err := mission.NewActor(f.courierID, mission.RoleCourier)
	require.NoError(t, err)
	return actor
}

func TestRequestTransitionCommandHandler_Handle(t *testing.T) {
	t.Run("should let the merchant mark the mission ready", func(t *testing.T) {
		f := newTransitionFixture(t)

		err := f.request(t, f.merchant(t), statusPtr(mission.StatusReady), nil)

		require.NoError(t, err)
		m := f.currentMission(t)
		assert.Equal(t, mission.StatusReady, m.Status())
		assert.Equal(t, mission.TripToMerchant, m.TripState())
		require.Len(t, f.publisher.Events(), 1)
	})

	t.Run("should walk the courier through pickup and delivery", func(t *testing.T) {
		f := newTransitionFixture(t)
		courierActor := f.courier(t)
		require.NoError(t, f.request(t, f.merchant(t), statusPtr(mission.StatusReady), nil))

		require.NoError(t, f.request(t, courierActor, statusPtr(mission.StatusOnWay), tripPtr(mission.TripAtMerchant)))
		require.NoError(t, f.request(t, courierActor, nil, tripPtr(mission.TripToCustomer)))
		require.NoError(t, f.request(t, courierActor, nil, tripPtr(mission.TripArriving)))
		require.NoError(t, f.request(t, courierActor, statusPtr(mission.StatusDelivered), nil))

		m := f.currentMission(t)
		assert.Equal(t, mission.StatusDelivered, m.Status())
		assert.True(t, m.TripState().IsNone())
		assert.Len(t, f.publisher.Events(), 5)

		// delivery frees the courier's capacity
		availability, err := f.pool.Get(f.courierID)
		require.NoError(t, err)
		assert.Equal(t, 0, availability.ActiveMissions())
	})

	t.Run("should clean up when the courier cancels mid-flight", func(t *testing.T) {
		f := newTransitionFixture(t)
		ctx := t.Context()
		require.NoError(t, f.positionStore.Set(ctx, f.missionID, ports.PositionRecord{ReportedAt: time.Now()}))

		err := f.request(t, f.courier(t), statusPtr(mission.StatusCancelled), nil)

		require.NoError(t, err)
		assert.Equal(t, mission.StatusCancelled, f.currentMission(t).Status())

		availability, err := f.pool.Get(f.courierID)
		require.NoError(t, err)
		assert.Equal(t, 0, availability.ActiveMissions())

		_, err = f.positionStore.Get(ctx, f.missionID)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse a foreign merchant", func(t *testing.T) {
		f := newTransitionFixture(t)
		stranger, err := mission.NewActor(kernel.NewUUID(), mission.RoleMerchant)
		require.NoError(t, err)

		err = f.request(t, stranger, statusPtr(mission.StatusReady), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorizedAction)
		assert.Equal(t, mission.StatusAccepted, f.currentMission(t).Status())
	})

	t.Run("should refuse a foreign courier", func(t *testing.T) {
		f := newTransitionFixture(t)
		require.NoError(t, f.request(t, f.merchant(t), statusPtr(mission.StatusReady), nil))
		stranger, err := mission.NewActor(kernel.NewUUID(), mission.RoleCourier)
		require.NoError(t, err)

		err = f.request(t, stranger, statusPtr(mission.StatusOnWay), tripPtr(mission.TripAtMerchant))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorizedAction)
	})

	t.Run("should refuse the merchant requesting courier edges", func(t *testing.T) {
		f := newTransitionFixture(t)
		require.NoError(t, f.request(t, f.merchant(t), statusPtr(mission.StatusReady), nil))

		err := f.request(t, f.merchant(t), statusPtr(mission.StatusOnWay), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorizedAction)
	})

	t.Run("should let the customer cancel but nothing else", func(t *testing.T) {
		f := newTransitionFixture(t)
		customer, err := mission.NewActor(kernel.NewUUID(), mission.RoleCustomer)
		require.NoError(t, err)

		err = f.request(t, customer, statusPtr(mission.StatusReady), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorizedAction)

		require.NoError(t, f.request(t, customer, statusPtr(mission.StatusCancelled), nil))
		assert.Equal(t, mission.StatusCancelled, f.currentMission(t).Status())
	})

	t.Run("should restrict the system actor to the arriving advance", func(t *testing.T) {
		f := newTransitionFixture(t)

		err := f.request(t, mission.SystemActor(), statusPtr(mission.StatusReady), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrUnauthorizedAction)
	})

	t.Run("should let the admin drive any edge", func(t *testing.T) {
		f := newTransitionFixture(t)
		admin, err := mission.NewActor(kernel.NewUUID(), mission.RoleAdmin)
		require.NoError(t, err)

		require.NoError(t, f.request(t, admin, statusPtr(mission.StatusReady), nil))
		require.NoError(t, f.request(t, admin, statusPtr(mission.StatusOnWay), tripPtr(mission.TripAtMerchant)))
		assert.Equal(t, mission.StatusOnWay, f.currentMission(t).Status())
	})

	t.Run("should surface illegal transitions from the aggregate", func(t *testing.T) {
		f := newTransitionFixture(t)
		require.NoError(t, f.request(t, f.courier(t), statusPtr(mission.StatusCancelled), nil))

		err := f.request(t, f.courier(t), statusPtr(mission.StatusDelivered), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTerminalState)
		assert.Len(t, f.publisher.Events(), 1)
	})
}
