package services_test

import (
	"testing"
	"time"

	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingMission(t *testing.T, origin kernel.GeoPoint) *mission.Mission {
	t.Helper()
	merchantID := kernel.NewUUID()
	destination, err := kernel.NewGeoPoint(52.5, 13.39)
	require.NoError(t, err)

	m, err := mission.NewMission(
		kernel.NewUUID(), mission.TypeFood, &merchantID,
		"Friedrichstr. 100", origin,
		"Torstr. 12", destination,
		mission.Estimate{Price: 10, CourierEarnings: 4, DistanceKm: 2, Minutes: 15},
		time.Now(),
	)
	require.NoError(t, err)
	return m
}

func availabilityAt(t *testing.T, lat, lng float64, signedOnAt time.Time) courier.Availability {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	a, err := courier.NewAvailability(kernel.NewUUID(), point, 1, signedOnAt)
	require.NoError(t, err)
	return *a
}

func TestMissionDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewMissionDispatcher()
	now := time.Now()
	origin, err := kernel.NewGeoPoint(52.52, 13.405)
	require.NoError(t, err)

	t.Run("should pick the closest courier", func(t *testing.T) {
		m := pendingMission(t, origin)
		near := availabilityAt(t, 52.521, 13.406, now)
		far := availabilityAt(t, 52.6, 13.5, now)

		best, err := dispatcher.Dispatch(m, []courier.Availability{far, near})

		require.NoError(t, err)
		assert.True(t, best.CourierID().IsEqual(near.CourierID()))
	})

	t.Run("should break distance ties by earliest sign-on", func(t *testing.T) {
		m := pendingMission(t, origin)
		veteran := availabilityAt(t, 52.53, 13.41, now.Add(-time.Hour))
		rookie := availabilityAt(t, 52.53, 13.41, now)

		best, err := dispatcher.Dispatch(m, []courier.Availability{rookie, veteran})

		require.NoError(t, err)
		assert.True(t, best.CourierID().IsEqual(veteran.CourierID()))
	})

	t.Run("should skip couriers without spare capacity", func(t *testing.T) {
		m := pendingMission(t, origin)
		near := availabilityAt(t, 52.521, 13.406, now)
		far := availabilityAt(t, 52.6, 13.5, now)
		require.NoError(t, near.IncrementActive())

		best, err := dispatcher.Dispatch(m, []courier.Availability{near, far})

		require.NoError(t, err)
		assert.True(t, best.CourierID().IsEqual(far.CourierID()))
	})

	t.Run("should fail with no candidates", func(t *testing.T) {
		m := pendingMission(t, origin)

		_, err := dispatcher.Dispatch(m, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNoCourierAvailable)
	})

	t.Run("should fail when all candidates are at capacity", func(t *testing.T) {
		m := pendingMission(t, origin)
		busy := availabilityAt(t, 52.521, 13.406, now)
		require.NoError(t, busy.IncrementActive())

		_, err := dispatcher.Dispatch(m, []courier.Availability{busy})

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNoCourierAvailable)
	})

	t.Run("should fail with an invalid mission", func(t *testing.T) {
		var m mission.Mission

		_, err := dispatcher.Dispatch(&m, []courier.Availability{availabilityAt(t, 52.521, 13.406, now)})

		require.Error(t, err)
		assert.ErrorIs(t, err, mission.ErrMissionIsNotConstructed)
	})
}
