package mission_test

import (
	"testing"

	"missions/internal/core/domain/model/mission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all wire names", func(t *testing.T) {
		for s, name := range map[mission.Status]string{
			mission.StatusPending:   "PENDING",
			mission.StatusAccepted:  "ACCEPTED",
			mission.StatusReady:     "READY",
			mission.StatusOnWay:     "ON_WAY",
			mission.StatusDelivered: "DELIVERED",
			mission.StatusCancelled: "CANCELLED",
		} {
			parsed, err := mission.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
			assert.Equal(t, name, parsed.String())
		}
	})

	t.Run("should fail on unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "pending", "UNKNOWN", "DONE"} {
			_, err := mission.StatusFromString(name)
			require.Error(t, err, name)
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[mission.Status][]mission.Status{
		mission.StatusPending:  {mission.StatusAccepted, mission.StatusCancelled},
		mission.StatusAccepted: {mission.StatusReady, mission.StatusCancelled},
		mission.StatusReady:    {mission.StatusOnWay, mission.StatusCancelled},
		mission.StatusOnWay:    {mission.StatusDelivered, mission.StatusCancelled},
	}
	all := []mission.Status{
		mission.StatusPending, mission.StatusAccepted, mission.StatusReady,
		mission.StatusOnWay, mission.StatusDelivered, mission.StatusCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, mission.StatusDelivered.IsTerminal())
	assert.True(t, mission.StatusCancelled.IsTerminal())
	assert.False(t, mission.StatusPending.IsTerminal())
	assert.False(t, mission.StatusOnWay.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	assert.False(t, mission.StatusPending.IsActive())
	assert.True(t, mission.StatusAccepted.IsActive())
	assert.True(t, mission.StatusReady.IsActive())
	assert.True(t, mission.StatusOnWay.IsActive())
	assert.False(t, mission.StatusDelivered.IsActive())
	assert.False(t, mission.StatusCancelled.IsActive())
}

func TestStatus_Validate(t *testing.T) {
	assert.NoError(t, mission.StatusPending.Validate())
	assert.Error(t, mission.StatusUnknown.Validate())
	assert.Error(t, mission.Status(42).Validate())
}
