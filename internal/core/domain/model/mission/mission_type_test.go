package mission_test

import (
	"testing"

	"missions/internal/core/domain/model/mission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromString(t *testing.T) {
	t.Run("should parse all wire names", func(t *testing.T) {
		for missionType, name := range map[mission.Type]string{
			mission.TypeFood:         "FOOD",
			mission.TypeFoodDelivery: "FOOD_DELIVERY",
			mission.TypeParcel:       "PARCEL",
			mission.TypeRide:         "RIDE",
		} {
			parsed, err := mission.TypeFromString(name)
			require.NoError(t, err)
			assert.Equal(t, missionType, parsed)
			assert.Equal(t, name, parsed.String())
		}
	})

	t.Run("should fail on unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "food", "UNKNOWN", "TELEPORT"} {
			_, err := mission.TypeFromString(name)
			require.Error(t, err, name)
		}
	})
}

func TestType_HasMerchantLeg(t *testing.T) {
	assert.True(t, mission.TypeFood.HasMerchantLeg())
	assert.True(t, mission.TypeFoodDelivery.HasMerchantLeg())
	assert.True(t, mission.TypeParcel.HasMerchantLeg())
	assert.False(t, mission.TypeRide.HasMerchantLeg())
}

func TestType_InitialTripState(t *testing.T) {
	assert.Equal(t, mission.TripToMerchant, mission.TypeFood.InitialTripState())
	assert.Equal(t, mission.TripToMerchant, mission.TypeParcel.InitialTripState())
	assert.Equal(t, mission.TripToCustomer, mission.TypeRide.InitialTripState())
}

func TestType_Validate(t *testing.T) {
	require.NoError(t, mission.TypeRide.Validate())
	require.Error(t, mission.TypeUnknown.Validate())
	require.Error(t, mission.Type(99).Validate())
}
