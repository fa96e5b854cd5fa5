package mission

import (
	"fmt"

	"missions/internal/pkg/errs"
)

// Type classifies what kind of job a mission represents.
// The type is fixed at creation and determines whether the mission has a
// merchant pickup leg.
type Type int

const (
	// TypeUnknown represents an invalid or undefined mission type.
	TypeUnknown Type = iota

	// TypeFood is an on-premise food order handed to a courier.
	TypeFood

	// TypeFoodDelivery is a prepared-food delivery from a merchant kitchen.
	TypeFoodDelivery

	// TypeParcel is a point-to-point package delivery.
	TypeParcel

	// TypeRide is a passenger ride with no merchant involved.
	TypeRide
)

// getTypeStrings returns the wire names for all mission types.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:      "UNKNOWN",
		TypeFood:         "FOOD",
		TypeFoodDelivery: "FOOD_DELIVERY",
		TypeParcel:       "PARCEL",
		TypeRide:         "RIDE",
	}
}

// getValidTypeStrings returns only the types accepted at creation.
func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeFood:         "FOOD",
		TypeFoodDelivery: "FOOD_DELIVERY",
		TypeParcel:       "PARCEL",
		TypeRide:         "RIDE",
	}
}

// TypeFromString parses a wire name into a Type.
// Returns an error for unrecognized names.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type",
		fmt.Errorf("%q is not a recognized mission type", s))
}

// Validate checks if the Type is one of the recognized values.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%d is not a valid mission type", t))
	}
	return nil
}

// String returns the wire name of the type, implementing fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// HasMerchantLeg reports whether missions of this type pick up from a
// merchant before heading to the customer. RIDE missions do not.
func (t Type) HasMerchantLeg() bool {
	return t != TypeRide
}

// InitialTripState returns the trip state a mission of this type enters when
// the courier side becomes active: TO_MERCHANT for delivery types when the
// courier is assigned, TO_CUSTOMER for rides once pickup is confirmed.
func (t Type) InitialTripState() TripState {
	if t.HasMerchantLeg() {
		return TripToMerchant
	}
	return TripToCustomer
}
