package mission

import (
	"fmt"

	"missions/internal/pkg/errs"
)

// TripState represents the fine-grained courier-side progress of an active
// mission. It is undefined (TripNone) while the mission is PENDING or in a
// terminal status, and always defined while ON_WAY.
//
// The chain only moves forward, one step at a time:
//
//	TO_MERCHANT ──> AT_MERCHANT ──> TO_CUSTOMER ──> ARRIVING
//
// RIDE missions skip the merchant leg and enter the chain at TO_CUSTOMER.
type TripState int

const (
	// TripNone means the trip state is undefined for the current status.
	TripNone TripState = iota

	// TripToMerchant: the courier is heading to the merchant for pickup.
	TripToMerchant

	// TripAtMerchant: the courier arrived at the merchant.
	TripAtMerchant

	// TripToCustomer: the courier is heading to the destination.
	TripToCustomer

	// TripArriving: the courier is within the arrival proximity threshold
	// of the destination.
	TripArriving
)

// getTripStateStrings returns the wire names for all trip states.
func getTripStateStrings() map[TripState]string {
	return map[TripState]string{
		TripNone:       "NONE",
		TripToMerchant: "TO_MERCHANT",
		TripAtMerchant: "AT_MERCHANT",
		TripToCustomer: "TO_CUSTOMER",
		TripArriving:   "ARRIVING",
	}
}

// getValidTripStateStrings returns only the defined trip states.
func getValidTripStateStrings() map[TripState]string {
	//nolint:exhaustive // TripNone is the absence of a trip state
	return map[TripState]string{
		TripToMerchant: "TO_MERCHANT",
		TripAtMerchant: "AT_MERCHANT",
		TripToCustomer: "TO_CUSTOMER",
		TripArriving:   "ARRIVING",
	}
}

// TripStateFromString parses a wire name into a TripState.
func TripStateFromString(s string) (TripState, error) {
	for state, str := range getValidTripStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return TripNone, errs.NewValueIsInvalidErrorWithCause("tripState",
		fmt.Errorf("%q is not a recognized trip state", s))
}

// Validate checks if the TripState is one of the defined values.
// TripNone is rejected; use IsNone to test for absence.
func (t TripState) Validate() error {
	if _, ok := getValidTripStateStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tripState",
			fmt.Errorf("%d is not a valid trip state", t))
	}
	return nil
}

// String returns the wire name of the trip state, implementing fmt.Stringer.
func (t TripState) String() string {
	if str, ok := getTripStateStrings()[t]; ok {
		return str
	}
	return "NONE"
}

// IsNone reports whether the trip state is undefined.
func (t TripState) IsNone() bool {
	return t == TripNone
}

// Next returns the following state in the chain and whether one exists.
// ARRIVING is the last state; it ends when the status moves to DELIVERED.
func (t TripState) Next() (TripState, bool) {
	switch t {
	case TripToMerchant:
		return TripAtMerchant, true
	case TripAtMerchant:
		return TripToCustomer, true
	case TripToCustomer:
		return TripArriving, true
	default:
		return TripNone, false
	}
}

// CanAdvanceTo reports whether next is exactly one step forward in the
// chain. The chain never regresses and never skips states.
func (t TripState) CanAdvanceTo(next TripState) bool {
	n, ok := t.Next()
	return ok && n == next
}
