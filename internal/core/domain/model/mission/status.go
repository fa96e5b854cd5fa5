package mission

import (
	"fmt"

	"missions/internal/pkg/errs"
)

// Status represents the coarse lifecycle state of a mission.
// It implements a state machine with defined forward edges; CANCELLED is
// reachable from every non-terminal status and, like DELIVERED, is final.
//
// State transitions:
//
//	PENDING ──> ACCEPTED ──> READY ──> ON_WAY ──> DELIVERED
//	    │           │          │          │
//	    └───────────┴──────────┴──────────┴─────> CANCELLED
//
// Status is a value object that validates state transitions and provides
// wire names for persistence and transport.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: created, no courier assigned.
	StatusPending

	// StatusAccepted indicates a courier has been assigned by the dispatcher.
	StatusAccepted

	// StatusReady indicates the merchant marked the mission ready for pickup.
	StatusReady

	// StatusOnWay indicates the courier is en route with the goods or passenger.
	StatusOnWay

	// StatusDelivered is the successful final status. No further transitions.
	StatusDelivered

	// StatusCancelled is the abortive final status, reachable from any
	// non-terminal status. No further transitions.
	StatusCancelled
)

// getStatusStrings returns the wire names for all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPending:   "PENDING",
		StatusAccepted:  "ACCEPTED",
		StatusReady:     "READY",
		StatusOnWay:     "ON_WAY",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
	}
}

// getValidStatusStrings returns only valid statuses to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "PENDING",
		StatusAccepted:  "ACCEPTED",
		StatusReady:     "READY",
		StatusOnWay:     "ON_WAY",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
	}
}

// allowedStatusEdges is the authoritative transition table.
func allowedStatusEdges() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:  {StatusAccepted, StatusCancelled},
		StatusAccepted: {StatusReady, StatusCancelled},
		StatusReady:    {StatusOnWay, StatusCancelled},
		StatusOnWay:    {StatusDelivered, StatusCancelled},
	}
}

// StatusFromString parses a wire name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized status", s))
}

// Validate checks if the Status is one of the recognized values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, implementing fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether a courier is working the mission, which is when
// the trip state is meaningful.
func (s Status) IsActive() bool {
	return s == StatusAccepted || s == StatusReady || s == StatusOnWay
}

// CanTransitionTo reports whether an edge from s to next exists in the
// transition table. Terminal statuses have no outgoing edges.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedStatusEdges()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
