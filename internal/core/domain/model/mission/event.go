package mission

import (
	"time"

	"missions/internal/core/domain/model/kernel"
)

// Event is the immutable record of a committed state transition.
// It is produced exactly once by the aggregate, fanned out to zero or more
// consumers (notification emitter, future subscribers), and never mutated.
type Event struct {
	missionID         kernel.UUID
	previousStatus    Status
	previousTripState TripState
	newStatus         Status
	newTripState      TripState
	actor             Actor
	occurredAt        time.Time
}

// newEvent builds a transition event. Only the aggregate creates events, so
// the inputs are trusted to describe a committed transition.
func newEvent(
	missionID kernel.UUID,
	previousStatus Status, previousTripState TripState,
	newStatus Status, newTripState TripState,
	actor Actor, occurredAt time.Time,
) Event {
	return Event{
		missionID:         missionID,
		previousStatus:    previousStatus,
		previousTripState: previousTripState,
		newStatus:         newStatus,
		newTripState:      newTripState,
		actor:             actor,
		occurredAt:        occurredAt,
	}
}

// MissionID returns the mission the transition belongs to.
func (e Event) MissionID() kernel.UUID {
	return e.missionID
}

// PreviousStatus returns the status before the transition.
func (e Event) PreviousStatus() Status {
	return e.previousStatus
}

// PreviousTripState returns the trip state before the transition.
func (e Event) PreviousTripState() TripState {
	return e.previousTripState
}

// NewStatus returns the status after the transition.
func (e Event) NewStatus() Status {
	return e.newStatus
}

// NewTripState returns the trip state after the transition.
func (e Event) NewTripState() TripState {
	return e.newTripState
}

// Actor returns the party that requested the transition.
func (e Event) Actor() Actor {
	return e.actor
}

// OccurredAt returns when the transition was committed.
func (e Event) OccurredAt() time.Time {
	return e.occurredAt
}
