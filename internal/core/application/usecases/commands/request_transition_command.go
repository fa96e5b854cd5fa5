package commands

import (
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/pkg/errs"
	"missions/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand asks the lifecycle controller to move a mission
// to a new status and/or trip state on behalf of an actor. Nil desired
// values mean "keep the current value"; at least one must be set.
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	missionID        kernel.UUID
	actor            mission.Actor
	desiredStatus    *mission.Status
	desiredTripState *mission.TripState

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a transition request.
func NewRequestTransitionCommand(
	missionID kernel.UUID,
	actor mission.Actor,
	desiredStatus *mission.Status,
	desiredTripState *mission.TripState,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMissionID(missionID),
		cmd.setActor(actor),
		cmd.setDesiredStatus(desiredStatus),
		cmd.setDesiredTripState(desiredTripState),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	if cmd.desiredStatus == nil && cmd.desiredTripState == nil {
		return RequestTransitionCommand{}, errs.NewValueIsRequiredError("desiredStatus or desiredTripState")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// MissionID returns the mission to transition.
func (c RequestTransitionCommand) MissionID() kernel.UUID {
	return c.missionID
}

// Actor returns the party requesting the transition.
func (c RequestTransitionCommand) Actor() mission.Actor {
	return c.actor
}

// DesiredStatus returns the requested status, or nil to keep the current one.
func (c RequestTransitionCommand) DesiredStatus() *mission.Status {
	return c.desiredStatus
}

// DesiredTripState returns the requested trip state, or nil to keep the
// current one.
func (c RequestTransitionCommand) DesiredTripState() *mission.TripState {
	return c.desiredTripState
}

func (c *RequestTransitionCommand) setMissionID(missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}
	c.missionID = missionID
	return nil
}

func (c *RequestTransitionCommand) setActor(actor mission.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RequestTransitionCommand) setDesiredStatus(desiredStatus *mission.Status) error {
	if desiredStatus == nil {
		return nil
	}
	if err := desiredStatus.Validate(); err != nil {
		return err
	}
	s := *desiredStatus
	c.desiredStatus = &s
	return nil
}

func (c *RequestTransitionCommand) setDesiredTripState(desiredTripState *mission.TripState) error {
	if desiredTripState == nil {
		return nil
	}
	if err := desiredTripState.Validate(); err != nil {
		return err
	}
	ts := *desiredTripState
	c.desiredTripState = &ts
	return nil
}
