package commands

import (
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/guard"
)

var ErrDispatchMissionCommandIsNotConstructed = errors.New(
	"DispatchMissionCommand must be created via NewDispatchMissionCommand constructor",
)

// DispatchMissionCommand requests courier assignment for one pending
// mission. Issued by the dispatch job for each mission it finds and by
// the HTTP API for manual re-dispatch.
type DispatchMissionCommand struct { //nolint:recvcheck //using for validation
	missionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchMissionCommand creates a command to dispatch a mission.
func NewDispatchMissionCommand(missionID kernel.UUID) (DispatchMissionCommand, error) {
	if err := missionID.Validate(); err != nil {
		return DispatchMissionCommand{}, err
	}

	return DispatchMissionCommand{
		missionID: missionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchMissionCommand) Validate() error {
	return c.guard.Validate(ErrDispatchMissionCommandIsNotConstructed)
}

// MissionID returns the mission to dispatch.
func (c DispatchMissionCommand) MissionID() kernel.UUID {
	return c.missionID
}
