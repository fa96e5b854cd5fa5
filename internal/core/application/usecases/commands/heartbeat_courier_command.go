package commands

import (
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/guard"
)

var ErrHeartbeatCourierCommandIsNotConstructed = errors.New(
	"HeartbeatCourierCommand must be created via NewHeartbeatCourierCommand constructor",
)

// HeartbeatCourierCommand refreshes a courier's liveness so the stale
// sweep does not sign them off. Position reports double as heartbeats;
// this command covers couriers idling between missions.
type HeartbeatCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewHeartbeatCourierCommand creates a heartbeat command.
func NewHeartbeatCourierCommand(courierID kernel.UUID) (HeartbeatCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return HeartbeatCourierCommand{}, err
	}

	return HeartbeatCourierCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c HeartbeatCourierCommand) Validate() error {
	return c.guard.Validate(ErrHeartbeatCourierCommandIsNotConstructed)
}

// CourierID returns the courier heartbeating.
func (c HeartbeatCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
