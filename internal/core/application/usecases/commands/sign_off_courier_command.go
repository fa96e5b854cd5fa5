package commands

import (
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/guard"
)

var ErrSignOffCourierCommandIsNotConstructed = errors.New(
	"SignOffCourierCommand must be created via NewSignOffCourierCommand constructor",
)

// SignOffCourierCommand removes a courier from the availability pool.
// Missions already assigned to the courier continue; only new assignments
// stop.
type SignOffCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSignOffCourierCommand creates a sign-off command.
func NewSignOffCourierCommand(courierID kernel.UUID) (SignOffCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SignOffCourierCommand{}, err
	}

	return SignOffCourierCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SignOffCourierCommand) Validate() error {
	return c.guard.Validate(ErrSignOffCourierCommandIsNotConstructed)
}

// CourierID returns the courier signing off.
func (c SignOffCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
