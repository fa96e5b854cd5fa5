package commands

import (
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/guard"
)

var ErrSignOnCourierCommandIsNotConstructed = errors.New(
	"SignOnCourierCommand must be created via NewSignOnCourierCommand constructor",
)

// SignOnCourierCommand registers a courier as available for dispatch at a
// starting position. Capacity is how many missions the courier is willing
// to work at once; zero means the default of one.
type SignOnCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	position  kernel.GeoPoint
	capacity  int

	guard guard.ConstructorGuard
}

// NewSignOnCourierCommand creates a sign-on command.
func NewSignOnCourierCommand(courierID kernel.UUID, position kernel.GeoPoint, capacity int) (SignOnCourierCommand, error) {
	cmd := SignOnCourierCommand{
		capacity: capacity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setPosition(position),
	); err != nil {
		return SignOnCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SignOnCourierCommand) Validate() error {
	return c.guard.Validate(ErrSignOnCourierCommandIsNotConstructed)
}

// CourierID returns the courier signing on.
func (c SignOnCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Position returns the courier's starting position.
func (c SignOnCourierCommand) Position() kernel.GeoPoint {
	return c.position
}

// Capacity returns the requested concurrent-mission capacity.
func (c SignOnCourierCommand) Capacity() int {
	return c.capacity
}

func (c *SignOnCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *SignOnCourierCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	c.position = position
	return nil
}
