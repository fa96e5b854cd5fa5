package commands

import (
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/pkg/guard"
)

var (
	ErrCreateMissionCommandIsNotConstructed = errors.New(
		"CreateMissionCommand must be created via NewCreateMissionCommand constructor",
	)
)

// CreateMissionCommand represents a request to register a new mission.
// It carries the addresses and coordinates of both legs; pricing figures
// are quoted by the handler, not supplied by the caller.
type CreateMissionCommand struct { //nolint:recvcheck //using for validation
	missionID          kernel.UUID
	missionType        mission.Type
	merchantID         *kernel.UUID
	originAddress      string
	origin             kernel.GeoPoint
	destinationAddress string
	destination        kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateMissionCommand creates a command to register a new mission.
// Validates the ID, type and coordinates; address presence and the
// merchant requirement for delivery types are enforced by the aggregate.
func NewCreateMissionCommand(
	missionID kernel.UUID,
	missionType mission.Type,
	merchantID *kernel.UUID,
	originAddress string,
	origin kernel.GeoPoint,
	destinationAddress string,
	destination kernel.GeoPoint,
) (CreateMissionCommand, error) {
	cmd := CreateMissionCommand{
		originAddress:      originAddress,
		destinationAddress: destinationAddress,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMissionID(missionID),
		cmd.setMissionType(missionType),
		cmd.setMerchantID(merchantID),
		cmd.setOrigin(origin),
		cmd.setDestination(destination),
	); err != nil {
		return CreateMissionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMissionCommand) Validate() error {
	return c.guard.Validate(ErrCreateMissionCommandIsNotConstructed)
}

// MissionID returns the unique identifier for the mission.
func (c CreateMissionCommand) MissionID() kernel.UUID {
	return c.missionID
}

// MissionType returns the requested mission type.
func (c CreateMissionCommand) MissionType() mission.Type {
	return c.missionType
}

// MerchantID returns the merchant, or nil for ride missions.
func (c CreateMissionCommand) MerchantID() *kernel.UUID {
	return c.merchantID
}

// OriginAddress returns the pickup address.
func (c CreateMissionCommand) OriginAddress() string {
	return c.originAddress
}

// Origin returns the pickup coordinate.
func (c CreateMissionCommand) Origin() kernel.GeoPoint {
	return c.origin
}

// DestinationAddress returns the drop-off address.
func (c CreateMissionCommand) DestinationAddress() string {
	return c.destinationAddress
}

// Destination returns the drop-off coordinate.
func (c CreateMissionCommand) Destination() kernel.GeoPoint {
	return c.destination
}

func (c *CreateMissionCommand) setMissionID(missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}
	c.missionID = missionID
	return nil
}

func (c *CreateMissionCommand) setMissionType(missionType mission.Type) error {
	if err := missionType.Validate(); err != nil {
		return err
	}
	c.missionType = missionType
	return nil
}

func (c *CreateMissionCommand) setMerchantID(merchantID *kernel.UUID) error {
	if merchantID == nil {
		return nil
	}
	if err := merchantID.Validate(); err != nil {
		return err
	}
	id := *merchantID
	c.merchantID = &id
	return nil
}

func (c *CreateMissionCommand) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	c.origin = origin
	return nil
}

func (c *CreateMissionCommand) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	c.destination = destination
	return nil
}
