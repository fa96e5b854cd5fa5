package commands

import (
	"errors"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/errs"
	"missions/internal/pkg/guard"
)

var ErrReportPositionCommandIsNotConstructed = errors.New(
	"ReportPositionCommand must be created via NewReportPositionCommand constructor",
)

// ReportPositionCommand carries one courier position report for a mission.
type ReportPositionCommand struct { //nolint:recvcheck //using for validation
	missionID  kernel.UUID
	courierID  kernel.UUID
	position   kernel.GeoPoint
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportPositionCommand creates a position report command.
func NewReportPositionCommand(
	missionID kernel.UUID,
	courierID kernel.UUID,
	position kernel.GeoPoint,
	reportedAt time.Time,
) (ReportPositionCommand, error) {
	cmd := ReportPositionCommand{
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMissionID(missionID),
		cmd.setCourierID(courierID),
		cmd.setPosition(position),
		cmd.validateReportedAt(),
	); err != nil {
		return ReportPositionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportPositionCommandIsNotConstructed)
}

// MissionID returns the mission the report belongs to.
func (c ReportPositionCommand) MissionID() kernel.UUID {
	return c.missionID
}

// CourierID returns the reporting courier.
func (c ReportPositionCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Position returns the reported coordinate.
func (c ReportPositionCommand) Position() kernel.GeoPoint {
	return c.position
}

// ReportedAt returns the device timestamp of the report.
func (c ReportPositionCommand) ReportedAt() time.Time {
	return c.reportedAt
}

func (c *ReportPositionCommand) setMissionID(missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}
	c.missionID = missionID
	return nil
}

func (c *ReportPositionCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *ReportPositionCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	c.position = position
	return nil
}

func (c *ReportPositionCommand) validateReportedAt() error {
	if c.reportedAt.IsZero() {
		return errs.NewValueIsRequiredError("reportedAt")
	}
	return nil
}
