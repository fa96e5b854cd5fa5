package commands

import (
	"context"
	"time"

	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
)

// CreateMissionCommandHandler handles the business logic for mission
// creation. Quotes the mission through the pricing estimator, creates the
// aggregate in PENDING status and persists it. Dispatch happens separately.
type CreateMissionCommandHandler struct {
	uowFactory MissionUoWFactory
	pricing    ports.PricingEstimator
}

// NewCreateMissionCommandHandler creates a handler for mission creation.
func NewCreateMissionCommandHandler(uowFactory MissionUoWFactory, pricing ports.PricingEstimator) CreateMissionCommandHandler {
	return CreateMissionCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the mission creation command. The pricing quote is
// fetched before the transaction opens so a slow estimator never holds a
// database transaction.
func (h *CreateMissionCommandHandler) Handle(ctx context.Context, cmd CreateMissionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	estimate, err := h.pricing.Estimate(ctx, cmd.MissionType(), cmd.Origin(), cmd.Destination())
	if err != nil {
		return err
	}

	newMission, err := mission.NewMission(
		cmd.MissionID(),
		cmd.MissionType(),
		cmd.MerchantID(),
		cmd.OriginAddress(),
		cmd.Origin(),
		cmd.DestinationAddress(),
		cmd.Destination(),
		estimate,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MissionRepository().Add(ctx, newMission); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
