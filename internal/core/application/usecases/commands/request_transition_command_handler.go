package commands

import (
	"context"
	"fmt"
	"time"

	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"
)

// RequestTransitionCommandHandler is the lifecycle controller: the single
// entry point for all status and trip-state changes.
//
// It authorizes the actor against the requested edge, lets the aggregate
// check and commit the transition atomically inside the mission's critical
// section, persists the result, and fans the event out after commit.
//
// Authorization matrix:
//   - merchant: READY on their own missions, cancel
//   - courier: ON_WAY, DELIVERED, trip advances and cancel, only on the
//     mission they are assigned to
//   - customer: cancel
//   - admin: any forward edge and cancel
//   - system: the proximity-triggered ARRIVING advance only
type RequestTransitionCommandHandler struct {
	uowFactory    MissionUoWFactory
	locker        MissionLocker
	pool          *courier.Pool
	positionStore ports.PositionStore
	publisher     ports.EventPublisher
}

// NewRequestTransitionCommandHandler creates the lifecycle controller handler.
func NewRequestTransitionCommandHandler(
	uowFactory MissionUoWFactory,
	locker MissionLocker,
	pool *courier.Pool,
	positionStore ports.PositionStore,
	publisher ports.EventPublisher,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory:    uowFactory,
		locker:        locker,
		pool:          pool,
		positionStore: positionStore,
		publisher:     publisher,
	}
}

// Handle processes one transition request end to end.
func (h *RequestTransitionCommandHandler) Handle(ctx context.Context, cmd RequestTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locker.Lock(cmd.MissionID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	missionRepo := uow.MissionRepository()
	m, err := missionRepo.Get(ctx, cmd.MissionID())
	if err != nil {
		return err
	}

	if err = authorizeTransition(m, cmd.Actor(), cmd.DesiredStatus(), cmd.DesiredTripState()); err != nil {
		return err
	}

	event, err := m.ApplyTransition(cmd.Actor(), cmd.DesiredStatus(), cmd.DesiredTripState(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = missionRepo.Update(ctx, m); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.afterCommit(ctx, m, event)
	return nil
}

// afterCommit runs the best-effort side effects of a committed transition:
// freeing the courier's capacity and dropping the cached position when the
// mission ends, then fanning out the event.
func (h *RequestTransitionCommandHandler) afterCommit(ctx context.Context, m *mission.Mission, event mission.Event) {
	if event.NewStatus().IsTerminal() {
		if m.CourierID() != nil {
			_ = h.pool.Release(*m.CourierID())
		}
		_ = h.positionStore.Delete(ctx, m.ID())
	}

	h.publisher.Publish(event)
}

// authorizeTransition checks the actor's role and identity against the
// requested edge. Legality of the edge itself is the aggregate's job; this
// only answers "may this party even ask".
func authorizeTransition(m *mission.Mission, actor mission.Actor, desiredStatus *mission.Status, desiredTripState *mission.TripState) error {
	deny := func() error {
		return errs.NewUnauthorizedActionError(
			fmt.Sprintf("%s %s", actor.Role(), actor.ID()),
			fmt.Sprintf("request transition on mission %s", m.ID()))
	}

	switch actor.Role() {
	case mission.RoleAdmin:
		return nil

	case mission.RoleSystem:
		// the proximity trigger is the only automated transition
		if desiredStatus == nil && desiredTripState != nil && *desiredTripState == mission.TripArriving {
			return nil
		}
		return deny()

	case mission.RoleCustomer:
		if desiredStatus != nil && *desiredStatus == mission.StatusCancelled && desiredTripState == nil {
			return nil
		}
		return deny()

	case mission.RoleMerchant:
		if m.MerchantID() == nil || !m.MerchantID().IsEqual(actor.ID()) {
			return deny()
		}
		if desiredTripState != nil {
			return deny()
		}
		if desiredStatus != nil && (*desiredStatus == mission.StatusReady || *desiredStatus == mission.StatusCancelled) {
			return nil
		}
		return deny()

	case mission.RoleCourier:
		if m.CourierID() == nil || !m.CourierID().IsEqual(actor.ID()) {
			return deny()
		}
		if desiredStatus != nil {
			switch *desiredStatus {
			case mission.StatusOnWay, mission.StatusDelivered, mission.StatusCancelled:
			default:
				return deny()
			}
		}
		return nil

	default:
		return deny()
	}
}
