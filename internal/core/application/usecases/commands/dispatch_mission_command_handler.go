package commands

import (
	"context"
	"errors"
	"time"

	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/services"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"
)

// DispatchMissionCommandHandler assigns a courier to a pending mission.
//
// The handler runs the full assignment inside the mission's critical
// section: read the aggregate, pick a courier, commit the assignment and
// book the courier's capacity. Concurrent dispatch attempts for the same
// mission therefore serialize, and exactly one of them wins. Losers see
// the mission already assigned and treat it as success achieved by the
// winner rather than a failure.
type DispatchMissionCommandHandler struct {
	uowFactory MissionUoWFactory
	locker     MissionLocker
	pool       *courier.Pool
	dispatcher services.MissionDispatcher
	publisher  ports.EventPublisher
}

// NewDispatchMissionCommandHandler creates a handler for mission dispatch.
func NewDispatchMissionCommandHandler(
	uowFactory MissionUoWFactory,
	locker MissionLocker,
	pool *courier.Pool,
	dispatcher services.MissionDispatcher,
	publisher ports.EventPublisher,
) DispatchMissionCommandHandler {
	return DispatchMissionCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		pool:       pool,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// Handle processes the dispatch command.
//
// Returns services.ErrNoCourierAvailable when the pool has no candidate
// with spare capacity; the dispatch job retries on its next tick. A
// mission that is no longer pending is not an error: another dispatcher
// or a cancellation got there first.
func (h *DispatchMissionCommandHandler) Handle(ctx context.Context, cmd DispatchMissionCommand) error {
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
	dispatchedMission, err := missionRepo.Get(ctx, cmd.MissionID())
	if err != nil {
		return err
	}

	best, err := h.dispatcher.Dispatch(dispatchedMission, h.pool.Candidates())
	if err != nil {
		return err
	}

	event, err := dispatchedMission.AssignCourier(best.CourierID(), time.Now().UTC())
	if err != nil {
		// lost the race: a concurrent dispatch already assigned a
		// courier, or the mission was cancelled under our feet
		if errors.Is(err, errs.ErrAlreadyAssigned) || errors.Is(err, errs.ErrTerminalState) {
			return nil
		}
		return err
	}
	if event == nil {
		return nil
	}

	if err = h.pool.Book(best.CourierID()); err != nil {
		return err
	}

	if err = missionRepo.Update(ctx, dispatchedMission); err != nil {
		_ = h.pool.Release(best.CourierID()) // undo the booking on failed persist
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		_ = h.pool.Release(best.CourierID()) // undo the booking on failed persist
		return err
	}

	h.publisher.Publish(*event)
	return nil
}
