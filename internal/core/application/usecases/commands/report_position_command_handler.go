package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"
)

// ReportPositionCommandHandler is the geo tracker's write path. It feeds a
// courier position report into the mission aggregate and, when the courier
// comes within the arrival threshold of the destination while heading to
// the customer, auto-requests the ARRIVING advance as the system actor.
//
// The proximity trigger fires at most once per mission: once the trip state
// is ARRIVING the advance is no longer legal and repeated in-range reports
// change nothing.
type ReportPositionCommandHandler struct {
	uowFactory         MissionUoWFactory
	locker             MissionLocker
	pool               *courier.Pool
	positionStore      ports.PositionStore
	publisher          ports.EventPublisher
	arrivalThresholdKm float64
	log                *slog.Logger
}

// NewReportPositionCommandHandler creates the geo tracker handler.
// arrivalThresholdKm is the distance below which a courier heading to the
// customer counts as arriving.
func NewReportPositionCommandHandler(
	uowFactory MissionUoWFactory,
	locker MissionLocker,
	pool *courier.Pool,
	positionStore ports.PositionStore,
	publisher ports.EventPublisher,
	arrivalThresholdKm float64,
	log *slog.Logger,
) ReportPositionCommandHandler {
	return ReportPositionCommandHandler{
		uowFactory:         uowFactory,
		locker:             locker,
		pool:               pool,
		positionStore:      positionStore,
		publisher:          publisher,
		arrivalThresholdKm: arrivalThresholdKm,
		log:                log,
	}
}

// Handle processes one position report.
//
// Reports from a courier other than the assigned one fail with
// UnauthorizedActionError. Stale reports and reports for missions that are
// no longer active are dropped silently, as couriers keep streaming
// positions around the edges of a mission's lifetime.
func (h *ReportPositionCommandHandler) Handle(ctx context.Context, cmd ReportPositionCommand) error {
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

	accepted, err := m.RecordPosition(cmd.CourierID(), cmd.Position(), cmd.ReportedAt())
	if err != nil {
		return err
	}
	if !accepted {
		return nil
	}

	arrivalEvent, err := h.checkArrival(m)
	if err != nil {
		return err
	}

	if err = missionRepo.Update(ctx, m); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// side effects after commit are best-effort
	if err = h.positionStore.Set(ctx, m.ID(), ports.PositionRecord{
		Point:      cmd.Position(),
		ReportedAt: cmd.ReportedAt(),
	}); err != nil {
		h.log.WarnContext(ctx, "position store write failed",
			"missionId", m.ID().String(), "error", err)
	}
	if err = h.pool.UpdatePosition(cmd.CourierID(), cmd.Position(), cmd.ReportedAt()); err != nil {
		h.log.WarnContext(ctx, "courier pool position update failed",
			"courierId", cmd.CourierID().String(), "error", err)
	}

	if arrivalEvent != nil {
		h.publisher.Publish(*arrivalEvent)
	}
	return nil
}

// checkArrival fires the automated ARRIVING advance when the freshly
// recorded position is within the threshold of the destination while the
// courier is heading to the customer.
func (h *ReportPositionCommandHandler) checkArrival(m *mission.Mission) (*mission.Event, error) {
	if m.Status() != mission.StatusOnWay || m.TripState() != mission.TripToCustomer {
		return nil, nil
	}

	distanceKm, err := m.DistanceToDestinationKm()
	if err != nil {
		return nil, err
	}
	if distanceKm > h.arrivalThresholdKm {
		return nil, nil
	}

	arriving := mission.TripArriving
	event, err := m.ApplyTransition(mission.SystemActor(), nil, &arriving, time.Now().UTC())
	if err != nil {
		// repeated in-range reports after ARRIVING are benign
		if errors.Is(err, errs.ErrIllegalTransition) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
