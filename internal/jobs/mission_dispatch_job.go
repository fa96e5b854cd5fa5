// Package jobs contains the scheduled background work: dispatching pending
// missions and sweeping stale couriers out of the pool.
package jobs

import (
	"context"
	"errors"
	"log/slog"

	"missions/internal/core/application/usecases/commands"
	"missions/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// MissionDispatchJob periodically tries to assign a courier to every
// pending mission. A mission that finds no courier simply stays pending
// and is retried on the next tick.
type MissionDispatchJob struct {
	uowFactory commands.MissionUoWFactory
	handler    commands.DispatchMissionCommandHandler
	cron       *cron.Cron
	spec       string
	logger     *slog.Logger
}

// NewMissionDispatchJob creates the dispatch job. spec is a cron expression
// with a seconds field, e.g. "*/5 * * * * *".
func NewMissionDispatchJob(
	uowFactory commands.MissionUoWFactory,
	handler commands.DispatchMissionCommandHandler,
	spec string,
	logger *slog.Logger,
) *MissionDispatchJob {
	return &MissionDispatchJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		spec:       spec,
		logger:     logger.With("component", "mission_dispatch_job"),
	}
}

// Start schedules the job.
func (j *MissionDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.dispatchPending(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Mission dispatch job started", "spec", j.spec)
	return nil
}

// Stop stops the job.
func (j *MissionDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Mission dispatch job stopped")
}

// dispatchPending runs one tick: load the pending missions and try to
// dispatch each one.
func (j *MissionDispatchJob) dispatchPending(ctx context.Context) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Failed to begin read transaction", "error", err)
		return
	}
	pending, err := uow.MissionRepository().GetAllPending(ctx)
	_ = uow.Rollback(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load pending missions", "error", err)
		return
	}

	for _, m := range pending {
		cmd, err := commands.NewDispatchMissionCommand(m.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build dispatch command",
				"missionId", m.ID().String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// no courier right now is an expected business scenario
			if !errors.Is(err, services.ErrNoCourierAvailable) {
				j.logger.ErrorContext(ctx, "Mission dispatch failed",
					"missionId", m.ID().String(), "error", err)
			}
		}
	}
}
