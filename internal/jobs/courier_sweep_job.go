package jobs

import (
	"context"
	"log/slog"
	"time"

	"missions/internal/core/domain/model/courier"

	"github.com/robfig/cron/v3"
)

// CourierSweepJob removes couriers whose heartbeat has gone quiet from the
// availability pool so the dispatcher stops offering missions to them.
type CourierSweepJob struct {
	pool   *courier.Pool
	maxAge time.Duration
	cron   *cron.Cron
	spec   string
	logger *slog.Logger
}

// NewCourierSweepJob creates the sweep job. Couriers without a heartbeat
// within maxAge are signed off on the next tick.
func NewCourierSweepJob(
	pool *courier.Pool,
	maxAge time.Duration,
	spec string,
	logger *slog.Logger,
) *CourierSweepJob {
	return &CourierSweepJob{
		pool:   pool,
		maxAge: maxAge,
		cron:   cron.New(cron.WithSeconds()),
		spec:   spec,
		logger: logger.With("component", "courier_sweep_job"),
	}
}

// Start schedules the job.
func (j *CourierSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		pruned := j.pool.PruneStale(time.Now().UTC(), j.maxAge)
		for _, courierID := range pruned {
			j.logger.WarnContext(ctx, "Courier pruned after missed heartbeats",
				"courierId", courierID.String(), "maxAge", j.maxAge.String())
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier sweep job started", "spec", j.spec)
	return nil
}

// Stop stops the job.
func (j *CourierSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier sweep job stopped")
}
