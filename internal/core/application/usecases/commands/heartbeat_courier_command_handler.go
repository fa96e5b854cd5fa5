package commands

import (
	"context"
	"time"

	"missions/internal/core/domain/model/courier"
)

// HeartbeatCourierCommandHandler refreshes courier liveness in the pool.
type HeartbeatCourierCommandHandler struct {
	pool *courier.Pool
}

// NewHeartbeatCourierCommandHandler creates a handler for courier heartbeats.
func NewHeartbeatCourierCommandHandler(pool *courier.Pool) HeartbeatCourierCommandHandler {
	return HeartbeatCourierCommandHandler{pool: pool}
}

// Handle processes the heartbeat. Returns ObjectNotFoundError when the
// courier is not signed on, which tells the client to sign on again.
func (h *HeartbeatCourierCommandHandler) Handle(_ context.Context, cmd HeartbeatCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.pool.Heartbeat(cmd.CourierID(), time.Now().UTC())
}
