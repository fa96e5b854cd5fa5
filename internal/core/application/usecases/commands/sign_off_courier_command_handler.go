package commands

import (
	"context"

	"missions/internal/core/domain/model/courier"
)

// SignOffCourierCommandHandler removes couriers from the availability pool.
type SignOffCourierCommandHandler struct {
	pool *courier.Pool
}

// NewSignOffCourierCommandHandler creates a handler for courier sign-off.
func NewSignOffCourierCommandHandler(pool *courier.Pool) SignOffCourierCommandHandler {
	return SignOffCourierCommandHandler{pool: pool}
}

// Handle processes the sign-off. Returns ObjectNotFoundError when the
// courier is not signed on.
func (h *SignOffCourierCommandHandler) Handle(_ context.Context, cmd SignOffCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.pool.SignOff(cmd.CourierID())
}
