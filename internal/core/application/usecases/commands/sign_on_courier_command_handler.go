package commands

import (
	"context"
	"time"

	"missions/internal/core/domain/model/courier"
)

// SignOnCourierCommandHandler registers couriers in the availability pool.
// Presence is in-memory only; there is nothing to persist.
type SignOnCourierCommandHandler struct {
	pool *courier.Pool
}

// NewSignOnCourierCommandHandler creates a handler for courier sign-on.
func NewSignOnCourierCommandHandler(pool *courier.Pool) SignOnCourierCommandHandler {
	return SignOnCourierCommandHandler{pool: pool}
}

// Handle processes the sign-on. Signing on while already signed on resets
// the courier's record.
func (h *SignOnCourierCommandHandler) Handle(_ context.Context, cmd SignOnCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.pool.SignOn(cmd.CourierID(), cmd.Position(), cmd.Capacity(), time.Now().UTC())
}
