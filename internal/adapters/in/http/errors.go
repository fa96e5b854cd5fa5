package http

import (
	"errors"
	"net/http"

	"missions/internal/core/domain/services"
	"missions/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps application errors onto HTTP statuses. Unknown errors
// become 500 with a generic message so internals never leak to clients.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrUnauthorizedAction):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrTerminalState),
		errors.Is(err, errs.ErrAlreadyAssigned):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrNoCourierAvailable):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrNoPosition):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status, message = http.StatusBadRequest, err.Error()
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}
