package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabian692/ecommerce/internal/service"
)

// respondError maps business error kinds onto HTTP statuses. Anything not
// matched is a storage or infrastructure failure and stays a 500 with a
// generic body.
func respondError(c echo.Context, l *slog.Logger, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, service.ErrUnauthorized):
		status, msg = http.StatusForbidden, "not enough rights"
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrAlreadyExists):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrProductReserved):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInsufficientStock):
		status, msg = http.StatusConflict, err.Error()
	}

	if status >= 500 {
		l.Error("request failed", "status", status, "error", err)
	} else {
		l.Warn("request rejected", "status", status, "error", err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}
