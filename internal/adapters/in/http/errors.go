package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/services"
	"gasfill/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor classifies domain and application errors. Order matters: the
// ownership check is itself a precondition failure but maps to 403.
func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrNotAssignedToRider):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, services.ErrNoRiderAvailable),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every error returned by a handler or middleware as an
// Error body. Internal failures are logged and their details withheld.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := Error{}
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			body.Code = httpErr.Code
			body.Message = fmt.Sprint(httpErr.Message)
		} else {
			body.Code = statusFor(err)
			body.Message = err.Error()
		}

		if body.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.String("error", err.Error()),
			)
			body.Message = http.StatusText(body.Code)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.WarnContext(c.Request().Context(), "write error response", slog.String("error", writeErr.Error()))
		}
	}
}
