package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// Success is the wrapper for all 2xx responses.
type Success struct {
	Data any `json:"data"`
}

// APIError is the wrapper for all 4xx/5xx responses.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func sendSuccess(c echo.Context, code int, data any) error {
	return c.JSON(code, Success{Data: data})
}

// handleError translates service errors into HTTP responses. Business-rule
// kinds map to client statuses; everything else is an opaque 500.
func handleError(c echo.Context, log *logger.Logger, err error) error {
	var ve ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, APIError{
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Details: ve.Errors,
		})
	}

	var modelErr *model.Error
	if errors.As(err, &modelErr) {
		status, code := statusForKind(modelErr.Kind)
		resp := APIError{Code: code, Message: modelErr.Message}
		if len(modelErr.Reasons) > 0 {
			resp.Details = modelErr.Reasons
		}
		return c.JSON(status, resp)
	}

	log.Error("HTTP handler: request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err.Error())
	return c.JSON(http.StatusInternalServerError, APIError{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	})
}

func statusForKind(kind model.Kind) (int, string) {
	switch kind {
	case model.KindUnauthorized:
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case model.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case model.KindConflict:
		return http.StatusConflict, "CONFLICT"
	case model.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
