package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/taskstore"
)

// Envelope wraps every response body.
type Envelope struct {
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Data     any      `json:"data,omitempty"`
}

func respond(c echo.Context, status int, data any, warnings ...string) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Warnings: warnings})
}

// fromResult turns a failed store Result into an HTTP error.
func fromResult(res taskstore.Result) error {
	return echo.NewHTTPError(statusFor(res.Err), res.Message())
}

func statusFor(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// errorHandler renders every error in the envelope format.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	}
	if status >= http.StatusInternalServerError {
		logger.Error("API request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, Envelope{Success: false, Error: msg})
	}
	if err != nil {
		logger.Warn("Failed to write error response", "error", err)
	}
}
