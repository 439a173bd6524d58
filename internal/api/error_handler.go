package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/PankajGoutam/User-Api/internal/core/domain"
)

// errorEnvelope matches the uniform {success, msg} response shape.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their contract HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the uniform envelope: {"success": false, "msg": "<message>"}.
//
// Handlers render most failures themselves; this is the backstop for router
// 404/405s, echo-level errors and anything a handler returns unrendered.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Msg: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, "User Not Found"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "Email Already Exist"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Email and Password is incorrect!"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusBadRequest, "Invalid Token"
	case errors.Is(err, domain.ErrAdminOnly):
		return http.StatusForbidden, "Only Admin Can Access This"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
