package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PankajGoutam/User-Api/internal/api/middleware"
	"github.com/PankajGoutam/User-Api/internal/core/domain"
)

// ctxUser extracts the user snapshot injected by the Authenticate middleware.
// Its presence proves the middleware ran; a protected handler reached without
// it is a wiring error, rejected rather than dereferenced.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Token is required for authentication")
	}
	return user, nil
}
