package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PankajGoutam/User-Api/internal/api/metrics"
	"github.com/PankajGoutam/User-Api/internal/core/domain"
	"github.com/PankajGoutam/User-Api/internal/core/ports"
)

// UserHandler handles HTTP requests for all account operations.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// validationError renders the collected per-field failures inside the
// standard envelope.
func validationError(c echo.Context, err error) error {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, envelope{
			Success: false,
			Msg:     "Validation Errors",
			Errors:  ve.Fields,
		})
	}
	return c.JSON(http.StatusBadRequest, fail(err.Error()))
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	input, err := toRegisterInput(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("dateofbirth must be a date in the format "+dateLayout))
	}

	user, err := h.users.Register(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, fail("Email Already Exist"))
		}
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, ok("User Successfully Created", user))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	token, user, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, fail("User Not Found"))
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, fail("Email and Password is incorrect!"))
		}
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, envelope{
		Success:   true,
		Msg:       "Login Successfully",
		Token:     token,
		TokenType: "Bearer",
		Data:      user,
	})
}

// Profile returns the caller's own record, re-fetched by id so the response
// is current even when the token snapshot is stale.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), caller.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail(err.Error()))
	}
	return c.JSON(http.StatusOK, ok("Profile Data", user))
}

// List returns all users except the caller.
//
// @Summary      List other users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       / [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	users, err := h.users.ListOthers(c.Request().Context(), caller.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("Error fetching users"))
	}
	return c.JSON(http.StatusOK, ok("Users Data", users))
}

// Update applies a partial profile update for the caller. The password is
// re-hashed only when supplied.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /update [post]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	input, err := toUpdateInput(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fail("dateofbirth must be a date in the format "+dateLayout))
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), caller.ID, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, fail("User does not exist!"))
		}
		if errors.Is(err, domain.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, fail("Email Already Exist"))
		}
		return c.JSON(http.StatusInternalServerError, fail(err.Error()))
	}
	return c.JSON(http.StatusOK, ok("User profile updated successfully", user))
}

// Delete removes the account with the given email. The existence check runs
// before the ADMIN gate, so a missing target reports not-found to every
// caller.
//
// @Summary      Delete a user by email (admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteUserRequest  true  "Target email"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /delete [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fail("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	if err := h.users.DeleteByEmail(c.Request().Context(), caller.Role, req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, fail("User does not exist!"))
		}
		if errors.Is(err, domain.ErrAdminOnly) {
			return c.JSON(http.StatusForbidden, fail("Only Admin Can Access This"))
		}
		return c.JSON(http.StatusInternalServerError, fail(err.Error()))
	}
	return c.JSON(http.StatusOK, ok("User deleted Successfully", nil))
}
