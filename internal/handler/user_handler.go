package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ticketdesk/internal/auth"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/flash"
	"ticketdesk/internal/model"
	"ticketdesk/internal/service"
)

// UserHandler bundles the admin user-management handlers.
type UserHandler struct {
	users   service.UserService
	flashes flash.StoreInterface
}

// NewUserHandler creates a user handler.
func NewUserHandler(users service.UserService, flashes flash.StoreInterface) *UserHandler {
	return &UserHandler{users: users, flashes: flashes}
}

// UpdateRoleRequest carries the new role for a user.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UserListResponse is the user list view payload.
type UserListResponse struct {
	Users []model.User    `json:"users"`
	Flash []flash.Message `json:"flash"`
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} UserListResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	users, err := h.users.ListUsers(c.Request().Context(), actor)
	if err != nil {
		if err == apperrors.ErrForbidden {
			return h.redirectFlash(c, flash.CategoryDanger, err.Error(), "/tickets")
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, UserListResponse{
		Users: users,
		Flash: h.flashes.PopAll(c.Request().Context(), flash.Scope(c)),
	})
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.users.SetRole(c.Request().Context(), actor, uint(id), req.Role); err != nil {
		switch err {
		case apperrors.ErrForbidden:
			return h.redirectFlash(c, flash.CategoryDanger, err.Error(), "/tickets")
		case apperrors.ErrUserNotFound:
			return h.redirectFlash(c, flash.CategoryDanger, err.Error(), "/users")
		case apperrors.ErrInvalidRole:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return h.redirectFlash(c, flash.CategorySuccess, "user role updated", "/users")
}

func (h *UserHandler) redirectFlash(c echo.Context, category, text, target string) error {
	_ = h.flashes.Push(c.Request().Context(), flash.Scope(c), category, text)
	return c.Redirect(http.StatusSeeOther, target)
}
