package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ticketdesk/internal/auth"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/flash"
	"ticketdesk/internal/service"
)

// sessionCookieName carries the session token between requests. The token is
// also accepted as an Authorization bearer header for non-browser clients.
const sessionCookieName = "session"

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	flashes     flash.StoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, flashes flash.StoreInterface) *AuthHandler {
	return &AuthHandler{authService: authService, flashes: flashes}
}

// RegisterRequest represents a user registration submission.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginRequest represents a login submission.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// FormResponse is the renderless stand-in for a form page: any flash messages
// pending for this browser.
type FormResponse struct {
	Flash []flash.Message `json:"flash"`
}

// ShowRegister godoc
// @Summary Registration form
// @Tags auth
// @Produce json
// @Success 200 {object} FormResponse
// @Router /register [get]
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.JSON(http.StatusOK, FormResponse{
		Flash: h.flashes.PopAll(c.Request().Context(), flash.Scope(c)),
	})
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// registration never auto-authenticates; the user logs in next
	_ = h.flashes.Push(c.Request().Context(), flash.Scope(c), flash.CategorySuccess, "user registered successfully")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin godoc
// @Summary Login form
// @Tags auth
// @Produce json
// @Success 200 {object} FormResponse
// @Router /login [get]
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.JSON(http.StatusOK, FormResponse{
		Flash: h.flashes.PopAll(c.Request().Context(), flash.Scope(c)),
	})
}

// Login godoc
// @Summary Authenticate and establish a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == apperrors.ErrInvalidCredentials {
			_ = h.flashes.Push(c.Request().Context(), flash.Scope(c), flash.CategoryDanger, err.Error())
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(auth.SessionIdleExpiry / time.Second),
	})
	return c.Redirect(http.StatusSeeOther, "/tickets")
}

// Logout godoc
// @Summary Invalidate the current session
// @Tags auth
// @Success 303
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := sessionToken(c); token != "" {
		_ = h.authService.Logout(c.Request().Context(), token)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

// sessionToken extracts the raw session token from the cookie or the
// Authorization header.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	const bearerPrefix = "Bearer "
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(bearerPrefix) && header[:len(bearerPrefix)] == bearerPrefix {
		return header[len(bearerPrefix):]
	}
	return ""
}
