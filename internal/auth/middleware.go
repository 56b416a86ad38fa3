package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketdesk/internal/flash"
	"ticketdesk/internal/model"
)

// userContextKey is where LoadUser stores the resolved user on the request.
const userContextKey = "currentUser"

// UserLoader fetches a user by ID. Satisfied by the user service so the
// middleware benefits from its cache without importing the service package.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// LoadUser resolves the validated session claims left by the JWT middleware
// into a live User and stores it on the request context. A token whose
// session has been revoked or idled out redirects to login, never a raw 401.
func LoadUser(sessions SessionStoreInterface, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*SessionClaims)
			if !ok || claims.ID == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			ctx := c.Request().Context()

			userID, err := sessions.Get(ctx, claims.ID)
			if err != nil || userID != claims.UserID {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			// sliding idle expiry
			_ = sessions.Touch(ctx, claims.ID, SessionIdleExpiry)

			user, err := users.GetUser(ctx, userID)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin gates a route group on the admin role. Non-admins get a danger
// flash and a redirect to the ticket list, never a raw 403.
func RequireAdmin(flashes flash.StoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if !user.IsAdmin() {
				_ = flashes.Push(c.Request().Context(), flash.Scope(c), flash.CategoryDanger, "access denied")
				return c.Redirect(http.StatusSeeOther, "/tickets")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by LoadUser for this request.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}
