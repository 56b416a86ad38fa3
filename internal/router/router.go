package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ticketdesk/internal/auth"
	"ticketdesk/internal/config"
	"ticketdesk/internal/flash"
	"ticketdesk/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	sessions auth.SessionStoreInterface,
	users auth.UserLoader,
	flashes flash.StoreInterface,
	authHandler *handler.AuthHandler,
	ticketHandler *handler.TicketHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Landing page
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"service": "ticketdesk",
			"login":   "/login",
			"tickets": "/tickets",
		})
	})

	// Public routes
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)

	// Protected routes: token signature check, then live-session resolution.
	// Any failure redirects to the login form instead of answering 401.
	protected := e.Group("",
		echojwt.WithConfig(echojwt.Config{
			TokenLookup: "cookie:session,header:Authorization:Bearer ",
			ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
				return tokens.ValidateToken(token)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return c.Redirect(http.StatusSeeOther, "/login")
			},
		}),
		auth.LoadUser(sessions, users),
	)

	protected.GET("/tickets", ticketHandler.List)
	protected.POST("/tickets", ticketHandler.Create)
	protected.GET("/tickets/:id", ticketHandler.Get)
	protected.POST("/tickets/:id", ticketHandler.Update)
	protected.DELETE("/tickets/:id", ticketHandler.Delete)
	protected.GET("/logout", authHandler.Logout)

	// Admin-only routes
	admin := protected.Group("/users", auth.RequireAdmin(flashes))
	admin.GET("", userHandler.List)
	admin.PUT("/:id", userHandler.UpdateRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
