package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ticketdesk/docs"
	"ticketdesk/internal/auth"
	"ticketdesk/internal/cache"
	"ticketdesk/internal/config"
	"ticketdesk/internal/db"
	"ticketdesk/internal/flash"
	"ticketdesk/internal/handler"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
	"ticketdesk/internal/router"
	"ticketdesk/internal/service"
)

// @title Ticketdesk API
// @version 1.0
// @description Multi-user support ticket tracker with session authentication and role-based access.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Ticket{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)

	// Initialize session components
	tokenService := auth.NewTokenService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)
	flashStore := flash.NewStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, sessionStore)
	ticketService := service.NewTicketService(ticketRepo)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, flashStore)
	ticketHandler := handler.NewTicketHandler(ticketService, flashStore)
	userHandler := handler.NewUserHandler(userService, flashStore)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		sessionStore,
		userService,
		flashStore,
		authHandler,
		ticketHandler,
		userHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
